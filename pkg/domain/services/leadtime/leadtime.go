// Package leadtime splits a vendor lead time into a transport portion and a
// supplier-processing portion and keeps the combined value consistent.
package leadtime

import (
	"errors"
	"fmt"
)

// ErrInvalidLeadTime is returned when a combined delay cannot be redistributed
// without driving the supplier delay negative.
var ErrInvalidLeadTime = errors.New("invalid lead time")

// InvalidLeadTimeError carries the values of a rejected delay update
type InvalidLeadTimeError struct {
	Delay     int
	Transport int
}

func (e *InvalidLeadTimeError) Error() string {
	return fmt.Sprintf(
		"%s: delay (%d) cannot be lower than the transport delay (%d)",
		ErrInvalidLeadTime, e.Delay, e.Transport,
	)
}

// Is reports whether target is ErrInvalidLeadTime
func (e *InvalidLeadTimeError) Is(target error) bool {
	return target == ErrInvalidLeadTime
}

// ComputeDelay returns the combined delay in days
func ComputeDelay(transport, supplier int) int {
	return transport + supplier
}

// ApplyDelay redistributes a combined delay onto the supplier portion while the
// transport portion stays fixed. It returns the new supplier delay.
func ApplyDelay(delay, transport int) (int, error) {
	if delay < transport {
		return 0, &InvalidLeadTimeError{Delay: delay, Transport: transport}
	}
	return delay - transport, nil
}

// Resolve applies the write-order policy for a record written with all three
// delay values: an explicit delay wins and the supplier delay is derived from
// it, otherwise the delay is derived from its two contributions.
func Resolve(transport, supplier int, delay *int) (resolvedSupplier, resolvedDelay int, err error) {
	if delay == nil {
		return supplier, ComputeDelay(transport, supplier), nil
	}
	resolvedSupplier, err = ApplyDelay(*delay, transport)
	if err != nil {
		return 0, 0, err
	}
	return resolvedSupplier, *delay, nil
}
