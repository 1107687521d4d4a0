package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/purchasing/pkg/domain/services/leadtime"
)

// SupplierInfo represents a vendor offer for a product: price, minimum
// quantity and lead time. Delay is always TransportDelay + SupplierDelay.
type SupplierInfo struct {
	ID             uuid.UUID       `json:"id"`
	PartnerID      PartnerID       `json:"partner_id"`
	PartNumber     PartNumber      `json:"part_number"`
	MinQty         Quantity        `json:"min_qty"`
	Price          decimal.Decimal `json:"price"`
	TransportDelay int             `json:"transport_delay"`
	SupplierDelay  int             `json:"supplier_delay"`
	Delay          int             `json:"delay"`
}

// SupplierInfoValues holds the fields supplied when a vendor offer is created.
// A nil Delay means the delay is derived from its two contributions.
type SupplierInfoValues struct {
	PartnerID      PartnerID
	PartNumber     PartNumber
	MinQty         Quantity
	Price          decimal.Decimal
	TransportDelay int
	SupplierDelay  int
	Delay          *int
}

// NewSupplierInfo creates a validated SupplierInfo. When an explicit delay is
// supplied it takes precedence and the supplier delay is recomputed from it.
func NewSupplierInfo(vals SupplierInfoValues) (*SupplierInfo, error) {
	if vals.PartnerID == "" {
		return nil, fmt.Errorf("%w: partner cannot be empty", ErrValidation)
	}
	if vals.PartNumber == "" {
		return nil, fmt.Errorf("%w: part number cannot be empty", ErrValidation)
	}
	if vals.MinQty < 0 {
		return nil, fmt.Errorf("%w: minimum quantity cannot be negative, got %d", ErrValidation, vals.MinQty)
	}
	if vals.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative, got %s", ErrValidation, vals.Price)
	}
	if err := checkDelay("transport delay", vals.TransportDelay); err != nil {
		return nil, err
	}
	if err := checkDelay("supplier delay", vals.SupplierDelay); err != nil {
		return nil, err
	}

	supplier, delay, err := leadtime.Resolve(vals.TransportDelay, vals.SupplierDelay, vals.Delay)
	if err != nil {
		return nil, err
	}

	return &SupplierInfo{
		ID:             uuid.New(),
		PartnerID:      vals.PartnerID,
		PartNumber:     vals.PartNumber,
		MinQty:         vals.MinQty,
		Price:          vals.Price,
		TransportDelay: vals.TransportDelay,
		SupplierDelay:  supplier,
		Delay:          delay,
	}, nil
}

// SetTransportDelay writes the transport portion and recomputes the delay
func (s *SupplierInfo) SetTransportDelay(days int) error {
	if err := checkDelay("transport delay", days); err != nil {
		return err
	}
	s.TransportDelay = days
	s.Delay = leadtime.ComputeDelay(s.TransportDelay, s.SupplierDelay)
	return nil
}

// SetSupplierDelay writes the supplier portion and recomputes the delay
func (s *SupplierInfo) SetSupplierDelay(days int) error {
	if err := checkDelay("supplier delay", days); err != nil {
		return err
	}
	s.SupplierDelay = days
	s.Delay = leadtime.ComputeDelay(s.TransportDelay, s.SupplierDelay)
	return nil
}

// SetDelay writes the combined delay, moving the difference onto the supplier
// portion. The record is left untouched when the update is rejected.
func (s *SupplierInfo) SetDelay(days int) error {
	supplier, err := leadtime.ApplyDelay(days, s.TransportDelay)
	if err != nil {
		return err
	}
	s.SupplierDelay = supplier
	s.Delay = days
	return nil
}

func checkDelay(field string, days int) error {
	if days < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %d", ErrValidation, field, days)
	}
	return nil
}
