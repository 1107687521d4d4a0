// Package archive holds the rules for archiving purchase orders
package archive

import (
	"fmt"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

// ErrNotArchivable is returned when an open order is selected for archiving
var ErrNotArchivable = fmt.Errorf("%w: Only 'Locked' or 'Canceled' orders can be archived", entities.ErrUserError)

// ToggleActive flips the active flag of every order. Archiving is refused as a
// whole when one of the active orders is neither locked nor cancelled.
// Unarchiving is always allowed.
func ToggleActive(orders []*entities.PurchaseOrder) error {
	for _, order := range orders {
		if order.Active && !order.IsLockedOrCanceled() {
			return fmt.Errorf("%w (order %s is in state %q)", ErrNotArchivable, order.Name, order.State)
		}
	}
	for _, order := range orders {
		order.Active = !order.Active
	}
	return nil
}
