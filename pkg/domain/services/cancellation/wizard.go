// Package cancellation implements the purchase order cancellation wizard: the
// user picks a reason and every selected order that can still be cancelled is
// moved to the cancel state with that reason recorded.
package cancellation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

// ErrNothingToCancel is returned when every selected order is done or cancelled
var ErrNothingToCancel = fmt.Errorf("%w: no cancellable order selected", entities.ErrValidation)

// Split separates orders that can still be cancelled from locked or cancelled ones
func Split(orders []*entities.PurchaseOrder) (valid, invalid []*entities.PurchaseOrder) {
	for _, order := range orders {
		if order.IsLockedOrCanceled() {
			invalid = append(invalid, order)
		} else {
			valid = append(valid, order)
		}
	}
	return valid, invalid
}

// OpenAction returns the action opening the wizard for the cancellable orders
func OpenAction(orders []*entities.PurchaseOrder) (Action, error) {
	valid, invalid := Split(orders)
	if len(valid) == 0 {
		names := make([]string, 0, len(invalid))
		for _, order := range invalid {
			names = append(names, order.Name)
		}
		return Action{}, errors.Wrapf(ErrNothingToCancel,
			"You cannot cancel any of the selected orders as they are all in 'Done' or 'Canceled' state:\n%s",
			strings.Join(names, "\n"),
		)
	}

	ids := make([]uuid.UUID, 0, len(valid))
	for _, order := range valid {
		ids = append(ids, order.ID)
	}
	return openWizardAction(ids), nil
}

// Wizard applies a cancellation reason to purchase orders
type Wizard struct {
	orders  repositories.PurchaseOrderRepository
	reasons repositories.CancelReasonRepository
}

// NewWizard creates a cancellation wizard backed by the given repositories
func NewWizard(
	orders repositories.PurchaseOrderRepository,
	reasons repositories.CancelReasonRepository,
) *Wizard {
	return &Wizard{orders: orders, reasons: reasons}
}

// Open loads the selected orders and returns the action opening the wizard
func (w *Wizard) Open(ctx context.Context, ids []uuid.UUID) (Action, error) {
	orders, err := w.orders.GetOrders(ctx, ids)
	if err != nil {
		return Action{}, err
	}
	return OpenAction(orders)
}

// Confirm cancels the active orders with reasonID. A missing selection or a
// selection of another model closes the dialog without touching anything.
// Orders already done or cancelled are left as they are.
func (w *Wizard) Confirm(
	ctx context.Context,
	reasonID uuid.UUID,
	activeModel string,
	activeIDs []uuid.UUID,
) (Action, []*entities.PurchaseOrder, error) {
	if len(activeIDs) == 0 || activeModel != PurchaseOrderModel {
		return CloseAction(), nil, nil
	}

	reason, err := w.reasons.GetReason(ctx, reasonID)
	if err != nil {
		return Action{}, nil, errors.Wrap(err, "cancel reason")
	}

	orders, err := w.orders.GetOrders(ctx, activeIDs)
	if err != nil {
		return Action{}, nil, err
	}

	valid, _ := Split(orders)
	if len(valid) == 0 {
		if _, err := OpenAction(orders); err != nil {
			return Action{}, nil, err
		}
	}

	for _, order := range valid {
		if err := order.Cancel(reason.ID); err != nil {
			return Action{}, nil, errors.Wrapf(err, "order %s", order.Name)
		}
	}
	for _, order := range valid {
		if err := w.orders.SaveOrder(ctx, order); err != nil {
			return Action{}, nil, errors.Wrapf(err, "saving order %s", order.Name)
		}
	}

	return CloseAction(), valid, nil
}
