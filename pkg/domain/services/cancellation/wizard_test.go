package cancellation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/services/cancellation"
	"github.com/vsinha/purchasing/pkg/infrastructure/repositories/memory"
)

type fixture struct {
	ctx     context.Context
	orders  *memory.PurchaseOrderRepository
	reasons *memory.CancelReasonRepository
	wizard  *cancellation.Wizard
	reason  *entities.CancelReason
	reason2 *entities.CancelReason
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     context.Background(),
		orders:  memory.NewPurchaseOrderRepository(),
		reasons: memory.NewCancelReasonRepository(),
	}
	f.wizard = cancellation.NewWizard(f.orders, f.reasons)

	var err error
	f.reason, err = entities.NewCancelReason("Test Cancellation")
	require.NoError(t, err)
	f.reason2, err = entities.NewCancelReason("Another Reason")
	require.NoError(t, err)
	require.NoError(t, f.reasons.SaveReason(f.ctx, f.reason))
	require.NoError(t, f.reasons.SaveReason(f.ctx, f.reason2))
	return f
}

func (f *fixture) order(t *testing.T, state entities.OrderState) *entities.PurchaseOrder {
	t.Helper()
	name, err := f.orders.NextName(f.ctx)
	require.NoError(t, err)
	order, err := entities.NewPurchaseOrder(name, "Test Supplier", time.Now())
	require.NoError(t, err)
	order.State = state
	require.NoError(t, f.orders.SaveOrder(f.ctx, order))
	return order
}

func (f *fixture) reload(t *testing.T, order *entities.PurchaseOrder) *entities.PurchaseOrder {
	t.Helper()
	stored, err := f.orders.GetOrder(f.ctx, order.ID)
	require.NoError(t, err)
	return stored
}

func TestConfirm_CancelsWithReason(t *testing.T) {
	f := newFixture(t)
	po := f.order(t, entities.StateDraft)

	action, cancelled, err := f.wizard.Confirm(f.ctx, f.reason.ID, cancellation.PurchaseOrderModel, []uuid.UUID{po.ID})
	require.NoError(t, err)
	assert.Equal(t, cancellation.ActWindowClose, action.Type)
	assert.Len(t, cancelled, 1)

	stored := f.reload(t, po)
	assert.Equal(t, entities.StateCancel, stored.State)
	require.NotNil(t, stored.CancelReasonID)
	assert.Equal(t, f.reason.ID, *stored.CancelReasonID)
}

func TestConfirm_MultipleOrders(t *testing.T) {
	f := newFixture(t)
	draft := f.order(t, entities.StateDraft)
	sent := f.order(t, entities.StateSent)

	_, _, err := f.wizard.Confirm(f.ctx, f.reason.ID, cancellation.PurchaseOrderModel, []uuid.UUID{draft.ID, sent.ID})
	require.NoError(t, err)

	for _, order := range []*entities.PurchaseOrder{draft, sent} {
		stored := f.reload(t, order)
		assert.Equal(t, entities.StateCancel, stored.State, "order %s should be cancelled", order.Name)
		require.NotNil(t, stored.CancelReasonID)
		assert.Equal(t, f.reason.ID, *stored.CancelReasonID)
	}
}

func TestConfirm_SkipsLockedOrders(t *testing.T) {
	f := newFixture(t)
	purchase := f.order(t, entities.StatePurchase)
	done := f.order(t, entities.StateDone)

	_, cancelled, err := f.wizard.Confirm(f.ctx, f.reason.ID, cancellation.PurchaseOrderModel, []uuid.UUID{purchase.ID, done.ID})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, purchase.ID, cancelled[0].ID)

	stored := f.reload(t, done)
	assert.Equal(t, entities.StateDone, stored.State)
	assert.Nil(t, stored.CancelReasonID)
}

func TestConfirm_OnlyLockedOrders(t *testing.T) {
	f := newFixture(t)
	done := f.order(t, entities.StateDone)

	_, _, err := f.wizard.Confirm(f.ctx, f.reason.ID, cancellation.PurchaseOrderModel, []uuid.UUID{done.ID})
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestConfirm_ContextHandling(t *testing.T) {
	f := newFixture(t)
	po := f.order(t, entities.StateDraft)

	action, _, err := f.wizard.Confirm(f.ctx, f.reason.ID, cancellation.PurchaseOrderModel, nil)
	require.NoError(t, err)
	assert.Equal(t, cancellation.ActWindowClose, action.Type, "should close window when no active ids")

	action, _, err = f.wizard.Confirm(f.ctx, f.reason.ID, "res.partner", []uuid.UUID{po.ID})
	require.NoError(t, err)
	assert.Equal(t, cancellation.ActWindowClose, action.Type, "should close window for wrong model")

	assert.Equal(t, entities.StateDraft, f.reload(t, po).State)
}

func TestConfirm_UnknownReason(t *testing.T) {
	f := newFixture(t)
	po := f.order(t, entities.StateDraft)

	_, _, err := f.wizard.Confirm(f.ctx, uuid.New(), cancellation.PurchaseOrderModel, []uuid.UUID{po.ID})
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Equal(t, entities.StateDraft, f.reload(t, po).State)
}

func TestOpen_Action(t *testing.T) {
	f := newFixture(t)
	po := f.order(t, entities.StateDraft)
	done := f.order(t, entities.StateDone)

	action, err := f.wizard.Open(f.ctx, []uuid.UUID{po.ID, done.ID})
	require.NoError(t, err)
	assert.Equal(t, cancellation.ActWindow, action.Type)
	assert.Equal(t, "Reason for Cancellation", action.Name)
	assert.Equal(t, cancellation.WizardModel, action.ResModel)
	assert.Equal(t, "form", action.ViewMode)
	assert.Equal(t, "new", action.Target)
	require.Contains(t, action.Context, cancellation.DefaultOrderIDsKey)
	assert.Equal(t, []uuid.UUID{po.ID}, action.Context[cancellation.DefaultOrderIDsKey])
}

func TestOpen_DoneOrder(t *testing.T) {
	f := newFixture(t)
	done := f.order(t, entities.StateDone)
	cancelled := f.order(t, entities.StateCancel)

	_, err := f.wizard.Open(f.ctx, []uuid.UUID{done.ID, cancelled.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrValidation)
	assert.Contains(t, err.Error(), "'Done' or 'Canceled' state:\n"+done.Name+"\n"+cancelled.Name)
}
