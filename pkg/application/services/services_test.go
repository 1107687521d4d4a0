package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/purchasing/pkg/application/dto"
	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
	"github.com/vsinha/purchasing/pkg/domain/services/cancellation"
	"github.com/vsinha/purchasing/pkg/domain/services/leadtime"
	"github.com/vsinha/purchasing/pkg/infrastructure/events"
	"github.com/vsinha/purchasing/pkg/infrastructure/repositories/memory"
)

type fixture struct {
	infos   *SupplierInfoService
	orders  *PurchaseOrderService
	reasons *CancelReasonService
	store   *events.InMemoryEventStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := events.NewInMemoryEventStore(log)
	infoRepo := memory.NewSupplierInfoRepository(0)
	orderRepo := memory.NewPurchaseOrderRepository()
	reasonRepo := memory.NewCancelReasonRepository()

	return &fixture{
		infos:   NewSupplierInfoService(infoRepo, store, log),
		orders:  NewPurchaseOrderService(orderRepo, reasonRepo, infoRepo, store, log),
		reasons: NewCancelReasonService(reasonRepo, orderRepo, log),
		store:   store,
	}
}

func (f *fixture) eventTypes(t *testing.T) []string {
	t.Helper()
	f.store.Wait()
	all, err := f.store.ReadAllEvents(0)
	require.NoError(t, err)
	types := make([]string, 0, len(all))
	for _, e := range all {
		types = append(types, e.Type())
	}
	return types
}

func intPtr(v int) *int { return &v }

func TestSupplierInfoService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	info, err := f.infos.Create(ctx, dto.CreateSupplierInfoRequest{
		PartnerID: "ACME", PartNumber: "BOLT", Price: decimal.NewFromInt(10),
		TransportDelay: 5, SupplierDelay: 5, Delay: intPtr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, info.TransportDelay)
	assert.Equal(t, 7, info.SupplierDelay)
	assert.Equal(t, 12, info.Delay)

	stored, err := f.infos.Get(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Delay)
	assert.Equal(t, []string{events.SupplierInfoCreatedEvent}, f.eventTypes(t))
}

func TestSupplierInfoService_CreateRejectsShortDelay(t *testing.T) {
	f := newFixture(t)

	_, err := f.infos.Create(context.Background(), dto.CreateSupplierInfoRequest{
		PartnerID: "ACME", PartNumber: "BOLT", TransportDelay: 5, Delay: intPtr(3),
	})
	require.ErrorIs(t, err, leadtime.ErrInvalidLeadTime)

	all, err := f.infos.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSupplierInfoService_UpdateDelays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	info, err := f.infos.Create(ctx, dto.CreateSupplierInfoRequest{
		PartnerID: "ACME", PartNumber: "BOLT", TransportDelay: 5, SupplierDelay: 5,
	})
	require.NoError(t, err)
	require.Equal(t, 10, info.Delay)

	tests := []struct {
		name                          string
		req                           dto.UpdateDelaysRequest
		wantTransport, wantSupp, want int
		wantErr                       error
	}{
		{
			name:          "delay moves onto supplier",
			req:           dto.UpdateDelaysRequest{Delay: intPtr(12)},
			wantTransport: 5, wantSupp: 7, want: 12,
		},
		{
			name:    "delay below transport rejected",
			req:     dto.UpdateDelaysRequest{Delay: intPtr(3)},
			wantErr: leadtime.ErrInvalidLeadTime,
			// record keeps the previous write
			wantTransport: 5, wantSupp: 7, want: 12,
		},
		{
			name:          "transport recomputes delay",
			req:           dto.UpdateDelaysRequest{TransportDelay: intPtr(2)},
			wantTransport: 2, wantSupp: 7, want: 9,
		},
		{
			name:          "delay applied after transport",
			req:           dto.UpdateDelaysRequest{TransportDelay: intPtr(4), Delay: intPtr(6)},
			wantTransport: 4, wantSupp: 2, want: 6,
		},
		{
			name:          "negative supplier rejected",
			req:           dto.UpdateDelaysRequest{SupplierDelay: intPtr(-1)},
			wantErr:       entities.ErrValidation,
			wantTransport: 4, wantSupp: 2, want: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.infos.UpdateDelays(ctx, info.ID, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			got, err := f.infos.Get(ctx, info.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTransport, got.TransportDelay)
			assert.Equal(t, tt.wantSupp, got.SupplierDelay)
			assert.Equal(t, tt.want, got.Delay)
			assert.Equal(t, got.TransportDelay+got.SupplierDelay, got.Delay)
		})
	}
}

func TestSupplierInfoService_UpdateDelaysNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.infos.UpdateDelays(context.Background(), uuid.New(), dto.UpdateDelaysRequest{Delay: intPtr(1)})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestPurchaseOrderService_CreateOrderPlansDates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.infos.Create(ctx, dto.CreateSupplierInfoRequest{
		PartnerID: "ACME", PartNumber: "BOLT", Price: decimal.NewFromInt(10),
		TransportDelay: 4, SupplierDelay: 6,
	})
	require.NoError(t, err)

	dateOrder := time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC)
	order, err := f.orders.CreateOrder(ctx, dto.CreateOrderRequest{
		PartnerID: "ACME",
		DateOrder: dateOrder,
		Lines:     []dto.OrderLineRequest{{PartNumber: "BOLT", Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, "P00001", order.Name)
	assert.Equal(t, entities.StateDraft, order.State)
	assert.True(t, order.Active)
	require.Len(t, order.Lines, 1)
	line := order.Lines[0]
	assert.True(t, line.PriceUnit.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, time.Date(2020, 8, 20, 0, 0, 0, 0, time.UTC), line.DatePlanned)
	assert.Equal(t, time.Date(2020, 8, 16, 0, 0, 0, 0, time.UTC), line.SupplierDatePlanned)
	assert.True(t, order.AmountTotal().Equal(decimal.NewFromInt(30)))
}

func TestPurchaseOrderService_CreateOrderWithoutOffer(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.CreateOrder(context.Background(), dto.CreateOrderRequest{
		PartnerID: "ACME",
		Lines:     []dto.OrderLineRequest{{PartNumber: "NUT", Quantity: 1}},
	})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func newOrder(t *testing.T, f *fixture, state entities.OrderState) *entities.PurchaseOrder {
	t.Helper()
	ctx := context.Background()
	order, err := f.orders.CreateOrder(ctx, dto.CreateOrderRequest{PartnerID: "ACME"})
	require.NoError(t, err)
	if state != entities.StateDraft {
		order, err = f.orders.SetState(ctx, order.ID, state)
		require.NoError(t, err)
	}
	return order
}

func TestPurchaseOrderService_CancelFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	reason, err := f.reasons.Create(ctx, "Supplier out of stock")
	require.NoError(t, err)
	other, err := f.reasons.Create(ctx, "Price too high")
	require.NoError(t, err)

	first := newOrder(t, f, entities.StateDraft)
	second := newOrder(t, f, entities.StatePurchase)
	ids := []uuid.UUID{first.ID, second.ID}

	action, err := f.orders.OpenCancelWizard(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, cancellation.ActWindow, action.Type)
	assert.Equal(t, ids, action.Context[cancellation.DefaultOrderIDsKey])

	action, err = f.orders.ConfirmCancel(ctx, dto.ConfirmCancelRequest{
		ReasonID: reason.ID, ActiveModel: cancellation.PurchaseOrderModel, ActiveIDs: ids,
	})
	require.NoError(t, err)
	assert.Equal(t, cancellation.ActWindowClose, action.Type)

	for _, id := range ids {
		order, err := f.orders.GetOrder(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entities.StateCancel, order.State)
		require.NotNil(t, order.CancelReasonID)
		assert.Equal(t, reason.ID, *order.CancelReasonID)
	}

	// cancelled orders cannot reopen the wizard
	_, err = f.orders.OpenCancelWizard(ctx, ids)
	require.ErrorIs(t, err, entities.ErrValidation)
	assert.Contains(t, err.Error(), first.Name)
	assert.Contains(t, err.Error(), second.Name)

	updated, err := f.orders.UpdateCancelReason(ctx, first.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, *updated.CancelReasonID)

	_, err = f.orders.UpdateCancelReason(ctx, first.ID, uuid.New())
	assert.ErrorIs(t, err, entities.ErrNotFound)

	assert.Contains(t, f.eventTypes(t), events.OrderCancelledEvent)
	assert.Contains(t, f.eventTypes(t), events.OrderReasonUpdatedEvent)
}

func TestPurchaseOrderService_ConfirmCancelWithoutSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	reason, err := f.reasons.Create(ctx, "Duplicate")
	require.NoError(t, err)
	order := newOrder(t, f, entities.StateDraft)

	tests := []struct {
		name  string
		model string
		ids   []uuid.UUID
	}{
		{name: "no ids", model: cancellation.PurchaseOrderModel},
		{name: "other model", model: "sale.order", ids: []uuid.UUID{order.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := f.orders.ConfirmCancel(ctx, dto.ConfirmCancelRequest{
				ReasonID: reason.ID, ActiveModel: tt.model, ActiveIDs: tt.ids,
			})
			require.NoError(t, err)
			assert.Equal(t, cancellation.CloseAction(), action)

			got, err := f.orders.GetOrder(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, entities.StateDraft, got.State)
			assert.Nil(t, got.CancelReasonID)
		})
	}
}

func TestPurchaseOrderService_ToggleActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	draft := newOrder(t, f, entities.StateDraft)
	done := newOrder(t, f, entities.StateDone)

	_, err := f.orders.ToggleActive(ctx, []uuid.UUID{draft.ID, done.ID})
	require.ErrorIs(t, err, entities.ErrUserError)
	assert.Contains(t, err.Error(), "Only 'Locked' or 'Canceled' orders can be archived")

	got, err := f.orders.GetOrder(ctx, done.ID)
	require.NoError(t, err)
	assert.True(t, got.Active, "refused toggle must not archive anything")

	toggled, err := f.orders.ToggleActive(ctx, []uuid.UUID{done.ID})
	require.NoError(t, err)
	require.Len(t, toggled, 1)
	assert.False(t, toggled[0].Active)

	_, err = f.orders.SetState(ctx, done.ID, entities.StateDraft)
	require.ErrorIs(t, err, entities.ErrArchivedStateChange)

	archived, err := f.orders.ListOrders(ctx, repositories.OrderFilter{})
	require.NoError(t, err)
	for _, o := range archived {
		assert.NotEqual(t, done.ID, o.ID, "archived orders are hidden by default")
	}

	_, err = f.orders.ToggleActive(ctx, []uuid.UUID{done.ID})
	require.NoError(t, err)
	reopened, err := f.orders.SetState(ctx, done.ID, entities.StateDraft)
	require.NoError(t, err)
	assert.Equal(t, entities.StateDraft, reopened.State)

	types := f.eventTypes(t)
	assert.Contains(t, types, events.OrderArchivedEvent)
	assert.Contains(t, types, events.OrderUnarchivedEvent)
}

func TestCancelReasonService_DeleteRestrictedWhileUsed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	used, err := f.reasons.Create(ctx, "Wrong vendor")
	require.NoError(t, err)
	unused, err := f.reasons.Create(ctx, "Other")
	require.NoError(t, err)

	order := newOrder(t, f, entities.StateSent)
	_, err = f.orders.ConfirmCancel(ctx, dto.ConfirmCancelRequest{
		ReasonID: used.ID, ActiveModel: cancellation.PurchaseOrderModel, ActiveIDs: []uuid.UUID{order.ID},
	})
	require.NoError(t, err)

	err = f.reasons.Delete(ctx, used.ID)
	require.ErrorIs(t, err, entities.ErrRestricted)
	assert.Contains(t, err.Error(), order.Name)

	require.NoError(t, f.reasons.Delete(ctx, unused.ID))
	_, err = f.reasons.Get(ctx, unused.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestCancelReasonService_CreateAndRename(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.reasons.Create(ctx, "   ")
	require.ErrorIs(t, err, entities.ErrValidation)

	reason, err := f.reasons.Create(ctx, "Late")
	require.NoError(t, err)
	_, err = f.reasons.Create(ctx, "late")
	require.ErrorIs(t, err, entities.ErrDuplicate)

	renamed, err := f.reasons.Rename(ctx, reason.ID, " Delivery too late ")
	require.NoError(t, err)
	assert.Equal(t, "Delivery too late", renamed.Name)

	list, err := f.reasons.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Delivery too late", list[0].Name)
}
