package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/purchasing/pkg/application/dto"
	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
	"github.com/vsinha/purchasing/pkg/domain/services/archive"
	"github.com/vsinha/purchasing/pkg/domain/services/cancellation"
	"github.com/vsinha/purchasing/pkg/domain/services/sourcing"
	"github.com/vsinha/purchasing/pkg/infrastructure/events"
	"github.com/vsinha/purchasing/pkg/metrics"
)

// PurchaseOrderService handles purchase order creation, cancellation and
// archiving.
type PurchaseOrderService struct {
	orders  repositories.PurchaseOrderRepository
	reasons repositories.CancelReasonRepository
	infos   repositories.SupplierInfoRepository
	wizard  *cancellation.Wizard
	events  events.Publisher
	log     *zap.Logger
}

// NewPurchaseOrderService creates the service. pub and log may be nil.
func NewPurchaseOrderService(
	orders repositories.PurchaseOrderRepository,
	reasons repositories.CancelReasonRepository,
	infos repositories.SupplierInfoRepository,
	pub events.Publisher,
	log *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orders:  orders,
		reasons: reasons,
		infos:   infos,
		wizard:  cancellation.NewWizard(orders, reasons),
		events:  pub,
		log:     nopIfNil(log),
	}
}

// CreateOrder creates a draft order. Each line is priced and scheduled from
// the partner's offer for the product.
func (s *PurchaseOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*entities.PurchaseOrder, error) {
	name, err := s.orders.NextName(ctx)
	if err != nil {
		return nil, err
	}
	order, err := entities.NewPurchaseOrder(name, entities.PartnerID(req.PartnerID), req.DateOrder)
	if err != nil {
		return nil, err
	}

	for _, lr := range req.Lines {
		partNumber := entities.PartNumber(lr.PartNumber)
		offers, err := s.infos.ListByProduct(ctx, partNumber)
		if err != nil {
			return nil, err
		}
		line, err := sourcing.NewLine(offers, order.PartnerID, partNumber, entities.Quantity(lr.Quantity), order.DateOrder)
		if err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info("purchase order created",
		zap.String("name", order.Name),
		zap.String("partner", string(order.PartnerID)),
		zap.Int("lines", len(order.Lines)),
	)
	publish(s.events, s.log, events.NewOrderCreatedEvent(*order))
	return order, nil
}

func (s *PurchaseOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entities.PurchaseOrder, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *PurchaseOrderService) ListOrders(ctx context.Context, filter repositories.OrderFilter) ([]*entities.PurchaseOrder, error) {
	return s.orders.ListOrders(ctx, filter)
}

// SetState moves an order to another workflow state. Archived orders refuse.
func (s *PurchaseOrderService) SetState(ctx context.Context, id uuid.UUID, state entities.OrderState) (*entities.PurchaseOrder, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	old := order.State
	if err := order.SetState(state); err != nil {
		if errors.Is(err, entities.ErrArchivedStateChange) {
			metrics.IncreaseRuleViolations(metrics.RuleArchivedState)
		}
		return nil, err
	}
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	publish(s.events, s.log, events.NewOrderStateChangedEvent(*order, old))
	return order, nil
}

// OpenCancelWizard returns the action opening the cancellation wizard for the
// selected orders that can still be cancelled.
func (s *PurchaseOrderService) OpenCancelWizard(ctx context.Context, ids []uuid.UUID) (cancellation.Action, error) {
	action, err := s.wizard.Open(ctx, ids)
	if errors.Is(err, cancellation.ErrNothingToCancel) {
		metrics.IncreaseRuleViolations(metrics.RuleNothingToCancel)
	}
	return action, err
}

// ConfirmCancel applies the wizard's reason to the selected orders
func (s *PurchaseOrderService) ConfirmCancel(ctx context.Context, req dto.ConfirmCancelRequest) (cancellation.Action, error) {
	action, cancelled, err := s.wizard.Confirm(ctx, req.ReasonID, req.ActiveModel, req.ActiveIDs)
	if err != nil {
		if errors.Is(err, cancellation.ErrNothingToCancel) {
			metrics.IncreaseRuleViolations(metrics.RuleNothingToCancel)
		}
		return cancellation.Action{}, err
	}
	if len(cancelled) == 0 {
		return action, nil
	}

	reason, err := s.reasons.GetReason(ctx, req.ReasonID)
	if err != nil {
		return cancellation.Action{}, err
	}
	for _, order := range cancelled {
		metrics.IncreaseOrdersCancelled(reason.Name)
		publish(s.events, s.log, events.NewOrderCancelledEvent(*order, *reason))
	}
	s.log.Info("purchase orders cancelled",
		zap.Int("count", len(cancelled)),
		zap.String("reason", reason.Name),
	)
	return action, nil
}

// UpdateCancelReason replaces the reason recorded on a cancelled order
func (s *PurchaseOrderService) UpdateCancelReason(ctx context.Context, id, reasonID uuid.UUID) (*entities.PurchaseOrder, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.reasons.GetReason(ctx, reasonID); err != nil {
		return nil, err
	}
	old := order.CancelReasonID
	order.CancelReasonID = &reasonID
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	publish(s.events, s.log, events.NewOrderReasonUpdatedEvent(*order, old))
	return order, nil
}

// ToggleActive archives active orders and unarchives archived ones
func (s *PurchaseOrderService) ToggleActive(ctx context.Context, ids []uuid.UUID) ([]*entities.PurchaseOrder, error) {
	orders, err := s.orders.GetOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := archive.ToggleActive(orders); err != nil {
		metrics.IncreaseRuleViolations(metrics.RuleArchiveOpenOrder)
		return nil, err
	}
	for _, order := range orders {
		if err := s.orders.SaveOrder(ctx, order); err != nil {
			return nil, err
		}
		metrics.IncreaseArchiveToggles(!order.Active)
		publish(s.events, s.log, events.NewOrderActiveToggledEvent(*order))
	}
	return orders, nil
}
