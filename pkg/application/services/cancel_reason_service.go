package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
	"github.com/vsinha/purchasing/pkg/metrics"
)

// CancelReasonService maintains the cancellation reason catalogue
type CancelReasonService struct {
	reasons repositories.CancelReasonRepository
	orders  repositories.PurchaseOrderRepository
	log     *zap.Logger
}

func NewCancelReasonService(
	reasons repositories.CancelReasonRepository,
	orders repositories.PurchaseOrderRepository,
	log *zap.Logger,
) *CancelReasonService {
	return &CancelReasonService{reasons: reasons, orders: orders, log: nopIfNil(log)}
}

func (s *CancelReasonService) Create(ctx context.Context, name string) (*entities.CancelReason, error) {
	reason, err := entities.NewCancelReason(name)
	if err != nil {
		return nil, err
	}
	if err := s.reasons.SaveReason(ctx, reason); err != nil {
		return nil, err
	}
	s.log.Debug("cancel reason created", zap.String("name", reason.Name))
	return reason, nil
}

func (s *CancelReasonService) Get(ctx context.Context, id uuid.UUID) (*entities.CancelReason, error) {
	return s.reasons.GetReason(ctx, id)
}

func (s *CancelReasonService) List(ctx context.Context) ([]*entities.CancelReason, error) {
	return s.reasons.ListReasons(ctx)
}

func (s *CancelReasonService) Rename(ctx context.Context, id uuid.UUID, name string) (*entities.CancelReason, error) {
	reason, err := s.reasons.GetReason(ctx, id)
	if err != nil {
		return nil, err
	}
	renamed, err := entities.NewCancelReason(name)
	if err != nil {
		return nil, err
	}
	reason.Name = renamed.Name
	if err := s.reasons.SaveReason(ctx, reason); err != nil {
		return nil, err
	}
	return reason, nil
}

// Delete removes a reason. Reasons still recorded on an order, archived or
// not, cannot be deleted.
func (s *CancelReasonService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.reasons.GetReason(ctx, id); err != nil {
		return err
	}
	orders, err := s.orders.ListOrders(ctx, repositories.OrderFilter{IncludeArchived: true, CancelReasonID: &id})
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		metrics.IncreaseRuleViolations(metrics.RuleReasonInUse)
		return fmt.Errorf("%w: cancel reason is used by %d purchase order(s), e.g. %s",
			entities.ErrRestricted, len(orders), orders[0].Name)
	}
	return s.reasons.DeleteReason(ctx, id)
}
