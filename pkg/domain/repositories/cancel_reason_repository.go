package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

// CancelReasonRepository provides access to the cancellation reason catalogue
type CancelReasonRepository interface {
	GetReason(ctx context.Context, id uuid.UUID) (*entities.CancelReason, error)
	ListReasons(ctx context.Context) ([]*entities.CancelReason, error)
	SaveReason(ctx context.Context, reason *entities.CancelReason) error
	DeleteReason(ctx context.Context, id uuid.UUID) error
}
