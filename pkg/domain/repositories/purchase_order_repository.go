package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

// OrderFilter narrows a purchase order listing
type OrderFilter struct {
	// IncludeArchived also returns orders whose Active flag is false
	IncludeArchived bool
	State           entities.OrderState
	CancelReasonID  *uuid.UUID
}

// PurchaseOrderRepository provides access to purchase orders
type PurchaseOrderRepository interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*entities.PurchaseOrder, error)
	// GetOrders returns the orders in the order of ids and fails if one is missing
	GetOrders(ctx context.Context, ids []uuid.UUID) ([]*entities.PurchaseOrder, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]*entities.PurchaseOrder, error)
	SaveOrder(ctx context.Context, order *entities.PurchaseOrder) error
	// NextName returns the next free order name in the P00001 sequence
	NextName(ctx context.Context) (string, error)
}
