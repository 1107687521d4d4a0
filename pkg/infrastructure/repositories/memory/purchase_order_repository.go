package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

// PurchaseOrderRepository provides in-memory purchase order storage
type PurchaseOrderRepository struct {
	mu       sync.RWMutex
	orders   map[uuid.UUID]entities.PurchaseOrder
	names    map[string]uuid.UUID
	sequence int
}

// NewPurchaseOrderRepository creates a new in-memory purchase order repository
func NewPurchaseOrderRepository() *PurchaseOrderRepository {
	return &PurchaseOrderRepository{
		orders: make(map[uuid.UUID]entities.PurchaseOrder),
		names:  make(map[string]uuid.UUID),
	}
}

// Verify interface compliance
var _ repositories.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// SaveOrder inserts or replaces an order. Order names are unique.
func (r *PurchaseOrderRepository) SaveOrder(_ context.Context, order *entities.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, taken := r.names[order.Name]; taken && owner != order.ID {
		return fmt.Errorf("duplicate order name %s: %w", order.Name, entities.ErrDuplicate)
	}
	if previous, exists := r.orders[order.ID]; exists && previous.Name != order.Name {
		delete(r.names, previous.Name)
	}

	r.orders[order.ID] = cloneOrder(order)
	r.names[order.Name] = order.ID
	return nil
}

// GetOrder returns a copy of the order with the given ID
func (r *PurchaseOrderRepository) GetOrder(_ context.Context, id uuid.UUID) (*entities.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, fmt.Errorf("purchase order %s: %w", id, entities.ErrNotFound)
	}
	clone := cloneOrder(&order)
	return &clone, nil
}

// GetOrders returns copies of the orders in the order of ids
func (r *PurchaseOrderRepository) GetOrders(ctx context.Context, ids []uuid.UUID) ([]*entities.PurchaseOrder, error) {
	orders := make([]*entities.PurchaseOrder, 0, len(ids))
	for _, id := range ids {
		order, err := r.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// ListOrders returns the orders matching filter sorted by name
func (r *PurchaseOrderRepository) ListOrders(_ context.Context, filter repositories.OrderFilter) ([]*entities.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*entities.PurchaseOrder
	for _, order := range r.orders {
		if !order.Active && !filter.IncludeArchived {
			continue
		}
		if filter.State != "" && order.State != filter.State {
			continue
		}
		if filter.CancelReasonID != nil &&
			(order.CancelReasonID == nil || *order.CancelReasonID != *filter.CancelReasonID) {
			continue
		}
		clone := cloneOrder(&order)
		orders = append(orders, &clone)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Name < orders[j].Name
	})
	return orders, nil
}

// NextName returns the next unused name of the P00001 sequence
func (r *PurchaseOrderRepository) NextName(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		r.sequence++
		name := fmt.Sprintf("P%05d", r.sequence)
		if _, taken := r.names[name]; !taken {
			return name, nil
		}
	}
}

func cloneOrder(order *entities.PurchaseOrder) entities.PurchaseOrder {
	clone := *order
	clone.Lines = append([]entities.PurchaseOrderLine(nil), order.Lines...)
	if order.CancelReasonID != nil {
		reason := *order.CancelReasonID
		clone.CancelReasonID = &reason
	}
	return clone
}
