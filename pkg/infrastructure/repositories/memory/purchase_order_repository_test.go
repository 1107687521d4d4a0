package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

func newOrder(t *testing.T, repo *PurchaseOrderRepository, state entities.OrderState) *entities.PurchaseOrder {
	t.Helper()
	name, err := repo.NextName(context.Background())
	if err != nil {
		t.Fatalf("Failed to get next name: %v", err)
	}
	order, err := entities.NewPurchaseOrder(name, "vendor1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	order.State = state
	if err := repo.SaveOrder(context.Background(), order); err != nil {
		t.Fatalf("Failed to save order: %v", err)
	}
	return order
}

func TestPurchaseOrderRepository_NextName(t *testing.T) {
	repo := NewPurchaseOrderRepository()

	first := newOrder(t, repo, entities.StateDraft)
	second := newOrder(t, repo, entities.StateDraft)
	if first.Name != "P00001" || second.Name != "P00002" {
		t.Errorf("Expected P00001 and P00002, got %s and %s", first.Name, second.Name)
	}
}

func TestPurchaseOrderRepository_DuplicateName(t *testing.T) {
	repo := NewPurchaseOrderRepository()
	first := newOrder(t, repo, entities.StateDraft)

	dup, _ := entities.NewPurchaseOrder(first.Name, "vendor2", time.Time{})
	err := repo.SaveOrder(context.Background(), dup)
	if !errors.Is(err, entities.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestPurchaseOrderRepository_GetOrders(t *testing.T) {
	ctx := context.Background()
	repo := NewPurchaseOrderRepository()
	first := newOrder(t, repo, entities.StateDraft)
	second := newOrder(t, repo, entities.StateSent)

	orders, err := repo.GetOrders(ctx, []uuid.UUID{second.ID, first.ID})
	if err != nil {
		t.Fatalf("Failed to get orders: %v", err)
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Errorf("Expected orders in the requested order")
	}

	_, err = repo.GetOrders(ctx, []uuid.UUID{first.ID, uuid.New()})
	if !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPurchaseOrderRepository_ListOrders(t *testing.T) {
	ctx := context.Background()
	repo := NewPurchaseOrderRepository()
	newOrder(t, repo, entities.StateDraft)
	done := newOrder(t, repo, entities.StateDone)
	cancelled := newOrder(t, repo, entities.StateDraft)

	reason := uuid.New()
	if err := cancelled.Cancel(reason); err != nil {
		t.Fatalf("Failed to cancel: %v", err)
	}
	_ = repo.SaveOrder(ctx, cancelled)

	done.Active = false
	_ = repo.SaveOrder(ctx, done)

	testCases := []struct {
		name     string
		filter   repositories.OrderFilter
		expected int
	}{
		{"active only", repositories.OrderFilter{}, 2},
		{"include archived", repositories.OrderFilter{IncludeArchived: true}, 3},
		{"by state", repositories.OrderFilter{IncludeArchived: true, State: entities.StateDone}, 1},
		{"by reason", repositories.OrderFilter{IncludeArchived: true, CancelReasonID: &reason}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders, err := repo.ListOrders(ctx, tc.filter)
			if err != nil {
				t.Fatalf("Failed to list orders: %v", err)
			}
			if len(orders) != tc.expected {
				t.Errorf("Expected %d orders, got %d", tc.expected, len(orders))
			}
		})
	}
}
