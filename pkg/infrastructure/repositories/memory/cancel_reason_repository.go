package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

// CancelReasonRepository provides in-memory cancellation reason storage
type CancelReasonRepository struct {
	mu      sync.RWMutex
	reasons map[uuid.UUID]entities.CancelReason
}

// NewCancelReasonRepository creates a new in-memory cancellation reason repository
func NewCancelReasonRepository() *CancelReasonRepository {
	return &CancelReasonRepository{reasons: make(map[uuid.UUID]entities.CancelReason)}
}

// Verify interface compliance
var _ repositories.CancelReasonRepository = (*CancelReasonRepository)(nil)

// LoadReasons loads reasons into the repository
func (r *CancelReasonRepository) LoadReasons(reasons []*entities.CancelReason) error {
	for _, reason := range reasons {
		if err := r.SaveReason(context.Background(), reason); err != nil {
			return err
		}
	}
	return nil
}

// SaveReason inserts or renames a reason. Names are unique, case-insensitively.
func (r *CancelReasonRepository) SaveReason(_ context.Context, reason *entities.CancelReason) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.reasons {
		if id != reason.ID && strings.EqualFold(existing.Name, reason.Name) {
			return fmt.Errorf("duplicate cancel reason %q: %w", reason.Name, entities.ErrDuplicate)
		}
	}
	r.reasons[reason.ID] = *reason
	return nil
}

// GetReason returns the reason with the given ID
func (r *CancelReasonRepository) GetReason(_ context.Context, id uuid.UUID) (*entities.CancelReason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reason, exists := r.reasons[id]
	if !exists {
		return nil, fmt.Errorf("cancel reason %s: %w", id, entities.ErrNotFound)
	}
	return &reason, nil
}

// ListReasons returns all reasons sorted by name
func (r *CancelReasonRepository) ListReasons(_ context.Context) ([]*entities.CancelReason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reasons := make([]*entities.CancelReason, 0, len(r.reasons))
	for _, reason := range r.reasons {
		reason := reason
		reasons = append(reasons, &reason)
	}
	sort.Slice(reasons, func(i, j int) bool {
		return reasons[i].Name < reasons[j].Name
	})
	return reasons, nil
}

// DeleteReason removes the reason with the given ID
func (r *CancelReasonRepository) DeleteReason(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reasons[id]; !exists {
		return fmt.Errorf("cancel reason %s: %w", id, entities.ErrNotFound)
	}
	delete(r.reasons, id)
	return nil
}
