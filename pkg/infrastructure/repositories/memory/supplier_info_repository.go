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

// SupplierInfoRepository provides in-memory vendor offer storage
type SupplierInfoRepository struct {
	mu        sync.RWMutex
	infos     []entities.SupplierInfo
	infosMap  map[uuid.UUID]int
	byProduct map[entities.PartNumber][]uuid.UUID
}

// NewSupplierInfoRepository creates a new in-memory vendor offer repository
func NewSupplierInfoRepository(expectedInfos int) *SupplierInfoRepository {
	return &SupplierInfoRepository{
		infos:     make([]entities.SupplierInfo, 0, expectedInfos),
		infosMap:  make(map[uuid.UUID]int, expectedInfos),
		byProduct: make(map[entities.PartNumber][]uuid.UUID),
	}
}

// Verify interface compliance
var _ repositories.SupplierInfoRepository = (*SupplierInfoRepository)(nil)

// LoadSupplierInfos loads offers into the repository
func (r *SupplierInfoRepository) LoadSupplierInfos(infos []*entities.SupplierInfo) error {
	for _, info := range infos {
		if err := r.SaveSupplierInfo(context.Background(), info); err != nil {
			return err
		}
	}
	return nil
}

// SaveSupplierInfo inserts the offer or replaces the stored copy with the same ID
func (r *SupplierInfoRepository) SaveSupplierInfo(_ context.Context, info *entities.SupplierInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.infosMap[info.ID]; exists {
		previous := r.infos[index].PartNumber
		r.infos[index] = *info
		if previous != info.PartNumber {
			r.unindex(previous, info.ID)
			r.byProduct[info.PartNumber] = append(r.byProduct[info.PartNumber], info.ID)
		}
		return nil
	}

	r.infosMap[info.ID] = len(r.infos)
	r.infos = append(r.infos, *info)
	r.byProduct[info.PartNumber] = append(r.byProduct[info.PartNumber], info.ID)
	return nil
}

// GetSupplierInfo returns a copy of the offer with the given ID
func (r *SupplierInfoRepository) GetSupplierInfo(_ context.Context, id uuid.UUID) (*entities.SupplierInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.infosMap[id]
	if !exists {
		return nil, fmt.Errorf("supplier info %s: %w", id, entities.ErrNotFound)
	}
	info := r.infos[index]
	return &info, nil
}

// ListByProduct returns the offers for a product in insertion order
func (r *SupplierInfoRepository) ListByProduct(_ context.Context, partNumber entities.PartNumber) ([]*entities.SupplierInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byProduct[partNumber]
	infos := make([]*entities.SupplierInfo, 0, len(ids))
	for _, id := range ids {
		info := r.infos[r.infosMap[id]]
		infos = append(infos, &info)
	}
	return infos, nil
}

// ListSupplierInfos returns all offers ordered by product
func (r *SupplierInfoRepository) ListSupplierInfos(_ context.Context) ([]*entities.SupplierInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]*entities.SupplierInfo, 0, len(r.infos))
	for i := range r.infos {
		info := r.infos[i]
		infos = append(infos, &info)
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].PartNumber < infos[j].PartNumber
	})
	return infos, nil
}

// DeleteSupplierInfo removes the offer with the given ID
func (r *SupplierInfoRepository) DeleteSupplierInfo(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, exists := r.infosMap[id]
	if !exists {
		return fmt.Errorf("supplier info %s: %w", id, entities.ErrNotFound)
	}
	r.unindex(r.infos[index].PartNumber, id)

	last := len(r.infos) - 1
	if index != last {
		r.infos[index] = r.infos[last]
		r.infosMap[r.infos[index].ID] = index
	}
	r.infos = r.infos[:last]
	delete(r.infosMap, id)
	return nil
}

func (r *SupplierInfoRepository) unindex(partNumber entities.PartNumber, id uuid.UUID) {
	ids := r.byProduct[partNumber]
	for i, candidate := range ids {
		if candidate == id {
			r.byProduct[partNumber] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(r.byProduct[partNumber]) == 0 {
		delete(r.byProduct, partNumber)
	}
}
