// Package store persists purchasing records in a SQL database through gorm.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

// Store groups the gorm-backed repositories sharing one database handle
type Store struct {
	db            *gorm.DB
	supplierInfos *SupplierInfoStore
	orders        *PurchaseOrderStore
	reasons       *CancelReasonStore
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		supplierInfos: &SupplierInfoStore{db: db},
		orders:        &PurchaseOrderStore{db: db},
		reasons:       &CancelReasonStore{db: db},
	}
}

func (s *Store) SupplierInfo() repositories.SupplierInfoRepository {
	return s.supplierInfos
}

func (s *Store) PurchaseOrder() repositories.PurchaseOrderRepository {
	return s.orders
}

func (s *Store) CancelReason() repositories.CancelReasonRepository {
	return s.reasons
}

// InitialMigration creates or updates the tables
func (s *Store) InitialMigration() error {
	return s.db.AutoMigrate(
		&supplierInfoModel{},
		&cancelReasonModel{},
		&purchaseOrderModel{},
		&purchaseOrderLineModel{},
	)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps gorm errors onto the domain sentinels
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, entities.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, entities.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
