package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

const orderNamePrefix = "P"

type PurchaseOrderStore struct {
	db *gorm.DB
}

var _ repositories.PurchaseOrderRepository = (*PurchaseOrderStore)(nil)

func (s *PurchaseOrderStore) GetOrder(ctx context.Context, id uuid.UUID) (*entities.PurchaseOrder, error) {
	var m purchaseOrderModel
	err := s.db.WithContext(ctx).
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("sequence") }).
		First(&m, "id = ?", id.String()).Error
	if err != nil {
		return nil, translate(err, "purchase order "+id.String())
	}
	return m.toEntity()
}

func (s *PurchaseOrderStore) GetOrders(ctx context.Context, ids []uuid.UUID) ([]*entities.PurchaseOrder, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	var models []purchaseOrderModel
	err := s.db.WithContext(ctx).
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("sequence") }).
		Where("id IN ?", keys).
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "purchase orders")
	}

	byID := make(map[string]purchaseOrderModel, len(models))
	for _, m := range models {
		byID[m.ID] = m
	}

	orders := make([]*entities.PurchaseOrder, 0, len(ids))
	for _, key := range keys {
		m, found := byID[key]
		if !found {
			return nil, translate(gorm.ErrRecordNotFound, "purchase order "+key)
		}
		order, err := m.toEntity()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *PurchaseOrderStore) ListOrders(ctx context.Context, filter repositories.OrderFilter) ([]*entities.PurchaseOrder, error) {
	tx := s.db.WithContext(ctx).
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("sequence") }).
		Order("name")
	if !filter.IncludeArchived {
		tx = tx.Where("active = ?", true)
	}
	if filter.State != "" {
		tx = tx.Where("state = ?", string(filter.State))
	}
	if filter.CancelReasonID != nil {
		tx = tx.Where("cancel_reason_id = ?", filter.CancelReasonID.String())
	}

	var models []purchaseOrderModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, translate(err, "purchase orders")
	}

	orders := make([]*entities.PurchaseOrder, 0, len(models))
	for _, m := range models {
		order, err := m.toEntity()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// SaveOrder upserts the order row and replaces its lines in one transaction
func (s *PurchaseOrderStore) SaveOrder(ctx context.Context, order *entities.PurchaseOrder) error {
	m := newPurchaseOrderModel(order)
	lines := m.Lines
	m.Lines = nil

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "partner_id", "state", "date_order", "active", "cancel_reason_id", "updated_at",
			}),
		}).Create(&m).Error
		if err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", m.ID).Delete(&purchaseOrderLineModel{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
	return translate(err, "saving purchase order "+order.Name)
}

func (s *PurchaseOrderStore) NextName(ctx context.Context) (string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&purchaseOrderModel{}).
		Where("name LIKE ?", orderNamePrefix+"%").
		Pluck("name", &names).Error
	if err != nil {
		return "", translate(err, "order sequence")
	}

	highest := 0
	for _, name := range names {
		n, err := strconv.Atoi(strings.TrimPrefix(name, orderNamePrefix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%05d", orderNamePrefix, highest+1), nil
}
