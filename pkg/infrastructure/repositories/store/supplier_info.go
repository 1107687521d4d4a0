package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

type SupplierInfoStore struct {
	db *gorm.DB
}

var _ repositories.SupplierInfoRepository = (*SupplierInfoStore)(nil)

func (s *SupplierInfoStore) GetSupplierInfo(ctx context.Context, id uuid.UUID) (*entities.SupplierInfo, error) {
	var m supplierInfoModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id.String()).Error; err != nil {
		return nil, translate(err, "supplier info "+id.String())
	}
	return m.toEntity()
}

func (s *SupplierInfoStore) ListByProduct(ctx context.Context, partNumber entities.PartNumber) ([]*entities.SupplierInfo, error) {
	var models []supplierInfoModel
	err := s.db.WithContext(ctx).
		Where("part_number = ?", string(partNumber)).
		Order("created_at, id").
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "supplier infos")
	}
	return toSupplierInfos(models)
}

func (s *SupplierInfoStore) ListSupplierInfos(ctx context.Context) ([]*entities.SupplierInfo, error) {
	var models []supplierInfoModel
	if err := s.db.WithContext(ctx).Order("part_number, created_at, id").Find(&models).Error; err != nil {
		return nil, translate(err, "supplier infos")
	}
	return toSupplierInfos(models)
}

func (s *SupplierInfoStore) SaveSupplierInfo(ctx context.Context, info *entities.SupplierInfo) error {
	m := newSupplierInfoModel(info)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"partner_id", "part_number", "min_qty", "price",
			"transport_delay", "supplier_delay", "delay", "updated_at",
		}),
	}).Create(&m).Error
	return translate(err, "saving supplier info")
}

func (s *SupplierInfoStore) DeleteSupplierInfo(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Delete(&supplierInfoModel{}, "id = ?", id.String())
	if tx.Error != nil {
		return translate(tx.Error, "deleting supplier info")
	}
	if tx.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "supplier info "+id.String())
	}
	return nil
}

func toSupplierInfos(models []supplierInfoModel) ([]*entities.SupplierInfo, error) {
	infos := make([]*entities.SupplierInfo, 0, len(models))
	for _, m := range models {
		info, err := m.toEntity()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
