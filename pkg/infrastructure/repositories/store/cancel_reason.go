package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

type CancelReasonStore struct {
	db *gorm.DB
}

var _ repositories.CancelReasonRepository = (*CancelReasonStore)(nil)

func (s *CancelReasonStore) GetReason(ctx context.Context, id uuid.UUID) (*entities.CancelReason, error) {
	var m cancelReasonModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id.String()).Error; err != nil {
		return nil, translate(err, "cancel reason "+id.String())
	}
	return &entities.CancelReason{ID: id, Name: m.Name}, nil
}

func (s *CancelReasonStore) ListReasons(ctx context.Context) ([]*entities.CancelReason, error) {
	var models []cancelReasonModel
	if err := s.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, translate(err, "cancel reasons")
	}
	reasons := make([]*entities.CancelReason, 0, len(models))
	for _, m := range models {
		id, err := uuid.Parse(m.ID)
		if err != nil {
			return nil, err
		}
		reasons = append(reasons, &entities.CancelReason{ID: id, Name: m.Name})
	}
	return reasons, nil
}

func (s *CancelReasonStore) SaveReason(ctx context.Context, reason *entities.CancelReason) error {
	var clashes int64
	err := s.db.WithContext(ctx).Model(&cancelReasonModel{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", reason.Name, reason.ID.String()).
		Count(&clashes).Error
	if err != nil {
		return translate(err, "saving cancel reason")
	}
	if clashes > 0 {
		return fmt.Errorf("duplicate cancel reason %q: %w", reason.Name, entities.ErrDuplicate)
	}

	m := cancelReasonModel{ID: reason.ID.String(), Name: reason.Name}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&m).Error
	return translate(err, "saving cancel reason")
}

func (s *CancelReasonStore) DeleteReason(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Delete(&cancelReasonModel{}, "id = ?", id.String())
	if tx.Error != nil {
		return translate(tx.Error, "deleting cancel reason")
	}
	if tx.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "cancel reason "+id.String())
	}
	return nil
}
