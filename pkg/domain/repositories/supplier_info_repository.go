package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

// SupplierInfoRepository provides access to vendor offers
type SupplierInfoRepository interface {
	GetSupplierInfo(ctx context.Context, id uuid.UUID) (*entities.SupplierInfo, error)
	ListByProduct(ctx context.Context, partNumber entities.PartNumber) ([]*entities.SupplierInfo, error)
	ListSupplierInfos(ctx context.Context) ([]*entities.SupplierInfo, error)
	SaveSupplierInfo(ctx context.Context, info *entities.SupplierInfo) error
	DeleteSupplierInfo(ctx context.Context, id uuid.UUID) error
}
