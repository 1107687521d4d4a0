package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/purchasing/pkg/application/dto"
	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
	"github.com/vsinha/purchasing/pkg/domain/services/leadtime"
	"github.com/vsinha/purchasing/pkg/infrastructure/events"
	"github.com/vsinha/purchasing/pkg/metrics"
)

// SupplierInfoService manages vendor offers and keeps their lead time consistent
type SupplierInfoService struct {
	repo   repositories.SupplierInfoRepository
	events events.Publisher
	log    *zap.Logger
}

// NewSupplierInfoService creates the service. pub and log may be nil.
func NewSupplierInfoService(
	repo repositories.SupplierInfoRepository,
	pub events.Publisher,
	log *zap.Logger,
) *SupplierInfoService {
	return &SupplierInfoService{repo: repo, events: pub, log: nopIfNil(log)}
}

// Create validates and stores a new vendor offer
func (s *SupplierInfoService) Create(ctx context.Context, req dto.CreateSupplierInfoRequest) (*entities.SupplierInfo, error) {
	info, err := entities.NewSupplierInfo(req.Values())
	if err != nil {
		s.rejected(err)
		return nil, err
	}
	if err := s.repo.SaveSupplierInfo(ctx, info); err != nil {
		return nil, err
	}

	s.log.Debug("supplier info created",
		zap.Stringer("id", info.ID),
		zap.String("partner", string(info.PartnerID)),
		zap.String("product", string(info.PartNumber)),
		zap.Int("delay", info.Delay),
	)
	publish(s.events, s.log, events.NewSupplierInfoCreatedEvent(*info))
	return info, nil
}

// Import stores a batch of already validated offers
func (s *SupplierInfoService) Import(ctx context.Context, infos []*entities.SupplierInfo) error {
	for _, info := range infos {
		if err := s.repo.SaveSupplierInfo(ctx, info); err != nil {
			return err
		}
		publish(s.events, s.log, events.NewSupplierInfoCreatedEvent(*info))
	}
	s.log.Info("supplier infos imported", zap.Int("count", len(infos)))
	return nil
}

func (s *SupplierInfoService) Get(ctx context.Context, id uuid.UUID) (*entities.SupplierInfo, error) {
	return s.repo.GetSupplierInfo(ctx, id)
}

func (s *SupplierInfoService) List(ctx context.Context) ([]*entities.SupplierInfo, error) {
	return s.repo.ListSupplierInfos(ctx)
}

func (s *SupplierInfoService) ListByProduct(ctx context.Context, partNumber entities.PartNumber) ([]*entities.SupplierInfo, error) {
	return s.repo.ListByProduct(ctx, partNumber)
}

// UpdateDelays writes the requested delay fields in a fixed order: transport,
// supplier, then the combined delay. Nothing is stored when any write fails.
func (s *SupplierInfoService) UpdateDelays(
	ctx context.Context,
	id uuid.UUID,
	req dto.UpdateDelaysRequest,
) (*entities.SupplierInfo, error) {
	info, err := s.repo.GetSupplierInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *info

	if req.TransportDelay != nil {
		if err := info.SetTransportDelay(*req.TransportDelay); err != nil {
			return nil, err
		}
	}
	if req.SupplierDelay != nil {
		if err := info.SetSupplierDelay(*req.SupplierDelay); err != nil {
			return nil, err
		}
	}
	if req.Delay != nil {
		if err := info.SetDelay(*req.Delay); err != nil {
			s.rejected(err)
			s.log.Info("lead time update rejected",
				zap.Stringer("id", id),
				zap.Int("delay", *req.Delay),
				zap.Int("transport_delay", info.TransportDelay),
			)
			return nil, err
		}
	}

	if err := s.repo.SaveSupplierInfo(ctx, info); err != nil {
		return nil, err
	}
	publish(s.events, s.log, events.NewSupplierInfoDelayChangedEvent(before, *info))
	return info, nil
}

func (s *SupplierInfoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSupplierInfo(ctx, id)
}

func (s *SupplierInfoService) rejected(err error) {
	if errors.Is(err, leadtime.ErrInvalidLeadTime) {
		metrics.IncreaseLeadTimeRejected()
	}
}
