package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/purchasing/pkg/application/services"
	"github.com/vsinha/purchasing/pkg/config"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
	"github.com/vsinha/purchasing/pkg/infrastructure/events"
	"github.com/vsinha/purchasing/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/purchasing/pkg/infrastructure/repositories/store"
)

// app holds the services wired for one command invocation
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	events *events.InMemoryEventStore

	supplierInfos  *services.SupplierInfoService
	purchaseOrders *services.PurchaseOrderService
	cancelReasons  *services.CancelReasonService

	closeFn func() error
}

// newApp opens the configured record store and builds the services on top
func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	var (
		infos   repositories.SupplierInfoRepository
		orders  repositories.PurchaseOrderRepository
		reasons repositories.CancelReasonRepository
		closeFn = func() error { return nil }
	)

	switch cfg.Database.Type {
	case config.DBTypeMemory:
		infos = memory.NewSupplierInfoRepository(0)
		orders = memory.NewPurchaseOrderRepository()
		reasons = memory.NewCancelReasonRepository()
	case config.DBTypeSQLite:
		db, err := store.InitDB(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("initializing data store: %w", err)
		}
		s := store.NewStore(db)
		if err := s.InitialMigration(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("running initial migration: %w", err)
		}
		infos, orders, reasons = s.SupplierInfo(), s.PurchaseOrder(), s.CancelReason()
		closeFn = s.Close
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Database.Type)
	}

	eventStore := events.NewInMemoryEventStore(log)
	// audit trail of every purchasing change at debug level
	audit := log.Named("audit")
	_ = eventStore.Subscribe(events.PurchasingEventTypes, &events.HandlerFunc{
		Types: events.PurchasingEventTypes,
		Fn: func(e events.Event) error {
			audit.Debug(e.Type(), zap.String("stream", e.StreamID()), zap.Any("data", e.Data()))
			return nil
		},
	})

	return &app{
		cfg:            cfg,
		log:            log,
		events:         eventStore,
		supplierInfos:  services.NewSupplierInfoService(infos, eventStore, log.Named("supplier_info")),
		purchaseOrders: services.NewPurchaseOrderService(orders, reasons, infos, eventStore, log.Named("purchase_order")),
		cancelReasons:  services.NewCancelReasonService(reasons, orders, log.Named("cancel_reason")),
		closeFn:        closeFn,
	}, nil
}

// Close waits for pending event handlers and releases the record store
func (a *app) Close() error {
	a.events.Wait()
	return a.closeFn()
}
