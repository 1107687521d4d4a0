// Package rest exposes the purchasing services over HTTP
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vsinha/purchasing/pkg/application/services"
	"github.com/vsinha/purchasing/pkg/config"
	"github.com/vsinha/purchasing/pkg/log"
	"github.com/vsinha/purchasing/pkg/metrics"
)

const gracefulShutdownTimeout = 5 * time.Second

// Services groups the application services served by the API
type Services struct {
	SupplierInfos  *services.SupplierInfoService
	PurchaseOrders *services.PurchaseOrderService
	CancelReasons  *services.CancelReasonService
}

type Server struct {
	cfg      *config.Config
	svc      Services
	log      *zap.Logger
	validate *validator.Validate
	metrics  *metrics.Middleware
}

// New returns a new instance of the purchasing API server
func New(cfg *config.Config, svc Services, log *zap.Logger, mw *metrics.Middleware) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		svc:      svc,
		log:      log.Named("api_server"),
		validate: newValidator(),
		metrics:  mw,
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	if s.metrics != nil {
		router.Use(s.metrics.Handler)
	}
	router.Use(chiMiddleware.RequestID)
	if s.cfg.Service.RequestLogging {
		router.Use(log.Logger(s.log, "router"))
	}
	router.Use(chiMiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route("/supplier-infos", func(r chi.Router) {
			r.Get("/", s.listSupplierInfos)
			r.Post("/", s.createSupplierInfo)
			r.Get("/{id}", s.getSupplierInfo)
			r.Patch("/{id}", s.updateSupplierInfoDelays)
			r.Delete("/{id}", s.deleteSupplierInfo)
		})

		r.Route("/cancel-reasons", func(r chi.Router) {
			r.Get("/", s.listCancelReasons)
			r.Post("/", s.createCancelReason)
			r.Put("/{id}", s.renameCancelReason)
			r.Delete("/{id}", s.deleteCancelReason)
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", s.listOrders)
			r.Post("/", s.createOrder)
			r.Post("/cancel-wizard", s.openCancelWizard)
			r.Post("/cancel-wizard/confirm", s.confirmCancel)
			r.Post("/toggle-active", s.toggleActive)
			r.Get("/{id}", s.getOrder)
			r.Post("/{id}/state", s.setOrderState)
			r.Put("/{id}/cancel-reason", s.setCancelReason)
		})
	})

	return router
}

// Run serves the API on listener until ctx is cancelled
func (s *Server) Run(ctx context.Context, listener net.Listener) error {
	srv := http.Server{Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.log.Info("shutdown signal received", zap.Error(ctx.Err()))
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		s.log.Info("api server terminated")
	}()

	s.log.Info("listening", zap.String("address", listener.Addr().String()))
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	resp := toErrorResponse(err)
	if resp.HTTPStatus >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	_ = render.Render(w, r, resp)
}
