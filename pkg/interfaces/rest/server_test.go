package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/purchasing/pkg/application/dto"
	"github.com/vsinha/purchasing/pkg/application/services"
	"github.com/vsinha/purchasing/pkg/config"
	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/services/cancellation"
	"github.com/vsinha/purchasing/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/purchasing/pkg/metrics"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zaptest.NewLogger(t)
	infos := memory.NewSupplierInfoRepository(0)
	orders := memory.NewPurchaseOrderRepository()
	reasons := memory.NewCancelReasonRepository()

	srv := New(config.NewDefault(), Services{
		SupplierInfos:  services.NewSupplierInfoService(infos, nil, log),
		PurchaseOrders: services.NewPurchaseOrderService(orders, reasons, infos, nil, log),
		CancelReasons:  services.NewCancelReasonService(reasons, orders, log),
	}, log, metrics.NewMiddleware())
	return srv.Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSupplierInfoEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/supplier-infos", map[string]any{
		"partner_id": "ACME", "part_number": "BOLT", "price": "10",
		"transport_delay": 5, "supplier_delay": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	info := decodeBody[entities.SupplierInfo](t, rec)
	assert.Equal(t, 10, info.Delay)

	rec = do(t, h, http.MethodPatch, "/api/v1/supplier-infos/"+info.ID.String(), map[string]any{"delay": 12})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	info = decodeBody[entities.SupplierInfo](t, rec)
	assert.Equal(t, 7, info.SupplierDelay)
	assert.Equal(t, 5, info.TransportDelay)

	rec = do(t, h, http.MethodPatch, "/api/v1/supplier-infos/"+info.ID.String(), map[string]any{"delay": 3})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, CodeValidation, errResp.Code)
	assert.Contains(t, errResp.Message, "transport delay")

	rec = do(t, h, http.MethodGet, "/api/v1/supplier-infos/"+info.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, decodeBody[entities.SupplierInfo](t, rec).Delay)

	rec = do(t, h, http.MethodGet, "/api/v1/supplier-infos?product=BOLT", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]entities.SupplierInfo](t, rec), 1)
}

func TestRequestValidation(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
		wantType string
	}{
		{
			name: "missing partner", method: http.MethodPost, path: "/api/v1/supplier-infos",
			body:     map[string]any{"part_number": "BOLT"},
			wantCode: http.StatusBadRequest, wantType: CodeValidation,
		},
		{
			name: "negative transport", method: http.MethodPost, path: "/api/v1/supplier-infos",
			body:     map[string]any{"partner_id": "ACME", "part_number": "BOLT", "transport_delay": -1},
			wantCode: http.StatusBadRequest, wantType: CodeValidation,
		},
		{
			name: "malformed id", method: http.MethodGet, path: "/api/v1/purchase-orders/not-a-uuid",
			wantCode: http.StatusBadRequest, wantType: CodeBadRequest,
		},
		{
			name: "unknown order", method: http.MethodGet, path: "/api/v1/purchase-orders/" + uuid.NewString(),
			wantCode: http.StatusNotFound, wantType: CodeNotFound,
		},
		{
			name: "empty selection", method: http.MethodPost, path: "/api/v1/purchase-orders/toggle-active",
			body:     map[string]any{"order_ids": []string{}},
			wantCode: http.StatusBadRequest, wantType: CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantType, decodeBody[ErrorResponse](t, rec).Code)
		})
	}
}

func TestOrderCancelAndArchive(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/cancel-reasons", map[string]any{"name": "Too expensive"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reason := decodeBody[entities.CancelReason](t, rec)

	rec = do(t, h, http.MethodPost, "/api/v1/cancel-reasons", map[string]any{"name": "too expensive"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/purchase-orders", map[string]any{"partner_id": "ACME"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decodeBody[dto.OrderView](t, rec)
	assert.Equal(t, "RFQ", order.StateLabel)

	// open orders cannot be archived
	rec = do(t, h, http.MethodPost, "/api/v1/purchase-orders/toggle-active", map[string]any{"order_ids": []uuid.UUID{order.ID}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeUserError, decodeBody[ErrorResponse](t, rec).Code)

	rec = do(t, h, http.MethodPost, "/api/v1/purchase-orders/cancel-wizard", map[string]any{"order_ids": []uuid.UUID{order.ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	action := decodeBody[cancellation.Action](t, rec)
	assert.Equal(t, cancellation.ActWindow, action.Type)
	assert.Equal(t, cancellation.WizardModel, action.ResModel)

	rec = do(t, h, http.MethodPost, "/api/v1/purchase-orders/cancel-wizard/confirm", map[string]any{
		"reason_id":    reason.ID,
		"active_model": cancellation.PurchaseOrderModel,
		"active_ids":   []uuid.UUID{order.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, cancellation.ActWindowClose, decodeBody[cancellation.Action](t, rec).Type)

	rec = do(t, h, http.MethodDelete, "/api/v1/cancel-reasons/"+reason.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/purchase-orders/toggle-active", map[string]any{"order_ids": []uuid.UUID{order.ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/purchase-orders/"+order.ID.String()+"/state", map[string]any{"state": "draft"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Message, "currently archived")

	rec = do(t, h, http.MethodGet, "/api/v1/purchase-orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]dto.OrderView](t, rec))

	rec = do(t, h, http.MethodGet, "/api/v1/purchase-orders?include_archived=true&state=cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]dto.OrderView](t, rec), 1)
}
