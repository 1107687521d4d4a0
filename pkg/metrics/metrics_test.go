package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(ordersCancelledMetric.WithLabelValues("Too expensive"))
	IncreaseOrdersCancelled("Too expensive")
	assert.Equal(t, before+1, testutil.ToFloat64(ordersCancelledMetric.WithLabelValues("Too expensive")))

	archived := testutil.ToFloat64(orderArchiveTogglesMetric.WithLabelValues("archive"))
	IncreaseArchiveToggles(true)
	assert.Equal(t, archived+1, testutil.ToFloat64(orderArchiveTogglesMetric.WithLabelValues("archive")))

	rejected := testutil.ToFloat64(leadTimeRejectedMetric)
	violations := testutil.ToFloat64(ruleViolationsMetric.WithLabelValues(RuleInvalidLeadTime))
	IncreaseLeadTimeRejected()
	assert.Equal(t, rejected+1, testutil.ToFloat64(leadTimeRejectedMetric))
	assert.Equal(t, violations+1, testutil.ToFloat64(ruleViolationsMetric.WithLabelValues(RuleInvalidLeadTime)))
}

func TestMiddleware(t *testing.T) {
	m := NewMiddleware()
	router := chi.NewRouter()
	router.Use(m.Handler)
	router.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/"+id, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("404", http.MethodGet, "/orders/{id}")))
	assert.Len(t, m.Collectors(), 2)
}
