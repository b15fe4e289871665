package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/metrics"
)

var _ billing.InvoiceMetrics = (*metrics.Recorder)(nil)

func TestRecorder_Contadores(t *testing.T) {
	r := metrics.NewRecorder()
	r.InvoiceCreated()
	r.InvoiceCreated()
	r.InvoiceUpdated()
	r.InvoiceDeleted()

	expected := `
# HELP facturador_invoices_created_total Facturas creadas (cada una consume un número).
# TYPE facturador_invoices_created_total counter
facturador_invoices_created_total 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "facturador_invoices_created_total"))
	n, err := testutil.GatherAndCount(r.Registry(), "facturador_invoices_updated_total", "facturador_invoices_deleted_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder()
	r.ObserveHTTP(http.MethodPost, "/api/invoices", http.StatusCreated, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `facturador_http_request_duration_seconds_count{method="POST",route="/api/invoices",status_code="201"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
