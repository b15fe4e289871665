// Package metrics expone métricas Prometheus de negocio y de HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "facturador"

// Recorder agrupa las métricas del servicio sobre un registro propio.
type Recorder struct {
	registry *prometheus.Registry

	invoicesCreated prometheus.Counter
	invoicesUpdated prometheus.Counter
	invoicesDeleted prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// NewRecorder crea el registro con las métricas del proceso y de Go incluidas.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		invoicesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Facturas creadas (cada una consume un número).",
		}),
		invoicesUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_updated_total",
			Help:      "Facturas actualizadas.",
		}),
		invoicesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_deleted_total",
			Help:      "Facturas eliminadas.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las solicitudes HTTP en segundos.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status_code"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.invoicesCreated,
		r.invoicesUpdated,
		r.invoicesDeleted,
		r.requestDuration,
	)
	return r
}

func (r *Recorder) InvoiceCreated() { r.invoicesCreated.Inc() }
func (r *Recorder) InvoiceUpdated() { r.invoicesUpdated.Inc() }
func (r *Recorder) InvoiceDeleted() { r.invoicesDeleted.Inc() }

// ObserveHTTP registra la duración de una solicitud. route es la plantilla (/api/invoices/:id), no la ruta concreta.
func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler sirve el registro en formato de exposición de Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry devuelve el registro subyacente.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
