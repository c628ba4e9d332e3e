// Package metrics expone los contadores Prometheus de la aplicación. El endpoint
// /metrics se sirve en un listener propio, separado del API.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "cotizador_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	cotizacionesCreated *prometheus.CounterVec
	totalsMismatch      prometheus.Counter
	busquedas           *prometheus.CounterVec
)

// Init registra las métricas en el registry por defecto. Idempotente.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total de peticiones HTTP por método, ruta y código",
			},
			[]string{"method", "path", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "Latencia de peticiones HTTP",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		)
		cotizacionesCreated = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cotizaciones_created_total",
				Help: "Cotizaciones creadas por rol del actor",
			},
			[]string{"rol"},
		)
		totalsMismatch = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "totals_mismatch_total",
				Help: "Payloads rechazados porque los totales no coinciden con las líneas",
			},
		)
		busquedas = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "busquedas_total",
				Help: "Búsquedas ejecutadas por tipo",
			},
			[]string{"tipo"},
		)

		prometheus.MustRegister(
			httpRequests, httpLatency,
			cotizacionesCreated, totalsMismatch, busquedas,
		)
	})
}

// ObserveHTTP registra una petición atendida.
func ObserveHTTP(method, path, status string, dur time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpLatency.WithLabelValues(method, path).Observe(dur.Seconds())
}

// CotizacionCreated registra una cotización creada.
func CotizacionCreated(rol string) {
	if cotizacionesCreated != nil {
		cotizacionesCreated.WithLabelValues(rol).Inc()
	}
}

// TotalsMismatch registra un payload rechazado por totales inconsistentes.
func TotalsMismatch() {
	if totalsMismatch != nil {
		totalsMismatch.Inc()
	}
}

// Busqueda registra una búsqueda por tipo ("productos" o "usuarios").
func Busqueda(tipo string) {
	if busquedas != nil {
		busquedas.WithLabelValues(tipo).Inc()
	}
}

// Serve levanta el endpoint /metrics en su propia dirección. Bloquea; correr en
// goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
