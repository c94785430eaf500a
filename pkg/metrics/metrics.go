// Package metrics expone contadores Prometheus de la API (registro global vía promauto).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wholesetail_http_requests_total",
			Help: "Total de peticiones HTTP atendidas",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wholesetail_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	verificationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wholesetail_verification_transitions_total",
			Help: "Cambios de estado de verificación aplicados",
		},
		[]string{"status"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wholesetail_notifications_total",
			Help: "Notificaciones por email despachadas, por plantilla y resultado",
		},
		[]string{"template", "result"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wholesetail_uploads_total",
			Help: "Imágenes subidas al object storage",
		},
		[]string{"folder", "result"},
	)

	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wholesetail_login_attempts_total",
			Help: "Intentos de login por resultado",
		},
		[]string{"result"},
	)
)

// ObserveHTTP registra una petición HTTP terminada.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordVerification cuenta una transición de estado aplicada.
func RecordVerification(status string) {
	verificationTransitionsTotal.WithLabelValues(status).Inc()
}

// RecordNotification cuenta un envío de email ("sent" | "failed").
func RecordNotification(template, result string) {
	notificationsTotal.WithLabelValues(template, result).Inc()
}

// RecordUpload cuenta una subida de imagen ("ok" | "failed").
func RecordUpload(folder, result string) {
	uploadsTotal.WithLabelValues(folder, result).Inc()
}

// RecordLogin cuenta un intento de login.
func RecordLogin(result string) {
	loginAttemptsTotal.WithLabelValues(result).Inc()
}

// Handler devuelve el handler HTTP de /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
