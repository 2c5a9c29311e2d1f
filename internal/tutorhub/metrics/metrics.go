// Package metrics содержит коллекторы Prometheus сервиса tutorhub.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Исходы операций аутентификации.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Результаты обращения к кэшу.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// HTTPRequests считает обработанные HTTP запросы.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tutorhub_http_requests_total",
		Help: "Total number of handled HTTP requests",
	},
	[]string{"method", "route", "status"},
)

// HTTPDuration - длительность обработки HTTP запросов.
var HTTPDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "tutorhub_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthOperations считает операции аутентификации по исходу.
var AuthOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tutorhub_auth_operations_total",
		Help: "Total number of authentication operations by outcome",
	},
	[]string{"operation", "outcome"},
)

// CacheLookups считает обращения к кэшу каталога.
var CacheLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tutorhub_cache_lookups_total",
		Help: "Total number of catalog cache lookups",
	},
	[]string{"key", "result"},
)

// CircuitState - текущее состояние circuit breaker (0 closed, 1 open, 2 half-open).
var CircuitState = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "tutorhub_circuit_breaker_state",
		Help: "Current circuit breaker state",
	},
	[]string{"name"},
)

// RegisterMetrics регистрирует коллекторы в реестре. Паникует при повторной регистрации.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(AuthOperations)
	reg.MustRegister(CacheLookups)
	reg.MustRegister(CircuitState)
}

// NewRegistry создает реестр с метриками процесса, Go рантайма и сервиса.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	RegisterMetrics(reg)
	return reg
}

// RecordHTTPRequest фиксирует завершенный HTTP запрос.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthOperation фиксирует исход операции аутентификации.
func RecordAuthOperation(operation, outcome string) {
	AuthOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordCacheLookup фиксирует обращение к кэшу.
func RecordCacheLookup(key, result string) {
	CacheLookups.WithLabelValues(key, result).Inc()
}

// SetCircuitState обновляет состояние circuit breaker.
func SetCircuitState(name string, state int) {
	CircuitState.WithLabelValues(name).Set(float64(state))
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
