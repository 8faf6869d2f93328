package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec
	DBTransactions  *prometheus.CounterVec

	SlotQueriesTotal *prometheus.CounterVec
	SlotsReturned    *prometheus.HistogramVec
}

// New создает и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		DBTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transactions_total",
			Help:        "Total number of database transactions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		SlotQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_queries_total",
			Help:        "Total number of day availability computations",
			ConstLabels: constLabels,
		}, []string{"result"}),
		SlotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "slots_returned",
			Help:        "Number of slots returned per day availability computation",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}, []string{"weekday"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBConnections,
		m.DBTransactions,
		m.SlotQueriesTotal,
		m.SlotsReturned,
	)

	return m
}

// ObserveSlotQuery фиксирует результат расчёта слотов
// Безопасен для nil (метрики выключены)
func (m *Metrics) ObserveSlotQuery(result string, weekday string, slots int) {
	if m == nil {
		return
	}
	m.SlotQueriesTotal.WithLabelValues(result).Inc()
	if result == "ok" {
		m.SlotsReturned.WithLabelValues(weekday).Observe(float64(slots))
	}
}
