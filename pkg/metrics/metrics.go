package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge

	UpstreamRequestDuration *prometheus.HistogramVec

	GridBuildsTotal   *prometheus.CounterVec
	SubmissionsTotal  *prometheus.CounterVec
	SlotRequestsTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections.",
			ConstLabels: labels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: labels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections.",
			ConstLabels: labels,
		}),

		UpstreamRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_api_request_duration_seconds",
			Help:        "Latency of calls to the availability API.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation", "result"}),

		GridBuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_grid_builds_total",
			Help:        "Slot grid builds by result.",
			ConstLabels: labels,
		}, []string{"result"}),

		SubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_submissions_total",
			Help:        "Batch slot submissions by mode and result.",
			ConstLabels: labels,
		}, []string{"mode", "result"}),

		SlotRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_requests_total",
			Help:        "Individual slot requests issued during submissions.",
			ConstLabels: labels,
		}, []string{"mode", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.UpstreamRequestDuration,
		m.GridBuildsTotal,
		m.SubmissionsTotal,
		m.SlotRequestsTotal,
	)

	return m
}

// ObserveUpstream фиксирует длительность вызова внешнего API
func (m *Metrics) ObserveUpstream(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.UpstreamRequestDuration.WithLabelValues(operation, resultLabel(err)).Observe(time.Since(started).Seconds())
}

// IncGridBuild увеличивает счетчик построений сетки
func (m *Metrics) IncGridBuild(err error) {
	if m == nil {
		return
	}
	m.GridBuildsTotal.WithLabelValues(resultLabel(err)).Inc()
}

// IncSubmission увеличивает счетчик пакетных отправок
func (m *Metrics) IncSubmission(mode string, err error) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(mode, resultLabel(err)).Inc()
}

// IncSlotRequest увеличивает счетчик отдельных запросов на слот
func (m *Metrics) IncSlotRequest(mode string, err error) {
	if m == nil {
		return
	}
	m.SlotRequestsTotal.WithLabelValues(mode, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
