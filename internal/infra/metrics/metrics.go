package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kit_inventory"

type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	Reconciliations *prometheus.CounterVec
	StockClamped    *prometheus.CounterVec
	LowStockItems   prometheus.Gauge
	LowStockAlerts  *prometheus.CounterVec
}

// New регистрирует коллекторы в reg. Тесты передают свежий prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Stock reconciliation batches by result.",
		}, []string{"result"}),
		StockClamped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_clamped_units_total",
			Help:      "Units dropped when a deduction hit the zero floor.",
		}, []string{"item"}),
		LowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_items",
			Help:      "Items at or below their danger level at the last check.",
		}),
		LowStockAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "low_stock_alerts_total",
			Help:      "Low-stock notifications by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Reconciliations, m.StockClamped, m.LowStockItems, m.LowStockAlerts)
	return m
}
