package shopify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики исходящих запросов к Shopify. Регистрируются в глобальном
// реестре prometheus и отдаются через /metrics.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopify_requests_total",
		Help: "Количество исходящих запросов к Shopify Admin API.",
	}, []string{"api", "method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopify_request_duration_seconds",
		Help:    "Длительность исходящих запросов к Shopify Admin API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"api", "method"})
)
