package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_cache_operations_total",
			Help: "Product cache operations",
		},
		[]string{"op"}, // hit|miss|upsert|delete|clear
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "product_cache_size",
			Help: "Number of products currently cached",
		},
	)
)

var (
	PageLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_page_loads_total",
			Help: "Page source loads by serving source and outcome",
		},
		[]string{"source", "outcome"}, // source: cache|remote; outcome: ok|error
	)
	RemoteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_remote_requests_total",
			Help: "Requests to the remote catalog API",
		},
		[]string{"op", "outcome"}, // op: page|by_id; outcome: ok|network|remote|not_found
	)
	NotifyEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_notify_events_total",
			Help: "Published catalog events",
		},
		[]string{"outcome"}, // ok|error
	)
)

var registerOnce sync.Once

// MustRegister — регистрация коллекторов; повторные вызовы безопасны.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(CacheOps, CacheSize, PageLoads, RemoteRequests, NotifyEvents)
	})
}
