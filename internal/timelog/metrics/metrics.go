package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the time log domain.
type Metrics struct {
	LogsCreated     prometheus.Counter
	LogsUpdated     prometheus.Counter
	LogsDeleted     prometheus.Counter
	SummaryDuration prometheus.Histogram
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
}

// New creates and registers all time log metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		LogsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worklog_time_logs_created_total",
			Help: "Total number of time log entries created",
		}),
		LogsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worklog_time_logs_updated_total",
			Help: "Total number of time log entries updated",
		}),
		LogsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worklog_time_logs_deleted_total",
			Help: "Total number of time log entries deleted",
		}),
		SummaryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worklog_summary_duration_seconds",
			Help:    "Latency of summary and statistics computations",
			Buckets: prometheus.DefBuckets,
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worklog_summary_cache_hits_total",
			Help: "Summary cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worklog_summary_cache_misses_total",
			Help: "Summary cache misses",
		}),
	}
}
