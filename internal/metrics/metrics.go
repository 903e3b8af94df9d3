package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SchedulesGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gpy", Name: "schedules_generated_total", Help: "Tracking schedules generated",
	})
	CheckpointsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gpy", Name: "checkpoints_completed_total", Help: "Checkpoints completed by a photo upload",
	})
	ExtraPhotos = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gpy", Name: "extra_photos_total", Help: "Photos uploaded with no pending checkpoint left",
	})
	CheckpointsOverdue = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gpy", Name: "checkpoints_overdue_total", Help: "Checkpoints moved to overdue by sweeps",
	})
	HTTPRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gpy", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(SchedulesGenerated, CheckpointsCompleted, ExtraPhotos, CheckpointsOverdue, HTTPRequests)
}

func Handler() http.Handler { return promhttp.Handler() }
