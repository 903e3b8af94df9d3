package jobs

import "github.com/prometheus/client_golang/prometheus"

var (
	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gpy",
			Name:      "job_runs_total",
			Help:      "Background job runs, skipped runs excluded",
		},
		[]string{"job"},
	)

	jobErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gpy",
			Name:      "job_errors_total",
			Help:      "Background job failures",
		},
		[]string{"job"},
	)

	jobSkips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gpy",
			Name:      "job_skips_total",
			Help:      "Runs skipped because another replica held the lock",
		},
		[]string{"job"},
	)

	jobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gpy",
			Name:      "job_duration_seconds",
			Help:      "Background job duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"job"},
	)
)

func init() {
	prometheus.MustRegister(jobRuns, jobErrors, jobSkips, jobDuration)
}
