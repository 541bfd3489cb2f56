package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TrackerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_requests_total",
			Help: "Total number of tracker requests",
		},
		[]string{"method", "path"},
	)

	TrackerRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_requests_in_flight",
			Help: "Number of tracker requests currently being processed",
		},
	)

	TrackerRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_request_duration_seconds",
			Help:    "Duration of tracker requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	UsersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_users_created_total",
			Help: "Total number of users created",
		},
	)

	UsersRegistered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_users_registered",
			Help: "Current number of users in the registry",
		},
	)

	ExercisesAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_exercises_appended_total",
			Help: "Total number of exercises appended to user logs",
		},
	)

	ExercisesInvalidFields = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_exercises_invalid_fields_total",
			Help: "Total number of appended exercises stored with a non-numeric duration or an invalid date",
		},
		[]string{"field"},
	)

	LogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_log_queries_total",
			Help: "Total number of log queries by applied filter",
		},
		[]string{"filter"},
	)

	LogQueryEntriesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_log_query_entries_returned",
			Help:    "Number of log entries returned per query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)
)
