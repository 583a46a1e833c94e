// Package observability owns the Prometheus collectors exported on /metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "activity",
		Name:      "workouts_recorded_total",
		Help:      "Number of workout sessions committed.",
	})

	exercisesRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "activity",
		Name:      "exercise_records_total",
		Help:      "Number of exercise records written as part of a workout.",
	})

	exercisesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "activity",
		Name:      "exercises_skipped_total",
		Help:      "Exercises dropped because their name is not in the catalog.",
	})

	recordFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "activity",
		Name:      "record_failures_total",
		Help:      "Workout recordings rolled back because of a storage error.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "code"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittrack",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route pattern and method.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"route", "method"})
)

func init() {
	prometheus.MustRegister(workoutsRecorded, exercisesRecorded, exercisesSkipped, recordFailures, httpRequests, httpDuration)
}

// RecordWorkout counts a committed workout together with its exercise outcome.
func RecordWorkout(recorded, skipped int) {
	workoutsRecorded.Inc()
	exercisesRecorded.Add(float64(recorded))
	exercisesSkipped.Add(float64(skipped))
}

// RecordWorkoutFailure counts a rolled back recording.
func RecordWorkoutFailure() {
	recordFailures.Inc()
}

// ObserveHTTPRequest records one served request. route should be the router
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(route, method string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
