// Package metrics provides Prometheus metrics for the discovery service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discovery"

var (
	// QueriesTotal counts discovery queries by vertical, sort and outcome.
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of discovery queries",
		},
		[]string{"entity_type", "sort", "status"},
	)

	// QueryDuration measures discovery query duration.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of discovery queries in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"entity_type"},
	)

	// CandidateSetSize observes how many candidates survived filtering.
	CandidateSetSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "candidate_set_size",
			Help:      "Distribution of ranked candidate set sizes",
			Buckets:   []float64{0, 1, 10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"entity_type"},
	)

	// SnapshotLookups counts ranked snapshot cache hits and misses.
	SnapshotLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_lookups_total",
			Help:      "Ranked snapshot cache lookups",
		},
		[]string{"result"},
	)

	// SwipesTotal counts swipe decisions by direction and outcome.
	SwipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swipes_total",
			Help:      "Total number of swipe decisions",
		},
		[]string{"direction", "outcome"},
	)

	// MatchesTotal counts match resolutions; "created" inserted the row,
	// "race_resolved" lost the insert to a concurrent writer.
	MatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Mutual likes resolved into a match",
		},
		[]string{"result"},
	)

	// QueueDelivered observes how many candidates a queue refill delivered.
	QueueDelivered = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "queue_delivered",
			Help:      "Candidates delivered per swipe queue refill",
			Buckets:   []float64{0, 1, 5, 10, 20, 50},
		},
	)

	// RPCTotal counts gRPC calls by method and status code.
	RPCTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_total",
			Help:      "Total number of gRPC calls",
		},
		[]string{"method", "code"},
	)

	// RPCDuration measures gRPC call duration.
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Duration of gRPC calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// RecordQuery records a discovery query.
func RecordQuery(entityType, sort, status string, duration float64) {
	QueriesTotal.WithLabelValues(entityType, sort, status).Inc()
	QueryDuration.WithLabelValues(entityType).Observe(duration)
}

// RecordCandidateSet records the size of a ranked set.
func RecordCandidateSet(entityType string, n int) {
	CandidateSetSize.WithLabelValues(entityType).Observe(float64(n))
}

// RecordSnapshot records a snapshot cache lookup.
func RecordSnapshot(hit bool) {
	if hit {
		SnapshotLookups.WithLabelValues("hit").Inc()
		return
	}
	SnapshotLookups.WithLabelValues("miss").Inc()
}

// RecordSwipe records a swipe decision outcome.
func RecordSwipe(direction, outcome string) {
	SwipesTotal.WithLabelValues(direction, outcome).Inc()
}

// RecordMatch records a match resolution.
func RecordMatch(created bool) {
	if created {
		MatchesTotal.WithLabelValues("created").Inc()
		return
	}
	MatchesTotal.WithLabelValues("race_resolved").Inc()
}

// RecordRPC records a finished gRPC call.
func RecordRPC(method, code string, duration float64) {
	RPCTotal.WithLabelValues(method, code).Inc()
	RPCDuration.WithLabelValues(method).Observe(duration)
}
