package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusfind",
			Name:      "match_requests_total",
			Help:      "Total number of match requests",
		},
		[]string{"profile", "status"},
	)

	MatchCandidatesScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusfind",
			Name:      "match_candidates_scored_total",
			Help:      "Total number of candidates scored",
		},
		[]string{"profile"},
	)

	MatchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campusfind",
			Name:      "match_results_returned",
			Help:      "Number of ranked results returned per match request",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 10, 20},
		},
		[]string{"profile"},
	)

	MatchTopScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campusfind",
			Name:      "match_top_score",
			Help:      "Overall score of the best returned candidate",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
		[]string{"profile"},
	)

	MatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campusfind",
			Name:      "match_duration_seconds",
			Help:      "Match request duration including candidate loading",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"profile"},
	)

	ItemsReportedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusfind",
			Name:      "items_reported_total",
			Help:      "Total number of reports stored",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		MatchRequestsTotal,
		MatchCandidatesScored,
		MatchResultsReturned,
		MatchTopScore,
		MatchDuration,
		ItemsReportedTotal,
	)
}
