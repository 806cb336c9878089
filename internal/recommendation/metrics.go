package recommendation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricRankingsTotal      = "job_matcher_rankings_total"
	MetricRankingDuration    = "job_matcher_ranking_duration_seconds"
	MetricPairsScoredTotal   = "job_matcher_pairs_scored_total"
	MetricPostingEventsTotal = "job_matcher_posting_events_total"
)

// Ranking directions used as label values.
const (
	DirectionPostingsForCandidate = "postings_for_candidate"
	DirectionCandidatesForPosting = "candidates_for_posting"
)

// Ranking outcomes used as label values.
const (
	OutcomeOK                  = "ok"
	OutcomeNotFound            = "not_found"
	OutcomeUpstreamUnavailable = "upstream_unavailable"
	OutcomeCanceled            = "canceled"
)

// Metrics contains Prometheus collectors for ranking requests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	rankings      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	pairsScored   *prometheus.CounterVec
	postingEvents *prometheus.CounterVec
}

// NewMetrics creates the collectors without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		rankings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRankingsTotal,
				Help: "Total ranking requests by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRankingDuration,
				Help:    "Ranking request duration in seconds, fetches included",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"direction"},
		),
		pairsScored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPairsScoredTotal,
				Help: "Total candidate/posting pairs scored",
			},
			[]string{"direction"},
		),
		postingEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPostingEventsTotal,
				Help: "Posting change notifications received by action",
			},
			[]string{"action"},
		),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.rankings,
		m.duration,
		m.pairsScored,
		m.postingEvents,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) recordRanking(direction, outcome string, elapsed time.Duration, pairs int) {
	if m == nil {
		return
	}
	m.rankings.WithLabelValues(direction, outcome).Inc()
	m.duration.WithLabelValues(direction).Observe(elapsed.Seconds())
	if pairs > 0 {
		m.pairsScored.WithLabelValues(direction).Add(float64(pairs))
	}
}

func (m *Metrics) recordPostingEvent(action string) {
	if m == nil {
		return
	}
	m.postingEvents.WithLabelValues(action).Inc()
}
