package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the code and ballot lifecycle. All methods are safe on a
// nil receiver so services can run without metrics in tests.
type Metrics struct {
	CodesIssued         prometheus.Counter
	CodesRejected       *prometheus.CounterVec
	DeliveryFailures    prometheus.Counter
	VotesCast           prometheus.Counter
	VotesRejected       *prometheus.CounterVec
	InvariantViolations *prometheus.CounterVec
	CastDuration        prometheus.Histogram
	CodesSwept          prometheus.Counter
	CandidatesRepaired  prometheus.Counter
}

// New registers the metrics with reg. Pass prometheus.DefaultRegisterer to
// expose them on /metrics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CodesIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "votecast_codes_issued_total",
			Help: "One-time codes issued and handed to delivery",
		}),
		CodesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "votecast_codes_rejected_total",
			Help: "Code verifications that failed, by reason",
		}, []string{"reason"}),
		DeliveryFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "votecast_code_delivery_failures_total",
			Help: "Codes withdrawn because delivery failed",
		}),
		VotesCast: f.NewCounter(prometheus.CounterOpts{
			Name: "votecast_votes_cast_total",
			Help: "Ballots committed",
		}),
		VotesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "votecast_votes_rejected_total",
			Help: "Cast attempts rejected, by error code",
		}, []string{"code"}),
		InvariantViolations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "votecast_invariant_violations_total",
			Help: "Detected divergence between authoritative and derived state",
		}, []string{"kind"}),
		CastDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "votecast_cast_duration_seconds",
			Help:    "End-to-end CastVote latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		CodesSwept: f.NewCounter(prometheus.CounterOpts{
			Name: "votecast_codes_swept_total",
			Help: "Expired codes removed by the sweeper",
		}),
		CandidatesRepaired: f.NewCounter(prometheus.CounterOpts{
			Name: "votecast_candidate_counters_repaired_total",
			Help: "Candidate vote counters overwritten by reconciliation",
		}),
	}
}

func (m *Metrics) IncCodesIssued() {
	if m != nil {
		m.CodesIssued.Inc()
	}
}

func (m *Metrics) IncCodeRejected(reason string) {
	if m != nil {
		m.CodesRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncDeliveryFailure() {
	if m != nil {
		m.DeliveryFailures.Inc()
	}
}

func (m *Metrics) ObserveVoteCast(d time.Duration) {
	if m != nil {
		m.VotesCast.Inc()
		m.CastDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) IncVoteRejected(code string) {
	if m != nil {
		m.VotesRejected.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) IncInvariantViolation(kind string) {
	if m != nil {
		m.InvariantViolations.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) AddCodesSwept(n int) {
	if m != nil && n > 0 {
		m.CodesSwept.Add(float64(n))
	}
}

func (m *Metrics) AddCandidatesRepaired(n int) {
	if m != nil && n > 0 {
		m.CandidatesRepaired.Add(float64(n))
	}
}
