// file: metrics/metrics.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	VotesCast = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "battle_votes_cast_total", Help: "Total battle votes cast (inserts and resubmissions)"},
	)
	ProofsUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "proof_uploads_total", Help: "Total proof videos accepted"},
	)
	ProofsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "proof_uploads_rejected_total", Help: "Total proof uploads rejected by validation or dedup"},
	)
	ModerationDecisions = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "proof_moderation_decisions_total", Help: "Total moderation approve/reject decisions"},
	)
)

func Register() {
	prometheus.MustRegister(VotesCast, ProofsUploaded, ProofsRejected, ModerationDecisions)
}
