package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festival_verdicts_total",
			Help: "Total number of dietary verdicts computed",
		},
		[]string{"subject", "outcome"},
	)

	ExclusionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festival_exclusions_total",
			Help: "Total number of exclusion reasons emitted",
		},
		[]string{"subject", "reason"},
	)

	ProfileStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festival_profile_store_errors_total",
			Help: "Total number of failed profile repository operations",
		},
		[]string{"operation"},
	)

	IngestedDrafts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "festival_ingested_drafts_total",
			Help: "Total number of menu drafts synthesized from uploads",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "festival_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

const (
	SubjectItem  = "item"
	SubjectBooth = "booth"
)

// ObserveVerdict records one verdict and each of its exclusion reasons.
func ObserveVerdict(subject string, allowed bool, reasons []string) {
	outcome := "allowed"
	if !allowed {
		outcome = "excluded"
	}
	VerdictsTotal.WithLabelValues(subject, outcome).Inc()
	for _, r := range reasons {
		ExclusionsTotal.WithLabelValues(subject, r).Inc()
	}
}
