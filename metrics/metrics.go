package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation sources
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Submission outcomes
const (
	OutcomeSaved        = "saved"
	OutcomeInvalid      = "invalid"
	OutcomeUnsupported  = "unsupported_mood"
	OutcomeStorageError = "storage_error"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindwell_submissions_total",
			Help: "Total number of check-in submissions by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindwell_recommendations_total",
			Help: "Total number of recommendations by the path that produced them",
		},
		[]string{"source"},
	)

	ProgressCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindwell_progress_cache_total",
			Help: "Progress cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)
)
