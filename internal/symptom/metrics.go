package symptom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DetectionsTotal counts mention decisions.
	// Labels: outcome (included, negated, past, contrast)
	DetectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "symptomrx",
			Subsystem: "symptom",
			Name:      "detections_total",
			Help:      "Symptom mentions by extraction outcome",
		},
		[]string{"outcome"},
	)

	// MentionsSkippedTotal counts matcher hits collapsed onto an already seen root.
	MentionsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "symptomrx",
			Subsystem: "symptom",
			Name:      "mentions_skipped_total",
			Help:      "Phrase matches sharing a root token with an earlier match",
		},
	)
)
