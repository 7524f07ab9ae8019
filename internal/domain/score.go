package domain

// PassingScore is the per-metric threshold for the Passed flag.
const PassingScore = 70.0

// MetricScore is one metric's contribution. Score is nil when the feature
// was absent from the input; Reason is always populated for explainability.
type MetricScore struct {
	Criterion string
	Metric    string
	RawValue  interface{}
	Score     *float64
	Passed    bool
	Reason    string
}

// CriterionScore averages the criterion's available metric scores.
// Neutral marks the deliberate 50-point default applied when every metric
// under the criterion was missing.
type CriterionScore struct {
	Criterion string
	Weight    float64
	Score     float64
	Neutral   bool
	Metrics   []MetricScore
}

type PenaltyApplication struct {
	Expression string
	Minus      float64
}

// AggregatedScore is the full output tree for one evaluation: the clamped
// composite plus everything needed to explain it.
type AggregatedScore struct {
	Composite  float64
	Criteria   []CriterionScore
	Penalties  []PenaltyApplication
	Violations []string
	Reasons    []string
}

// Availability is the fraction of rubric metrics that produced a score.
func (a AggregatedScore) Availability() float64 {
	total, present := 0, 0
	for _, c := range a.Criteria {
		for _, m := range c.Metrics {
			total++
			if m.Score != nil {
				present++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(present) / float64(total)
}

type ConfidenceTier string

const (
	ConfidenceLow    ConfidenceTier = "low"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceHigh   ConfidenceTier = "high"
)

// ConfidenceFor buckets an aggregate into a coarse trust tier. Any
// required-feature violation forces low; otherwise the tier tracks how
// much of the rubric had data to work with.
func ConfidenceFor(agg AggregatedScore) ConfidenceTier {
	if len(agg.Violations) > 0 {
		return ConfidenceLow
	}
	availability := agg.Availability()
	switch {
	case availability >= 0.75:
		return ConfidenceHigh
	case availability >= 0.4:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

type CalibrationResult struct {
	Version     string
	Probability float64
}

// ScorePayload is the durable record for one evaluation, keyed by
// (fingerprint, rubric version, calibration version). Created once per
// unique triple and never updated in place.
type ScorePayload struct {
	Fingerprint           string
	RubricVersion         string
	CalibrationVersion    string
	RawScore              float64
	CalibratedProbability float64
	Reasons               []string
	Violations            []string
	Confidence            ConfidenceTier
	PolicyID              string
}
