package calculator

import (
	"fmt"
	"math"
	"sort"

	"tradescore/internal/domain"
)

const neutralCriterionScore = 50.0

// ScoreTrade evaluates every rubric metric against the feature bag and
// aggregates the weighted composite. The only hard failure is a rubric
// whose weights reference a criterion that does not exist; missing data
// degrades to neutral scores instead.
func ScoreTrade(features domain.Features, rubric *domain.StrategyRubric) (*domain.AggregatedScore, error) {
	weightNames := make([]string, 0, len(rubric.Weights))
	for name := range rubric.Weights {
		weightNames = append(weightNames, name)
	}
	sort.Strings(weightNames)
	for _, name := range weightNames {
		if _, ok := rubric.Criteria[name]; !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrWeightCriterionMismatch, name)
		}
	}

	criterionNames := make([]string, 0, len(rubric.Criteria))
	for name := range rubric.Criteria {
		criterionNames = append(criterionNames, name)
	}
	sort.Strings(criterionNames)

	criteria := make([]domain.CriterionScore, 0, len(criterionNames))
	reasons := []string{}
	for _, criterion := range criterionNames {
		cs := scoreCriterion(criterion, rubric.Weights[criterion], rubric.Criteria[criterion], features)
		criteria = append(criteria, cs)
		for _, ms := range cs.Metrics {
			reasons = append(reasons, ms.Reason)
		}
	}

	composite := compositeOf(criteria)

	penalties := []domain.PenaltyApplication{}
	for _, rule := range rubric.Aggregation.Penalties {
		if !rule.Matches(features) {
			continue
		}
		composite -= rule.Minus
		penalties = append(penalties, domain.PenaltyApplication{
			Expression: rule.Expression,
			Minus:      rule.Minus,
		})
		reasons = append(reasons, fmt.Sprintf("penalty: %s (-%v)", rule.Expression, rule.Minus))
	}

	caps := rubric.Aggregation.Caps
	if caps == (domain.ScoreCaps{}) {
		caps = domain.DefaultScoreCaps
	}
	if composite < caps.Min {
		composite = caps.Min
	}
	if composite > caps.Max {
		composite = caps.Max
	}

	violations := []string{}
	for _, name := range rubric.RequiredFeatures {
		if !features.Has(name) {
			violations = append(violations, fmt.Sprintf("required feature missing: %s", name))
		}
	}

	return &domain.AggregatedScore{
		Composite:  round2(composite),
		Criteria:   criteria,
		Penalties:  penalties,
		Violations: violations,
		Reasons:    reasons,
	}, nil
}

func scoreCriterion(criterion string, weight float64, metrics map[string]domain.MetricConfig, features domain.Features) domain.CriterionScore {
	metricNames := make([]string, 0, len(metrics))
	for name := range metrics {
		metricNames = append(metricNames, name)
	}
	sort.Strings(metricNames)

	cs := domain.CriterionScore{
		Criterion: criterion,
		Weight:    weight,
		Metrics:   make([]domain.MetricScore, 0, len(metricNames)),
	}

	sum, available := 0.0, 0
	for _, name := range metricNames {
		ms := scoreMetric(criterion, name, metrics[name], features)
		cs.Metrics = append(cs.Metrics, ms)
		if ms.Score != nil {
			sum += *ms.Score
			available++
		}
	}

	// a criterion with no available data scores neutral, never zero,
	// so missing inputs cannot tank the composite
	if available == 0 {
		cs.Score = neutralCriterionScore
		cs.Neutral = true
		return cs
	}

	cs.Score = round2(sum / float64(available))
	return cs
}

func scoreMetric(criterion, name string, cfg domain.MetricConfig, features domain.Features) domain.MetricScore {
	ms := domain.MetricScore{Criterion: criterion, Metric: name}

	raw, present := features[name]
	if !present || raw == nil {
		ms.Reason = fmt.Sprintf("%s: missing", name)
		return ms
	}
	ms.RawValue = raw

	var score float64
	switch cfg.Kind {
	case domain.MetricKindStepTable:
		value, ok := domain.CoerceNumber(raw)
		if !ok {
			ms.Reason = fmt.Sprintf("%s: missing", name)
			return ms
		}
		score = stepScore(cfg, value)
	case domain.MetricKindCategoryMap:
		key, ok := domain.CategoryKey(raw)
		if !ok {
			ms.Reason = fmt.Sprintf("%s: missing", name)
			return ms
		}
		score = categoryScore(cfg, key)
	default:
		ms.Reason = fmt.Sprintf("%s: missing", name)
		return ms
	}

	ms.Score = &score
	ms.Passed = score >= domain.PassingScore
	ms.Reason = fmt.Sprintf("%s: %v → %v", name, raw, score)
	return ms
}

// stepScore walks the sorted thresholds. Increasing tables return the
// score of the last threshold the value crossed; decreasing tables return
// the first threshold the value sits at or below. Values outside the
// table clamp to the nearest endpoint.
func stepScore(cfg domain.MetricConfig, value float64) float64 {
	steps := cfg.Steps
	if len(steps) == 0 {
		return 0
	}

	if cfg.Increasing {
		score := steps[0].Score
		for _, s := range steps {
			if value >= s.Threshold {
				score = s.Score
			}
		}
		return score
	}

	for _, s := range steps {
		if value <= s.Threshold {
			return s.Score
		}
	}
	return steps[len(steps)-1].Score
}

func categoryScore(cfg domain.MetricConfig, key string) float64 {
	v, ok := cfg.Categories[key]
	if !ok {
		// unmatched category values score zero even in signed maps
		return 0
	}
	if cfg.SignedOffsets {
		return 100 + v
	}
	return v
}

// compositeOf normalizes each criterion's weight by the sum of declared
// weights. When every weight is zero the criteria average evenly.
func compositeOf(criteria []domain.CriterionScore) float64 {
	totalWeight := 0.0
	for _, c := range criteria {
		totalWeight += c.Weight
	}

	if totalWeight == 0 {
		if len(criteria) == 0 {
			return 0
		}
		sum := 0.0
		for _, c := range criteria {
			sum += c.Score
		}
		return sum / float64(len(criteria))
	}

	composite := 0.0
	for _, c := range criteria {
		composite += c.Score * (c.Weight / totalWeight)
	}
	return composite
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
