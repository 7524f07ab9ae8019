package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrWeightCriterionMismatch indicates a corrupt rubric: a weight entry
// references a criterion with no matching criteria block. This is the only
// rubric problem that propagates as a hard failure; everything else
// degrades to a warning.
var ErrWeightCriterionMismatch = errors.New("rubric weights reference unknown criterion")

const AggregationWeightedMean = "weighted_mean"

var DefaultScoreCaps = ScoreCaps{Min: 0, Max: 100}

type MetricKind int

const (
	MetricKindStepTable MetricKind = iota
	MetricKindCategoryMap
)

type Step struct {
	Threshold float64
	Score     float64
}

// MetricConfig is a tagged union: a monotonic step table over a numeric
// feature, or a categorical score map. Shape is classified once at rubric
// load so scoring can dispatch on Kind without re-inspecting JSON.
type MetricConfig struct {
	Kind MetricKind

	// step table form, sorted by threshold ascending at load time.
	// Increasing is inferred from the endpoint scores, not declared order.
	Steps      []Step
	Increasing bool

	// category map form. SignedOffsets is set when any mapped score is
	// negative; every score in the map is then an offset from 100.
	Categories    map[string]float64
	SignedOffsets bool
}

func (m MetricConfig) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case MetricKindStepTable:
		pairs := make([][2]float64, 0, len(m.Steps))
		for _, s := range m.Steps {
			pairs = append(pairs, [2]float64{s.Threshold, s.Score})
		}
		return json.Marshal(pairs)
	case MetricKindCategoryMap:
		return json.Marshal(m.Categories)
	}
	return nil, fmt.Errorf("unknown metric kind %d", m.Kind)
}

type PenaltyOp string

const (
	PenaltyOpLt  PenaltyOp = "<"
	PenaltyOpLte PenaltyOp = "<="
	PenaltyOpGt  PenaltyOp = ">"
	PenaltyOpGte PenaltyOp = ">="
)

// PenaltyRule is the parsed form of an "if" expression like
// "delta_short > 0.3". Rules are parsed and validated at rubric load;
// Expression keeps the original text for reporting.
type PenaltyRule struct {
	Field      string
	Op         PenaltyOp
	Value      float64
	Minus      float64
	Expression string
}

var penaltyPattern = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*(<=|>=|<|>)\s*(-?\d+(?:\.\d+)?)\s*$`)

func ParsePenaltyRule(expr string, minus float64) (PenaltyRule, error) {
	m := penaltyPattern.FindStringSubmatch(expr)
	if m == nil {
		return PenaltyRule{}, errors.New(`expected "field <op> value" with op in {<, <=, >, >=}`)
	}
	value, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return PenaltyRule{}, fmt.Errorf("bad literal %q: %w", m[3], err)
	}
	if minus < 0 {
		return PenaltyRule{}, fmt.Errorf("penalty amount must be non-negative, got %v", minus)
	}
	return PenaltyRule{
		Field:      m[1],
		Op:         PenaltyOp(m[2]),
		Value:      value,
		Minus:      minus,
		Expression: strings.TrimSpace(expr),
	}, nil
}

// Matches reports whether the rule triggers against the feature bag.
// A missing or non-numeric field never triggers.
func (r PenaltyRule) Matches(features Features) bool {
	v, ok := features.NumberValue(r.Field)
	if !ok {
		return false
	}
	switch r.Op {
	case PenaltyOpLt:
		return v < r.Value
	case PenaltyOpLte:
		return v <= r.Value
	case PenaltyOpGt:
		return v > r.Value
	case PenaltyOpGte:
		return v >= r.Value
	}
	return false
}

type ScoreCaps struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type AggregationPolicy struct {
	Method    string
	Caps      ScoreCaps
	Penalties []PenaltyRule
}

// StrategyRubric is the validated, classified form of a rubric document.
// Weights are raw declared values; normalization happens at scoring time.
type StrategyRubric struct {
	Name             string
	Strategy         string
	RubricVersion    string
	Weights          map[string]float64
	Criteria         map[string]map[string]MetricConfig
	Aggregation      AggregationPolicy
	RequiredFeatures []string

	// Derived maps extra feature names to expressions evaluated over the
	// base feature bag, e.g. "iv_rank / 100 * delta_short"
	Derived map[string]string
}

type rubricDocument struct {
	Name             string                                `json:"name"`
	Strategy         string                                `json:"strategy"`
	RubricVersion    string                                `json:"rubric_version"`
	Weights          map[string]float64                    `json:"weights"`
	Criteria         map[string]map[string]json.RawMessage `json:"criteria"`
	Aggregation      aggregationDocument                   `json:"aggregation"`
	RequiredFeatures []string                              `json:"required_features"`
	Derived          map[string]string                     `json:"derived,omitempty"`
}

type aggregationDocument struct {
	Method    string            `json:"method"`
	Caps      *ScoreCaps        `json:"caps,omitempty"`
	Penalties []penaltyDocument `json:"penalties,omitempty"`
}

type penaltyDocument struct {
	If    string  `json:"if"`
	Minus float64 `json:"minus"`
}

// ParseRubric unmarshals, validates and classifies a rubric document.
// Malformed metric shapes and penalty rules are skipped and reported as
// warnings; only undecodable JSON and weight/criterion mismatches error.
func ParseRubric(raw []byte) (*StrategyRubric, []string, error) {
	doc := rubricDocument{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("malformed rubric document: %w", err)
	}

	warnings := []string{}

	for _, criterion := range sortedWeightKeys(doc.Weights) {
		if _, ok := doc.Criteria[criterion]; !ok {
			return nil, warnings, fmt.Errorf("%w: %q", ErrWeightCriterionMismatch, criterion)
		}
	}

	criteria := map[string]map[string]MetricConfig{}
	for _, criterion := range sortedCriteriaKeys(doc.Criteria) {
		metrics := map[string]MetricConfig{}
		for _, metric := range sortedRawKeys(doc.Criteria[criterion]) {
			cfg, err := classifyMetricConfig(doc.Criteria[criterion][metric])
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("criterion %q metric %q: %v", criterion, metric, err))
				continue
			}
			if cfg.Kind == MetricKindStepTable && !monotonicSteps(cfg.Steps) {
				warnings = append(warnings, fmt.Sprintf("criterion %q metric %q: step scores are not monotonic, direction inferred from endpoints", criterion, metric))
			}
			metrics[metric] = cfg
		}
		criteria[criterion] = metrics
	}

	method := doc.Aggregation.Method
	if method == "" {
		method = AggregationWeightedMean
	}
	if method != AggregationWeightedMean {
		warnings = append(warnings, fmt.Sprintf("unknown aggregation method %q, using %q", method, AggregationWeightedMean))
		method = AggregationWeightedMean
	}

	caps := DefaultScoreCaps
	if doc.Aggregation.Caps != nil {
		caps = *doc.Aggregation.Caps
		if caps.Min > caps.Max {
			warnings = append(warnings, fmt.Sprintf("caps min %v exceeds max %v, using defaults", caps.Min, caps.Max))
			caps = DefaultScoreCaps
		}
	}

	penalties := []PenaltyRule{}
	for _, p := range doc.Aggregation.Penalties {
		rule, err := ParsePenaltyRule(p.If, p.Minus)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("penalty rule %q: %v", p.If, err))
			continue
		}
		if !penaltyFieldKnown(rule.Field, doc.Derived) {
			warnings = append(warnings, fmt.Sprintf("penalty rule %q references unknown feature %q", p.If, rule.Field))
			continue
		}
		penalties = append(penalties, rule)
	}

	rubric := &StrategyRubric{
		Name:             doc.Name,
		Strategy:         doc.Strategy,
		RubricVersion:    doc.RubricVersion,
		Weights:          doc.Weights,
		Criteria:         criteria,
		Aggregation:      AggregationPolicy{Method: method, Caps: caps, Penalties: penalties},
		RequiredFeatures: doc.RequiredFeatures,
		Derived:          doc.Derived,
	}
	if rubric.Weights == nil {
		rubric.Weights = map[string]float64{}
	}

	return rubric, warnings, nil
}

func penaltyFieldKnown(field string, derived map[string]string) bool {
	if KnownFeature(field) {
		return true
	}
	_, ok := derived[field]
	return ok
}

func classifyMetricConfig(raw json.RawMessage) (MetricConfig, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return MetricConfig{}, errors.New("empty metric config")
	}

	switch trimmed[0] {
	case '[':
		var pairs [][]float64
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return MetricConfig{}, fmt.Errorf("step table must be a list of [threshold, score] pairs: %w", err)
		}
		steps := make([]Step, 0, len(pairs))
		for _, p := range pairs {
			if len(p) != 2 {
				return MetricConfig{}, fmt.Errorf("step entry must have exactly 2 elements, got %d", len(p))
			}
			steps = append(steps, Step{Threshold: p[0], Score: p[1]})
		}
		sort.SliceStable(steps, func(i, j int) bool {
			return steps[i].Threshold < steps[j].Threshold
		})
		cfg := MetricConfig{Kind: MetricKindStepTable, Steps: steps}
		if len(steps) > 0 {
			cfg.Increasing = steps[len(steps)-1].Score >= steps[0].Score
		}
		return cfg, nil
	case '{':
		var categories map[string]float64
		if err := json.Unmarshal(trimmed, &categories); err != nil {
			return MetricConfig{}, fmt.Errorf("category map must map keys to numeric scores: %w", err)
		}
		cfg := MetricConfig{Kind: MetricKindCategoryMap, Categories: categories}
		for _, v := range categories {
			if v < 0 {
				cfg.SignedOffsets = true
				break
			}
		}
		return cfg, nil
	}

	return MetricConfig{}, errors.New("metric config must be a step table or category map")
}

func monotonicSteps(steps []Step) bool {
	nonDecreasing, nonIncreasing := true, true
	for i := 1; i < len(steps); i++ {
		if steps[i].Score < steps[i-1].Score {
			nonDecreasing = false
		}
		if steps[i].Score > steps[i-1].Score {
			nonIncreasing = false
		}
	}
	return nonDecreasing || nonIncreasing
}

// Document serializes the rubric back into its storable JSON shape.
func (r StrategyRubric) Document() ([]byte, error) {
	criteria := map[string]map[string]MetricConfig{}
	for criterion, metrics := range r.Criteria {
		criteria[criterion] = metrics
	}
	penalties := make([]penaltyDocument, 0, len(r.Aggregation.Penalties))
	for _, p := range r.Aggregation.Penalties {
		penalties = append(penalties, penaltyDocument{If: p.Expression, Minus: p.Minus})
	}
	caps := r.Aggregation.Caps
	doc := struct {
		Name             string                             `json:"name"`
		Strategy         string                             `json:"strategy"`
		RubricVersion    string                             `json:"rubric_version"`
		Weights          map[string]float64                 `json:"weights"`
		Criteria         map[string]map[string]MetricConfig `json:"criteria"`
		Aggregation      interface{}                        `json:"aggregation"`
		RequiredFeatures []string                           `json:"required_features"`
		Derived          map[string]string                  `json:"derived,omitempty"`
	}{
		Name:          r.Name,
		Strategy:      r.Strategy,
		RubricVersion: r.RubricVersion,
		Weights:       r.Weights,
		Criteria:      criteria,
		Aggregation: struct {
			Method    string            `json:"method"`
			Caps      *ScoreCaps        `json:"caps,omitempty"`
			Penalties []penaltyDocument `json:"penalties,omitempty"`
		}{
			Method:    r.Aggregation.Method,
			Caps:      &caps,
			Penalties: penalties,
		},
		RequiredFeatures: r.RequiredFeatures,
		Derived:          r.Derived,
	}
	return json.Marshal(doc)
}

func sortedWeightKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCriteriaKeys(m map[string]map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedRawKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultRubric is the built-in fallback applied when no persisted rubric
// exists for a strategy. Tuned for defined-risk short-premium spreads.
func DefaultRubric(strategy string) *StrategyRubric {
	steps := func(pairs ...[2]float64) MetricConfig {
		cfg := MetricConfig{Kind: MetricKindStepTable}
		for _, p := range pairs {
			cfg.Steps = append(cfg.Steps, Step{Threshold: p[0], Score: p[1]})
		}
		sort.SliceStable(cfg.Steps, func(i, j int) bool {
			return cfg.Steps[i].Threshold < cfg.Steps[j].Threshold
		})
		cfg.Increasing = cfg.Steps[len(cfg.Steps)-1].Score >= cfg.Steps[0].Score
		return cfg
	}
	categories := func(m map[string]float64) MetricConfig {
		cfg := MetricConfig{Kind: MetricKindCategoryMap, Categories: m}
		for _, v := range m {
			if v < 0 {
				cfg.SignedOffsets = true
				break
			}
		}
		return cfg
	}
	mustRule := func(expr string, minus float64) PenaltyRule {
		rule, err := ParsePenaltyRule(expr, minus)
		if err != nil {
			panic(fmt.Errorf("default rubric penalty %q: %w", expr, err))
		}
		return rule
	}

	return &StrategyRubric{
		Name:          "baseline",
		Strategy:      strategy,
		RubricVersion: "1.0.0",
		Weights: map[string]float64{
			"edge":        8,
			"probability": 4,
			"liquidity":   2,
			"event_risk":  2,
		},
		Criteria: map[string]map[string]MetricConfig{
			"edge": {
				FeatureCreditToWidthPct: steps(
					[2]float64{0.15, 55},
					[2]float64{0.20, 70},
					[2]float64{0.25, 85},
					[2]float64{0.33, 95},
				),
				FeatureIvRank: steps(
					[2]float64{20, 40},
					[2]float64{35, 60},
					[2]float64{50, 80},
					[2]float64{70, 95},
				),
			},
			"probability": {
				FeatureDeltaShort: steps(
					[2]float64{0.10, 90},
					[2]float64{0.16, 80},
					[2]float64{0.22, 65},
					[2]float64{0.30, 45},
				),
				FeatureRsi14: steps(
					[2]float64{30, 45},
					[2]float64{40, 60},
					[2]float64{50, 75},
					[2]float64{60, 85},
				),
				FeaturePriceAboveMa50: categories(map[string]float64{
					"true":  85,
					"false": 40,
				}),
			},
			"liquidity": {
				FeatureOiShortLegMin: steps(
					[2]float64{100, 30},
					[2]float64{250, 55},
					[2]float64{500, 75},
					[2]float64{1000, 90},
				),
				FeatureBidAskPct: steps(
					[2]float64{1.0, 90},
					[2]float64{2.0, 75},
					[2]float64{3.5, 55},
					[2]float64{5.0, 30},
				),
				FeatureFillVsMidBps: steps(
					[2]float64{5, 90},
					[2]float64{15, 75},
					[2]float64{30, 55},
					[2]float64{50, 35},
				),
			},
			"event_risk": {
				FeatureDaysToEarnings: steps(
					[2]float64{3, 25},
					[2]float64{7, 45},
					[2]float64{14, 70},
					[2]float64{21, 85},
				),
				FeatureMacroEventFlag: categories(map[string]float64{
					"FOMC": -20,
					"CPI":  -10,
					"None": 0,
				}),
			},
		},
		Aggregation: AggregationPolicy{
			Method: AggregationWeightedMean,
			Caps:   DefaultScoreCaps,
			Penalties: []PenaltyRule{
				mustRule("delta_short > 0.3", 20),
				mustRule("days_to_earnings < 5", 15),
				mustRule("credit_to_width_pct < 0.15", 10),
				mustRule("days_to_expiration < 7", 10),
				mustRule("bid_ask_pct > 4", 10),
			},
		},
		RequiredFeatures: []string{
			FeatureDeltaShort,
			FeatureCreditToWidthPct,
			FeatureIvRank,
		},
	}
}
