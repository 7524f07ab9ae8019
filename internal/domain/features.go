package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// canonical feature keys understood by the extractor; rubric metrics and
// penalty rules reference these names
const (
	FeatureStrategy = "strategy"
	FeatureSymbol   = "symbol"

	FeatureDeltaShort       = "delta_short"
	FeatureIvRank           = "iv_rank"
	FeatureOiShortLegMin    = "oi_short_leg_min"
	FeatureBidAskPct        = "bid_ask_pct"
	FeatureDaysToEarnings   = "days_to_earnings"
	FeatureMacroEventFlag   = "macro_event_flag"
	FeaturePriceAboveMa50   = "price_above_ma_50"
	FeatureRsi14            = "rsi_14"
	FeatureFillVsMidBps     = "fill_vs_mid_bps"
	FeatureDaysToExpiration = "days_to_expiration"
	FeatureCreditToWidthPct = "credit_to_width_pct"
)

type FeatureKind int

const (
	FeatureKindNumeric FeatureKind = iota
	FeatureKindBoolean
	FeatureKindFlag
)

type FeatureSpec struct {
	Name    string
	Kind    FeatureKind
	Aliases []string

	// numeric bounds checked during extraction, independent of any rubric
	Min          *float64
	Max          *float64
	MinExclusive bool

	// derived features are computed from the trade draft when the
	// factor map does not supply them directly
	Derived bool
}

func f64(v float64) *float64 {
	return &v
}

var featureCatalog = []FeatureSpec{
	{
		Name:    FeatureDeltaShort,
		Kind:    FeatureKindNumeric,
		Aliases: []string{"short_delta", "deltashort", "short_leg_delta"},
		Min:     f64(0),
		Max:     f64(1),
	},
	{
		Name:    FeatureIvRank,
		Kind:    FeatureKindNumeric,
		Aliases: []string{"ivrank", "ivr"},
	},
	{
		Name:    FeatureOiShortLegMin,
		Kind:    FeatureKindNumeric,
		Aliases: []string{"open_interest_min", "min_open_interest", "oi_min"},
	},
	{
		Name:    FeatureBidAskPct,
		Kind:    FeatureKindNumeric,
		Aliases: []string{"bidaskpct", "bid_ask_spread_pct", "spread_pct"},
	},
	{
		Name:    FeatureDaysToEarnings,
		Kind:    FeatureKindNumeric,
		Aliases: []string{"earnings_days", "dte_earnings"},
	},
	{
		Name:    FeatureMacroEventFlag,
		Kind:    FeatureKindFlag,
		Aliases: []string{"macro_flag", "macro_event"},
	},
	{
		Name:    FeaturePriceAboveMa50,
		Kind:    FeatureKindBoolean,
		Aliases: []string{"above_ma_50", "price_above_ma50", "above_50ma"},
	},
	{
		Name:    FeatureRsi14,
		Kind:    FeatureKindNumeric,
		Aliases: []string{"rsi14", "rsi"},
	},
	{
		Name:    FeatureFillVsMidBps,
		Kind:    FeatureKindNumeric,
		Aliases: []string{"fill_vs_mid", "slippage_bps"},
	},
	{
		Name:    FeatureDaysToExpiration,
		Kind:    FeatureKindNumeric,
		Aliases: []string{"dte", "days_to_exp"},
		Derived: true,
	},
	{
		Name:         FeatureCreditToWidthPct,
		Kind:         FeatureKindNumeric,
		Aliases:      []string{"credit_to_width", "ctw", "credit_width_ratio"},
		Min:          f64(0),
		MinExclusive: true,
		Derived:      true,
	},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	index := map[string]string{}
	for _, spec := range featureCatalog {
		index[spec.Name] = spec.Name
		for _, alias := range spec.Aliases {
			index[CanonicalFeatureKey(alias)] = spec.Name
		}
	}
	return index
}

func FeatureCatalog() []FeatureSpec {
	out := make([]FeatureSpec, len(featureCatalog))
	copy(out, featureCatalog)
	return out
}

func FeatureSpecFor(name string) (FeatureSpec, bool) {
	for _, spec := range featureCatalog {
		if spec.Name == name {
			return spec, true
		}
	}
	return FeatureSpec{}, false
}

func KnownFeature(name string) bool {
	if name == FeatureStrategy || name == FeatureSymbol {
		return true
	}
	_, ok := aliasIndex[CanonicalFeatureKey(name)]
	return ok
}

// CanonicalFeatureKey case-folds a raw factor key and strips every rune
// outside [a-z0-9_], e.g. "Delta (Short)" becomes "deltashort"
func CanonicalFeatureKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveFeatureKey maps a loosely-named factor key onto its canonical
// feature name via the alias table
func ResolveFeatureKey(raw string) (string, bool) {
	name, ok := aliasIndex[CanonicalFeatureKey(raw)]
	return name, ok
}

// Features is the canonical key -> value bag for a single evaluation.
// It always carries strategy and symbol; everything else is optional.
// Produced once per evaluation and never mutated by scoring.
type Features map[string]interface{}

func (f Features) NumberValue(key string) (float64, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return 0, false
	}
	return CoerceNumber(v)
}

func (f Features) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

func (f Features) Clone() Features {
	out := make(Features, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func CoerceNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case decimal.Decimal:
		f, _ := t.Float64()
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// CategoryKey stringifies a feature value for categorical lookup.
// Booleans become "true"/"false"; numbers use their shortest decimal form.
func CategoryKey(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	}
	return "", false
}

type IssueKind string

const (
	IssueMissing    IssueKind = "missing"
	IssueOutOfRange IssueKind = "out_of_range"
	IssueInvalid    IssueKind = "invalid"
)

// ExtractionIssue is a structured diagnostic for an expected-bad input.
// Incomplete candidates are common, so these are data, not errors.
type ExtractionIssue struct {
	Field  string
	Kind   IssueKind
	Detail string
}

func (e ExtractionIssue) String() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Kind, e.Detail)
}

// TradeDraft is the raw candidate under evaluation. Strike, credit and
// premium fields are optional and only feed derived-feature computation.
type TradeDraft struct {
	Symbol          string           `json:"symbol"`
	ContractType    string           `json:"contractType"`
	ExpirationDate  string           `json:"expirationDate,omitempty"`
	ShortPutStrike  *decimal.Decimal `json:"shortPutStrike,omitempty"`
	LongPutStrike   *decimal.Decimal `json:"longPutStrike,omitempty"`
	ShortCallStrike *decimal.Decimal `json:"shortCallStrike,omitempty"`
	LongCallStrike  *decimal.Decimal `json:"longCallStrike,omitempty"`
	CreditReceived  *decimal.Decimal `json:"creditReceived,omitempty"`
	Premium         *decimal.Decimal `json:"premium,omitempty"`
}

// StrikeWidth is the absolute spread between the two legs, preferring
// put legs when both pairs are present. Nil when no complete pair exists.
func (t TradeDraft) StrikeWidth() *decimal.Decimal {
	if t.ShortPutStrike != nil && t.LongPutStrike != nil {
		w := t.ShortPutStrike.Sub(*t.LongPutStrike).Abs()
		return &w
	}
	if t.ShortCallStrike != nil && t.LongCallStrike != nil {
		w := t.ShortCallStrike.Sub(*t.LongCallStrike).Abs()
		return &w
	}
	return nil
}
