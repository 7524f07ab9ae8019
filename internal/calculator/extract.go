package calculator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tradescore/internal/domain"
	"tradescore/internal/util"

	"github.com/maja42/goval"
)

const expirationDateLayout = "2006-01-02"

// ExtractFeatures validates the trade draft, resolves loosely-named factor
// keys onto canonical features, derives computed features the factor map
// did not supply, and runs catalog range checks. Bad input is expected and
// comes back as structured issues alongside whatever partial feature bag
// could be built; the caller decides whether to proceed.
func ExtractFeatures(draft domain.TradeDraft, factors map[string]interface{}, now time.Time) (domain.Features, []domain.ExtractionIssue) {
	issues := validateDraft(draft)

	features := domain.Features{
		domain.FeatureStrategy: strings.TrimSpace(draft.ContractType),
		domain.FeatureSymbol:   strings.TrimSpace(draft.Symbol),
	}

	for _, rawKey := range sortedFactorKeys(factors) {
		name, ok := domain.ResolveFeatureKey(rawKey)
		if !ok {
			issues = append(issues, domain.ExtractionIssue{
				Field:  rawKey,
				Kind:   domain.IssueMissing,
				Detail: "no canonical feature for factor key",
			})
			continue
		}
		if features.Has(name) {
			issues = append(issues, domain.ExtractionIssue{
				Field:  rawKey,
				Kind:   domain.IssueInvalid,
				Detail: fmt.Sprintf("duplicate value for %s ignored", name),
			})
			continue
		}

		spec, _ := domain.FeatureSpecFor(name)
		value, issue := coerceFeatureValue(spec, rawKey, factors[rawKey])
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}
		features[name] = value
	}

	issues = append(issues, deriveDaysToExpiration(features, draft, now)...)
	issues = append(issues, deriveCreditToWidth(features, draft)...)
	issues = append(issues, checkRanges(features)...)

	return features, issues
}

// ExtractWithDerived extends ExtractFeatures with rubric-declared derived
// features, each an expression evaluated over the base feature bag.
// Derived names never shadow an already-extracted feature.
func ExtractWithDerived(draft domain.TradeDraft, factors map[string]interface{}, derived map[string]string, now time.Time) (domain.Features, []domain.ExtractionIssue) {
	features, issues := ExtractFeatures(draft, factors, now)
	if len(derived) == 0 {
		return features, issues
	}

	evaluator := goval.NewEvaluator()
	for _, name := range sortedExpressionKeys(derived) {
		if features.Has(name) {
			issues = append(issues, domain.ExtractionIssue{
				Field:  name,
				Kind:   domain.IssueInvalid,
				Detail: "derived feature would shadow an extracted feature",
			})
			continue
		}
		result, err := evaluator.Evaluate(derived[name], features, nil)
		if err != nil {
			issues = append(issues, domain.ExtractionIssue{
				Field:  name,
				Kind:   domain.IssueInvalid,
				Detail: fmt.Sprintf("derived expression failed: %v", err),
			})
			continue
		}
		value, ok := domain.CoerceNumber(result)
		if !ok {
			issues = append(issues, domain.ExtractionIssue{
				Field:  name,
				Kind:   domain.IssueInvalid,
				Detail: "derived expression did not produce a number",
			})
			continue
		}
		features[name] = value
	}

	return features, issues
}

// DraftInvalid reports whether issues include a missing required draft
// field, meaning the candidate could not be identified at all.
func DraftInvalid(issues []domain.ExtractionIssue) bool {
	for _, issue := range issues {
		if issue.Kind != domain.IssueMissing {
			continue
		}
		if issue.Field == "symbol" || issue.Field == "contractType" {
			return true
		}
	}
	return false
}

func validateDraft(draft domain.TradeDraft) []domain.ExtractionIssue {
	issues := []domain.ExtractionIssue{}
	if strings.TrimSpace(draft.Symbol) == "" {
		issues = append(issues, domain.ExtractionIssue{
			Field:  "symbol",
			Kind:   domain.IssueMissing,
			Detail: "trade draft requires a symbol",
		})
	}
	if strings.TrimSpace(draft.ContractType) == "" {
		issues = append(issues, domain.ExtractionIssue{
			Field:  "contractType",
			Kind:   domain.IssueMissing,
			Detail: "trade draft requires a strategy or contract type label",
		})
	}
	return issues
}

func coerceFeatureValue(spec domain.FeatureSpec, rawKey string, raw interface{}) (interface{}, *domain.ExtractionIssue) {
	switch spec.Kind {
	case domain.FeatureKindNumeric:
		num, ok := domain.CoerceNumber(raw)
		if !ok {
			return nil, &domain.ExtractionIssue{
				Field:  spec.Name,
				Kind:   domain.IssueInvalid,
				Detail: fmt.Sprintf("factor %q is not numeric", rawKey),
			}
		}
		return num, nil
	case domain.FeatureKindBoolean:
		switch t := raw.(type) {
		case bool:
			return t, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
		}
		return nil, &domain.ExtractionIssue{
			Field:  spec.Name,
			Kind:   domain.IssueInvalid,
			Detail: fmt.Sprintf("factor %q is not a boolean", rawKey),
		}
	case domain.FeatureKindFlag:
		s, ok := raw.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, &domain.ExtractionIssue{
				Field:  spec.Name,
				Kind:   domain.IssueInvalid,
				Detail: fmt.Sprintf("factor %q is not a flag string", rawKey),
			}
		}
		return strings.TrimSpace(s), nil
	}
	return raw, nil
}

func deriveDaysToExpiration(features domain.Features, draft domain.TradeDraft, now time.Time) []domain.ExtractionIssue {
	if features.Has(domain.FeatureDaysToExpiration) || draft.ExpirationDate == "" {
		return nil
	}

	expiration, err := time.Parse(expirationDateLayout, draft.ExpirationDate)
	if err != nil {
		return []domain.ExtractionIssue{{
			Field:  "expirationDate",
			Kind:   domain.IssueInvalid,
			Detail: fmt.Sprintf("expected %s date, got %q", expirationDateLayout, draft.ExpirationDate),
		}}
	}

	days := util.WholeDaysUntil(now, expiration)
	issues := []domain.ExtractionIssue{}
	if days <= 0 {
		issues = append(issues, domain.ExtractionIssue{
			Field:  domain.FeatureDaysToExpiration,
			Kind:   domain.IssueOutOfRange,
			Detail: "expiration is not in the future",
		})
		if days < 0 {
			days = 0
		}
	}
	features[domain.FeatureDaysToExpiration] = float64(days)
	return issues
}

func deriveCreditToWidth(features domain.Features, draft domain.TradeDraft) []domain.ExtractionIssue {
	if features.Has(domain.FeatureCreditToWidthPct) || draft.CreditReceived == nil {
		return nil
	}

	width := draft.StrikeWidth()
	if width == nil || width.IsZero() {
		return nil
	}

	ratio, _ := draft.CreditReceived.Div(*width).Float64()
	features[domain.FeatureCreditToWidthPct] = ratio
	return nil
}

func checkRanges(features domain.Features) []domain.ExtractionIssue {
	issues := []domain.ExtractionIssue{}
	for _, spec := range domain.FeatureCatalog() {
		if spec.Min == nil && spec.Max == nil {
			continue
		}
		value, ok := features.NumberValue(spec.Name)
		if !ok {
			continue
		}
		if spec.Min != nil {
			if spec.MinExclusive && value <= *spec.Min {
				issues = append(issues, domain.ExtractionIssue{
					Field:  spec.Name,
					Kind:   domain.IssueOutOfRange,
					Detail: fmt.Sprintf("%v must be greater than %v", value, *spec.Min),
				})
				continue
			}
			if value < *spec.Min {
				issues = append(issues, domain.ExtractionIssue{
					Field:  spec.Name,
					Kind:   domain.IssueOutOfRange,
					Detail: fmt.Sprintf("%v is below the allowed minimum %v", value, *spec.Min),
				})
				continue
			}
		}
		if spec.Max != nil && value > *spec.Max {
			issues = append(issues, domain.ExtractionIssue{
				Field:  spec.Name,
				Kind:   domain.IssueOutOfRange,
				Detail: fmt.Sprintf("%v is above the allowed maximum %v", value, *spec.Max),
			})
		}
	}
	return issues
}

func sortedFactorKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedExpressionKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
