package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"tradescore/internal/calculator"
	"tradescore/internal/db/models/postgres/public/model"
	"tradescore/internal/domain"
	"tradescore/internal/logger"
	"tradescore/internal/repository"
	"tradescore/internal/util"

	"github.com/google/uuid"
)

// EvaluateInput is one trade candidate: the raw draft, the factor bag
// supplied by upstream data providers, and the strategy label that picks
// the rubric. Strategy defaults to the draft's contract type; PolicyID
// defaults to the loaded rubric's name. EvaluatedAt pins the clock used
// for date-derived features and defaults to now.
type EvaluateInput struct {
	Draft       domain.TradeDraft
	Factors     map[string]interface{}
	Strategy    string
	PolicyID    string
	EvaluatedAt time.Time
}

// EvaluateResult pairs the durable score payload with per-run diagnostics
// that are not part of the cached record.
type EvaluateResult struct {
	Payload domain.ScorePayload

	// Issues are this run's extraction diagnostics. They are recomputed
	// on every call, including cache hits, because date-derived features
	// move with the evaluation clock.
	Issues []domain.ExtractionIssue

	// Cached marks a payload served from a prior evaluation.
	Cached bool

	// Aggregate is the full scoring tree behind the payload, nil when the
	// payload came from cache.
	Aggregate *domain.AggregatedScore

	// Profile holds this candidate's stage timings. Populated by
	// EvaluateBatch; single evaluations read theirs from the context
	// they seeded.
	Profile *domain.Profile
}

// EvaluationService runs the scoring pipeline for trade candidates:
// rubric load, feature extraction, fingerprinting, cache lookup, scoring,
// calibration, then fire-and-forget persistence of the payload and its
// per-metric detail rows. The same input always produces the same payload
// for a given rubric and calibration version.
type EvaluationService interface {
	Evaluate(ctx context.Context, in EvaluateInput) (*EvaluateResult, error)
	// EvaluateBatch scores candidates concurrently. The result slice is
	// index-aligned with inputs; a failed candidate leaves a nil slot and
	// its error joined into the returned error without affecting siblings.
	EvaluateBatch(ctx context.Context, inputs []EvaluateInput) ([]*EvaluateResult, error)
}

type evaluationServiceHandler struct {
	RubricService               RubricService
	ScoreCacheService           ScoreCacheService
	TradeFactorDetailRepository repository.TradeFactorDetailRepository
	Calibrator                  calculator.Calibrator
}

func NewEvaluationService(
	rubricService RubricService,
	scoreCacheService ScoreCacheService,
	tradeFactorDetailRepository repository.TradeFactorDetailRepository,
	calibrator calculator.Calibrator,
) EvaluationService {
	return evaluationServiceHandler{
		RubricService:               rubricService,
		ScoreCacheService:           scoreCacheService,
		TradeFactorDetailRepository: tradeFactorDetailRepository,
		Calibrator:                  calibrator,
	}
}

func (h evaluationServiceHandler) Evaluate(ctx context.Context, in EvaluateInput) (*EvaluateResult, error) {
	strategy := in.Strategy
	if strategy == "" {
		strategy = in.Draft.ContractType
	}
	profile := domain.ProfileFromContext(ctx)

	endSpan := profile.StartSpan("load_rubric")
	rubric, err := h.RubricService.Load(ctx, strategy)
	endSpan()
	if err != nil {
		return nil, err
	}

	fingerprint, err := calculator.Fingerprint(in.Draft, in.Factors)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint candidate: %w", err)
	}

	evaluatedAt := in.EvaluatedAt
	if evaluatedAt.IsZero() {
		evaluatedAt = time.Now().UTC()
	}
	endSpan = profile.StartSpan("extract_features")
	features, issues := calculator.ExtractWithDerived(in.Draft, in.Factors, rubric.Derived, evaluatedAt)
	endSpan()

	calibrationVersion := h.Calibrator.Version()
	endSpan = profile.StartSpan("cache_lookup")
	cached := h.ScoreCacheService.Lookup(ctx, fingerprint, rubric.RubricVersion, calibrationVersion)
	endSpan()
	if cached != nil {
		return &EvaluateResult{
			Payload: *cached,
			Issues:  issues,
			Cached:  true,
		}, nil
	}

	endSpan = profile.StartSpan("score")
	agg, err := calculator.ScoreTrade(features, rubric)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to score candidate %s: %w", fingerprint, err)
	}
	calibration := h.Calibrator.Calibrate(agg.Composite)

	policyID := in.PolicyID
	if policyID == "" {
		policyID = rubric.Name
	}

	payload := domain.ScorePayload{
		Fingerprint:           fingerprint,
		RubricVersion:         rubric.RubricVersion,
		CalibrationVersion:    calibration.Version,
		RawScore:              agg.Composite,
		CalibratedProbability: calibration.Probability,
		Reasons:               agg.Reasons,
		Violations:            agg.Violations,
		Confidence:            domain.ConfidenceFor(*agg),
		PolicyID:              policyID,
	}
	result := &EvaluateResult{
		Payload:   payload,
		Issues:    issues,
		Aggregate: agg,
	}

	// unidentifiable candidates still get a diagnostic score, but junk
	// drafts are kept out of the journal
	if calculator.DraftInvalid(issues) {
		return result, nil
	}

	endSpan = profile.StartSpan("persist")
	row := h.ScoreCacheService.Store(ctx, payload)
	if row != nil && row.CreatedAt.Equal(row.UpdatedAt) {
		// detail rows ride along with a fresh insert only; a conflict
		// means an earlier evaluation already journaled them
		if err := h.TradeFactorDetailRepository.AddMany(detailRowsFor(row.TradeScoreID, agg)); err != nil {
			logger.FromContext(ctx).Warnf("failed to persist factor detail rows for %s: %v", fingerprint, err)
		}
	}
	endSpan()

	return result, nil
}

func (h evaluationServiceHandler) EvaluateBatch(ctx context.Context, inputs []EvaluateInput) ([]*EvaluateResult, error) {
	type workInput struct {
		index int
		input EvaluateInput
	}
	type workResult struct {
		index  int
		result *EvaluateResult
		err    error
	}

	inputCh := make(chan workInput, len(inputs))
	resultCh := make(chan workResult, len(inputs))
	for i, in := range inputs {
		inputCh <- workInput{index: i, input: in}
	}
	close(inputCh)

	numGoroutines := 10
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case work, ok := <-inputCh:
					if !ok {
						return
					}
					// the profile is not concurrency safe, so every
					// candidate records into its own
					profile := domain.NewProfile()
					result, err := h.Evaluate(domain.ContextWithProfile(ctx, profile), work.input)
					profile.End()
					if err != nil {
						err = fmt.Errorf("failed to evaluate candidate %d: %w", work.index, err)
					}
					if result != nil {
						result.Profile = profile
					}
					resultCh <- workResult{index: work.index, result: result, err: err}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]*EvaluateResult, len(inputs))
	errsByIndex := make([]error, len(inputs))
	for res := range resultCh {
		if res.err != nil {
			errsByIndex[res.index] = res.err
			continue
		}
		results[res.index] = res.result
	}

	errs := []error{}
	for _, err := range errsByIndex {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	return results, errors.Join(errs...)
}

// detailRowsFor flattens the scoring tree into one journal row per rubric
// metric. Each scored metric's weighted contribution is its share of the
// pre-penalty composite: the criterion's normalized weight spread evenly
// over the criterion's scored metrics. Rows for missing metrics carry a
// nil score and contribute zero.
func detailRowsFor(tradeScoreID uuid.UUID, agg *domain.AggregatedScore) []*model.TradeFactorDetail {
	totalWeight := 0.0
	for _, c := range agg.Criteria {
		totalWeight += c.Weight
	}

	rows := []*model.TradeFactorDetail{}
	for _, c := range agg.Criteria {
		normalized := 0.0
		if totalWeight > 0 {
			normalized = c.Weight / totalWeight
		} else if len(agg.Criteria) > 0 {
			normalized = 1 / float64(len(agg.Criteria))
		}

		available := 0
		for _, m := range c.Metrics {
			if m.Score != nil {
				available++
			}
		}

		for _, m := range c.Metrics {
			row := &model.TradeFactorDetail{
				TradeScoreID:  tradeScoreID,
				CriterionName: c.Criterion,
				MetricName:    m.Metric,
				Weight:        c.Weight,
				MetTarget:     m.Passed,
			}
			if m.RawValue != nil {
				row.RawValue = util.StringPointer(fmt.Sprintf("%v", m.RawValue))
			}
			if m.Score != nil {
				row.Score = util.FloatPointer(*m.Score)
				row.WeightedContribution = normalized * *m.Score / float64(available)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
