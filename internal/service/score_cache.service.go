package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"tradescore/internal/db/models/postgres/public/model"
	"tradescore/internal/domain"
	"tradescore/internal/logger"
	"tradescore/internal/repository"
)

// ScoreTtl bounds how long a payload stays in the hot tier. Payloads for a
// given (fingerprint, rubric version, calibration version) never change, so
// the TTL manages memory, not staleness.
const ScoreTtl = 24 * time.Hour

// CacheKey namespaces payloads by the versions that produced them. Bumping
// a rubric or swapping the calibration curve cold-starts the cache instead
// of serving scores from the old configuration.
func CacheKey(fingerprint, rubricVersion, calibrationVersion string) string {
	return fmt.Sprintf("score:%s:%s:%s", rubricVersion, calibrationVersion, fingerprint)
}

// ScoreCacheService is the read-through store for scored trades: an
// optional Redis hot tier in front of the durable trade_score rows. Both
// operations degrade instead of failing. Lookup treats an unreachable or
// undecodable tier as a miss, so the worst outcome is recomputing a score;
// Store logs persistence failures and moves on, since the evaluation that
// produced the payload has already succeeded.
type ScoreCacheService interface {
	Lookup(ctx context.Context, fingerprint, rubricVersion, calibrationVersion string) *domain.ScorePayload
	// Store returns the persisted row so callers can hang detail rows off
	// it, or nil when the row store was unreachable.
	Store(ctx context.Context, payload domain.ScorePayload) *model.TradeScore
}

type scoreCacheServiceHandler struct {
	// HotTier may be nil when no Redis address is configured.
	HotTier              repository.ScoreCacheRepository
	TradeScoreRepository repository.TradeScoreRepository
	Ttl                  time.Duration
}

func NewScoreCacheService(hotTier repository.ScoreCacheRepository, tradeScoreRepository repository.TradeScoreRepository) ScoreCacheService {
	return scoreCacheServiceHandler{
		HotTier:              hotTier,
		TradeScoreRepository: tradeScoreRepository,
		Ttl:                  ScoreTtl,
	}
}

func (h scoreCacheServiceHandler) Lookup(ctx context.Context, fingerprint, rubricVersion, calibrationVersion string) *domain.ScorePayload {
	lg := logger.FromContext(ctx)
	key := CacheKey(fingerprint, rubricVersion, calibrationVersion)

	if h.HotTier != nil {
		payload, found, err := h.HotTier.Get(ctx, key)
		if err != nil {
			lg.Warnf("hot tier lookup for %s failed: %v", key, err)
		} else if found {
			return payload
		}
	}

	row, err := h.TradeScoreRepository.Get(fingerprint, rubricVersion, calibrationVersion)
	if err != nil {
		lg.Warnf("score row lookup for %s failed: %v", key, err)
		return nil
	}
	if row == nil {
		return nil
	}

	payload, err := payloadFromScoreRow(row)
	if err != nil {
		lg.Warnf("treating undecodable score row %s as a miss: %v", row.TradeScoreID, err)
		return nil
	}

	h.backfillHotTier(ctx, key, *payload)
	return payload
}

func (h scoreCacheServiceHandler) Store(ctx context.Context, payload domain.ScorePayload) *model.TradeScore {
	lg := logger.FromContext(ctx)
	key := CacheKey(payload.Fingerprint, payload.RubricVersion, payload.CalibrationVersion)

	row, err := h.TradeScoreRepository.Add(scoreRowFromPayload(payload))
	if err != nil {
		lg.Warnf("failed to persist score row for %s: %v", key, err)
		row = nil
	}

	h.backfillHotTier(ctx, key, payload)
	return row
}

func (h scoreCacheServiceHandler) backfillHotTier(ctx context.Context, key string, payload domain.ScorePayload) {
	if h.HotTier == nil {
		return
	}
	if err := h.HotTier.Set(ctx, key, payload, h.Ttl); err != nil {
		logger.FromContext(ctx).Warnf("failed to write hot tier entry for %s: %v", key, err)
	}
}

func scoreRowFromPayload(payload domain.ScorePayload) model.TradeScore {
	reasons, _ := json.Marshal(payload.Reasons)
	violations, _ := json.Marshal(payload.Violations)
	return model.TradeScore{
		Fingerprint:           payload.Fingerprint,
		RubricVersion:         payload.RubricVersion,
		CalibrationVersion:    payload.CalibrationVersion,
		RawScore:              payload.RawScore,
		CalibratedProbability: payload.CalibratedProbability,
		Reasons:               string(reasons),
		Violations:            string(violations),
		Confidence:            string(payload.Confidence),
		PolicyID:              payload.PolicyID,
	}
}

func payloadFromScoreRow(row *model.TradeScore) (*domain.ScorePayload, error) {
	reasons := []string{}
	if err := json.Unmarshal([]byte(row.Reasons), &reasons); err != nil {
		return nil, fmt.Errorf("failed to decode reasons: %w", err)
	}
	violations := []string{}
	if err := json.Unmarshal([]byte(row.Violations), &violations); err != nil {
		return nil, fmt.Errorf("failed to decode violations: %w", err)
	}

	return &domain.ScorePayload{
		Fingerprint:           row.Fingerprint,
		RubricVersion:         row.RubricVersion,
		CalibrationVersion:    row.CalibrationVersion,
		RawScore:              row.RawScore,
		CalibratedProbability: row.CalibratedProbability,
		Reasons:               reasons,
		Violations:            violations,
		Confidence:            domain.ConfidenceTier(row.Confidence),
		PolicyID:              row.PolicyID,
	}, nil
}
