package integration_tests

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"tradescore/internal/calculator"
	"tradescore/internal/db/models/postgres/public/model"
	"tradescore/internal/db/models/postgres/public/table"
	"tradescore/internal/domain"
	"tradescore/internal/repository"
	"tradescore/internal/service"
	"tradescore/internal/util"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/go-cmp/cmp"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newIntegrationDb(t *testing.T) *sql.DB {
	if os.Getenv("TRADESCORE_TEST_DB") == "" {
		t.Skip("TRADESCORE_TEST_DB not set, skipping db-backed test")
	}
	db, err := util.NewTestDb()
	require.NoError(t, err)

	return db
}

func cleanupScores(db *sql.DB) error {
	if _, err := table.TradeFactorDetail.DELETE().WHERE(postgres.Bool(true)).Exec(db); err != nil {
		return err
	}
	if _, err := table.TradeScore.DELETE().WHERE(postgres.Bool(true)).Exec(db); err != nil {
		return err
	}
	if _, err := table.StrategyRubric.DELETE().WHERE(postgres.Bool(true)).Exec(db); err != nil {
		return err
	}
	return nil
}

// newEvaluationStack wires the real services against the test database,
// with no hot cache tier and no narrative client.
func newEvaluationStack(db *sql.DB) service.EvaluationService {
	rubricService := service.NewRubricService(repository.NewRubricRepository(db))
	scoreCacheService := service.NewScoreCacheService(nil, repository.NewTradeScoreRepository(db))
	return service.NewEvaluationService(
		rubricService,
		scoreCacheService,
		repository.NewTradeFactorDetailRepository(db),
		calculator.LinearCalibrator{},
	)
}

func aaplCandidate() service.EvaluateInput {
	return service.EvaluateInput{
		Draft: domain.TradeDraft{
			Symbol:         "AAPL",
			ContractType:   "put-credit-spread",
			ExpirationDate: "2026-02-04",
			ShortPutStrike: util.DecimalPointer(decimal.NewFromInt(180)),
			LongPutStrike:  util.DecimalPointer(decimal.NewFromInt(175)),
			CreditReceived: util.DecimalPointer(decimal.NewFromFloat(1.25)),
		},
		Factors: map[string]interface{}{
			"delta_short":       0.12,
			"iv_rank":           55,
			"oi_short_leg_min":  800,
			"bid_ask_pct":       1.8,
			"days_to_earnings":  20,
			"macro_event_flag":  "None",
			"price_above_ma_50": true,
			"rsi_14":            58,
			"fill_vs_mid_bps":   10,
		},
		EvaluatedAt: util.NewDate(2026, 1, 5),
	}
}

func Test_evaluationFlow(t *testing.T) {
	db := newIntegrationDb(t)
	require.NoError(t, cleanupScores(db))
	defer cleanupScores(db)

	evaluationService := newEvaluationStack(db)
	ctx := context.Background()

	first, err := evaluationService.Evaluate(ctx, aaplCandidate())
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, 81.25, first.Payload.RawScore)
	require.InDelta(t, 0.81, first.Payload.CalibratedProbability, 1e-9)
	require.Equal(t, domain.ConfidenceHigh, first.Payload.Confidence)
	require.Equal(t, "baseline", first.Payload.PolicyID)
	require.Empty(t, first.Payload.Violations)
	require.Empty(t, first.Issues)

	// the score row landed in the journal
	row, err := repository.NewTradeScoreRepository(db).Get(first.Payload.Fingerprint, "1.0.0", "none")
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, 81.25, row.RawScore)

	// with one detail row per rubric metric, partitioning the composite
	details, err := repository.NewTradeFactorDetailRepository(db).List(row.TradeScoreID)
	require.NoError(t, err)
	require.Len(t, details, 10)

	total := 0.0
	for _, detail := range details {
		total += detail.WeightedContribution
	}
	require.InDelta(t, 81.25, total, 1e-9)

	// sorted by criterion then metric, edge comes first
	require.Equal(t, "edge", details[0].CriterionName)
	require.Equal(t, "credit_to_width_pct", details[0].MetricName)
	require.Equal(t, "0.25", *details[0].RawValue)
	require.Equal(t, 85.0, *details[0].Score)

	// a repeat evaluation is served from the journal and adds nothing
	second, err := evaluationService.Evaluate(ctx, aaplCandidate())
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, "", cmp.Diff(first.Payload, second.Payload))

	details, err = repository.NewTradeFactorDetailRepository(db).List(row.TradeScoreID)
	require.NoError(t, err)
	require.Len(t, details, 10)
}

func Test_evaluationFlow_persistedRubric(t *testing.T) {
	db := newIntegrationDb(t)
	require.NoError(t, cleanupScores(db))
	defer cleanupScores(db)

	_, err := repository.NewRubricRepository(db).Add(model.StrategyRubric{
		Name:          "desk-tuned",
		Strategy:      "put-credit-spread",
		RubricVersion: "2.3.0",
		Document: `{
			"name": "desk-tuned",
			"strategy": "put-credit-spread",
			"rubric_version": "2.3.0",
			"weights": {"edge": 3, "probability": 1},
			"criteria": {
				"edge": {"iv_rank": [[20, 40], [50, 80]]},
				"probability": {"delta_short": [[0.10, 90], [0.30, 45]]}
			},
			"aggregation": {"penalties": [{"if": "delta_short > 0.3", "minus": 20}]},
			"required_features": ["delta_short"]
		}`,
	})
	require.NoError(t, err)

	evaluationService := newEvaluationStack(db)

	result, err := evaluationService.Evaluate(context.Background(), aaplCandidate())
	require.NoError(t, err)
	require.Equal(t, "2.3.0", result.Payload.RubricVersion)
	require.Equal(t, "desk-tuned", result.Payload.PolicyID)

	// edge 80 at weight 3, probability 45 at weight 1
	require.Equal(t, 71.25, result.Payload.RawScore)
	require.InDelta(t, 0.71, result.Payload.CalibratedProbability, 1e-9)

	// only the two rubric metrics are journaled
	row, err := repository.NewTradeScoreRepository(db).Get(result.Payload.Fingerprint, "2.3.0", "none")
	require.NoError(t, err)
	require.NotNil(t, row)

	details, err := repository.NewTradeFactorDetailRepository(db).List(row.TradeScoreID)
	require.NoError(t, err)
	require.Len(t, details, 2)
}
