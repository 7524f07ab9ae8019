package service

import (
	"context"
	"errors"
	"testing"
	"tradescore/internal/domain"
	mock_repository "tradescore/internal/repository/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func explainFixture() ExplainInput {
	return ExplainInput{
		RawScore:    81.25,
		Probability: 0.81,
		Confidence:  domain.ConfidenceHigh,
		Reasons: []string{
			"credit_to_width_pct: 0.25 → 85",
			"iv_rank: 55 → 80",
			"delta_short: 0.12 → 80",
			"rsi_14: missing",
			"penalty: days_to_earnings < 5 (-15)",
		},
		Seed: 42,
	}
}

const explainFixtureTemplate = "Scored 81.25 out of 100 with an estimated 81% chance of success (high confidence). " +
	"The strongest input was credit_to_width_pct at 85 and the weakest was iv_rank at 80."

func Test_narrativeServiceHandler_Explain(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the model text and budgets the request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gptRepository := mock_repository.NewMockGptRepository(ctrl)
		handler := narrativeServiceHandler{GptRepository: gptRepository}

		request := ""
		gptRepository.EXPECT().
			ExplainTradeScore(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req string) (string, error) {
				request = req
				return "A solid setup carried by a rich credit.", nil
			})

		out := handler.Explain(ctx, explainFixture())
		require.Equal(t, "A solid setup carried by a rich credit.", out)
		require.Contains(t, request, "Raw score: 81.25 / 100")
		require.Contains(t, request, "Probability of success: 81%")
		require.Contains(t, request, "Confidence: high")
		require.Contains(t, request, "Determinism seed: 42")
		require.Contains(t, request, "- iv_rank: 55 → 80")
		require.Contains(t, request, "- penalty: days_to_earnings < 5 (-15)")
		require.Contains(t, request, "Use at most 120 words.")
	})

	t.Run("honors an explicit word budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gptRepository := mock_repository.NewMockGptRepository(ctrl)
		handler := narrativeServiceHandler{GptRepository: gptRepository}

		gptRepository.EXPECT().
			ExplainTradeScore(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req string) (string, error) {
				require.Contains(t, req, "Use at most 40 words.")
				return "Short note.", nil
			})

		in := explainFixture()
		in.MaxWords = 40
		require.Equal(t, "Short note.", handler.Explain(ctx, in))
	})

	t.Run("client failure falls back to the template", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gptRepository := mock_repository.NewMockGptRepository(ctrl)
		handler := narrativeServiceHandler{GptRepository: gptRepository}

		gptRepository.EXPECT().
			ExplainTradeScore(gomock.Any(), gomock.Any()).
			Return("", errors.New("rate limited"))

		require.Equal(t, explainFixtureTemplate, handler.Explain(ctx, explainFixture()))
	})

	t.Run("blank model output falls back to the template", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gptRepository := mock_repository.NewMockGptRepository(ctrl)
		handler := narrativeServiceHandler{GptRepository: gptRepository}

		gptRepository.EXPECT().
			ExplainTradeScore(gomock.Any(), gomock.Any()).
			Return("  \n", nil)

		require.Equal(t, explainFixtureTemplate, handler.Explain(ctx, explainFixture()))
	})

	t.Run("no configured client always uses the template", func(t *testing.T) {
		handler := narrativeServiceHandler{}

		out := handler.Explain(ctx, explainFixture())
		require.Equal(t, explainFixtureTemplate, out)

		// same input, same words
		require.Equal(t, out, handler.Explain(ctx, explainFixture()))
	})
}

func Test_templateNarrative(t *testing.T) {
	t.Run("no scored inputs", func(t *testing.T) {
		out := templateNarrative(ExplainInput{
			RawScore:    50,
			Probability: 0.5,
			Confidence:  domain.ConfidenceLow,
			Reasons:     []string{"iv_rank: missing", "delta_short: missing"},
		})
		require.Equal(t,
			"Scored 50 out of 100 with an estimated 50% chance of success (low confidence). No individual inputs had data to report.",
			out,
		)
	})

	t.Run("single scored input", func(t *testing.T) {
		out := templateNarrative(ExplainInput{
			RawScore:    80,
			Probability: 0.8,
			Confidence:  domain.ConfidenceMedium,
			Reasons:     []string{"iv_rank: 55 → 80"},
		})
		require.Equal(t,
			"Scored 80 out of 100 with an estimated 80% chance of success (medium confidence). The only scored input was iv_rank at 80.",
			out,
		)
	})

	t.Run("tied inputs", func(t *testing.T) {
		out := templateNarrative(ExplainInput{
			RawScore:    80,
			Probability: 0.8,
			Confidence:  domain.ConfidenceHigh,
			Reasons:     []string{"iv_rank: 55 → 80", "delta_short: 0.12 → 80"},
		})
		require.Equal(t,
			"Scored 80 out of 100 with an estimated 80% chance of success (high confidence). All 2 scored inputs landed at 80.",
			out,
		)
	})
}

func Test_parseReasonLine(t *testing.T) {
	metric, score, ok := parseReasonLine("iv_rank: 55 → 80")
	require.True(t, ok)
	require.Equal(t, "iv_rank", metric)
	require.Equal(t, 80.0, score)

	metric, score, ok = parseReasonLine("credit_to_width_pct: 0.25 → 87.5")
	require.True(t, ok)
	require.Equal(t, "credit_to_width_pct", metric)
	require.Equal(t, 87.5, score)

	_, _, ok = parseReasonLine("rsi_14: missing")
	require.False(t, ok)

	_, _, ok = parseReasonLine("penalty: delta_short > 0.3 (-20)")
	require.False(t, ok)

	_, _, ok = parseReasonLine("not a reason line")
	require.False(t, ok)
}
