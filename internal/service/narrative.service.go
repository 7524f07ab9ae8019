package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"tradescore/internal/domain"
	"tradescore/internal/logger"
	"tradescore/internal/repository"
)

const defaultExplainWords = 120

// ExplainInput carries the already-computed numbers for one evaluation.
// Seed pins the language model's sampling so repeated requests for the
// same evaluation read the same; it has no effect on the template path,
// which is deterministic anyway.
type ExplainInput struct {
	RawScore    float64
	Probability float64
	Confidence  domain.ConfidenceTier
	Reasons     []string
	Seed        int64
	MaxWords    int
}

// NarrativeService turns a scored evaluation into a short plain-English
// journal entry. The narrative is presentation only: it is generated after
// the numbers are final and can never change them, so any client failure
// falls back to a deterministic template instead of surfacing an error.
type NarrativeService interface {
	Explain(ctx context.Context, in ExplainInput) string
}

type narrativeServiceHandler struct {
	// GptRepository may be nil when no api key is configured; every
	// request then takes the template path.
	GptRepository repository.GptRepository
}

func NewNarrativeService(gptRepository repository.GptRepository) NarrativeService {
	return narrativeServiceHandler{
		GptRepository: gptRepository,
	}
}

func (h narrativeServiceHandler) Explain(ctx context.Context, in ExplainInput) string {
	if in.MaxWords <= 0 {
		in.MaxWords = defaultExplainWords
	}

	if h.GptRepository == nil {
		return templateNarrative(in)
	}

	narrative, err := h.GptRepository.ExplainTradeScore(ctx, explainRequest(in))
	if err != nil {
		logger.FromContext(ctx).Warnf("falling back to templated narrative: %v", err)
		return templateNarrative(in)
	}
	if strings.TrimSpace(narrative) == "" {
		return templateNarrative(in)
	}
	return narrative
}

func explainRequest(in ExplainInput) string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "Raw score: %v / 100\n", in.RawScore)
	fmt.Fprintf(&sb, "Probability of success: %.0f%%\n", in.Probability*100)
	fmt.Fprintf(&sb, "Confidence: %s\n", in.Confidence)
	fmt.Fprintf(&sb, "Determinism seed: %d\n", in.Seed)
	sb.WriteString("Scored inputs:\n")
	for _, reason := range in.Reasons {
		fmt.Fprintf(&sb, "- %s\n", reason)
	}
	fmt.Fprintf(&sb, "Use at most %d words.", in.MaxWords)
	return sb.String()
}

// templateNarrative reconstructs the strongest and weakest inputs from the
// reason lines the scorer emitted, so the fallback still names names.
func templateNarrative(in ExplainInput) string {
	strongest, weakest := "", ""
	best, worst := 0.0, 0.0
	scored := 0
	for _, reason := range in.Reasons {
		metric, score, ok := parseReasonLine(reason)
		if !ok {
			continue
		}
		if scored == 0 || score > best {
			strongest, best = metric, score
		}
		if scored == 0 || score < worst {
			weakest, worst = metric, score
		}
		scored++
	}

	head := fmt.Sprintf(
		"Scored %v out of 100 with an estimated %.0f%% chance of success (%s confidence).",
		in.RawScore, in.Probability*100, in.Confidence,
	)
	switch {
	case scored == 0:
		return head + " No individual inputs had data to report."
	case scored == 1:
		return fmt.Sprintf("%s The only scored input was %s at %v.", head, strongest, best)
	case best == worst:
		return fmt.Sprintf("%s All %d scored inputs landed at %v.", head, scored, best)
	}
	return fmt.Sprintf(
		"%s The strongest input was %s at %v and the weakest was %s at %v.",
		head, strongest, best, weakest, worst,
	)
}

// parseReasonLine pulls the metric name and score out of a
// "metric: raw → score" reason. Missing-data and penalty lines carry no
// score and are skipped.
func parseReasonLine(reason string) (string, float64, bool) {
	if strings.HasPrefix(reason, "penalty: ") {
		return "", 0, false
	}
	sep := strings.Index(reason, ": ")
	if sep < 0 {
		return "", 0, false
	}
	arrow := strings.LastIndex(reason, " → ")
	if arrow < 0 {
		return "", 0, false
	}
	score, err := strconv.ParseFloat(reason[arrow+len(" → "):], 64)
	if err != nil {
		return "", 0, false
	}
	return reason[:sep], score, true
}
