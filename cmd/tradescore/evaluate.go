package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
	"tradescore/cmd"
	"tradescore/internal/calculator"
	"tradescore/internal/domain"
	"tradescore/internal/service"

	"github.com/spf13/cobra"
)

var (
	evaluateInputPath       string
	evaluateCalibrationPath string
	evaluateNarrative       bool
	evaluateTiming          bool
	evaluateSeed            int64
	evaluateTimeout         time.Duration
)

// EvaluateCandidate is one entry in the --input file.
type EvaluateCandidate struct {
	TradeDraft domain.TradeDraft      `json:"tradeDraft"`
	Factors    map[string]interface{} `json:"factors"`
	Strategy   string                 `json:"strategy,omitempty"`
	PolicyID   string                 `json:"policyId,omitempty"`
}

// EvaluateResponse mirrors one scored candidate on stdout.
type EvaluateResponse struct {
	Symbol                string   `json:"symbol"`
	Fingerprint           string   `json:"fingerprint"`
	RubricVersion         string   `json:"rubricVersion"`
	CalibrationVersion    string   `json:"calibrationVersion"`
	RawScore              float64  `json:"rawScore"`
	CalibratedProbability float64  `json:"calibratedProbability"`
	Confidence            string   `json:"confidence"`
	PolicyID              string   `json:"policyId"`
	Reasons               []string `json:"reasons"`
	Violations            []string `json:"violations"`
	Issues                []string `json:"issues,omitempty"`
	Cached                bool     `json:"cached"`
	Narrative             string   `json:"narrative,omitempty"`

	Profile *domain.Profile `json:"profile,omitempty"`
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score trade candidates from a JSON file",
	Long: `Score a batch of trade candidates against their strategies' rubrics and
print one JSON result per candidate.

The input file holds an array of candidates, each with a trade draft and
a map of raw factor values:

  [
    {
      "tradeDraft": {
        "symbol": "AAPL",
        "contractType": "put-credit-spread",
        "expirationDate": "2026-02-04",
        "shortPutStrike": "180",
        "longPutStrike": "175",
        "creditReceived": "1.25"
      },
      "factors": {"delta_short": 0.12, "iv_rank": 55}
    }
  ]

Candidates that fail outright leave a gap in the output and their errors
are reported on exit; one bad candidate never blocks its siblings.`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evaluateInputPath, "input", "candidates.json", "Path to the candidates file")
	evaluateCmd.Flags().StringVar(&evaluateCalibrationPath, "calibration", "", "Fitted curve from 'tradescore calibrate'; omit for the identity curve")
	evaluateCmd.Flags().BoolVar(&evaluateNarrative, "narrative", false, "Attach a prose explanation to each result")
	evaluateCmd.Flags().BoolVar(&evaluateTiming, "timing", false, "Attach per-stage timings to each result")
	evaluateCmd.Flags().Int64Var(&evaluateSeed, "seed", 0, "Determinism seed forwarded to the narrative layer")
	evaluateCmd.Flags().DurationVar(&evaluateTimeout, "timeout", 60*time.Second, "Overall deadline for the batch")
}

func runEvaluate(cobraCmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
	defer cancel()

	f, err := os.ReadFile(evaluateInputPath)
	if err != nil {
		return fmt.Errorf("failed to read candidates: %w", err)
	}
	candidates := []EvaluateCandidate{}
	if err := json.Unmarshal(f, &candidates); err != nil {
		return fmt.Errorf("failed to parse candidates: %w", err)
	}

	calibrator, err := loadCalibrator(evaluateCalibrationPath)
	if err != nil {
		return err
	}

	deps, err := cmd.InitializeDependencies(calibrator)
	if err != nil {
		return err
	}
	defer cmd.CloseDependencies(deps)

	inputs := make([]service.EvaluateInput, 0, len(candidates))
	for _, candidate := range candidates {
		inputs = append(inputs, service.EvaluateInput{
			Draft:    candidate.TradeDraft,
			Factors:  candidate.Factors,
			Strategy: candidate.Strategy,
			PolicyID: candidate.PolicyID,
		})
	}

	results, batchErr := deps.EvaluationService.EvaluateBatch(ctx, inputs)

	responses := []EvaluateResponse{}
	for i, result := range results {
		if result == nil {
			continue
		}
		responses = append(responses, newEvaluateResponse(ctx, deps.NarrativeService, candidates[i].TradeDraft.Symbol, result))
	}

	out, err := json.MarshalIndent(responses, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return batchErr
}

func newEvaluateResponse(ctx context.Context, narrativeService service.NarrativeService, symbol string, result *service.EvaluateResult) EvaluateResponse {
	payload := result.Payload
	response := EvaluateResponse{
		Symbol:                symbol,
		Fingerprint:           payload.Fingerprint,
		RubricVersion:         payload.RubricVersion,
		CalibrationVersion:    payload.CalibrationVersion,
		RawScore:              payload.RawScore,
		CalibratedProbability: payload.CalibratedProbability,
		Confidence:            string(payload.Confidence),
		PolicyID:              payload.PolicyID,
		Reasons:               payload.Reasons,
		Violations:            payload.Violations,
		Cached:                result.Cached,
	}
	for _, issue := range result.Issues {
		response.Issues = append(response.Issues, issue.String())
	}
	if evaluateNarrative {
		response.Narrative = narrativeService.Explain(ctx, service.ExplainInput{
			RawScore:    payload.RawScore,
			Probability: payload.CalibratedProbability,
			Confidence:  payload.Confidence,
			Reasons:     payload.Reasons,
			Seed:        evaluateSeed,
		})
	}
	if evaluateTiming {
		response.Profile = result.Profile
	}
	return response
}

func loadCalibrator(path string) (calculator.Calibrator, error) {
	if path == "" {
		return calculator.LinearCalibrator{}, nil
	}
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration curve: %w", err)
	}
	curve := CalibrationCurve{}
	if err := json.Unmarshal(f, &curve); err != nil {
		return nil, fmt.Errorf("failed to parse calibration curve: %w", err)
	}
	points := make([]calculator.PiecewisePoint, 0, len(curve.Points))
	for _, p := range curve.Points {
		points = append(points, calculator.PiecewisePoint{Score: p.Score, Probability: p.Probability})
	}
	return calculator.NewPiecewiseCalibrator(curve.Version, points)
}
