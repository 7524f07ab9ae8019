package main

import (
	"encoding/json"
	"fmt"
	"os"
	"tradescore/internal/calculator"

	"github.com/spf13/cobra"
)

var (
	calibrateSamplesPath string
	calibrateVersion     string
	calibrateBins        int
	calibrateOutPath     string
)

// CalibrationCurve is the fitted-curve artifact: written by calibrate,
// consumed by evaluate --calibration.
type CalibrationCurve struct {
	Version string             `json:"version"`
	Points  []CalibrationPoint `json:"points"`
}

type CalibrationPoint struct {
	Score       float64 `json:"score"`
	Probability float64 `json:"probability"`
}

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Fit a probability curve from observed trade outcomes",
	Long: `Fit a monotone piecewise-linear curve mapping raw scores to observed win
rates. The samples file is a CSV with a header row and one outcome per
line:

  score,won
  72.5,true
  41.0,false

Outcomes are grouped into equal-count score bins, each bin contributes a
(mean score, win rate) anchor point, and adjacent violators are pooled so
the curve never decreases. The fitted curve carries the version tag that
will be stamped on every score it produces; evaluations under a new curve
never collide with journal entries from an old one.`,
	RunE: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
	calibrateCmd.Flags().StringVar(&calibrateSamplesPath, "samples", "outcomes.csv", "CSV of observed score,won outcomes")
	calibrateCmd.Flags().StringVar(&calibrateVersion, "version", "", "Version tag for the fitted curve (required)")
	calibrateCmd.Flags().IntVar(&calibrateBins, "bins", 5, "Number of equal-count score bins")
	calibrateCmd.Flags().StringVar(&calibrateOutPath, "out", "", "Write the curve here instead of stdout")
	calibrateCmd.MarkFlagRequired("version")
}

func runCalibrate(cobraCmd *cobra.Command, args []string) error {
	f, err := os.Open(calibrateSamplesPath)
	if err != nil {
		return fmt.Errorf("failed to open samples: %w", err)
	}
	defer f.Close()

	samples, err := calculator.LoadCalibrationSamples(f)
	if err != nil {
		return err
	}

	calibrator, err := calculator.FitPiecewise(calibrateVersion, samples, calibrateBins)
	if err != nil {
		return err
	}

	curve := CalibrationCurve{Version: calibrator.Version()}
	for _, p := range calibrator.Points() {
		curve.Points = append(curve.Points, CalibrationPoint{Score: p.Score, Probability: p.Probability})
	}

	out, err := json.MarshalIndent(curve, "", "    ")
	if err != nil {
		return err
	}

	if calibrateOutPath != "" {
		if err := os.WriteFile(calibrateOutPath, out, 0644); err != nil {
			return fmt.Errorf("failed to write curve: %w", err)
		}
		fmt.Printf("fitted %d-point curve %s from %d samples to %s\n",
			len(curve.Points), curve.Version, len(samples), calibrateOutPath)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
