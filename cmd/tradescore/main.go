package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradescore",
	Short: "Deterministic scoring and calibration for options trade candidates",
	Long: `tradescore evaluates options trade candidates against versioned scoring
rubrics, producing an explainable 0-100 composite, a calibrated win
probability and per-factor journal rows for every candidate.

Identical inputs always produce identical results: scores are keyed by a
content fingerprint plus the rubric and calibration versions, so repeat
evaluations are served from the journal instead of being recomputed.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
