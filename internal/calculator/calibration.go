package calculator

import (
	"fmt"
	"io"
	"math"
	"sort"

	"tradescore/internal/domain"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

const CalibrationVersionNone = "none"

// Calibrator maps a raw 0-100 composite onto a success probability.
// The version is recorded with every result so cached entries stay
// attributable to the curve that produced them.
type Calibrator interface {
	Version() string
	Calibrate(rawScore float64) domain.CalibrationResult
}

// LinearCalibrator is the default policy: probability is the clamped
// composite over 100.
type LinearCalibrator struct{}

func (LinearCalibrator) Version() string {
	return CalibrationVersionNone
}

func (LinearCalibrator) Calibrate(rawScore float64) domain.CalibrationResult {
	clamped := math.Max(0, math.Min(100, rawScore))
	return domain.CalibrationResult{
		Version:     CalibrationVersionNone,
		Probability: round2(clamped / 100),
	}
}

// PiecewisePoint anchors the calibration curve at one score.
type PiecewisePoint struct {
	Score       float64
	Probability float64
}

// PiecewiseCalibrator interpolates linearly between fitted anchor points
// and clamps to the endpoints outside the fitted range.
type PiecewiseCalibrator struct {
	version string
	points  []PiecewisePoint
}

func NewPiecewiseCalibrator(version string, points []PiecewisePoint) (*PiecewiseCalibrator, error) {
	if version == "" {
		return nil, fmt.Errorf("calibration version is required")
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("piecewise calibration needs at least 2 points, got %d", len(points))
	}
	sorted := make([]PiecewisePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	for _, p := range sorted {
		if p.Probability < 0 || p.Probability > 1 {
			return nil, fmt.Errorf("probability %v at score %v is outside [0, 1]", p.Probability, p.Score)
		}
	}
	return &PiecewiseCalibrator{version: version, points: sorted}, nil
}

func (c *PiecewiseCalibrator) Version() string {
	return c.version
}

// Points returns the fitted anchor points in ascending score order.
func (c *PiecewiseCalibrator) Points() []PiecewisePoint {
	out := make([]PiecewisePoint, len(c.points))
	copy(out, c.points)
	return out
}

func (c *PiecewiseCalibrator) Calibrate(rawScore float64) domain.CalibrationResult {
	clamped := math.Max(0, math.Min(100, rawScore))
	return domain.CalibrationResult{
		Version:     c.version,
		Probability: round2(c.interpolate(clamped)),
	}
}

func (c *PiecewiseCalibrator) interpolate(score float64) float64 {
	points := c.points
	if score <= points[0].Score {
		return points[0].Probability
	}
	last := points[len(points)-1]
	if score >= last.Score {
		return last.Probability
	}
	for i := 1; i < len(points); i++ {
		if score <= points[i].Score {
			x0, x1 := points[i-1].Score, points[i].Score
			y0, y1 := points[i-1].Probability, points[i].Probability
			if x1 == x0 {
				return y1
			}
			t := (score - x0) / (x1 - x0)
			return y0 + t*(y1-y0)
		}
	}
	return last.Probability
}

// CalibrationSample is one observed trade outcome used to fit a curve.
type CalibrationSample struct {
	Score float64 `csv:"score"`
	Won   bool    `csv:"won"`
}

func LoadCalibrationSamples(r io.Reader) ([]CalibrationSample, error) {
	samples := []CalibrationSample{}
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		return nil, fmt.Errorf("failed to read calibration samples: %w", err)
	}
	return samples, nil
}

// FitPiecewise sorts observed outcomes by score, estimates a win rate per
// equal-count bin, and pools adjacent violators so the fitted curve is
// monotone non-decreasing in score.
func FitPiecewise(version string, samples []CalibrationSample, numBins int) (*PiecewiseCalibrator, error) {
	if numBins < 2 {
		return nil, fmt.Errorf("need at least 2 bins, got %d", numBins)
	}
	if len(samples) < numBins {
		return nil, fmt.Errorf("insufficient samples for calibration: need %d, got %d", numBins, len(samples))
	}

	sorted := make([]CalibrationSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})

	binSize := len(sorted) / numBins
	scores := []float64{}
	probs := []float64{}
	weights := []float64{}
	for i := 0; i < len(sorted); i += binSize {
		end := i + binSize
		if end > len(sorted) {
			end = len(sorted)
		}
		bin := sorted[i:end]

		binScores := make([]float64, 0, len(bin))
		wins := 0
		for _, s := range bin {
			binScores = append(binScores, s.Score)
			if s.Won {
				wins++
			}
		}
		mean, err := stats.Mean(binScores)
		if err != nil {
			return nil, err
		}
		scores = append(scores, mean)
		probs = append(probs, float64(wins)/float64(len(bin)))
		weights = append(weights, float64(len(bin)))
	}

	probs = isotonicProbs(probs, weights)

	points := make([]PiecewisePoint, 0, len(scores))
	for i := range scores {
		points = append(points, PiecewisePoint{Score: scores[i], Probability: probs[i]})
	}
	return NewPiecewiseCalibrator(version, points)
}

// isotonicProbs runs pool-adjacent-violators over the binned win rates,
// merging any bin that dips below its predecessor into a weighted block.
func isotonicProbs(probs, weights []float64) []float64 {
	type block struct {
		sum    float64
		weight float64
		count  int
	}

	blocks := []block{}
	for i := range probs {
		blocks = append(blocks, block{sum: probs[i] * weights[i], weight: weights[i], count: 1})
		for len(blocks) > 1 {
			last := len(blocks) - 1
			if blocks[last].sum/blocks[last].weight >= blocks[last-1].sum/blocks[last-1].weight {
				break
			}
			blocks[last-1].sum += blocks[last].sum
			blocks[last-1].weight += blocks[last].weight
			blocks[last-1].count += blocks[last].count
			blocks = blocks[:last]
		}
	}

	out := make([]float64, 0, len(probs))
	for _, b := range blocks {
		v := b.sum / b.weight
		for i := 0; i < b.count; i++ {
			out = append(out, v)
		}
	}
	return out
}
