package calculator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_LinearCalibrator(t *testing.T) {
	c := LinearCalibrator{}
	require.Equal(t, "none", c.Version())

	for _, tc := range []struct {
		raw  float64
		want float64
	}{
		{raw: 81.25, want: 0.81},
		{raw: 100, want: 1},
		{raw: 0, want: 0},
		{raw: -15, want: 0},
		{raw: 250, want: 1},
		{raw: 66.67, want: 0.67},
	} {
		result := c.Calibrate(tc.raw)
		require.Equal(t, "none", result.Version)
		require.InDelta(t, tc.want, result.Probability, 1e-9, "raw %v", tc.raw)
	}
}

func Test_PiecewiseCalibrator(t *testing.T) {
	t.Run("interpolates between anchors and clamps outside them", func(t *testing.T) {
		c, err := NewPiecewiseCalibrator("pcs-2026q1", []PiecewisePoint{
			{Score: 80, Probability: 0.9},
			{Score: 20, Probability: 0.3},
			{Score: 50, Probability: 0.5},
		})
		require.NoError(t, err)

		for _, tc := range []struct {
			raw  float64
			want float64
		}{
			{raw: 20, want: 0.3},
			{raw: 35, want: 0.4},
			{raw: 50, want: 0.5},
			{raw: 65, want: 0.7},
			{raw: 80, want: 0.9},
			{raw: 5, want: 0.3},
			{raw: 99, want: 0.9},
		} {
			result := c.Calibrate(tc.raw)
			require.Equal(t, "pcs-2026q1", result.Version)
			require.InDelta(t, tc.want, result.Probability, 1e-9, "raw %v", tc.raw)
		}
	})

	t.Run("rejects bad configurations", func(t *testing.T) {
		_, err := NewPiecewiseCalibrator("", []PiecewisePoint{{Score: 0, Probability: 0}, {Score: 100, Probability: 1}})
		require.Error(t, err)

		_, err = NewPiecewiseCalibrator("v1", []PiecewisePoint{{Score: 50, Probability: 0.5}})
		require.Error(t, err)

		_, err = NewPiecewiseCalibrator("v1", []PiecewisePoint{
			{Score: 0, Probability: -0.1},
			{Score: 100, Probability: 1},
		})
		require.Error(t, err)
	})
}

func Test_FitPiecewise(t *testing.T) {
	t.Run("fits a monotone curve from binned win rates", func(t *testing.T) {
		samples := []CalibrationSample{}
		// low scores mostly lose, high scores mostly win, with one noisy
		// pocket in the middle that pooling has to smooth out
		for i := 0; i < 20; i++ {
			samples = append(samples, CalibrationSample{Score: 20, Won: i < 4})
			samples = append(samples, CalibrationSample{Score: 45, Won: i < 12})
			samples = append(samples, CalibrationSample{Score: 55, Won: i < 8})
			samples = append(samples, CalibrationSample{Score: 85, Won: i < 18})
		}

		c, err := FitPiecewise("fit-v1", samples, 4)
		require.NoError(t, err)
		require.Equal(t, "fit-v1", c.Version())

		last := -1.0
		for _, p := range c.points {
			require.GreaterOrEqual(t, p.Probability, last)
			last = p.Probability
		}

		// the noisy 45/55 pocket pools to its joint win rate
		mid := c.Calibrate(50)
		require.InDelta(t, 0.5, mid.Probability, 1e-9)

		low := c.Calibrate(10)
		require.InDelta(t, 0.2, low.Probability, 1e-9)

		high := c.Calibrate(95)
		require.InDelta(t, 0.9, high.Probability, 1e-9)
	})

	t.Run("rejects insufficient samples", func(t *testing.T) {
		_, err := FitPiecewise("v1", []CalibrationSample{{Score: 50, Won: true}}, 4)
		require.Error(t, err)

		_, err = FitPiecewise("v1", nil, 1)
		require.Error(t, err)
	})
}

func Test_LoadCalibrationSamples(t *testing.T) {
	csv := strings.Join([]string{
		"score,won",
		"81.25,true",
		"42.5,false",
		"66.67,true",
	}, "\n")

	samples, err := LoadCalibrationSamples(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, samples, 3)
	require.Equal(t, 81.25, samples[0].Score)
	require.True(t, samples[0].Won)
	require.False(t, samples[1].Won)

	_, err = LoadCalibrationSamples(strings.NewReader("score,won\n50,true,extra"))
	require.Error(t, err)
}
