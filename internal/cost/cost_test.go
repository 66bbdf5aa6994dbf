package cost

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testAverages = Averages{
	ClassifyIn:  300,
	ClassifyOut: 1,
	BlogIn:      350,
	BlogOut:     700,
	SocialIn:    300,
	SocialOut:   220,
}

func testParams(n int, p float64) Params {
	return Params{
		Items:            n,
		SelectedFraction: p,
		Averages:         testAverages,
		InputPrice:       0.15 / 1_000_000,
		OutputPrice:      0.60 / 1_000_000,
	}
}

func TestPredict_WorkedExamples(t *testing.T) {
	est, err := Predict(testParams(60, 0.4))
	require.NoError(t, err)
	require.InDelta(t, 33_600, est.InputTokens, 0.5)
	require.InDelta(t, 22_140, est.OutputTokens, 0.5)
	require.InDelta(t, 0.018, est.CostUSD, 0.001)

	est, err = Predict(testParams(30, 0.4))
	require.NoError(t, err)
	require.InDelta(t, 0.009, est.CostUSD, 0.001)
}

func TestPredict_ZeroItems(t *testing.T) {
	for _, p := range []float64{0, 0.5, 1} {
		est, err := Predict(testParams(0, p))
		require.NoError(t, err)
		require.Zero(t, est.InputTokens)
		require.Zero(t, est.OutputTokens)
		require.Zero(t, est.CostUSD)
	}
}

func TestPredict_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Params)
	}{
		{"negative item count", func(p *Params) { p.Items = -1 }},
		{"fraction below zero", func(p *Params) { p.SelectedFraction = -0.1 }},
		{"fraction above one", func(p *Params) { p.SelectedFraction = 1.5 }},
		{"negative price", func(p *Params) { p.InputPrice = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := testParams(10, 0.4)
			tc.mod(&params)
			_, err := Predict(params)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPredict_Monotonic(t *testing.T) {
	var prev Estimate
	for n := 0; n <= 100; n += 10 {
		est, err := Predict(testParams(n, 0.4))
		require.NoError(t, err)
		require.GreaterOrEqual(t, est.CostUSD, prev.CostUSD)
		require.GreaterOrEqual(t, est.InputTokens, prev.InputTokens)
		require.GreaterOrEqual(t, est.OutputTokens, prev.OutputTokens)
		prev = est
	}

	prev = Estimate{}
	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		est, err := Predict(testParams(50, p))
		require.NoError(t, err)
		require.GreaterOrEqual(t, est.CostUSD, prev.CostUSD)
		prev = est
	}
}

func TestActual(t *testing.T) {
	est := Actual(1_000_000, 500_000, 0.15/1_000_000, 0.60/1_000_000)
	require.InDelta(t, 0.15+0.30, est.CostUSD, 1e-9)

	require.Zero(t, Actual(0, 0, 1, 1).CostUSD)
}
