// Package cost predicts and reconciles the token spend of a pipeline run.
// It is purely computational; all prices and averages come from the caller.
package cost

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks estimate parameters that would produce a misleading
// figure (negative item count, selected fraction outside [0,1]).
var ErrInvalidInput = errors.New("cost: invalid input")

// Averages holds the per-call token averages for each of the three model
// calls, either assumed up front or observed after a run.
type Averages struct {
	ClassifyIn  int
	ClassifyOut int
	BlogIn      int
	BlogOut     int
	SocialIn    int
	SocialOut   int
}

// Params describes one hypothetical run: N items fetched, a fraction p of
// them selected for generation, and the billing constants.
type Params struct {
	Items            int     // N
	SelectedFraction float64 // p
	Averages         Averages
	InputPrice       float64 // USD per input token
	OutputPrice      float64 // USD per output token
}

// Estimate is the predicted or reconciled spend for a run.
type Estimate struct {
	InputTokens  float64
	OutputTokens float64
	CostUSD      float64
}

// Predict computes the expected spend for a run. Every item is classified
// once; the selected fraction additionally pays for the blog and social
// generation calls.
func Predict(p Params) (Estimate, error) {
	if p.Items < 0 {
		return Estimate{}, fmt.Errorf("%w: item count %d is negative", ErrInvalidInput, p.Items)
	}
	if p.SelectedFraction < 0 || p.SelectedFraction > 1 {
		return Estimate{}, fmt.Errorf("%w: selected fraction %v outside [0,1]", ErrInvalidInput, p.SelectedFraction)
	}
	if p.InputPrice < 0 || p.OutputPrice < 0 {
		return Estimate{}, fmt.Errorf("%w: negative token price", ErrInvalidInput)
	}

	n := float64(p.Items)
	selected := n * p.SelectedFraction

	in := n*float64(p.Averages.ClassifyIn) + selected*float64(p.Averages.BlogIn+p.Averages.SocialIn)
	out := n*float64(p.Averages.ClassifyOut) + selected*float64(p.Averages.BlogOut+p.Averages.SocialOut)

	return Estimate{
		InputTokens:  in,
		OutputTokens: out,
		CostUSD:      in*p.InputPrice + out*p.OutputPrice,
	}, nil
}

// Actual converts observed token totals into a spend figure using the same
// prices as Predict. Used for post-run reconciliation against the estimate.
func Actual(inputTokens, outputTokens int, inputPrice, outputPrice float64) Estimate {
	in := float64(inputTokens)
	out := float64(outputTokens)
	return Estimate{
		InputTokens:  in,
		OutputTokens: out,
		CostUSD:      in*inputPrice + out*outputPrice,
	}
}
