package analytics

import (
	"fmt"
	"math"
)

// ReturnMatrix holds a dense panel of daily fractional returns: one row per
// trading day, one named column per asset. Dates are strictly increasing and
// the Assets slice carries the column order used everywhere a weight vector
// is aligned positionally.
type ReturnMatrix struct {
	Dates  []string
	Assets []string
	Data   map[string][]float64
}

// Validate checks the matrix is non-empty, dense, internally consistent, and
// free of non-finite returns.
func (m ReturnMatrix) Validate() error {
	if len(m.Assets) == 0 {
		return fmt.Errorf("return matrix has no asset columns")
	}
	if len(m.Dates) == 0 {
		return fmt.Errorf("return matrix has no date rows")
	}
	for _, asset := range m.Assets {
		series, ok := m.Data[asset]
		if !ok {
			return fmt.Errorf("missing return series for asset %s", asset)
		}
		if len(series) != len(m.Dates) {
			return fmt.Errorf("asset %s has %d observations, expected %d", asset, len(series), len(m.Dates))
		}
		for i, r := range series {
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return fmt.Errorf("asset %s has a non-finite return at row %d", asset, i+1)
			}
		}
	}
	return nil
}

// Column returns the return series for one asset.
func (m ReturnMatrix) Column(asset string) []float64 {
	return m.Data[asset]
}

// Row returns the cross-section of returns for one date index, ordered by
// the Assets slice.
func (m ReturnMatrix) Row(i int) []float64 {
	row := make([]float64, len(m.Assets))
	for j, asset := range m.Assets {
		row[j] = m.Data[asset][i]
	}
	return row
}

// EqualWeights builds the 1/N weight vector for n assets.
func EqualWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return weights
}

// ValidateWeights rejects weight vectors that do not match the asset count,
// carry negative entries, or do not sum to 1 within WeightSumTolerance.
// Weights are never silently renormalized.
func ValidateWeights(weights []float64, numAssets int) error {
	if len(weights) != numAssets {
		return fmt.Errorf("got %d weights for %d assets", len(weights), numAssets)
	}
	sum := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weight %d is not finite", i)
		}
		if w < 0 {
			return fmt.Errorf("weight %d is negative (%g): short positions are not allowed", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return fmt.Errorf("weights sum to %g, expected 1.0 within %g", sum, WeightSumTolerance)
	}
	return nil
}
