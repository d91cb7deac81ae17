package analytics

import (
	"math"

	"github.com/fincanon/fincanon/pkg/formulas"
)

// MeanVector computes the per-asset mean daily return, ordered by m.Assets.
func MeanVector(m ReturnMatrix) []float64 {
	mu := make([]float64, len(m.Assets))
	for i, asset := range m.Assets {
		mu[i] = formulas.Mean(m.Data[asset])
	}
	return mu
}

// VolVector computes the per-asset sample standard deviation of daily
// returns, ordered by m.Assets. A single-row matrix yields NaN entries,
// which propagate to "no value" in the report.
func VolVector(m ReturnMatrix) []float64 {
	vols := make([]float64, len(m.Assets))
	for i, asset := range m.Assets {
		vols[i] = formulas.StdDev(m.Data[asset])
	}
	return vols
}

// CovarianceMatrix computes the sample covariance matrix (N-1 denominator,
// consistent with VolVector) ordered by m.Assets.
func CovarianceMatrix(m ReturnMatrix) [][]float64 {
	n := len(m.Assets)
	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		ri := m.Data[m.Assets[i]]
		for j := i; j < n; j++ {
			c := formulas.Covariance(ri, m.Data[m.Assets[j]])
			cov[i][j] = c
			if i != j {
				cov[j][i] = c
			}
		}
	}
	return cov
}

// CorrelationFromCovariance derives the correlation matrix from a covariance
// matrix. Pairs involving a zero-variance asset come out NaN rather than
// raising a division error.
func CorrelationFromCovariance(cov [][]float64) [][]float64 {
	n := len(cov)
	corr := make([][]float64, n)
	for i := range corr {
		corr[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			denom := math.Sqrt(cov[i][i] * cov[j][j])
			if denom > 0 {
				corr[i][j] = cov[i][j] / denom
			} else {
				corr[i][j] = math.NaN()
			}
		}
	}
	return corr
}
