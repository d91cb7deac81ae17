package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincanon/fincanon/pkg/formulas"
)

func TestMeanAndVolVectors(t *testing.T) {
	m := sampleMatrix(60)

	mu := MeanVector(m)
	vols := VolVector(m)
	require.Len(t, mu, 3)
	require.Len(t, vols, 3)

	for i, asset := range m.Assets {
		assert.InDelta(t, formulas.Mean(m.Data[asset]), mu[i], 1e-15)
		assert.InDelta(t, formulas.StdDev(m.Data[asset]), vols[i], 1e-15)
		assert.Greater(t, vols[i], 0.0)
	}
}

func TestCovarianceMatrix_SymmetricWithVarianceDiagonal(t *testing.T) {
	m := sampleMatrix(60)
	cov := CovarianceMatrix(m)

	for i, asset := range m.Assets {
		assert.InDelta(t, formulas.Variance(m.Data[asset]), cov[i][i], 1e-15)
		for j := range m.Assets {
			assert.Equal(t, cov[i][j], cov[j][i], "covariance matrix must be symmetric")
		}
	}
}

func TestCorrelationFromCovariance(t *testing.T) {
	m := sampleMatrix(60)
	corr := CorrelationFromCovariance(CovarianceMatrix(m))

	for i := range m.Assets {
		assert.InDelta(t, 1.0, corr[i][i], 1e-12)
		for j := range m.Assets {
			assert.LessOrEqual(t, math.Abs(corr[i][j]), 1.0+1e-12)
		}
	}

	// Cross-check one off-diagonal entry against the direct computation.
	direct := formulas.Correlation(m.Data["AAPL"], m.Data["MSFT"])
	assert.InDelta(t, direct, corr[0][1], 1e-12)
}

func TestSingleRowMatrix_PropagatesNaN(t *testing.T) {
	m := ReturnMatrix{
		Dates:  []string{"2023-01-02"},
		Assets: []string{"A", "B"},
		Data: map[string][]float64{
			"A": {0.01},
			"B": {0.02},
		},
	}

	vols := VolVector(m)
	cov := CovarianceMatrix(m)

	// Undefined, not a crash.
	assert.True(t, math.IsNaN(vols[0]))
	assert.True(t, math.IsNaN(cov[0][0]))
	assert.True(t, math.IsNaN(cov[0][1]))
}

func TestCorrelationFromCovariance_ZeroVariance(t *testing.T) {
	cov := [][]float64{
		{0.0, 0.0},
		{0.0, 0.0001},
	}
	corr := CorrelationFromCovariance(cov)
	assert.True(t, math.IsNaN(corr[0][1]), "zero-variance pair has no defined correlation")
	assert.InDelta(t, 1.0, corr[1][1], 1e-12)
}
