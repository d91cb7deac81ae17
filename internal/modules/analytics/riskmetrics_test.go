package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawdownSeries(t *testing.T) {
	// Up, up, crash, partial recovery.
	returns := []float64{0.1, 0.1, -0.5, 0.2}
	drawdown := DrawdownSeries(returns)

	require.Len(t, drawdown, 4)
	assert.InDelta(t, 0.0, drawdown[0], 1e-12)
	assert.InDelta(t, 0.0, drawdown[1], 1e-12)
	assert.InDelta(t, -0.5, drawdown[2], 1e-12)
	assert.InDelta(t, -0.4, drawdown[3], 1e-12)
	for _, d := range drawdown {
		assert.LessOrEqual(t, d, 0.0)
	}
}

func TestDrawdownSeries_TotalLoss(t *testing.T) {
	// A -100% day zeroes the wealth curve; the series pins at -1 from there
	// on instead of dividing by a zero peak.
	drawdown := DrawdownSeries([]float64{-1.0, 0.01, 0.02})

	require.Len(t, drawdown, 3)
	for i, d := range drawdown {
		assert.Equal(t, -1.0, d, "index %d", i)
		assert.False(t, math.IsNaN(d))
	}
}

func TestDrawdownSeries_TotalLossAfterGains(t *testing.T) {
	drawdown := DrawdownSeries([]float64{0.1, -1.0, 0.0})

	require.Len(t, drawdown, 3)
	assert.InDelta(t, 0.0, drawdown[0], 1e-12)
	assert.InDelta(t, -1.0, drawdown[1], 1e-12)
	assert.InDelta(t, -1.0, drawdown[2], 1e-12)
}

func TestMaxDrawdown_TotalLoss(t *testing.T) {
	assert.Equal(t, -1.0, MaxDrawdown([]float64{-1.0, 0.01}))
}

func TestMaxDrawdown(t *testing.T) {
	assert.InDelta(t, -0.5, MaxDrawdown([]float64{0.1, 0.1, -0.5, 0.2}), 1e-12)
}

func TestMaxDrawdown_NonDecreasingCurve(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown([]float64{0.01, 0.0, 0.02, 0.0}))
}

func TestSortinoRatio(t *testing.T) {
	returns := []float64{0.02, -0.01, 0.03, -0.02, 0.01}
	sortino := SortinoRatio(returns, 0.0)

	require.False(t, math.IsNaN(sortino))
	assert.Greater(t, sortino, 0.0, "mean excess return is positive")
}

func TestSortinoRatio_NoDownside(t *testing.T) {
	assert.True(t, math.IsNaN(SortinoRatio([]float64{0.01, 0.02, 0.03}, 0.0)))
}

func TestSortinoRatio_SingleDownsideObservation(t *testing.T) {
	// One downside point has an undefined sample deviation.
	assert.True(t, math.IsNaN(SortinoRatio([]float64{0.01, -0.02, 0.03}, 0.0)))
}

func TestBeta_AgainstSelfIsOne(t *testing.T) {
	series := syntheticSeries(100, 0.0004, 0.01, 1)
	assert.InDelta(t, 1.0, Beta(series, series), 1e-9)
}

func TestBeta_ScaledBenchmark(t *testing.T) {
	benchmark := syntheticSeries(100, 0.0004, 0.01, 1)
	portfolio := make([]float64, len(benchmark))
	for i, r := range benchmark {
		portfolio[i] = 1.5 * r
	}
	assert.InDelta(t, 1.5, Beta(portfolio, benchmark), 1e-9)
}

func TestBeta_MismatchedLengths(t *testing.T) {
	assert.True(t, math.IsNaN(Beta([]float64{0.01, 0.02}, []float64{0.01, 0.02, 0.03})))
}

func TestBeta_ConstantBenchmark(t *testing.T) {
	portfolio := syntheticSeries(50, 0.0004, 0.01, 1)
	benchmark := make([]float64, 50)
	for i := range benchmark {
		benchmark[i] = 0.001
	}
	assert.True(t, math.IsNaN(Beta(portfolio, benchmark)), "zero-variance benchmark yields no value, not a division error")
}

func TestDiversificationRatio(t *testing.T) {
	m := sampleMatrix(120)
	weights := EqualWeights(3)
	vols := VolVector(m)
	portVol := PortfolioVolatility(CovarianceMatrix(m), weights)

	ratio := DiversificationRatio(weights, vols, portVol)
	assert.GreaterOrEqual(t, ratio, 1.0, "imperfectly correlated assets must diversify")
}

func TestDiversificationRatio_ZeroVolatility(t *testing.T) {
	assert.True(t, math.IsNaN(DiversificationRatio([]float64{0.5, 0.5}, []float64{0, 0}, 0)))
}

func TestRollingSharpe_SkipsPartialWindows(t *testing.T) {
	n := 100
	dates := tradingDates("2023-01-02", n)
	returns := syntheticSeries(n, 0.0005, 0.01, 1)

	points := RollingSharpe(dates, returns, DefaultRiskFreeRate)

	require.Len(t, points, n-RollingSharpeWindow+1)
	assert.Equal(t, dates[RollingSharpeWindow-1], points[0].Date)
	assert.Equal(t, dates[n-1], points[len(points)-1].Date)
	for _, p := range points {
		require.NotNil(t, p.Sharpe)
	}
}

func TestRollingSharpe_ShortSeries(t *testing.T) {
	dates := tradingDates("2023-01-02", 30)
	returns := syntheticSeries(30, 0.0005, 0.01, 1)
	assert.Empty(t, RollingSharpe(dates, returns, DefaultRiskFreeRate))
}

func TestQuarterlyMetrics_DropsThinQuarters(t *testing.T) {
	// 70 trading days from early January: Q1 is full, Q2 gets only a few
	// days and must be dropped.
	n := 70
	dates := tradingDates("2023-01-02", n)
	returns := syntheticSeries(n, 0.0005, 0.01, 1)

	metrics := QuarterlyMetrics(dates, returns, DefaultRiskFreeRate)

	require.Len(t, metrics, 1)
	assert.Equal(t, "2023Q1", metrics[0].Quarter)
	assert.GreaterOrEqual(t, metrics[0].Days, QuarterMinObservations)
	assert.NotNil(t, metrics[0].Sharpe)
}

func TestQuarterlyMetrics_MultipleQuarters(t *testing.T) {
	n := 180
	dates := tradingDates("2023-01-02", n)
	returns := syntheticSeries(n, 0.0005, 0.01, 1)

	metrics := QuarterlyMetrics(dates, returns, DefaultRiskFreeRate)

	require.GreaterOrEqual(t, len(metrics), 2)
	assert.Equal(t, "2023Q1", metrics[0].Quarter)
	assert.Equal(t, "2023Q2", metrics[1].Quarter)
}

func TestTopCorrelations(t *testing.T) {
	m := sampleMatrix(120)
	corr := CorrelationFromCovariance(CovarianceMatrix(m))

	pairs := TopCorrelations(corr, m.Assets)

	// 3 assets give 3 unique pairs, ranked by absolute correlation.
	require.Len(t, pairs, 3)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(pairs[i-1].Correlation),
			math.Abs(pairs[i].Correlation))
	}
}

func TestTopCorrelations_CapsAtFive(t *testing.T) {
	n := 7 // 21 unique pairs
	assets := make([]string, n)
	corr := make([][]float64, n)
	for i := range corr {
		assets[i] = string(rune('A' + i))
		corr[i] = make([]float64, n)
		for j := range corr[i] {
			corr[i][j] = float64(i+j) / float64(2*n)
		}
		corr[i][i] = 1
	}

	pairs := TopCorrelations(corr, assets)
	assert.Len(t, pairs, TopCorrelationCount)
}
