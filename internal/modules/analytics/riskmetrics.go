package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fincanon/fincanon/pkg/formulas"
)

// DrawdownSeries builds the drawdown series for a portfolio return series:
// the cumulative wealth curve C_t, its running maximum M_t, and
// D_t = (C_t - M_t) / M_t. A return of -1 (or below) drives the wealth
// curve to zero or negative; from that point the drawdown is pinned at -1,
// total loss, instead of dividing by a non-positive peak. Every entry is
// <= 0 and finite.
func DrawdownSeries(returns []float64) []float64 {
	wealth := formulas.CumulativeWealth(returns, 1.0)
	drawdown := make([]float64, len(wealth))
	peak := math.Inf(-1)
	for i, value := range wealth {
		if value > peak {
			peak = value
		}
		if peak <= 0 {
			drawdown[i] = -1
			continue
		}
		drawdown[i] = (value - peak) / peak
	}
	return drawdown
}

// MaxDrawdown reports the worst peak-to-trough decline of the cumulative
// wealth curve: the most negative drawdown, or exactly 0 for a
// non-decreasing curve.
func MaxDrawdown(returns []float64) float64 {
	worst := 0.0
	for _, d := range DrawdownSeries(returns) {
		if d < worst {
			worst = d
		}
	}
	return worst
}

// SortinoRatio computes mean excess return over the sample standard
// deviation of the sub-zero excess returns. NaN when there are no negative
// excess returns or the downside deviation is zero.
func SortinoRatio(returns []float64, riskFreeDaily float64) float64 {
	excess := make([]float64, len(returns))
	var downside []float64
	for i, r := range returns {
		excess[i] = r - riskFreeDaily
		if excess[i] < 0 {
			downside = append(downside, excess[i])
		}
	}
	if len(downside) == 0 {
		return math.NaN()
	}
	downsideDev := formulas.StdDev(downside)
	if downsideDev == 0 || math.IsNaN(downsideDev) {
		return math.NaN()
	}
	return formulas.Mean(excess) / downsideDev
}

// Beta computes cov(portfolio, benchmark) / var(benchmark). Mismatched
// series lengths or a constant benchmark yield NaN instead of an error.
func Beta(portfolio, benchmark []float64) float64 {
	if len(portfolio) != len(benchmark) || len(portfolio) < 2 {
		return math.NaN()
	}
	benchVar := formulas.Variance(benchmark)
	if benchVar == 0 || math.IsNaN(benchVar) {
		return math.NaN()
	}
	return formulas.Covariance(portfolio, benchmark) / benchVar
}

// DiversificationRatio computes (w · asset vols) / portfolio vol. It is >= 1
// whenever the portfolio volatility is positive; NaN when it is zero.
func DiversificationRatio(weights, assetVols []float64, portfolioVol float64) float64 {
	if portfolioVol == 0 || math.IsNaN(portfolioVol) {
		return math.NaN()
	}
	var weightedVol float64
	for i := range weights {
		weightedVol += weights[i] * assetVols[i]
	}
	return weightedVol / portfolioVol
}

// RollingSharpe computes the annualized Sharpe ratio of a fixed trailing
// window for each day from index RollingSharpeWindow-1 onward. The first
// 89 days produce no points: partial windows are skipped entirely.
func RollingSharpe(dates []string, returns []float64, riskFreeAnnual float64) []RollingSharpePoint {
	points := []RollingSharpePoint{}
	if len(returns) < RollingSharpeWindow {
		return points
	}
	for i := RollingSharpeWindow - 1; i < len(returns); i++ {
		window := returns[i-RollingSharpeWindow+1 : i+1]
		_, _, sharpe := Annualize(formulas.Mean(window), formulas.StdDev(window), riskFreeAnnual)
		points = append(points, RollingSharpePoint{
			Date:   dates[i],
			Sharpe: finitePtr(sharpe),
		})
	}
	return points
}

// quarterLabel formats a date into its calendar quarter, e.g. "2023Q1".
func quarterLabel(t time.Time) string {
	return fmt.Sprintf("%04dQ%d", t.Year(), (int(t.Month())-1)/3+1)
}

// QuarterlyMetrics partitions the date axis into calendar quarters and
// computes annualized return, volatility and Sharpe for each quarter with at
// least QuarterMinObservations trading days. Thinner quarters are dropped,
// not reported as zero.
func QuarterlyMetrics(dates []string, returns []float64, riskFreeAnnual float64) []QuarterMetrics {
	byQuarter := make(map[string][]float64)
	order := []string{}
	for i, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		label := quarterLabel(t)
		if _, seen := byQuarter[label]; !seen {
			order = append(order, label)
		}
		byQuarter[label] = append(byQuarter[label], returns[i])
	}

	metrics := []QuarterMetrics{}
	for _, label := range order {
		window := byQuarter[label]
		if len(window) < QuarterMinObservations {
			continue
		}
		retAnnual, volAnnual, sharpe := Annualize(formulas.Mean(window), formulas.StdDev(window), riskFreeAnnual)
		metrics = append(metrics, QuarterMetrics{
			Quarter:    label,
			Return:     retAnnual,
			Volatility: volAnnual,
			Sharpe:     finitePtr(sharpe),
			Days:       len(window),
		})
	}
	return metrics
}

// TopCorrelations enumerates all unique unordered asset pairs, ranks them by
// absolute correlation descending, and keeps the top TopCorrelationCount.
// Ties keep the original enumeration order (stable sort). Pairs with an
// undefined correlation are excluded.
func TopCorrelations(corr [][]float64, assets []string) []CorrelationPair {
	pairs := []CorrelationPair{}
	for i := 0; i < len(assets); i++ {
		for j := i + 1; j < len(assets); j++ {
			if math.IsNaN(corr[i][j]) {
				continue
			}
			pairs = append(pairs, CorrelationPair{
				Asset1:      assets[i],
				Asset2:      assets[j],
				Correlation: corr[i][j],
			})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Correlation) > math.Abs(pairs[b].Correlation)
	})
	if len(pairs) > TopCorrelationCount {
		pairs = pairs[:TopCorrelationCount]
	}
	return pairs
}
