package analytics

import (
	"math"

	"github.com/fincanon/fincanon/pkg/formulas"
)

// PortfolioReturn computes the weighted expected daily return w·μ.
func PortfolioReturn(mu, weights []float64) float64 {
	var ret float64
	for i := range weights {
		ret += mu[i] * weights[i]
	}
	return ret
}

// PortfolioVariance computes wᵀΣw, clamped at zero so that floating-point
// noise in Σ never produces a negative variance.
func PortfolioVariance(cov [][]float64, weights []float64) float64 {
	var variance float64
	for i := range weights {
		for j := range weights {
			variance += weights[i] * weights[j] * cov[i][j]
		}
	}
	return math.Max(variance, 0)
}

// PortfolioVolatility computes sqrt(wᵀΣw).
func PortfolioVolatility(cov [][]float64, weights []float64) float64 {
	return math.Sqrt(PortfolioVariance(cov, weights))
}

// SharpeRatio computes (return - riskFree) / volatility. A zero volatility
// yields NaN: absence of a defined ratio, not an error.
func SharpeRatio(ret, volatility, riskFree float64) float64 {
	if volatility == 0 {
		return math.NaN()
	}
	return (ret - riskFree) / volatility
}

// PortfolioSeries computes the daily portfolio return series w·r_t.
func PortfolioSeries(m ReturnMatrix, weights []float64) []float64 {
	series := make([]float64, len(m.Dates))
	for j, asset := range m.Assets {
		col := m.Data[asset]
		w := weights[j]
		for t := range series {
			series[t] += w * col[t]
		}
	}
	return series
}

// Annualize converts daily return and volatility figures to annual ones and
// recomputes the Sharpe ratio on the annualized figures with the annual
// risk-free rate, so the risk-free offset is scaled correctly (not simply
// daily Sharpe × √252).
func Annualize(retDaily, volDaily, riskFreeAnnual float64) (retAnnual, volAnnual, sharpeAnnual float64) {
	retAnnual = formulas.AnnualizedReturn(retDaily)
	volAnnual = formulas.AnnualizedVolatility(volDaily)
	sharpeAnnual = SharpeRatio(retAnnual, volAnnual, riskFreeAnnual)
	return retAnnual, volAnnual, sharpeAnnual
}
