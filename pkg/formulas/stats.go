package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization basis for daily return series.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values.
// A single observation yields NaN (undefined with the N-1 denominator).
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the sample variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Variance(data, nil)
}

// Covariance calculates the sample covariance between two datasets
func Covariance(x, y []float64) float64 {
	if len(x) == 0 || len(y) == 0 || len(x) != len(y) {
		return 0
	}
	return stat.Covariance(x, y, nil)
}

// Correlation calculates the Pearson correlation coefficient between two datasets
func Correlation(x, y []float64) float64 {
	if len(x) == 0 || len(y) == 0 || len(x) != len(y) {
		return 0
	}
	return stat.Correlation(x, y, nil)
}

// AnnualizedReturn scales a mean daily return to an annual figure.
func AnnualizedReturn(meanDailyReturn float64) float64 {
	return meanDailyReturn * TradingDaysPerYear
}

// AnnualizedVolatility scales a daily volatility by sqrt(252 trading days).
func AnnualizedVolatility(dailyVolatility float64) float64 {
	return dailyVolatility * math.Sqrt(TradingDaysPerYear)
}

// CumulativeWealth builds the compounded wealth curve for a return series,
// starting at the given initial value.
// Wealth[i] = start * Π(1 + returns[0..i])
func CumulativeWealth(returns []float64, start float64) []float64 {
	wealth := make([]float64, len(returns))
	value := start
	for i, r := range returns {
		value *= 1 + r
		wealth[i] = value
	}
	return wealth
}
