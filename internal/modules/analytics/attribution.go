package analytics

import "math"

// ReturnContributions decomposes the annualized portfolio return per asset:
// μ_i × w_i × 252. The contributions sum to the annual portfolio return.
func ReturnContributions(mu, weights []float64) []float64 {
	contributions := make([]float64, len(weights))
	for i := range weights {
		contributions[i] = mu[i] * weights[i] * TradingDaysPerYear
	}
	return contributions
}

// VarianceContributions computes the Euler allocation of annualized
// variance: (Σw)_i / wᵀΣw × w_i × 252 per asset. When the portfolio
// variance is zero all contributions are zero rather than NaN.
func VarianceContributions(cov [][]float64, weights []float64) []float64 {
	n := len(weights)
	contributions := make([]float64, n)
	portfolioVar := PortfolioVariance(cov, weights)
	if portfolioVar == 0 || math.IsNaN(portfolioVar) {
		return contributions
	}
	for i := 0; i < n; i++ {
		var marginal float64
		for j := 0; j < n; j++ {
			marginal += cov[i][j] * weights[j]
		}
		contributions[i] = marginal / portfolioVar * weights[i] * TradingDaysPerYear
	}
	return contributions
}

// AssetSharpes computes each asset's own annualized Sharpe ratio from its
// daily mean and volatility. Zero-volatility assets yield NaN.
func AssetSharpes(mu, vols []float64, riskFreeAnnual float64) []float64 {
	sharpes := make([]float64, len(mu))
	for i := range mu {
		_, _, sharpes[i] = Annualize(mu[i], vols[i], riskFreeAnnual)
	}
	return sharpes
}
