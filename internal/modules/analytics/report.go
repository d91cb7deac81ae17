// Package analytics computes risk/return analytics and efficient-frontier
// portfolio optimization from a matrix of historical daily returns. The
// engine is a pure function of its inputs: no I/O, no caching, no state
// across calls. Numerical degeneracy (zero volatility, empty downside
// sample, absent benchmark) degrades individual fields to "no value", never
// the whole report.
package analytics

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/fincanon/fincanon/pkg/formulas"
)

// EngineConfig holds the report conventions an Engine applies to every call.
type EngineConfig struct {
	RiskFreeRate    float64 // annual, converted to daily by /252
	FrontierPoints  int
	BenchmarkSymbol string
}

// Engine assembles analytics reports. It is stateless per call and safe for
// concurrent use.
type Engine struct {
	cfg EngineConfig
	log zerolog.Logger
}

// NewEngine creates an analytics engine, applying defaults for zero-valued
// configuration fields.
func NewEngine(cfg EngineConfig, log zerolog.Logger) *Engine {
	if cfg.RiskFreeRate == 0 {
		cfg.RiskFreeRate = DefaultRiskFreeRate
	}
	if cfg.FrontierPoints <= 0 {
		cfg.FrontierPoints = DefaultFrontierPoints
	}
	if cfg.BenchmarkSymbol == "" {
		cfg.BenchmarkSymbol = DefaultBenchmarkSymbol
	}
	return &Engine{
		cfg: cfg,
		log: log.With().Str("component", "analytics").Logger(),
	}
}

// Analyze computes the full analytics report for a return matrix. A nil
// weight vector defaults to equal weighting. Invalid inputs (malformed
// matrix, weights off the simplex) are rejected with a descriptive error
// before any computation; weights are never silently renormalized.
func (e *Engine) Analyze(m ReturnMatrix, weights []float64) (*AnalyticsReport, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid return matrix: %w", err)
	}
	if weights == nil {
		weights = EqualWeights(len(m.Assets))
	} else if err := ValidateWeights(weights, len(m.Assets)); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}

	riskFreeAnnual := e.cfg.RiskFreeRate
	riskFreeDaily := riskFreeAnnual / TradingDaysPerYear

	// Statistics primitives, computed once and shared downstream.
	mu := MeanVector(m)
	vols := VolVector(m)
	cov := CovarianceMatrix(m)
	corr := CorrelationFromCovariance(cov)

	// Portfolio aggregation.
	portReturn := PortfolioReturn(mu, weights)
	portVol := PortfolioVolatility(cov, weights)
	sharpeDaily := SharpeRatio(portReturn, portVol, riskFreeDaily)
	retAnnual, volAnnual, sharpeAnnual := Annualize(portReturn, portVol, riskFreeAnnual)

	portfolioReturns := PortfolioSeries(m, weights)

	// Sortino annualization follows the original convention of scaling the
	// daily ratio by sqrt(252). This is looser than the Sharpe annualization
	// above, which recomputes from annualized figures; see DESIGN.md.
	sortinoDaily := SortinoRatio(portfolioReturns, riskFreeDaily)
	sortinoAnnual := sortinoDaily * math.Sqrt(TradingDaysPerYear)

	beta := math.NaN()
	if benchmark, ok := m.Data[e.cfg.BenchmarkSymbol]; ok {
		beta = Beta(portfolioReturns, benchmark)
	}

	report := &AnalyticsReport{
		AssetMeans: make(map[string]float64, len(m.Assets)),
		AssetVols:  make(map[string]*float64, len(m.Assets)),

		PortfolioReturnDaily:  portReturn,
		PortfolioReturnAnnual: retAnnual,
		PortfolioVolDaily:     finitePtr(portVol),
		PortfolioVolAnnual:    finitePtr(volAnnual),
		PortfolioSharpeDaily:  finitePtr(sharpeDaily),
		PortfolioSharpeAnnual: finitePtr(sharpeAnnual),

		MaxDrawdown:          finitePtr(MaxDrawdown(portfolioReturns)),
		SortinoRatioDaily:    finitePtr(sortinoDaily),
		SortinoRatioAnnual:   finitePtr(sortinoAnnual),
		Beta:                 finitePtr(beta),
		DiversificationRatio: finitePtr(DiversificationRatio(weights, vols, portVol)),

		CorrelationMatrix: correlationMap(corr, m.Assets),
		TopCorrelations:   TopCorrelations(corr, m.Assets),

		AssetWeights:               make(map[string]float64, len(m.Assets)),
		AssetReturnContributions:   make(map[string]float64, len(m.Assets)),
		AssetVarianceContributions: make(map[string]float64, len(m.Assets)),
		AssetSharpes:               make(map[string]*float64, len(m.Assets)),

		WindowedMetrics: QuarterlyMetrics(m.Dates, portfolioReturns, riskFreeAnnual),
		TimeSeries:      e.buildTimeSeries(m, portfolioReturns, riskFreeAnnual),
	}

	returnContribs := ReturnContributions(mu, weights)
	varianceContribs := VarianceContributions(cov, weights)
	assetSharpes := AssetSharpes(mu, vols, riskFreeAnnual)
	for i, asset := range m.Assets {
		report.AssetMeans[asset] = mu[i]
		report.AssetVols[asset] = finitePtr(vols[i])
		report.AssetWeights[asset] = weights[i]
		report.AssetReturnContributions[asset] = finiteOrZero(returnContribs[i])
		report.AssetVarianceContributions[asset] = finiteOrZero(varianceContribs[i])
		report.AssetSharpes[asset] = finitePtr(assetSharpes[i])
	}

	e.runOptimizations(report, mu, cov, riskFreeDaily, riskFreeAnnual)

	e.log.Info().
		Int("assets", len(m.Assets)).
		Int("days", len(m.Dates)).
		Int("frontier_points", len(report.EfficientFrontier)).
		Msg("Assembled analytics report")

	return report, nil
}

// runOptimizations fills the optimal portfolio and frontier sections, with
// all figures annualized the same way as the headline portfolio statistics.
func (e *Engine) runOptimizations(report *AnalyticsReport, mu []float64, cov [][]float64, riskFreeDaily, riskFreeAnnual float64) {
	optimizer := NewOptimizer(mu, cov, riskFreeDaily, e.log)

	report.OptimalPortfolios = OptimalPortfolios{
		MinVariance: annualizedPortfolio(optimizer.MinVariance(), riskFreeAnnual),
		MaxSharpe:   annualizedPortfolio(optimizer.MaxSharpe(), riskFreeAnnual),
	}

	frontier := optimizer.Frontier(e.cfg.FrontierPoints)
	for i := range frontier {
		frontier[i].Return = formulas.AnnualizedReturn(frontier[i].Return)
		frontier[i].Volatility = formulas.AnnualizedVolatility(frontier[i].Volatility)
	}
	report.EfficientFrontier = frontier
}

// buildTimeSeries assembles the charting outputs: cumulative portfolio value
// starting at 100, per-asset cumulative values, the drawdown series, and the
// rolling Sharpe series.
func (e *Engine) buildTimeSeries(m ReturnMatrix, portfolioReturns []float64, riskFreeAnnual float64) TimeSeries {
	assetValues := make(map[string][]float64, len(m.Assets))
	for _, asset := range m.Assets {
		assetValues[asset] = formulas.CumulativeWealth(m.Data[asset], 100)
	}
	return TimeSeries{
		Dates:          m.Dates,
		PortfolioValue: formulas.CumulativeWealth(portfolioReturns, 100),
		RollingSharpe:  RollingSharpe(m.Dates, portfolioReturns, riskFreeAnnual),
		Drawdown:       DrawdownSeries(portfolioReturns),
		AssetValues:    assetValues,
	}
}

// annualizedPortfolio converts a daily-figure solve into its serialized,
// annualized form.
func annualizedPortfolio(result OptimizationResult, riskFreeAnnual float64) OptimalPortfolio {
	retAnnual, volAnnual, sharpeAnnual := Annualize(result.Return, result.Volatility, riskFreeAnnual)
	return OptimalPortfolio{
		Weights:    result.Weights,
		Return:     finitePtr(retAnnual),
		Volatility: finitePtr(volAnnual),
		Sharpe:     finitePtr(sharpeAnnual),
		Converged:  result.Converged,
	}
}

// correlationMap converts the correlation matrix into an asset-keyed
// mapping, with undefined correlations marked absent.
func correlationMap(corr [][]float64, assets []string) map[string]map[string]*float64 {
	out := make(map[string]map[string]*float64, len(assets))
	for i, a := range assets {
		row := make(map[string]*float64, len(assets))
		for j, b := range assets {
			row[b] = finitePtr(corr[i][j])
		}
		out[a] = row
	}
	return out
}

// finitePtr is the non-finite cleaning rule: finite values pass through as
// pointers, NaN and infinities become nil ("no value").
func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// finiteOrZero replaces non-finite values with zero, for fields whose
// degenerate value is defined as zero rather than absent.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
