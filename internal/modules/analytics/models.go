package analytics

// Numeric conventions for the analytics engine. These are fixed so that every
// reported figure is auditable against one set of constants.
const (
	// TradingDaysPerYear is the annualization basis for daily returns.
	TradingDaysPerYear = 252

	// DefaultRiskFreeRate is the annual risk-free rate used when the caller
	// does not configure one.
	DefaultRiskFreeRate = 0.04

	// DefaultFrontierPoints is the number of target returns swept when
	// tracing the efficient frontier.
	DefaultFrontierPoints = 20

	// RollingSharpeWindow is the trailing window (in trading days) for the
	// rolling Sharpe series. Partial windows are skipped.
	RollingSharpeWindow = 90

	// QuarterMinObservations is the minimum number of trading days a
	// calendar quarter needs before quarterly metrics are reported for it.
	QuarterMinObservations = 20

	// TopCorrelationCount is how many asset pairs the correlation ranking
	// retains.
	TopCorrelationCount = 5

	// WeightSumTolerance is the absolute tolerance on the weight vector sum.
	WeightSumTolerance = 0.01

	// DefaultBenchmarkSymbol is the market proxy column used for beta.
	DefaultBenchmarkSymbol = "SPY"
)

// OptimizationResult holds the outcome of a single constrained solve.
// Return, Volatility and Sharpe are daily figures; the report assembler
// annualizes them. Converged is false when the solver did not satisfy its
// convergence criteria and the weights are the projected final iterate.
type OptimizationResult struct {
	Weights    []float64
	Return     float64
	Volatility float64
	Sharpe     float64
	Converged  bool
}

// FrontierPoint is one converged solve from the efficient frontier sweep.
type FrontierPoint struct {
	Return     float64   `json:"return"`
	Volatility float64   `json:"volatility"`
	Weights    []float64 `json:"weights"`
}

// CorrelationPair is one ranked entry of the top-correlations list.
type CorrelationPair struct {
	Asset1      string  `json:"asset1"`
	Asset2      string  `json:"asset2"`
	Correlation float64 `json:"correlation"`
}

// QuarterMetrics holds annualized metrics for a single calendar quarter.
type QuarterMetrics struct {
	Quarter    string   `json:"quarter"`
	Return     float64  `json:"return"`
	Volatility float64  `json:"volatility"`
	Sharpe     *float64 `json:"sharpe"`
	Days       int      `json:"days"`
}

// RollingSharpePoint is one observation of the trailing-window Sharpe series,
// tagged with the window's ending date.
type RollingSharpePoint struct {
	Date   string   `json:"date"`
	Sharpe *float64 `json:"sharpe"`
}

// TimeSeries carries the charting outputs of a report.
type TimeSeries struct {
	Dates          []string             `json:"dates"`
	PortfolioValue []float64            `json:"portfolio_value"`
	RollingSharpe  []RollingSharpePoint `json:"rolling_sharpe"`
	Drawdown       []float64            `json:"drawdown"`
	AssetValues    map[string][]float64 `json:"asset_values"`
}

// OptimalPortfolio is the serialized form of an OptimizationResult with
// annualized figures. The figures are pointers because a degenerate input
// (NaN covariance from a single-row matrix) leaves them undefined even
// though the weights themselves are valid.
type OptimalPortfolio struct {
	Weights    []float64 `json:"weights"`
	Return     *float64  `json:"return"`
	Volatility *float64  `json:"volatility"`
	Sharpe     *float64  `json:"sharpe"`
	Converged  bool      `json:"converged"`
}

// OptimalPortfolios groups the two headline optimizations.
type OptimalPortfolios struct {
	MinVariance OptimalPortfolio `json:"min_variance"`
	MaxSharpe   OptimalPortfolio `json:"max_sharpe"`
}

// AnalyticsReport is the full output of one Analyze call. Every numeric field
// that can degenerate (zero volatility, empty downside sample, absent
// benchmark) is a pointer; nil is the explicit "no value" marker and the
// report is guaranteed free of NaN and infinities after assembly.
type AnalyticsReport struct {
	AssetMeans map[string]float64  `json:"asset_means"`
	AssetVols  map[string]*float64 `json:"asset_vols"`

	PortfolioReturnDaily  float64  `json:"portfolio_return_daily"`
	PortfolioReturnAnnual float64  `json:"portfolio_return_annual"`
	PortfolioVolDaily     *float64 `json:"portfolio_vol_daily"`
	PortfolioVolAnnual    *float64 `json:"portfolio_vol_annual"`
	PortfolioSharpeDaily  *float64 `json:"portfolio_sharpe_daily"`
	PortfolioSharpeAnnual *float64 `json:"portfolio_sharpe_annual"`

	MaxDrawdown          *float64 `json:"max_drawdown"`
	SortinoRatioDaily    *float64 `json:"sortino_ratio_daily"`
	SortinoRatioAnnual   *float64 `json:"sortino_ratio_annual"`
	Beta                 *float64 `json:"beta"`
	DiversificationRatio *float64 `json:"diversification_ratio"`

	CorrelationMatrix map[string]map[string]*float64 `json:"correlation_matrix"`
	TopCorrelations   []CorrelationPair              `json:"top_correlations"`

	AssetWeights               map[string]float64  `json:"asset_weights"`
	AssetReturnContributions   map[string]float64  `json:"asset_return_contributions"`
	AssetVarianceContributions map[string]float64  `json:"asset_variance_contributions"`
	AssetSharpes               map[string]*float64 `json:"asset_sharpes"`

	WindowedMetrics []QuarterMetrics `json:"windowed_metrics"`
	TimeSeries      TimeSeries       `json:"time_series"`

	OptimalPortfolios OptimalPortfolios `json:"optimal_portfolios"`
	EfficientFrontier []FrontierPoint   `json:"efficient_frontier"`
}
