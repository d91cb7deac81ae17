package analytics

import (
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	// sumPenaltyWeight enforces the sum-to-1 constraint in the penalty
	// objective.
	sumPenaltyWeight = 1000.0

	// boxPenaltyWeight enforces the long-only box [0,1] in the penalty
	// objective. Quadratic hinge terms keep the objective C1 so the
	// gradient stays exact everywhere.
	boxPenaltyWeight = 1000.0

	// returnPenaltyWeight enforces the target-return equality constraint
	// on frontier solves. It is much stiffer than the sum penalty because
	// daily mean returns are orders of magnitude smaller than 1.
	returnPenaltyWeight = 1e6

	// frontierReturnTolerance is the acceptance band on the achieved daily
	// return of a frontier solve; solves outside it are dropped.
	frontierReturnTolerance = 1e-5

	// maxSolverIterations bounds a gradient-based solve so a report call
	// always terminates.
	maxSolverIterations = 500

	// nelderMeadIterations bounds the derivative-free fallback, which
	// needs far more major iterations per unit of progress than BFGS.
	nelderMeadIterations = 5000
)

// Optimizer runs constrained mean-variance solves over the long-only weight
// simplex: weights in [0,1], summing to 1. Constraints enter as smooth
// quadratic penalties (sum-to-1, box hinges), the same scheme for all three
// solve types, so Func and Grad agree everywhere and a Wolfe linesearch can
// succeed. Every solve starts from equal weights; the final iterate is
// projected and renormalized once, after the solver finishes.
type Optimizer struct {
	mu            []float64
	sigma         *mat.Dense
	riskFreeDaily float64
	log           zerolog.Logger
}

// NewOptimizer creates an optimizer for the given daily mean vector and
// covariance matrix.
func NewOptimizer(mu []float64, cov [][]float64, riskFreeDaily float64, log zerolog.Logger) *Optimizer {
	n := len(mu)
	sigma := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sigma.Set(i, j, cov[i][j])
		}
	}
	return &Optimizer{
		mu:            mu,
		sigma:         sigma,
		riskFreeDaily: riskFreeDaily,
		log:           log.With().Str("component", "optimizer").Logger(),
	}
}

// MinVariance minimizes wᵀΣw over the simplex. On non-convergence the
// projected final iterate is returned with Converged=false rather than an
// error.
func (o *Optimizer) MinVariance() OptimizationResult {
	n := len(o.mu)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return o.variance(x) + constraintPenalty(x)
		},
		Grad: func(grad, x []float64) {
			for i := 0; i < n; i++ {
				grad[i] = 0
				for j := 0; j < n; j++ {
					grad[i] += 2 * o.sigma.At(i, j) * x[j]
				}
			}
			addConstraintPenaltyGrad(grad, x)
		},
	}

	x, converged := o.solve(problem)
	return o.resultFor(x, converged)
}

// MaxSharpe minimizes the negative Sharpe ratio over the simplex. A
// candidate with exactly zero volatility is given the worst admissible loss
// instead of dividing by zero.
func (o *Optimizer) MaxSharpe() OptimizationResult {
	n := len(o.mu)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			variance := o.variance(x)
			if variance <= 0 {
				return math.MaxFloat64
			}
			excess := o.expectedReturn(x) - o.riskFreeDaily
			return -excess/math.Sqrt(variance) + constraintPenalty(x)
		},
		Grad: func(grad, x []float64) {
			variance := o.variance(x)
			stdDev := math.Sqrt(math.Max(variance, 1e-10))
			excess := o.expectedReturn(x) - o.riskFreeDaily
			for i := 0; i < n; i++ {
				var dVariance float64
				for j := 0; j < n; j++ {
					dVariance += 2 * o.sigma.At(i, j) * x[j]
				}
				grad[i] = -o.mu[i]/stdDev + excess*dVariance/(2*stdDev*stdDev*stdDev)
			}
			addConstraintPenaltyGrad(grad, x)
		},
	}

	x, converged := o.solve(problem)
	return o.resultFor(x, converged)
}

// Frontier sweeps numPoints target returns evenly spaced between the minimum
// and maximum per-asset mean, minimizing volatility subject to the
// target-return constraint at each. Solves run concurrently; only converged
// solves that hit their target within tolerance are kept, ordered by
// increasing target return. A partial frontier is a valid outcome.
func (o *Optimizer) Frontier(numPoints int) []FrontierPoint {
	if numPoints <= 0 {
		numPoints = DefaultFrontierPoints
	}

	lo, hi := o.mu[0], o.mu[0]
	for _, m := range o.mu[1:] {
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}

	targets := make([]float64, numPoints)
	for i := range targets {
		if numPoints == 1 {
			targets[i] = lo
		} else {
			targets[i] = lo + (hi-lo)*float64(i)/float64(numPoints-1)
		}
	}

	results := make([]*FrontierPoint, numPoints)
	var g errgroup.Group
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			results[i] = o.solveTarget(target)
			return nil
		})
	}
	_ = g.Wait() // solves never return errors; failed targets are nil

	frontier := []FrontierPoint{}
	for _, point := range results {
		if point != nil {
			frontier = append(frontier, *point)
		}
	}
	o.log.Debug().
		Int("requested", numPoints).
		Int("converged", len(frontier)).
		Msg("Traced efficient frontier")
	return frontier
}

// solveTarget minimizes variance subject to portfolio return == target.
// Returns nil when the solve does not converge or misses the target.
func (o *Optimizer) solveTarget(target float64) *FrontierPoint {
	n := len(o.mu)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			ret := o.expectedReturn(x)
			obj := o.variance(x) + constraintPenalty(x)
			obj += returnPenaltyWeight * (ret - target) * (ret - target)
			return obj
		},
		Grad: func(grad, x []float64) {
			ret := o.expectedReturn(x)
			for i := 0; i < n; i++ {
				grad[i] = 2 * returnPenaltyWeight * (ret - target) * o.mu[i]
				for j := 0; j < n; j++ {
					grad[i] += 2 * o.sigma.At(i, j) * x[j]
				}
			}
			addConstraintPenaltyGrad(grad, x)
		},
	}

	x, converged := o.solve(problem)
	if !converged {
		return nil
	}
	weights := normalizeWeights(projectToSimplexBox(x))
	achieved := o.expectedReturn(weights)
	if math.Abs(achieved-target) > frontierReturnTolerance {
		o.log.Debug().
			Float64("target", target).
			Float64("achieved", achieved).
			Msg("Dropping frontier point outside return tolerance")
		return nil
	}
	return &FrontierPoint{
		Return:     achieved,
		Volatility: math.Sqrt(math.Max(o.variance(weights), 0)),
		Weights:    weights,
	}
}

// solve runs a bounded minimization from equal weights, trying BFGS first
// and falling back to Nelder-Mead. Both runs carry an explicit function
// converger so a flat stretch of the objective terminates as
// FunctionConvergence rather than running into the iteration cap. The
// returned iterate is usable even when converged is false.
func (o *Optimizer) solve(problem optimize.Problem) ([]float64, bool) {
	n := len(o.mu)
	initial := EqualWeights(n)

	settings := &optimize.Settings{
		MajorIterations: maxSolverIterations,
		Converger:       &optimize.FunctionConverge{Absolute: 1e-12, Iterations: 20},
	}
	result, err := optimize.Minimize(problem, initial, settings, &optimize.BFGS{})
	if err == nil && acceptableStatus(result.Status) {
		return result.X, true
	}

	settings = &optimize.Settings{
		MajorIterations: nelderMeadIterations,
		Converger:       &optimize.FunctionConverge{Absolute: 1e-12, Iterations: 50},
	}
	result, err = optimize.Minimize(problem, initial, settings, &optimize.NelderMead{})
	if err != nil || result == nil {
		o.log.Warn().Err(err).Msg("Solver failed, falling back to starting point")
		return initial, false
	}
	return result.X, acceptableStatus(result.Status)
}

// resultFor projects and normalizes a solver iterate and evaluates its
// realized daily statistics.
func (o *Optimizer) resultFor(x []float64, converged bool) OptimizationResult {
	weights := normalizeWeights(projectToSimplexBox(x))
	ret := o.expectedReturn(weights)
	vol := math.Sqrt(math.Max(o.variance(weights), 0))
	return OptimizationResult{
		Weights:    weights,
		Return:     ret,
		Volatility: vol,
		Sharpe:     SharpeRatio(ret, vol, o.riskFreeDaily),
		Converged:  converged,
	}
}

func (o *Optimizer) expectedReturn(w []float64) float64 {
	var ret float64
	for i := range w {
		ret += o.mu[i] * w[i]
	}
	return ret
}

func (o *Optimizer) variance(w []float64) float64 {
	var variance float64
	for i := range w {
		for j := range w {
			variance += w[i] * w[j] * o.sigma.At(i, j)
		}
	}
	return variance
}

// acceptableStatus reports whether a solver status counts as convergence.
func acceptableStatus(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence:
		return true
	}
	return false
}

// constraintPenalty is the shared quadratic penalty for the simplex
// constraints: (sum-1)² on the budget, hinge² on each box bound. It is C1,
// so addConstraintPenaltyGrad is its exact gradient.
func constraintPenalty(x []float64) float64 {
	sum := sumOf(x)
	penalty := sumPenaltyWeight * (sum - 1) * (sum - 1)
	for _, v := range x {
		if v < 0 {
			penalty += boxPenaltyWeight * v * v
		} else if v > 1 {
			penalty += boxPenaltyWeight * (v - 1) * (v - 1)
		}
	}
	return penalty
}

// addConstraintPenaltyGrad accumulates the gradient of constraintPenalty
// into grad.
func addConstraintPenaltyGrad(grad, x []float64) {
	sum := sumOf(x)
	for i, v := range x {
		grad[i] += 2 * sumPenaltyWeight * (sum - 1)
		if v < 0 {
			grad[i] += 2 * boxPenaltyWeight * v
		} else if v > 1 {
			grad[i] += 2 * boxPenaltyWeight * (v - 1)
		}
	}
}

// projectToSimplexBox clamps each coordinate to the long-only box [0,1].
func projectToSimplexBox(x []float64) []float64 {
	proj := make([]float64, len(x))
	for i := range x {
		proj[i] = math.Max(0, math.Min(1, x[i]))
	}
	return proj
}

// normalizeWeights rescales a non-negative vector to sum to exactly 1.
func normalizeWeights(x []float64) []float64 {
	sum := sumOf(x)
	weights := make([]float64, len(x))
	for i := range x {
		weights[i] = x[i] / math.Max(sum, 1e-10)
	}
	return weights
}

func sumOf(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum
}
