package optimizer

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/plan"
)

// SearchWarnThreshold is the number of cross-relation predicates above which
// the exhaustive ordering search logs a warning. The search still runs.
const SearchWarnThreshold = 8

// Optimizer rewrites a logical plan into the cheapest equivalent plan it can
// find under the Estimator's cost model.
//
// Optimisation runs in three phases:
//  1. collect the distinct base relations, predicates and the attributes the
//     caller expects at the top of the plan
//  2. push every single-relation predicate down onto its scan and project
//     away attributes nothing above needs
//  3. try every ordering of the remaining predicates, build a candidate for
//     each by joining the operators each predicate connects, and keep the
//     cheapest
//
// The input tree is never modified. An Optimizer holds no per-call state and
// is safe for concurrent use.
type Optimizer struct {
	catalogue metadata.Catalogue
	estimator *plan.Estimator
	logger    *slog.Logger
}

// NewOptimizer creates an optimizer resolving base relations through cat.
// A nil logger falls back to slog.Default().
func NewOptimizer(cat metadata.Catalogue, logger *slog.Logger) *Optimizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Optimizer{
		catalogue: cat,
		estimator: plan.NewEstimator(),
		logger:    logger.With("component", "optimizer"),
	}
}

// Result describes a finished optimisation.
type Result struct {
	Plan         plan.Operator
	Cost         int
	OriginalCost int
	Candidates   int
}

// Optimise returns the cheapest plan found for root. The returned plan has
// every output estimated.
func (o *Optimizer) Optimise(root plan.Operator) (plan.Operator, error) {
	res, err := o.Run(root)
	if err != nil {
		return nil, err
	}
	return res.Plan, nil
}

// Run optimises root and reports the chosen plan together with its cost and
// the cost of the input plan.
func (o *Optimizer) Run(root plan.Operator) (*Result, error) {
	if root == nil {
		return nil, errors.Wrap(plan.ErrInvalidPlan, "nil plan")
	}

	// Phase 1: collect relations, predicates and required attributes
	col, err := o.collect(root)
	if err != nil {
		return nil, err
	}

	original, err := plan.Clone(root)
	if err != nil {
		return nil, err
	}
	originalCost, err := o.estimator.Estimate(original)
	if err != nil {
		return nil, errors.Wrap(err, "estimate input plan")
	}
	col.required = original.Output().AttributeNames()

	// Phase 2: push selections and projections down onto the scans
	pool, pending, err := o.pushDown(col)
	if err != nil {
		return nil, err
	}

	if len(pending) > SearchWarnThreshold {
		o.logger.Warn("large join search space",
			"predicates", len(pending),
			"threshold", SearchWarnThreshold)
	}

	// Phase 3: search join orders
	best, bestCost, candidates, err := o.search(pool, pending, col.required)
	if err != nil {
		return nil, err
	}

	if originalCost < bestCost {
		o.logger.Debug("keeping input plan", "cost", originalCost, "best_candidate", bestCost)
		best, bestCost = original, originalCost
	}

	o.logger.Info("optimised plan",
		"relations", len(col.scans),
		"predicates", len(col.predicates),
		"candidates", candidates,
		"original_cost", originalCost,
		"cost", bestCost)

	return &Result{
		Plan:         best,
		Cost:         bestCost,
		OriginalCost: originalCost,
		Candidates:   candidates,
	}, nil
}
