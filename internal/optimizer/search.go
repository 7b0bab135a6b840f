package optimizer

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/plan"
	"github.com/yashagw/craneopt/internal/query"
)

// search builds one candidate plan per ordering of preds and returns the
// cheapest, its cost and the number of candidates tried. Ties keep the
// earliest ordering.
func (o *Optimizer) search(pool []plan.Operator, preds []query.Predicate, top []string) (plan.Operator, int, int, error) {
	var best plan.Operator
	bestCost := math.MaxInt
	candidates := 0

	for ordering := range Orderings(preds) {
		candidate, err := o.build(pool, ordering, top)
		if err != nil {
			return nil, 0, 0, err
		}
		cost, err := o.estimator.Estimate(candidate)
		if err != nil {
			return nil, 0, 0, err
		}
		candidates++

		o.logger.Debug("candidate", "order", ordering, "cost", cost)
		if best == nil || cost < bestCost {
			best, bestCost = candidate, cost
		}
	}
	return best, bestCost, candidates, nil
}

// build applies preds in order over the operator pool. Each predicate either
// joins the two operators that supply its attributes or, when one operator
// supplies all of them, selects over it. The result goes to the back of the
// pool. Whatever is left unconnected is combined with a left-deep chain of
// products in pool order.
func (o *Optimizer) build(pool []plan.Operator, preds []query.Predicate, top []string) (plan.Operator, error) {
	ops := slices.Clone(pool)

	for i, pred := range preds {
		left := supplier(ops, pred.LeftAttribute())
		right := left
		if !pred.EqualsValue() {
			right = supplier(ops, pred.RightAttribute())
		}

		var node plan.Operator
		switch {
		case left < 0 || right < 0:
			return nil, errors.AssertionFailedf("predicate %s cannot be resolved against the operator pool", pred)
		case left == right:
			node = plan.NewSelect(ops[left], pred)
			ops = slices.Delete(ops, left, left+1)
		default:
			node = plan.NewJoin(ops[left], ops[right], pred)
			ops = slices.Delete(ops, max(left, right), max(left, right)+1)
			ops = slices.Delete(ops, min(left, right), min(left, right)+1)
		}
		if _, err := o.estimator.Estimate(node); err != nil {
			return nil, err
		}

		node, err := o.narrow(node, requiredBy(preds[i+1:], top))
		if err != nil {
			return nil, err
		}
		ops = append(ops, node)
	}

	// Left-deep chain: each product becomes the left input of the next
	for len(ops) > 1 {
		product := plan.NewProduct(ops[0], ops[1])
		if _, err := o.estimator.Estimate(product); err != nil {
			return nil, err
		}
		ops = append([]plan.Operator{product}, ops[2:]...)
	}
	if len(ops) == 0 {
		return nil, errors.AssertionFailedf("empty operator pool")
	}

	return o.narrow(ops[0], requiredBy(nil, top))
}

// supplier returns the index of the operator outputting name, or -1.
func supplier(ops []plan.Operator, name string) int {
	return slices.IndexFunc(ops, func(op plan.Operator) bool {
		return op.Output().HasAttribute(name)
	})
}
