package optimizer

import (
	"github.com/yashagw/craneopt/internal/plan"
	"github.com/yashagw/craneopt/internal/query"
)

// pushDown wraps each scan in every predicate that it can evaluate on its own,
// then narrows it to the attributes still needed above it. It returns the
// resulting operator pool, in scan order, and the predicates left over.
func (o *Optimizer) pushDown(col *collection) ([]plan.Operator, []query.Predicate, error) {
	pending := make([]query.Predicate, len(col.predicates))
	copy(pending, col.predicates)

	pool := make([]plan.Operator, 0, len(col.scans))
	for _, scan := range col.scans {
		var op plan.Operator = scan
		if _, err := o.estimator.Estimate(op); err != nil {
			return nil, nil, err
		}

		for applied := true; applied; {
			applied = false
			for i, pred := range pending {
				if !pred.AppliesTo(op.Output()) {
					continue
				}
				op = plan.NewSelect(op, pred)
				if _, err := o.estimator.Estimate(op); err != nil {
					return nil, nil, err
				}
				pending = append(pending[:i], pending[i+1:]...)
				applied = true
				break
			}
		}
		pool = append(pool, op)
	}

	required := requiredBy(pending, col.required)
	for i, op := range pool {
		narrowed, err := o.narrow(op, required)
		if err != nil {
			return nil, nil, err
		}
		pool[i] = narrowed
	}
	return pool, pending, nil
}

// narrow puts a Project over op when op outputs attributes outside required
// and still outputs at least one that is in it.
func (o *Optimizer) narrow(op plan.Operator, required map[string]bool) (plan.Operator, error) {
	names := op.Output().AttributeNames()
	keep := make([]string, 0, len(names))
	for _, name := range names {
		if required[name] {
			keep = append(keep, name)
		}
	}
	if len(keep) == 0 || len(keep) == len(names) {
		return op, nil
	}

	project := plan.NewProject(op, keep)
	if _, err := o.estimator.Estimate(project); err != nil {
		return nil, err
	}
	return project, nil
}

// requiredBy returns the attributes referenced by preds together with top.
func requiredBy(preds []query.Predicate, top []string) map[string]bool {
	required := make(map[string]bool, len(top))
	for _, name := range top {
		required[name] = true
	}
	for _, pred := range preds {
		for _, name := range pred.Attributes() {
			required[name] = true
		}
	}
	return required
}
