package optimizer

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/plan"
	"github.com/yashagw/craneopt/internal/query"
)

// collection is what phase 1 extracts from an input plan.
type collection struct {
	// scans holds one fresh scan per distinct base relation, in the order
	// the relations first appear in a pre-order walk.
	scans []*plan.Scan
	// predicates holds every distinct predicate, in walk order.
	predicates []query.Predicate
	// required lists the attributes the optimised plan must output.
	required []string
}

func (o *Optimizer) collect(root plan.Operator) (*collection, error) {
	col := &collection{}
	relations := make(map[string]bool)
	keys := make(map[string]bool)
	var projected []string

	err := plan.Walk(root, func(op plan.Operator) error {
		switch op := op.(type) {
		case *plan.Scan:
			if relations[op.Name()] {
				return nil
			}
			relations[op.Name()] = true
			scan, err := plan.NewScan(o.catalogue, op.Name())
			if err != nil {
				return err
			}
			col.scans = append(col.scans, scan)
		case *plan.Select:
			col.addPredicate(op.Predicate(), keys)
		case *plan.Join:
			col.addPredicate(op.Predicate(), keys)
		case *plan.Project:
			if op == root {
				projected = op.Attributes()
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "collect")
	}

	for _, pred := range col.predicates {
		for _, name := range pred.Attributes() {
			if col.owner(name) == nil {
				return nil, errors.Wrapf(plan.ErrInvalidPlan, "predicate %s references unknown attribute %q", pred, name)
			}
		}
	}
	for _, name := range projected {
		if col.owner(name) == nil {
			return nil, errors.Wrapf(plan.ErrInvalidPlan, "projection references unknown attribute %q", name)
		}
	}
	return col, nil
}

func (c *collection) addPredicate(pred query.Predicate, keys map[string]bool) {
	key := pred.Key()
	if keys[key] {
		return
	}
	keys[key] = true
	c.predicates = append(c.predicates, pred)
}

// owner returns the scan whose relation has the named attribute.
func (c *collection) owner(name string) *plan.Scan {
	for _, scan := range c.scans {
		if scan.Relation().HasAttribute(name) {
			return scan
		}
	}
	return nil
}
