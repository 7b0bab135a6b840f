package plan

import (
	"github.com/cockroachdb/errors"
)

// Walk visits op and then each of its inputs recursively, depth first.
// The first error returned by visitor stops the walk.
func Walk(op Operator, visitor func(Operator) error) error {
	if op == nil {
		return nil
	}
	if err := visitor(op); err != nil {
		return err
	}
	for _, input := range op.Inputs() {
		if err := Walk(input, visitor); err != nil {
			return err
		}
	}
	return nil
}

// Count counts the total number of operators in the tree.
func Count(op Operator) int {
	if op == nil {
		return 0
	}
	count := 1
	for _, input := range op.Inputs() {
		count += Count(input)
	}
	return count
}

// Clone returns a structural copy of the tree with no cached outputs.
// Scans of the copy share their base relations with the original.
func Clone(op Operator) (Operator, error) {
	switch op := op.(type) {
	case *Scan:
		return NewScanOf(op.relation), nil
	case *Select:
		input, err := Clone(op.input)
		if err != nil {
			return nil, err
		}
		return NewSelect(input, op.pred), nil
	case *Project:
		input, err := Clone(op.input)
		if err != nil {
			return nil, err
		}
		return NewProject(input, op.attributes), nil
	case *Product:
		left, right, err := cloneBoth(op.left, op.right)
		if err != nil {
			return nil, err
		}
		return NewProduct(left, right), nil
	case *Join:
		left, right, err := cloneBoth(op.left, op.right)
		if err != nil {
			return nil, err
		}
		return NewJoin(left, right, op.pred), nil
	case nil:
		return nil, errors.Wrap(ErrInvalidPlan, "nil operator")
	default:
		return nil, errors.AssertionFailedf("unknown operator type %T", op)
	}
}

func cloneBoth(left, right Operator) (Operator, Operator, error) {
	l, err := Clone(left)
	if err != nil {
		return nil, nil, err
	}
	r, err := Clone(right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}
