package plan

import (
	"math"
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/query"
	"github.com/yashagw/craneopt/internal/record"
)

// Estimator computes the output relation of every operator in a plan,
// bottom-up, and sums the output tuple counts into a total plan cost.
//
// Outputs are cached on the operators. A node whose output is already set is
// not recomputed, but it still contributes to the cost of the traversal, so
// estimating the same tree twice gives the same total.
//
// Tuple counts and costs saturate at math.MaxInt instead of wrapping.
type Estimator struct{}

func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate fills in missing outputs in the tree rooted at op and returns the
// sum of output tuple counts over all of its nodes.
func (e *Estimator) Estimate(op Operator) (int, error) {
	t := traversal{seen: make(map[Operator]bool)}
	if err := t.visit(op); err != nil {
		return 0, err
	}
	return t.cost, nil
}

type traversal struct {
	cost int
	seen map[Operator]bool
}

func (t *traversal) visit(op Operator) error {
	if op == nil {
		return errors.Wrap(ErrInvalidPlan, "nil operator")
	}
	if t.seen[op] {
		return errors.Wrapf(ErrInvalidPlan, "operator %s appears more than once in the plan", op)
	}
	t.seen[op] = true

	for _, input := range op.Inputs() {
		if err := t.visit(input); err != nil {
			return err
		}
	}

	if op.Output() == nil {
		rel, err := estimateOutput(op)
		if err != nil {
			return err
		}
		op.setOutput(rel)
	}
	t.cost = addSat(t.cost, op.Output().TupleCount())
	return nil
}

// estimateOutput computes an operator's output from its inputs' outputs.
func estimateOutput(op Operator) (*record.Relation, error) {
	switch op := op.(type) {
	case *Scan:
		return estimateScan(op), nil
	case *Project:
		return estimateProject(op), nil
	case *Select:
		return estimateSelect(op)
	case *Product:
		return estimateProduct(op), nil
	case *Join:
		return estimateJoin(op)
	default:
		return nil, errors.AssertionFailedf("unknown operator type %T", op)
	}
}

// estimateScan copies the base relation: T(R) and V(R, a) unchanged.
func estimateScan(op *Scan) *record.Relation {
	base := op.relation
	out := record.NewRelation(base.TupleCount())
	out.CopyAll(base.Relation)
	return out
}

// estimateProject keeps the input's attributes that appear in the projection
// list, in input order. The tuple count is unchanged.
func estimateProject(op *Project) *record.Relation {
	in := op.input.Output()
	keep := make(map[string]bool, len(op.attributes))
	for _, name := range op.attributes {
		keep[name] = true
	}

	out := record.NewRelation(in.TupleCount())
	for _, attr := range in.Attributes() {
		if keep[attr.Name] {
			out.AddAttribute(attr)
		}
	}
	return out
}

// estimateSelect applies
//
//	attr = value: T(S) = ceil(T(R) / V(R, attr)), V(S, attr) = 1
//	a = b:        T(S) = ceil(T(R) / max(V(R, a), V(R, b))), V(S, a) = V(S, b) = min(...)
func estimateSelect(op *Select) (*record.Relation, error) {
	in := op.input.Output()
	pred := op.pred

	left, err := lookup(in, pred.LeftAttribute(), op)
	if err != nil {
		return nil, err
	}

	if pred.EqualsValue() {
		out := record.NewRelation(ceilDiv(in.TupleCount(), left.ValueCount))
		for _, attr := range in.Attributes() {
			if attr.Equals(left) {
				attr.ValueCount = 1
			}
			out.AddAttribute(attr)
		}
		return out, nil
	}

	right, err := lookup(in, pred.RightAttribute(), op)
	if err != nil {
		return nil, err
	}

	out := record.NewRelation(ceilDiv(in.TupleCount(), max(left.ValueCount, right.ValueCount)))
	values := min(left.ValueCount, right.ValueCount)
	for _, attr := range in.Attributes() {
		if attr.Equals(left) || attr.Equals(right) {
			attr.ValueCount = values
		}
		out.AddAttribute(attr)
	}
	return out, nil
}

// estimateProduct: T = T(L) * T(R), attributes of L followed by those of R.
func estimateProduct(op *Product) *record.Relation {
	left := op.left.Output()
	right := op.right.Output()

	out := record.NewRelation(mulDivCeil(left.TupleCount(), right.TupleCount(), 1))
	out.CopyAll(left)
	out.CopyAll(right)
	return out
}

// estimateJoin applies T = ceil(T(L) * T(R) / max(V(L, a), V(R, b))) and sets
// both join attributes to min(V(L, a), V(R, b)).
func estimateJoin(op *Join) (*record.Relation, error) {
	left := op.left.Output()
	right := op.right.Output()

	leftName, rightName, err := orient(op.pred, left, right)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", op)
	}
	leftAttr, err := lookup(left, leftName, op)
	if err != nil {
		return nil, err
	}
	rightAttr, err := lookup(right, rightName, op)
	if err != nil {
		return nil, err
	}

	tuples := mulDivCeil(left.TupleCount(), right.TupleCount(), max(leftAttr.ValueCount, rightAttr.ValueCount))
	values := min(leftAttr.ValueCount, rightAttr.ValueCount)

	out := record.NewRelation(tuples)
	for _, side := range []*record.Relation{left, right} {
		for _, attr := range side.Attributes() {
			if attr.Equals(leftAttr) || attr.Equals(rightAttr) {
				attr.ValueCount = values
			}
			out.AddAttribute(attr)
		}
	}
	return out, nil
}

// orient decides which predicate attribute belongs to which join input.
func orient(pred query.Predicate, left, right *record.Relation) (string, string, error) {
	if pred.EqualsValue() {
		return "", "", errors.Wrapf(ErrInvalidPlan, "join on constant predicate %s", pred)
	}
	a, b := pred.LeftAttribute(), pred.RightAttribute()
	switch {
	case left.HasAttribute(a) && right.HasAttribute(b):
		return a, b, nil
	case left.HasAttribute(b) && right.HasAttribute(a):
		return b, a, nil
	default:
		return "", "", errors.Wrapf(ErrInvalidPlan, "predicate %s does not span both join inputs", pred)
	}
}

// lookup finds a referenced attribute in an input and checks that its value
// count can be divided by.
func lookup(rel *record.Relation, name string, op Operator) (record.Attribute, error) {
	attr, ok := rel.Attribute(name)
	if !ok {
		return record.Attribute{}, errors.Wrapf(ErrInvalidPlan, "%s: attribute %q not in input %s", op, name, rel)
	}
	if err := attr.Validate(); err != nil {
		return record.Attribute{}, errors.Wrapf(err, "%s", op)
	}
	return attr, nil
}

// ceilDiv rounds towards positive infinity; cardinalities never underestimate.
func ceilDiv(n, d int) int {
	return mulDivCeil(n, 1, d)
}

// mulDivCeil returns ceil(a*b/d) for non-negative a, b and positive d,
// computed in 128 bits and saturated at math.MaxInt.
func mulDivCeil(a, b, d int) int {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi >= uint64(d) {
		return math.MaxInt
	}
	q, r := bits.Div64(hi, lo, uint64(d))
	if q >= math.MaxInt {
		return math.MaxInt
	}
	if r != 0 {
		q++
	}
	return int(q)
}

func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
