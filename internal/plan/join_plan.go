package plan

import (
	"github.com/yashagw/craneopt/internal/query"
)

var (
	_ Operator = (*Join)(nil)
)

// Join is an equi-join of two inputs on "attr1 = attr2", where one attribute
// comes from each side. Either orientation of the predicate is accepted.
type Join struct {
	output
	left  Operator
	right Operator
	pred  query.Predicate
}

func NewJoin(left, right Operator, pred query.Predicate) *Join {
	return &Join{
		left:  left,
		right: right,
		pred:  pred,
	}
}

func (j *Join) Left() Operator {
	return j.left
}

func (j *Join) Right() Operator {
	return j.right
}

// Predicate returns the join condition.
func (j *Join) Predicate() query.Predicate {
	return j.pred
}

func (j *Join) Inputs() []Operator {
	return []Operator{j.left, j.right}
}

func (j *Join) String() string {
	return "JOIN [" + j.pred.String() + "]"
}
