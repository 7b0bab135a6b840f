package plan

import (
	"github.com/yashagw/craneopt/internal/query"
)

var (
	_ Operator = (*Select)(nil)
)

// Select filters its input with a single predicate, either "attr = value"
// or "attr1 = attr2" with both attributes taken from the input.
type Select struct {
	output
	input Operator
	pred  query.Predicate
}

func NewSelect(input Operator, pred query.Predicate) *Select {
	return &Select{
		input: input,
		pred:  pred,
	}
}

// Input returns the operator being filtered.
func (s *Select) Input() Operator {
	return s.input
}

// Predicate returns the filter condition.
func (s *Select) Predicate() query.Predicate {
	return s.pred
}

func (s *Select) Inputs() []Operator {
	return []Operator{s.input}
}

func (s *Select) String() string {
	return "SELECT [" + s.pred.String() + "]"
}
