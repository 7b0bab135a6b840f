package plan

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/record"
)

// ErrInvalidPlan is returned when a plan references attributes or relations
// that its inputs cannot provide, or reuses a node within one tree.
var ErrInvalidPlan = errors.New("invalid plan")

// Operator is a node of a logical query plan. The concrete node kinds are
// *Scan, *Select, *Project, *Product and *Join; the set is closed.
//
// Every operator owns its inputs. Its output relation starts unset and is
// filled in exactly once by the Estimator.
type Operator interface {
	// Inputs returns the child operators, left to right.
	Inputs() []Operator
	// Output returns the estimated output relation, or nil if the operator
	// has not been estimated yet.
	Output() *record.Relation
	// String describes the operator without its inputs.
	String() string

	setOutput(rel *record.Relation)
}

// output is the write-once cache slot shared by every operator kind.
type output struct {
	rel *record.Relation
}

func (o *output) Output() *record.Relation {
	return o.rel
}

func (o *output) setOutput(rel *record.Relation) {
	if o.rel == nil {
		o.rel = rel
	}
}
