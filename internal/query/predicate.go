package query

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/record"
)

// ErrUnsupportedTerm is returned for comparisons that are neither
// "field = constant" nor "field = field".
var ErrUnsupportedTerm = errors.New("unsupported term")

// Predicate is a single equality condition. It takes one of two shapes:
// an attribute equated with a constant ("a = 'x'"), or two attributes
// equated with each other ("a = b"). Predicates reference attributes by
// name only and never hold a relation.
type Predicate struct {
	left  string
	right string
	value *Constant
}

// NewEqualityPredicate creates the predicate "attr = value".
func NewEqualityPredicate(attr string, value Constant) Predicate {
	return Predicate{
		left:  attr,
		value: &value,
	}
}

// NewJoinPredicate creates the predicate "left = right".
func NewJoinPredicate(left, right string) Predicate {
	return Predicate{
		left:  left,
		right: right,
	}
}

// NewPredicateFromExpressions builds a predicate from the two sides of an
// equality. A constant on the left is moved to the right.
func NewPredicateFromExpressions(lhs, rhs Expression) (Predicate, error) {
	switch {
	case lhs.IsFieldName() && rhs.IsFieldName():
		return NewJoinPredicate(lhs.AsFieldName(), rhs.AsFieldName()), nil
	case lhs.IsFieldName():
		return NewEqualityPredicate(lhs.AsFieldName(), rhs.AsConstant()), nil
	case rhs.IsFieldName():
		return NewEqualityPredicate(rhs.AsFieldName(), lhs.AsConstant()), nil
	default:
		return Predicate{}, errors.Wrapf(ErrUnsupportedTerm, "%s = %s", lhs.String(), rhs.String())
	}
}

// EqualsValue reports whether the predicate compares an attribute with a constant.
func (p Predicate) EqualsValue() bool {
	return p.value != nil
}

// LeftAttribute returns the attribute on the left of the equality.
func (p Predicate) LeftAttribute() string {
	return p.left
}

// RightAttribute returns the attribute on the right of a join predicate,
// or the empty string for "attr = value".
func (p Predicate) RightAttribute() string {
	return p.right
}

// Value returns the constant of an "attr = value" predicate, or nil.
func (p Predicate) Value() *Constant {
	return p.value
}

// Attributes returns the names of every attribute the predicate references.
func (p Predicate) Attributes() []string {
	if p.EqualsValue() {
		return []string{p.left}
	}
	return []string{p.left, p.right}
}

// AppliesTo checks if every attribute of the predicate is present in rel.
func (p Predicate) AppliesTo(rel *record.Relation) bool {
	for _, name := range p.Attributes() {
		if !rel.HasAttribute(name) {
			return false
		}
	}
	return true
}

// Key returns a canonical identity for the predicate. "a = b" and "b = a"
// share a key.
func (p Predicate) Key() string {
	if p.EqualsValue() {
		kind := "s"
		if p.value.IsInt() {
			kind = "i"
		}
		return p.left + "=" + kind + ":" + p.value.String()
	}
	if p.right < p.left {
		return p.right + "=" + p.left
	}
	return p.left + "=" + p.right
}

// String returns a string representation of the predicate.
func (p Predicate) String() string {
	if p.EqualsValue() {
		return p.left + " = " + p.value.Literal()
	}
	return p.left + " = " + p.right
}
