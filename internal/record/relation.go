package record

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidStatistics is returned when a relation carries statistics that the
// cost formulas cannot use, such as a value count below one.
var ErrInvalidStatistics = errors.New("invalid statistics")

// Attribute is a named column together with its estimated number of distinct
// values in the relation that owns it. Two attributes are the same attribute
// when their names match; ValueCount differs from one relation to the next.
type Attribute struct {
	Name       string
	ValueCount int
}

// NewAttribute creates an attribute with the given distinct value count.
func NewAttribute(name string, valueCount int) Attribute {
	return Attribute{Name: name, ValueCount: valueCount}
}

// Equals reports whether both attributes have the same name.
func (a Attribute) Equals(other Attribute) bool {
	return a.Name == other.Name
}

// Validate checks that the value count can be used as a divisor.
func (a Attribute) Validate() error {
	if a.ValueCount < 1 {
		return errors.Wrapf(ErrInvalidStatistics, "attribute %q has value count %d", a.Name, a.ValueCount)
	}
	return nil
}

// Relation is the estimated shape of an operator output: a tuple count and an
// ordered list of attributes with unique names.
type Relation struct {
	tupleCount int
	attributes []Attribute
	index      map[string]int
}

// NewRelation creates an empty relation with the given tuple count.
func NewRelation(tupleCount int) *Relation {
	return &Relation{
		tupleCount: tupleCount,
		attributes: make([]Attribute, 0),
		index:      make(map[string]int),
	}
}

// AddAttribute appends an attribute. Adding a name that is already present
// replaces its value count and keeps its position.
func (r *Relation) AddAttribute(attr Attribute) {
	if i, exists := r.index[attr.Name]; exists {
		r.attributes[i] = attr
		return
	}
	r.index[attr.Name] = len(r.attributes)
	r.attributes = append(r.attributes, attr)
}

// CopyAll appends every attribute of other, unchanged.
func (r *Relation) CopyAll(other *Relation) {
	for _, attr := range other.attributes {
		r.AddAttribute(attr)
	}
}

// TupleCount returns the estimated number of tuples.
func (r *Relation) TupleCount() int {
	return r.tupleCount
}

// Attributes returns a copy of the attribute slice.
func (r *Relation) Attributes() []Attribute {
	attrs := make([]Attribute, len(r.attributes))
	copy(attrs, r.attributes)
	return attrs
}

// AttributeNames returns the attribute names in order.
func (r *Relation) AttributeNames() []string {
	names := make([]string, len(r.attributes))
	for i, attr := range r.attributes {
		names[i] = attr.Name
	}
	return names
}

// Attribute looks up an attribute by name.
func (r *Relation) Attribute(name string) (Attribute, bool) {
	i, exists := r.index[name]
	if !exists {
		return Attribute{}, false
	}
	return r.attributes[i], true
}

// HasAttribute checks if the relation contains the named attribute.
func (r *Relation) HasAttribute(name string) bool {
	_, exists := r.index[name]
	return exists
}

// Len returns the number of attributes.
func (r *Relation) Len() int {
	return len(r.attributes)
}

// Validate checks the tuple count and every attribute's value count.
func (r *Relation) Validate() error {
	if r.tupleCount < 0 {
		return errors.Wrapf(ErrInvalidStatistics, "negative tuple count %d", r.tupleCount)
	}
	for _, attr := range r.attributes {
		if err := attr.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Relation) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, attr := range r.attributes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(attr.Name)
	}
	sb.WriteString(")")
	return sb.String()
}

// NamedRelation is a base relation registered in the catalogue.
type NamedRelation struct {
	*Relation
	name string
}

// NewNamedRelation creates an empty base relation.
func NewNamedRelation(name string, tupleCount int) *NamedRelation {
	return &NamedRelation{
		Relation: NewRelation(tupleCount),
		name:     name,
	}
}

// Name returns the relation name.
func (n *NamedRelation) Name() string {
	return n.name
}

func (n *NamedRelation) String() string {
	return n.name + n.Relation.String()
}
