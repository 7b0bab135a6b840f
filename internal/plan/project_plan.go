package plan

import (
	"strings"
)

var (
	_ Operator = (*Project)(nil)
)

// Project keeps only the listed attributes of its input.
type Project struct {
	output
	input      Operator
	attributes []string
}

func NewProject(input Operator, attributes []string) *Project {
	attrs := make([]string, len(attributes))
	copy(attrs, attributes)
	return &Project{
		input:      input,
		attributes: attrs,
	}
}

// Input returns the projected operator.
func (p *Project) Input() Operator {
	return p.input
}

// Attributes returns a copy of the projected attribute names.
func (p *Project) Attributes() []string {
	attrs := make([]string, len(p.attributes))
	copy(attrs, p.attributes)
	return attrs
}

func (p *Project) Inputs() []Operator {
	return []Operator{p.input}
}

func (p *Project) String() string {
	return "PROJECT [" + strings.Join(p.attributes, ", ") + "]"
}
