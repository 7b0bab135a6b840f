package query

import (
	"fmt"
	"strconv"
)

// Constant represents either an integer or string constant value.
type Constant struct {
	intVal *int
	strVal *string
}

// NewIntConstant creates a new Constant with an integer value.
func NewIntConstant(val int) *Constant {
	return &Constant{
		intVal: &val,
	}
}

// NewStringConstant creates a new Constant with a string value.
func NewStringConstant(val string) *Constant {
	return &Constant{
		strVal: &val,
	}
}

// String returns a string representation of the constant.
func (c *Constant) String() string {
	if c.intVal != nil {
		return fmt.Sprintf("%d", *c.intVal)
	}
	return *c.strVal
}

// Literal returns the constant as it would be written in a query,
// with string values single-quoted.
func (c *Constant) Literal() string {
	if c.intVal != nil {
		return strconv.Itoa(*c.intVal)
	}
	return "'" + *c.strVal + "'"
}

// AsInt returns the integer value of the constant.
func (c *Constant) AsInt() int {
	return *c.intVal
}

// AsString returns the string value of the constant.
func (c *Constant) AsString() string {
	return *c.strVal
}

// Equals checks if the constant is equal to another constant.
func (c *Constant) Equals(other *Constant) bool {
	if c.intVal != nil && other.intVal != nil {
		return *c.intVal == *other.intVal
	}
	if c.strVal != nil && other.strVal != nil {
		return *c.strVal == *other.strVal
	}
	return false
}

// IsInt returns true if the constant holds an integer value.
func (c *Constant) IsInt() bool {
	return c.intVal != nil
}

// IsString returns true if the constant holds a string value.
func (c *Constant) IsString() bool {
	return c.strVal != nil
}
