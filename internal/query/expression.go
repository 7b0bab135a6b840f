package query

// Expression represents either a constant value or a field name in a query.
type Expression struct {
	val     Constant
	fldName *string
}

// NewConstantExpression creates a new Expression with a constant value.
func NewConstantExpression(val Constant) *Expression {
	return &Expression{
		val: val,
	}
}

// NewFieldNameExpression creates a new Expression with a field name.
func NewFieldNameExpression(fldName string) *Expression {
	return &Expression{
		fldName: &fldName,
	}
}

// IsFieldName checks if the expression is a field name.
func (e *Expression) IsFieldName() bool {
	return e.fldName != nil
}

// AsConstant returns the constant value of the expression.
func (e *Expression) AsConstant() Constant {
	return e.val
}

// AsFieldName returns the field name of the expression.
func (e *Expression) AsFieldName() string {
	return *e.fldName
}

// String returns a string representation of the expression.
func (e *Expression) String() string {
	if e.IsFieldName() {
		return e.AsFieldName()
	}
	return e.val.String()
}
