package query

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneopt/internal/record"
)

func TestPredicateBasic(t *testing.T) {
	eq := NewEqualityPredicate("age", *NewIntConstant(25))
	assert.True(t, eq.EqualsValue())
	assert.Equal(t, "age", eq.LeftAttribute())
	assert.Equal(t, "", eq.RightAttribute())
	assert.Equal(t, 25, eq.Value().AsInt())
	assert.Equal(t, []string{"age"}, eq.Attributes())
	assert.Equal(t, "age = 25", eq.String())

	str := NewEqualityPredicate("name", *NewStringConstant("John"))
	assert.Equal(t, "name = 'John'", str.String())

	join := NewJoinPredicate("persid", "owner")
	assert.False(t, join.EqualsValue())
	assert.Nil(t, join.Value())
	assert.Equal(t, []string{"persid", "owner"}, join.Attributes())
	assert.Equal(t, "persid = owner", join.String())
}

func TestPredicateKey(t *testing.T) {
	assert.Equal(t, NewJoinPredicate("a", "b").Key(), NewJoinPredicate("b", "a").Key())
	assert.NotEqual(t, NewJoinPredicate("a", "b").Key(), NewJoinPredicate("a", "c").Key())

	assert.Equal(t,
		NewEqualityPredicate("a", *NewIntConstant(1)).Key(),
		NewEqualityPredicate("a", *NewIntConstant(1)).Key())
	// An int and a string with the same text are different predicates
	assert.NotEqual(t,
		NewEqualityPredicate("a", *NewIntConstant(1)).Key(),
		NewEqualityPredicate("a", *NewStringConstant("1")).Key())
}

func TestPredicateAppliesTo(t *testing.T) {
	rel := record.NewRelation(100)
	rel.AddAttribute(record.NewAttribute("age", 10))
	rel.AddAttribute(record.NewAttribute("name", 50))

	assert.True(t, NewEqualityPredicate("age", *NewIntConstant(25)).AppliesTo(rel))
	assert.False(t, NewEqualityPredicate("city", *NewIntConstant(25)).AppliesTo(rel))
	assert.True(t, NewJoinPredicate("age", "name").AppliesTo(rel))
	assert.False(t, NewJoinPredicate("age", "city").AppliesTo(rel))
}

func TestNewPredicateFromExpressions(t *testing.T) {
	field := *NewFieldNameExpression("age")
	other := *NewFieldNameExpression("height")
	constant := *NewConstantExpression(*NewIntConstant(3))

	p, err := NewPredicateFromExpressions(field, constant)
	require.NoError(t, err)
	assert.Equal(t, "age = 3", p.String())

	// Constant on the left is normalised to the right
	p, err = NewPredicateFromExpressions(constant, field)
	require.NoError(t, err)
	assert.Equal(t, "age = 3", p.String())

	p, err = NewPredicateFromExpressions(field, other)
	require.NoError(t, err)
	assert.Equal(t, "age = height", p.String())

	_, err = NewPredicateFromExpressions(constant, constant)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedTerm))
}
