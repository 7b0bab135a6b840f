package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserField(t *testing.T) {
	p := NewParser(NewLexer("MyField"))
	require.NotNil(t, p)

	f, err := p.field()
	require.NoError(t, err)
	assert.Equal(t, "MyField", f)

	// Next token should not be an id; expect error
	_, err = p.field()
	assert.Error(t, err)
	assert.Equal(t, ErrBadSyntax, err)
}

func TestParserConstant(t *testing.T) {
	// Integer constant
	p1 := NewParser(NewLexer("123"))
	require.NotNil(t, p1)
	val, err := p1.constant()
	require.NoError(t, err)
	assert.Equal(t, 123, val)

	// Single-quoted string
	p2 := NewParser(NewLexer("'hello'"))
	require.NotNil(t, p2)
	val, err = p2.constant()
	require.NoError(t, err)
	assert.Equal(t, "hello", val)

	// Double quotes do not delimit strings
	p3 := NewParser(NewLexer(`"world"`))
	require.NotNil(t, p3)
	_, err = p3.constant()
	assert.Equal(t, ErrBadSyntax, err)

	// Error case
	p4 := NewParser(NewLexer("select"))
	require.NotNil(t, p4)
	_, err = p4.constant()
	assert.Error(t, err)
	assert.Equal(t, ErrBadSyntax, err)
}

func TestParserExpression(t *testing.T) {
	// Field expression
	p1 := NewParser(NewLexer("name"))
	e, err := p1.expression()
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, e.IsFieldName())
	assert.Equal(t, "name", e.AsFieldName())

	// Int constant expression
	p2 := NewParser(NewLexer("42"))
	e, err = p2.expression()
	require.NoError(t, err)
	assert.False(t, e.IsFieldName())
	c := e.AsConstant()
	assert.Equal(t, "42", c.String())

	// String constant expression
	p3 := NewParser(NewLexer("'john'"))
	e, err = p3.expression()
	require.NoError(t, err)
	assert.False(t, e.IsFieldName())
	c = e.AsConstant()
	assert.Equal(t, "john", c.String())
}

func TestParserTerm(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"age = 25", "age = 25"},
		{"25 = age", "age = 25"},
		{"name = 'John'", "name = 'John'"},
		{"persid = owner", "persid = owner"},
	}
	for _, tt := range tests {
		p := NewParser(NewLexer(tt.input))
		pred, err := p.term()
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, pred.String())
	}

	// Two constants do not form a predicate
	p := NewParser(NewLexer("1 = 2"))
	_, err := p.term()
	assert.Equal(t, ErrBadSyntax, err)
}

func TestParserPredicate(t *testing.T) {
	p := NewParser(NewLexer("age = 25 and name = 'John'"))
	preds, err := p.predicate()
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "age = 25", preds[0].String())
	assert.Equal(t, "name = 'John'", preds[1].String())
}

func TestParserQuery(t *testing.T) {
	t.Run("WithoutWhere", func(t *testing.T) {
		q := "select name, age from students, classes"
		p := NewParser(NewLexer(q))
		qd, err := p.Query()
		require.NoError(t, err)
		require.NotNil(t, qd)
		assert.Equal(t, []string{"name", "age"}, qd.Fields())
		assert.False(t, qd.AllFields())
		assert.Equal(t, []string{"students", "classes"}, qd.Tables())
		assert.Empty(t, qd.Predicates())
	})

	t.Run("WithWhere", func(t *testing.T) {
		q := "select name from students where age = 25 and name = 'John'"
		p := NewParser(NewLexer(q))
		qd, err := p.Query()
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, qd.Fields())
		assert.Equal(t, []string{"students"}, qd.Tables())
		require.Len(t, qd.Predicates(), 2)
		assert.Equal(t, "age = 25", qd.Predicates()[0].String())
		assert.Equal(t, "name = 'John'", qd.Predicates()[1].String())
	})

	t.Run("Star", func(t *testing.T) {
		q := "SELECT * FROM Person, Project WHERE persid = manager;"
		p := NewParser(NewLexer(q))
		qd, err := p.Query()
		require.NoError(t, err)
		assert.True(t, qd.AllFields())
		assert.Nil(t, qd.Fields())
		assert.Equal(t, []string{"Person", "Project"}, qd.Tables())
		require.Len(t, qd.Predicates(), 1)
		assert.Equal(t, "persid = manager", qd.Predicates()[0].String())
	})

	t.Run("CaseInsensitiveKeywords", func(t *testing.T) {
		q := "SELECT Name, Age FROM Students WHERE Age = 30"
		p := NewParser(NewLexer(q))
		qd, err := p.Query()
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Age"}, qd.Fields())
		assert.Equal(t, []string{"Students"}, qd.Tables())
		require.Len(t, qd.Predicates(), 1)
		assert.Equal(t, "Age = 30", qd.Predicates()[0].String())
	})

	t.Run("MissingFromError", func(t *testing.T) {
		q := "select name students"
		p := NewParser(NewLexer(q))
		_, err := p.Query()
		assert.Error(t, err)
		assert.Equal(t, ErrBadSyntax, err)
	})

	t.Run("RejectsBadLiterals", func(t *testing.T) {
		for _, q := range []string{
			"select name from students where age = 1.5",
			"select name from students where name = 'Ann",
		} {
			_, err := NewParserFromString(q).Query()
			assert.Equal(t, ErrBadSyntax, err, q)
		}
	})

	t.Run("EscapedQuote", func(t *testing.T) {
		qd, err := NewParserFromString("select * from Person where persname = 'O''Hara';").Query()
		require.NoError(t, err)
		require.Len(t, qd.Predicates(), 1)
		assert.Equal(t, "O'Hara", qd.Predicates()[0].Value().AsString())
	})

	t.Run("TrailingInputError", func(t *testing.T) {
		q := "select name from students where age = 1 or age = 2"
		p := NewParser(NewLexer(q))
		_, err := p.Query()
		assert.Equal(t, ErrBadSyntax, err)
	})
}
