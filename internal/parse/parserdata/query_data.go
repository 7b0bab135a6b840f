package parserdata

import (
	"github.com/yashagw/craneopt/internal/query"
)

// QueryData is the parsed form of a SELECT query.
type QueryData struct {
	fields     []string
	tables     []string
	predicates []query.Predicate
}

// NewQueryData creates a QueryData. A nil field list means every attribute ("*").
func NewQueryData(fields []string, tables []string, predicates []query.Predicate) *QueryData {
	return &QueryData{
		fields:     fields,
		tables:     tables,
		predicates: predicates,
	}
}

// Fields returns the projected attribute names, or nil for "*".
func (q *QueryData) Fields() []string {
	return q.fields
}

// AllFields reports whether the query selects every attribute.
func (q *QueryData) AllFields() bool {
	return q.fields == nil
}

func (q *QueryData) Tables() []string {
	return q.tables
}

// Predicates returns the conjuncts of the WHERE clause in query order.
func (q *QueryData) Predicates() []query.Predicate {
	return q.predicates
}
