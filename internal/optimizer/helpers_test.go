package optimizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/plan"
)

const testCatalogue = `
relations:
  - name: Person
    tuples: 400
    attributes:
      - {name: persid, values: 400}
      - {name: persname, values: 350}
      - {name: age, values: 47}
  - name: Project
    tuples: 40
    attributes:
      - {name: projid, values: 40}
      - {name: projname, values: 35}
      - {name: dept, values: 5}
  - name: Department
    tuples: 5
    attributes:
      - {name: deptid, values: 5}
      - {name: deptname, values: 5}
      - {name: manager, values: 5}
`

func setupTestCatalogue(t *testing.T) *metadata.Manager {
	t.Helper()
	md, err := metadata.Load(strings.NewReader(testCatalogue), nil)
	require.NoError(t, err)
	return md
}

// canonicalPlan builds the unoptimised plan of sql.
func canonicalPlan(t *testing.T, md metadata.Catalogue, sql string) plan.Operator {
	t.Helper()
	op, err := plan.NewPlanner(plan.NewBasicQueryPlanner(md)).CreatePlan(sql)
	require.NoError(t, err)
	return op
}

// shape summarises what a plan computes: the relations it reads, the
// predicates it applies and the attributes it outputs.
type shape struct {
	relations  map[string]bool
	predicates map[string]bool
	attributes map[string]bool
}

func shapeOf(t *testing.T, op plan.Operator) shape {
	t.Helper()
	s := shape{
		relations:  make(map[string]bool),
		predicates: make(map[string]bool),
		attributes: make(map[string]bool),
	}
	err := plan.Walk(op, func(op plan.Operator) error {
		switch op := op.(type) {
		case *plan.Scan:
			s.relations[op.Name()] = true
		case *plan.Select:
			s.predicates[op.Predicate().Key()] = true
		case *plan.Join:
			s.predicates[op.Predicate().Key()] = true
		}
		return nil
	})
	require.NoError(t, err)

	require.NotNil(t, op.Output(), "plan has not been estimated")
	for _, name := range op.Output().AttributeNames() {
		s.attributes[name] = true
	}
	return s
}
