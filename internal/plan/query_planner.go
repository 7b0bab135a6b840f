package plan

import (
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/parse/parserdata"
)

var (
	_ QueryPlanner = (*BasicQueryPlanner)(nil)
)

// BasicQueryPlanner builds the canonical, unoptimised plan of a query:
// a left-deep product of the scanned relations in FROM order, one Select per
// WHERE conjunct on top of it, and a Project unless the query selects "*".
type BasicQueryPlanner struct {
	catalogue metadata.Catalogue
}

func NewBasicQueryPlanner(catalogue metadata.Catalogue) *BasicQueryPlanner {
	return &BasicQueryPlanner{
		catalogue: catalogue,
	}
}

func (p *BasicQueryPlanner) CreatePlan(queryData *parserdata.QueryData) (Operator, error) {
	// Phase 1: One scan per relation, combined with products
	var plan Operator
	for _, tableName := range queryData.Tables() {
		scan, err := NewScan(p.catalogue, tableName)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			plan = scan
		} else {
			plan = NewProduct(plan, scan)
		}
	}

	// Phase 2: Apply every predicate above the products
	for _, pred := range queryData.Predicates() {
		plan = NewSelect(plan, pred)
	}

	// Phase 3: Project the required fields
	if !queryData.AllFields() {
		plan = NewProject(plan, queryData.Fields())
	}

	return plan, nil
}
