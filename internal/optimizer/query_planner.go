package optimizer

import (
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/parse/parserdata"
	"github.com/yashagw/craneopt/internal/plan"
)

var (
	_ plan.QueryPlanner = (*QueryPlanner)(nil)
)

// QueryPlanner builds the canonical plan of a query and optimises it.
type QueryPlanner struct {
	basic     *plan.BasicQueryPlanner
	optimizer *Optimizer
}

func NewQueryPlanner(catalogue metadata.Catalogue, optimizer *Optimizer) *QueryPlanner {
	return &QueryPlanner{
		basic:     plan.NewBasicQueryPlanner(catalogue),
		optimizer: optimizer,
	}
}

func (p *QueryPlanner) CreatePlan(queryData *parserdata.QueryData) (plan.Operator, error) {
	canonical, err := p.basic.CreatePlan(queryData)
	if err != nil {
		return nil, err
	}
	return p.optimizer.Optimise(canonical)
}
