package plan

import (
	"github.com/yashagw/craneopt/internal/parse"
	"github.com/yashagw/craneopt/internal/parse/parserdata"
)

// QueryPlanner turns a parsed query into an operator tree.
type QueryPlanner interface {
	CreatePlan(queryData *parserdata.QueryData) (Operator, error)
}

// Planner parses query text and hands it to a QueryPlanner.
type Planner struct {
	queryPlanner QueryPlanner
}

func NewPlanner(queryPlanner QueryPlanner) *Planner {
	return &Planner{
		queryPlanner: queryPlanner,
	}
}

func (p *Planner) CreatePlan(sql string) (Operator, error) {
	parser := parse.NewParserFromString(sql)
	queryData, err := parser.Query()
	if err != nil {
		return nil, err
	}
	return p.queryPlanner.CreatePlan(queryData)
}
