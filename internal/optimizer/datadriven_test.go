package optimizer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/parse"
	"github.com/yashagw/craneopt/internal/plan"
	"github.com/yashagw/craneopt/internal/record"
)

// TestDataDriven runs the scenarios under testdata/. Commands:
//
//	catalogue: load the YAML input as the catalogue
//	plan:      print the canonical plan of the input query with its cost
//	optimise:  print the optimised plan of the input query with its cost
func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		var md *metadata.Manager

		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "catalogue":
				var err error
				md, err = metadata.Load(strings.NewReader(d.Input), nil)
				if err != nil {
					return describe(err)
				}
				return strings.Join(md.Relations(), ", ") + "\n"

			case "plan":
				if md == nil {
					d.Fatalf(t, "no catalogue loaded")
				}
				op, err := plan.NewPlanner(plan.NewBasicQueryPlanner(md)).CreatePlan(d.Input)
				if err != nil {
					return describe(err)
				}
				cost, err := plan.NewEstimator().Estimate(op)
				if err != nil {
					return describe(err)
				}
				return fmt.Sprintf("%scost=%d\n", plan.Format(op), cost)

			case "optimise":
				if md == nil {
					d.Fatalf(t, "no catalogue loaded")
				}
				op, err := plan.NewPlanner(plan.NewBasicQueryPlanner(md)).CreatePlan(d.Input)
				if err != nil {
					return describe(err)
				}
				res, err := NewOptimizer(md, nil).Run(op)
				if err != nil {
					return describe(err)
				}
				return fmt.Sprintf("%scost=%d original=%d candidates=%d\n",
					plan.Format(res.Plan), res.Cost, res.OriginalCost, res.Candidates)

			default:
				d.Fatalf(t, "unknown command %s", d.Cmd)
				return ""
			}
		})
	})
}

// describe reduces an error to its category so expectations do not depend on
// the wrapping context.
func describe(err error) string {
	for _, sentinel := range []error{
		metadata.ErrRelationNotFound,
		metadata.ErrInvalidCatalogue,
		plan.ErrInvalidPlan,
		record.ErrInvalidStatistics,
		parse.ErrBadSyntax,
	} {
		if errors.Is(err, sentinel) {
			return fmt.Sprintf("error: %s\n", sentinel)
		}
	}
	return fmt.Sprintf("error: %v\n", err)
}
