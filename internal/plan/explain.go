package plan

import (
	"fmt"
	"io"
	"strings"
)

// NodeStats is one row of a plan's per-operator estimates.
type NodeStats struct {
	Depth      int
	Operator   string
	Tuples     int
	Attributes []string
}

// Stats lists the operators of an estimated tree in pre-order together with
// their estimated outputs. Operators without an output report -1 tuples.
func Stats(op Operator) []NodeStats {
	var rows []NodeStats
	var walk func(op Operator, depth int)
	walk = func(op Operator, depth int) {
		row := NodeStats{Depth: depth, Operator: op.String(), Tuples: -1}
		if out := op.Output(); out != nil {
			row.Tuples = out.TupleCount()
			row.Attributes = out.AttributeNames()
		}
		rows = append(rows, row)
		for _, input := range op.Inputs() {
			walk(input, depth+1)
		}
	}
	if op != nil {
		walk(op, 0)
	}
	return rows
}

// Explain writes the tree rooted at op, one operator per line, indented by
// depth. Estimated operators are annotated with their tuple counts.
func Explain(w io.Writer, op Operator) error {
	for _, row := range Stats(op) {
		line := strings.Repeat("  ", row.Depth) + row.Operator
		if row.Tuples >= 0 {
			line += fmt.Sprintf(" rows=%d", row.Tuples)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Format returns the Explain output as a string.
func Format(op Operator) string {
	var sb strings.Builder
	_ = Explain(&sb, op)
	return sb.String()
}
