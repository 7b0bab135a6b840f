package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneopt/internal/query"
)

func TestExplain(t *testing.T) {
	md := setupTestCatalogue(t)
	sel := NewSelect(mustScan(t, md, "L"), query.NewEqualityPredicate("a", *query.NewIntConstant(7)))

	// Before estimation there are no row counts
	assert.Equal(t, "SELECT [a = 7]\n  SCAN L\n", Format(sel))

	_, err := NewEstimator().Estimate(sel)
	require.NoError(t, err)
	assert.Equal(t, "SELECT [a = 7] rows=10\n  SCAN L rows=1000\n", Format(sel))
}

func TestStats(t *testing.T) {
	md := setupTestCatalogue(t)
	join := NewJoin(mustScan(t, md, "L"), mustScan(t, md, "R"), query.NewJoinPredicate("b", "c"))
	_, err := NewEstimator().Estimate(join)
	require.NoError(t, err)

	rows := Stats(join)
	require.Len(t, rows, 3)
	assert.Equal(t, NodeStats{Depth: 0, Operator: "JOIN [b = c]", Tuples: 20000, Attributes: []string{"a", "b", "x", "c", "y"}}, rows[0])
	assert.Equal(t, 1, rows[1].Depth)
	assert.Equal(t, "SCAN L", rows[1].Operator)
	assert.Equal(t, 2000, rows[2].Tuples)
	assert.Empty(t, Stats(nil))
}
