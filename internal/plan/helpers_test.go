package plan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneopt/internal/metadata"
)

// setupTestCatalogue creates a catalogue with two relations:
//
//	L(1000 tuples): a=100, b=50, x=10
//	R(2000 tuples): c=100, y=20
func setupTestCatalogue(t *testing.T) *metadata.Manager {
	t.Helper()
	md := metadata.NewManager(nil)
	require.NoError(t, md.Register(metadata.StatInfo{
		Name:   "L",
		Tuples: 1000,
		Attributes: []metadata.AttributeStat{
			{Name: "a", Values: 100},
			{Name: "b", Values: 50},
			{Name: "x", Values: 10},
		},
	}))
	require.NoError(t, md.Register(metadata.StatInfo{
		Name:   "R",
		Tuples: 2000,
		Attributes: []metadata.AttributeStat{
			{Name: "c", Values: 100},
			{Name: "y", Values: 20},
		},
	}))
	return md
}

func mustScan(t *testing.T, md metadata.Catalogue, name string) *Scan {
	t.Helper()
	scan, err := NewScan(md, name)
	require.NoError(t, err)
	return scan
}

func valueCount(t *testing.T, op Operator, attr string) int {
	t.Helper()
	require.NotNil(t, op.Output())
	a, ok := op.Output().Attribute(attr)
	require.True(t, ok, "attribute %s missing from %s", attr, op)
	return a.ValueCount
}
