package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneopt/internal/record"
)

const sampleCatalogue = `
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
`

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(sampleCatalogue), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Project"}, m.Relations())

	rel, err := m.Relation("Project")
	require.NoError(t, err)
	assert.Equal(t, 40, rel.TupleCount())
	attr, ok := rel.Attribute("dept")
	require.True(t, ok)
	assert.Equal(t, 5, attr.ValueCount)
}

func TestLoadEmpty(t *testing.T) {
	m, err := Load(strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.Empty(t, m.Relations())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "zero value count",
			input:   "relations:\n  - {name: R, tuples: 10, attributes: [{name: a, values: 0}]}\n",
			wantErr: record.ErrInvalidStatistics,
		},
		{
			name:    "unknown field",
			input:   "relations:\n  - {name: R, rows: 10}\n",
			wantErr: ErrInvalidCatalogue,
		},
		{
			name:    "duplicate relation",
			input:   "relations:\n  - {name: R, tuples: 1}\n  - {name: R, tuples: 2}\n",
			wantErr: ErrInvalidCatalogue,
		},
		{
			name:    "missing name",
			input:   "relations:\n  - {tuples: 1}\n",
			wantErr: ErrInvalidCatalogue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalogue), 0644))

	m, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Len(t, m.Relations(), 2)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}
