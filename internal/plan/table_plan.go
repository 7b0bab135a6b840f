package plan

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/record"
)

var (
	_ Operator = (*Scan)(nil)
)

// Scan is the leaf operator reading a base relation.
type Scan struct {
	output
	relation *record.NamedRelation
}

// NewScan resolves name through the catalogue. An unknown relation is fatal
// for the scan and the error matches metadata.ErrRelationNotFound.
func NewScan(cat metadata.Catalogue, name string) (*Scan, error) {
	rel, err := cat.Relation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", name)
	}
	return NewScanOf(rel), nil
}

// NewScanOf creates a scan over an already resolved base relation.
func NewScanOf(rel *record.NamedRelation) *Scan {
	return &Scan{
		relation: rel,
	}
}

// Relation returns the base relation being scanned.
func (s *Scan) Relation() *record.NamedRelation {
	return s.relation
}

// Name returns the name of the scanned relation.
func (s *Scan) Name() string {
	return s.relation.Name()
}

func (s *Scan) Inputs() []Operator {
	return nil
}

func (s *Scan) String() string {
	return "SCAN " + s.relation.Name()
}
