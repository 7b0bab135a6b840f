package metadata

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/record"
)

// AttributeStat is the distinct value count of one attribute of a base relation.
type AttributeStat struct {
	Name   string `yaml:"name"`
	Values int    `yaml:"values"`
}

// StatInfo holds statistical information about a base relation.
type StatInfo struct {
	Name       string          `yaml:"name"`
	Tuples     int             `yaml:"tuples"`
	Attributes []AttributeStat `yaml:"attributes"`
}

// RecordsOutput returns the number of records in the relation.
func (s *StatInfo) RecordsOutput() int {
	return s.Tuples
}

// DistinctValues returns the distinct value count for a given attribute,
// or 0 when the relation has no such attribute.
func (s *StatInfo) DistinctValues(attrName string) int {
	for _, attr := range s.Attributes {
		if attr.Name == attrName {
			return attr.Values
		}
	}
	return 0
}

// Validate checks the statistics can be used by the cost formulas.
func (s *StatInfo) Validate() error {
	if s.Name == "" {
		return errors.Wrap(ErrInvalidCatalogue, "relation without a name")
	}
	if s.Tuples < 0 {
		return errors.Wrapf(record.ErrInvalidStatistics, "relation %q has tuple count %d", s.Name, s.Tuples)
	}
	seen := make(map[string]bool, len(s.Attributes))
	for _, attr := range s.Attributes {
		if attr.Name == "" {
			return errors.Wrapf(ErrInvalidCatalogue, "relation %q has an attribute without a name", s.Name)
		}
		if seen[attr.Name] {
			return errors.Wrapf(ErrInvalidCatalogue, "relation %q declares attribute %q twice", s.Name, attr.Name)
		}
		seen[attr.Name] = true
		if attr.Values < 1 {
			return errors.Wrapf(record.ErrInvalidStatistics, "attribute %s.%s has value count %d", s.Name, attr.Name, attr.Values)
		}
	}
	return nil
}

// Relation converts the statistics into a base relation.
func (s *StatInfo) Relation() *record.NamedRelation {
	rel := record.NewNamedRelation(s.Name, s.Tuples)
	for _, attr := range s.Attributes {
		rel.AddAttribute(record.NewAttribute(attr.Name, attr.Values))
	}
	return rel
}
