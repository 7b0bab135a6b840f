package metadata

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/record"
)

var (
	// ErrRelationNotFound is returned when a relation name is not in the catalogue.
	ErrRelationNotFound = errors.New("relation not found")
	// ErrInvalidCatalogue is returned for malformed catalogue definitions.
	ErrInvalidCatalogue = errors.New("invalid catalogue")
)

// Catalogue resolves base relation names to their statistics.
// Implementations must not be mutated while an optimisation is in progress.
type Catalogue interface {
	Relation(name string) (*record.NamedRelation, error)
}
