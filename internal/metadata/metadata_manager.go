package metadata

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/record"
)

var (
	_ Catalogue = (*Manager)(nil)
)

// Manager is an in-memory catalogue of base relation statistics.
type Manager struct {
	relations map[string]*StatInfo
	owners    map[string]string // attribute name -> relation name
	logger    *slog.Logger
	mutex     sync.RWMutex
}

// NewManager creates an empty catalogue. A nil logger uses slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		relations: make(map[string]*StatInfo),
		owners:    make(map[string]string),
		logger:    logger.With("component", "catalogue"),
	}
}

// CreateRelation registers a relation with no attributes.
func (m *Manager) CreateRelation(name string, tuples int) error {
	return m.Register(StatInfo{Name: name, Tuples: tuples})
}

// AddAttribute adds an attribute to a registered relation.
func (m *Manager) AddAttribute(relName string, attrName string, values int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	si, exists := m.relations[relName]
	if !exists {
		return errors.Wrapf(ErrRelationNotFound, "relation %q", relName)
	}
	if owner, taken := m.owners[attrName]; taken {
		return errors.Wrapf(ErrInvalidCatalogue, "attribute %q already belongs to %q", attrName, owner)
	}
	attr := AttributeStat{Name: attrName, Values: values}
	candidate := *si
	candidate.Attributes = append(append([]AttributeStat(nil), si.Attributes...), attr)
	if err := candidate.Validate(); err != nil {
		return err
	}
	m.relations[relName] = &candidate
	m.owners[attrName] = relName
	return nil
}

// Register adds a relation together with its attribute statistics.
// Attribute names must be unique across the whole catalogue.
func (m *Manager) Register(si StatInfo) error {
	if err := si.Validate(); err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.relations[si.Name]; exists {
		return errors.Wrapf(ErrInvalidCatalogue, "relation %q already exists", si.Name)
	}
	for _, attr := range si.Attributes {
		if owner, taken := m.owners[attr.Name]; taken {
			return errors.Wrapf(ErrInvalidCatalogue, "attribute %q already belongs to %q", attr.Name, owner)
		}
	}

	stored := si
	stored.Attributes = append([]AttributeStat(nil), si.Attributes...)
	m.relations[si.Name] = &stored
	for _, attr := range si.Attributes {
		m.owners[attr.Name] = si.Name
	}
	m.logger.Debug("registered relation", "relation", si.Name, "tuples", si.Tuples, "attributes", len(si.Attributes))
	return nil
}

// Relation returns a fresh copy of the named base relation.
func (m *Manager) Relation(name string) (*record.NamedRelation, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	si, exists := m.relations[name]
	if !exists {
		return nil, errors.Wrapf(ErrRelationNotFound, "relation %q", name)
	}
	return si.Relation(), nil
}

// GetStatInfo returns the statistics of the named relation.
func (m *Manager) GetStatInfo(name string) (StatInfo, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	si, exists := m.relations[name]
	if !exists {
		return StatInfo{}, errors.Wrapf(ErrRelationNotFound, "relation %q", name)
	}
	out := *si
	out.Attributes = append([]AttributeStat(nil), si.Attributes...)
	return out, nil
}

// Relations returns the registered relation names in sorted order.
func (m *Manager) Relations() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.relations))
	for name := range m.relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
