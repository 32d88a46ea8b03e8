package camera

import (
	"camshell/internal/errors"
)

// Model is the client-side view of the device configuration: an ordered
// collection of entries keyed by full path. Order is the order entries
// were first added, which for a refreshed model matches the device's own
// listing order. Model is not synchronized; the session guards it.
type Model struct {
	order   []string
	entries map[string]*Entry
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{entries: make(map[string]*Entry)}
}

// Add inserts or replaces an entry. First insertion fixes its position.
func (m *Model) Add(e *Entry) {
	if _, ok := m.entries[e.Name]; !ok {
		m.order = append(m.order, e.Name)
	}
	m.entries[e.Name] = e
}

// Get returns the entry for the given path, or ErrUnknownConfig wrapped
// in a ConfigError when the path has never been seen.
func (m *Model) Get(name string) (*Entry, error) {
	e, ok := m.entries[name]
	if !ok {
		return nil, &errors.ConfigError{Name: name, Err: errors.ErrUnknownConfig}
	}
	return e, nil
}

// Has reports whether the model contains the given path.
func (m *Model) Has(name string) bool {
	_, ok := m.entries[name]
	return ok
}

// Len returns the number of entries.
func (m *Model) Len() int {
	return len(m.entries)
}

// Names returns the entry paths in insertion order.
func (m *Model) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Entries returns the entries in insertion order.
func (m *Model) Entries() []*Entry {
	out := make([]*Entry, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.entries[name])
	}
	return out
}

// Snapshot returns a deep copy of the model, safe to read after the
// session lock is released.
func (m *Model) Snapshot() *Model {
	s := NewModel()
	for _, name := range m.order {
		s.Add(m.entries[name].Clone())
	}
	return s
}
