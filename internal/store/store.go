// Package store keeps saved gradients keyed by id in insertion order.
package store

import (
	"strings"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

// Store is the saved gradient collection. Implementations other than
// Synchronized are not safe for concurrent use.
type Store interface {
	// Upsert replaces the gradient with the same id in place or appends it.
	Upsert(g gradient.Gradient) error
	Get(id string) (gradient.Gradient, bool, error)
	// List returns a copy in insertion order.
	List() ([]gradient.Gradient, error)
	Remove(id string) (bool, error)
	Clear() error
}

// Memory is an in-process Store.
type Memory struct {
	items []gradient.Gradient
	index map[string]int
}

// NewMemory returns an empty store, optionally seeded with gradients. Seeds
// without an id are skipped and later duplicates replace earlier ones.
func NewMemory(seed ...gradient.Gradient) *Memory {
	m := &Memory{index: make(map[string]int)}
	for _, g := range seed {
		_ = m.Upsert(g)
	}
	return m
}

func (m *Memory) Upsert(g gradient.Gradient) error {
	if strings.TrimSpace(g.ID) == "" {
		return gerrors.NewMissingIdentifier()
	}

	if i, ok := m.index[g.ID]; ok {
		m.items[i] = g.Clone()
		return nil
	}

	m.index[g.ID] = len(m.items)
	m.items = append(m.items, g.Clone())
	return nil
}

func (m *Memory) Get(id string) (gradient.Gradient, bool, error) {
	i, ok := m.index[id]
	if !ok {
		return gradient.Gradient{}, false, nil
	}
	return m.items[i].Clone(), true, nil
}

func (m *Memory) List() ([]gradient.Gradient, error) {
	out := make([]gradient.Gradient, len(m.items))
	for i, g := range m.items {
		out[i] = g.Clone()
	}
	return out, nil
}

func (m *Memory) Remove(id string) (bool, error) {
	i, ok := m.index[id]
	if !ok {
		return false, nil
	}

	m.items = append(m.items[:i], m.items[i+1:]...)
	m.reindex()
	return true, nil
}

func (m *Memory) Clear() error {
	m.items = nil
	m.index = make(map[string]int)
	return nil
}

// Len reports how many gradients are held.
func (m *Memory) Len() int {
	return len(m.items)
}

func (m *Memory) reindex() {
	m.index = make(map[string]int, len(m.items))
	for i, g := range m.items {
		m.index[g.ID] = i
	}
}
