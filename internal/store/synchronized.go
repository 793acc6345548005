package store

import (
	"sync"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
)

// Synchronized serializes access to an underlying Store.
type Synchronized struct {
	mu    sync.RWMutex
	inner Store
}

// NewSynchronized wraps inner. inner must not be used directly afterwards.
func NewSynchronized(inner Store) *Synchronized {
	return &Synchronized{inner: inner}
}

func (s *Synchronized) Upsert(g gradient.Gradient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Upsert(g)
}

func (s *Synchronized) Get(id string) (gradient.Gradient, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Get(id)
}

func (s *Synchronized) List() ([]gradient.Gradient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.List()
}

func (s *Synchronized) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Remove(id)
}

func (s *Synchronized) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Clear()
}
