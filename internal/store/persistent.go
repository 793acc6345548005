package store

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/gradix/internal/codec"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/logger"
	"github.com/alexisbeaulieu97/gradix/internal/store/kv"
)

// Persistent mirrors every mutation of an in-memory list to a kv.Backend.
// The whole list is rewritten under codec.RecordsKey on each change.
type Persistent struct {
	mem     *Memory
	backend kv.Backend
	log     *logger.Logger
}

// NewPersistent loads the saved list from backend. A missing or corrupt
// payload starts an empty list; the problem is logged, not returned.
func NewPersistent(backend kv.Backend, log *logger.Logger) (*Persistent, error) {
	if backend == nil {
		return nil, errors.New("persistent store requires a backend")
	}

	p := &Persistent{mem: NewMemory(), backend: backend, log: log}

	data, err := backend.Get(codec.RecordsKey)
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		return p, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load saved gradients: %w", err)
	}

	saved, problem := codec.DecodeRecords(data)
	if problem != nil {
		log.WithFields(logger.Fields{"error": problem.Error(), "key": codec.RecordsKey}).
			Warn("ignoring unreadable saved gradients")
	}
	for _, g := range saved {
		_ = p.mem.Upsert(g)
	}

	return p, nil
}

func (p *Persistent) Upsert(g gradient.Gradient) error {
	return p.commit(func(next *Memory) error {
		return next.Upsert(g)
	})
}

func (p *Persistent) Get(id string) (gradient.Gradient, bool, error) {
	return p.mem.Get(id)
}

func (p *Persistent) List() ([]gradient.Gradient, error) {
	return p.mem.List()
}

func (p *Persistent) Remove(id string) (bool, error) {
	if _, ok, err := p.mem.Get(id); err != nil || !ok {
		return false, err
	}

	err := p.commit(func(next *Memory) error {
		_, err := next.Remove(id)
		return err
	})
	return err == nil, err
}

// Clear drops the persisted key entirely.
func (p *Persistent) Clear() error {
	if err := p.backend.Delete(codec.RecordsKey); err != nil {
		return fmt.Errorf("failed to clear saved gradients: %w", err)
	}
	return p.mem.Clear()
}

// commit applies change to a copy of the list and keeps the copy only once
// the backend has accepted it.
func (p *Persistent) commit(change func(next *Memory) error) error {
	items, err := p.mem.List()
	if err != nil {
		return err
	}

	next := NewMemory(items...)
	if err := change(next); err != nil {
		return err
	}

	if err := p.flush(next); err != nil {
		return err
	}
	p.mem = next
	return nil
}

func (p *Persistent) flush(m *Memory) error {
	items, err := m.List()
	if err != nil {
		return err
	}

	data, err := codec.EncodeRecords(items)
	if err != nil {
		return err
	}

	if err := p.backend.Set(codec.RecordsKey, data); err != nil {
		return fmt.Errorf("failed to persist saved gradients: %w", err)
	}
	return nil
}
