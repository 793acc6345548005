package store

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gradix/internal/codec"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/logger"
	"github.com/alexisbeaulieu97/gradix/internal/store/kv"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

func named(id, name string) gradient.Gradient {
	return gradient.Default().WithID(id).WithName(name)
}

func ids(t *testing.T, s Store) []string {
	t.Helper()
	list, err := s.List()
	require.NoError(t, err)
	out := make([]string, len(list))
	for i, g := range list {
		out[i] = g.ID
	}
	return out
}

func stores(t *testing.T) map[string]Store {
	t.Helper()

	fileBackend, err := kv.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	filePersistent, err := NewPersistent(fileBackend, logger.Nop())
	require.NoError(t, err)

	db, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "gradix.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	sqlitePersistent, err := NewPersistent(db, logger.Nop())
	require.NoError(t, err)

	return map[string]Store{
		"memory":       NewMemory(),
		"file":         filePersistent,
		"sqlite":       sqlitePersistent,
		"synchronized": NewSynchronized(NewMemory()),
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Upsert(named("a", "First")))
			require.NoError(t, s.Upsert(named("b", "Second")))
			require.NoError(t, s.Upsert(named("c", "Third")))
			assert.Equal(t, []string{"a", "b", "c"}, ids(t, s))

			// replacement keeps position
			require.NoError(t, s.Upsert(named("b", "Renamed")))
			assert.Equal(t, []string{"a", "b", "c"}, ids(t, s))
			got, ok, err := s.Get("b")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Renamed", got.Name)

			_, ok, err = s.Get("zzz")
			require.NoError(t, err)
			assert.False(t, ok)

			removed, err := s.Remove("a")
			require.NoError(t, err)
			assert.True(t, removed)
			assert.Equal(t, []string{"b", "c"}, ids(t, s))

			removed, err = s.Remove("a")
			require.NoError(t, err)
			assert.False(t, removed)

			got, ok, err = s.Get("c")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Third", got.Name)

			require.NoError(t, s.Clear())
			assert.Empty(t, ids(t, s))
		})
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			g := named("same", "Once")
			require.NoError(t, s.Upsert(g))
			require.NoError(t, s.Upsert(g))

			list, err := s.List()
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, g, list[0])
		})
	}
}

func TestUpsertRequiresIdentifier(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"", "   "} {
				err := s.Upsert(gradient.Default().WithID(id))
				require.ErrorIs(t, err, gerrors.ErrMissingIdentifier)
			}
			assert.Empty(t, ids(t, s))
		})
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	m := NewMemory()
	g := named("a", "Copy")
	require.NoError(t, m.Upsert(g))

	g.ColorStops[0].Color = "#000000"
	got, _, _ := m.Get("a")
	assert.Equal(t, "#4F46E5", got.ColorStops[0].Color)

	got.ColorStops[0].Color = "#111111"
	list, _ := m.List()
	assert.Equal(t, "#4F46E5", list[0].ColorStops[0].Color)
}

func TestNewMemorySeed(t *testing.T) {
	m := NewMemory(named("a", "x"), gradient.Default(), named("a", "y"))
	assert.Equal(t, 1, m.Len())
	got, _, _ := m.Get("a")
	assert.Equal(t, "y", got.Name)
}

func TestPersistentSurvivesReload(t *testing.T) {
	backend, err := kv.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	first, err := NewPersistent(backend, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Upsert(named("a", "Kept")))
	require.NoError(t, first.Upsert(named("b", "Dropped")))
	_, err = first.Remove("b")
	require.NoError(t, err)

	second, err := NewPersistent(backend, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(t, second))

	require.NoError(t, second.Clear())
	_, err = backend.Get(codec.RecordsKey)
	require.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestPersistentLoadsCorruptDataAsEmpty(t *testing.T) {
	backend, err := kv.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, backend.Set(codec.RecordsKey, "{definitely not a list"))

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)

	p, err := NewPersistent(backend, log)
	require.NoError(t, err)
	assert.Empty(t, ids(t, p))
	assert.Contains(t, buf.String(), "ignoring unreadable saved gradients")

	// the next write replaces the corrupt payload
	require.NoError(t, p.Upsert(named("a", "Fresh")))
	data, err := backend.Get(codec.RecordsKey)
	require.NoError(t, err)
	saved, err := codec.DecodeRecords(data)
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

// flakyBackend wraps a real backend and fails writes while broken is set.
type flakyBackend struct {
	kv.Backend
	broken bool
}

var errDiskFull = errors.New("disk full")

func (b *flakyBackend) Set(key, value string) error {
	if b.broken {
		return errDiskFull
	}
	return b.Backend.Set(key, value)
}

func (b *flakyBackend) Delete(key string) error {
	if b.broken {
		return errDiskFull
	}
	return b.Backend.Delete(key)
}

func TestPersistentKeepsStateWhenWritesFail(t *testing.T) {
	inner, err := kv.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	backend := &flakyBackend{Backend: inner}

	p, err := NewPersistent(backend, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, p.Upsert(named("a", "First")))

	backend.broken = true

	require.ErrorIs(t, p.Upsert(named("b", "Second")), errDiskFull)
	require.ErrorIs(t, p.Upsert(named("a", "Renamed")), errDiskFull)
	assert.Equal(t, []string{"a"}, ids(t, p))
	got, _, err := p.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)

	removed, err := p.Remove("a")
	require.ErrorIs(t, err, errDiskFull)
	assert.False(t, removed)
	assert.Equal(t, []string{"a"}, ids(t, p))

	require.ErrorIs(t, p.Clear(), errDiskFull)
	assert.Equal(t, []string{"a"}, ids(t, p))

	backend.broken = false

	reloaded, err := NewPersistent(backend, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, ids(t, p), ids(t, reloaded))
}

func TestPersistentRequiresBackend(t *testing.T) {
	_, err := NewPersistent(nil, nil)
	require.Error(t, err)
}

func TestSynchronizedConcurrentUse(t *testing.T) {
	s := NewSynchronized(NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("g-%d", i%8)
			_ = s.Upsert(named(id, "x"))
			_, _, _ = s.Get(id)
			_, _ = s.List()
		}(i)
	}
	wg.Wait()

	assert.Len(t, ids(t, s), 8)
}
