// Package kv holds the string key-value backends saved gradients are
// persisted to.
package kv

import "errors"

// ErrKeyNotFound reports a key that has never been set or has been deleted.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a minimal string key-value store.
type Backend interface {
	// Get returns ErrKeyNotFound when key is absent.
	Get(key string) (string, error)
	Set(key, value string) error
	// Delete is a no-op for an absent key.
	Delete(key string) error
}
