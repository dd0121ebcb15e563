// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"ltodo/internal/storage"
)

// FakeStorage is an in-memory implementation of storage.Storage for testing.
type FakeStorage struct {
	mu     sync.RWMutex
	values map[string]string
	writes int

	// Error injection for testing
	GetErr error
	SetErr error
}

// NewFakeStorage creates an empty FakeStorage.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{values: make(map[string]string)}
}

// Put stores a value without counting it as a write.
func (f *FakeStorage) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Value returns the stored value and whether the key exists.
func (f *FakeStorage) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Writes returns the number of successful Set calls.
func (f *FakeStorage) Writes() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.writes
}

// Get implements storage.Storage.
func (f *FakeStorage) Get(ctx context.Context, key string) (string, error) {
	if f.GetErr != nil {
		return "", f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

// Set implements storage.Storage.
func (f *FakeStorage) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.writes++
	return nil
}

// Close implements storage.Storage.
func (f *FakeStorage) Close() error { return nil }
