package store

import (
	"context"
	"sync"

	"github.com/flowlens/flowlens/pkg/errors"
)

// MemoryStore keeps records in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*Record
	byHash map[string]string // hash -> id
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]*Record),
		byHash: make(map[string]string),
	}
}

// Put archives a record.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[rec.ID] = rec
	if rec.Hash != "" {
		s.byHash[rec.Hash] = rec.ID
	}
	return nil
}

// Get returns the record with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "workflow %s not found", id)
	}
	return rec, nil
}

// FindByHash returns the record with the given content hash.
func (s *MemoryStore) FindByHash(ctx context.Context, hash string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byHash[hash]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no workflow with hash %s", hash)
	}
	return s.byID[id], nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
