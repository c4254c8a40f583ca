package memory

import (
	"context"
	"sync"

	"finance/internal/core"
)

// Store keeps the ledger in process memory for the lifetime of the session.
type Store struct {
	mu     sync.RWMutex
	ledger core.Ledger
}

func New() *Store {
	return &Store{ledger: core.Ledger{}}
}

// Prepend adds t to the front of the ledger.
func (s *Store) Prepend(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = s.ledger.Add(t)
	return nil
}

// Remove drops the transaction with the identifier if present.
func (s *Store) Remove(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ledger.Contains(id) {
		return false, nil
	}
	s.ledger = s.ledger.Remove(id)
	return true, nil
}

// List returns a copy of the ledger, newest first.
func (s *Store) List(_ context.Context) (core.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Clone(), nil
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ledger)
}
