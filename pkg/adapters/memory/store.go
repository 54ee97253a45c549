// Package memory provides an in-memory proof store, useful for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/proof"
)

// Store implements ports.ProofStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*proof.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*proof.Document),
	}
}

// Save persists the proof in memory. The document is deep copied so later
// edits to the live proof do not leak into the stored snapshot.
func (s *Store) Save(ctx context.Context, proofID string, doc *proof.Document) error {
	copied := doc.Copy()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[proofID] = copied
	return nil
}

// Load retrieves the proof from memory. Copy-on-read keeps the stored
// snapshot isolated from the caller.
func (s *Store) Load(ctx context.Context, proofID string) (*proof.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[proofID]
	if !ok {
		return nil, domain.ErrProofNotFound
	}
	return doc.Copy(), nil
}

// Delete removes the proof.
func (s *Store) Delete(ctx context.Context, proofID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, proofID)
	return nil
}

// List returns the stored proof IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
