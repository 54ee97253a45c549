package ports

import (
	"context"

	"github.com/openzx/proofline/pkg/proof"
)

// ProofStore defines the interface for persisting proof documents.
// This allows an editing session to be closed and resumed later.
type ProofStore interface {
	// Save persists the proof under the given ID.
	Save(ctx context.Context, proofID string, doc *proof.Document) error

	// Load retrieves the proof for a given ID.
	// Returns domain.ErrProofNotFound if the proof does not exist.
	Load(ctx context.Context, proofID string) (*proof.Document, error)

	// Delete removes the proof for a given ID.
	Delete(ctx context.Context, proofID string) error

	// List returns the IDs of all stored proofs.
	List(ctx context.Context) ([]string, error)
}
