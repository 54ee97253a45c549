package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/proof"
)

// RunProofStoreContract runs a suite of tests to verify that a ProofStore
// implementation adheres to the defined interface contract.
func RunProofStoreContract(t *testing.T, store ProofStore) {
	ctx := context.Background()
	proofID := "contract-test-proof-" + time.Now().Format("20060102150405")

	buildDoc := func() *proof.Document {
		g := domain.NewGraph()
		a := g.AddVertex(domain.VertexZ, 0, 0)
		b := g.AddVertex(domain.VertexX, 1, 0)
		g.AddEdge(domain.NewEdge(a, b), domain.EdgeSimple)

		doc := proof.New(g)
		next := g.Copy()
		next.SetPhase(a, domain.NewFraction(1, 2))
		doc.AddRewrite(proof.Rewrite{DisplayName: "set phase", Rule: "phase", Graph: next})
		return doc
	}

	t.Run("Save and Load", func(t *testing.T) {
		doc := buildDoc()
		err := store.Save(ctx, proofID, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, proofID)
		require.NoError(t, err, "Load should not return error")
		require.Equal(t, doc.NumSteps(), loaded.NumSteps())
		assert.Equal(t, "set phase", loaded.Step(0).DisplayName)
		assert.True(t, doc.GraphAt(0).Equal(loaded.GraphAt(0)), "initial graph should round-trip")
		assert.True(t, doc.GraphAt(1).Equal(loaded.GraphAt(1)), "step graph should round-trip")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+proofID)
		assert.ErrorIs(t, err, domain.ErrProofNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, proofID, buildDoc())
		require.NoError(t, err)

		err = store.Delete(ctx, proofID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, proofID)
		assert.ErrorIs(t, err, domain.ErrProofNotFound, "Load after Delete should return ErrProofNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := proofID + "-1"
		id2 := proofID + "-2"
		require.NoError(t, store.Save(ctx, id1, buildDoc()))
		require.NoError(t, store.Save(ctx, id2, buildDoc()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		proofs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, proofs, id1)
		assert.Contains(t, proofs, id2)
	})
}
