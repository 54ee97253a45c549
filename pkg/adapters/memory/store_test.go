package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/ports"
	"github.com/openzx/proofline/pkg/proof"
)

func TestMemoryStoreContract(t *testing.T) {
	ports.RunProofStoreContract(t, NewStore())
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	g := domain.NewGraph()
	v := g.AddVertex(domain.VertexZ, 0, 0)
	doc := proof.New(g)

	require.NoError(t, store.Save(ctx, "iso", doc))

	// Mutating the live document must not affect the stored snapshot.
	doc.AddRewrite(proof.Rewrite{DisplayName: "later", Rule: "later", Graph: g.Copy()})

	loaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.NumSteps())

	// Mutating a loaded document must not affect the store either.
	mutated := loaded.GraphAt(0)
	mutated.SetPhase(v, domain.NewFraction(1, 2))
	loaded.SetGraphAt(0, mutated)
	reloaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.True(t, reloaded.GraphAt(0).Phase(v).IsZero())
}
