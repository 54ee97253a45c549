package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openzx/proofline/pkg/domain"
)

func TestFuse(t *testing.T) {
	t.Run("Adds Phases And Moves Edges", func(t *testing.T) {
		g := domain.NewGraph()
		u := g.AddVertex(domain.VertexZ, 0, 0)
		v := g.AddVertex(domain.VertexZ, 0, 1)
		out := g.AddVertex(domain.VertexBoundary, 0, 2)
		g.SetPhase(u, domain.NewFraction(1, 2))
		g.SetPhase(v, domain.NewFraction(1, 4))
		g.AddEdge(domain.NewEdge(u, v), domain.EdgeSimple)
		g.AddEdge(domain.NewEdge(v, out), domain.EdgeHadamard)

		matches := MatchFuse(g, Selection{Vertices: []domain.VertexID{u, v}})
		require.Len(t, matches, 1)

		res, err := RuleFuse(g, matches)
		require.NoError(t, err)
		assert.Equal(t, []domain.VertexID{v}, res.RemoveVertices)
		assert.Equal(t, domain.EdgeHadamard, res.EdgeTable[domain.NewEdge(u, out)])
		assert.True(t, g.Phase(u).Equal(domain.NewFraction(3, 4)))
	})

	t.Run("Requires Same Color And Plain Edge", func(t *testing.T) {
		g := domain.NewGraph()
		u := g.AddVertex(domain.VertexZ, 0, 0)
		v := g.AddVertex(domain.VertexX, 0, 1)
		g.AddEdge(domain.NewEdge(u, v), domain.EdgeSimple)
		assert.Empty(t, MatchFuse(g, Selection{Vertices: []domain.VertexID{u, v}}))

		g2 := domain.NewGraph()
		a := g2.AddVertex(domain.VertexZ, 0, 0)
		b := g2.AddVertex(domain.VertexZ, 0, 1)
		g2.AddEdge(domain.NewEdge(a, b), domain.EdgeHadamard)
		assert.Empty(t, MatchFuse(g2, Selection{Vertices: []domain.VertexID{a, b}}))
	})

	t.Run("Matches Are Disjoint", func(t *testing.T) {
		g := domain.NewGraph()
		a := g.AddVertex(domain.VertexZ, 0, 0)
		b := g.AddVertex(domain.VertexZ, 0, 1)
		c := g.AddVertex(domain.VertexZ, 0, 2)
		g.AddEdge(domain.NewEdge(a, b), domain.EdgeSimple)
		g.AddEdge(domain.NewEdge(b, c), domain.EdgeSimple)

		matches := MatchFuse(g, Selection{Vertices: []domain.VertexID{a, b, c}})
		assert.Len(t, matches, 1)
	})
}

func TestRemoveIdentity(t *testing.T) {
	t.Run("Joins Neighbors", func(t *testing.T) {
		g := domain.NewGraph()
		a := g.AddVertex(domain.VertexBoundary, 0, 0)
		v := g.AddVertex(domain.VertexZ, 0, 1)
		b := g.AddVertex(domain.VertexBoundary, 0, 2)
		g.AddEdge(domain.NewEdge(a, v), domain.EdgeSimple)
		g.AddEdge(domain.NewEdge(v, b), domain.EdgeHadamard)

		matches := MatchRemoveIdentity(g, Selection{Vertices: []domain.VertexID{v}})
		require.Len(t, matches, 1)

		res, err := RuleRemoveIdentity(g, matches)
		require.NoError(t, err)
		assert.Equal(t, []domain.VertexID{v}, res.RemoveVertices)
		// Simple then Hadamard composes to Hadamard.
		assert.Equal(t, domain.EdgeHadamard, res.EdgeTable[domain.NewEdge(a, b)])
	})

	t.Run("Double Hadamard Cancels", func(t *testing.T) {
		g := domain.NewGraph()
		a := g.AddVertex(domain.VertexBoundary, 0, 0)
		v := g.AddVertex(domain.VertexX, 0, 1)
		b := g.AddVertex(domain.VertexBoundary, 0, 2)
		g.AddEdge(domain.NewEdge(a, v), domain.EdgeHadamard)
		g.AddEdge(domain.NewEdge(v, b), domain.EdgeHadamard)

		matches := MatchRemoveIdentity(g, Selection{Vertices: []domain.VertexID{v}})
		require.Len(t, matches, 1)

		res, err := RuleRemoveIdentity(g, matches)
		require.NoError(t, err)
		assert.Equal(t, domain.EdgeSimple, res.EdgeTable[domain.NewEdge(a, b)])
	})

	t.Run("Rejects Phased Or High Arity", func(t *testing.T) {
		g := domain.NewGraph()
		a := g.AddVertex(domain.VertexBoundary, 0, 0)
		v := g.AddVertex(domain.VertexZ, 0, 1)
		b := g.AddVertex(domain.VertexBoundary, 0, 2)
		g.SetPhase(v, domain.NewFraction(1, 2))
		g.AddEdge(domain.NewEdge(a, v), domain.EdgeSimple)
		g.AddEdge(domain.NewEdge(v, b), domain.EdgeSimple)

		assert.Empty(t, MatchRemoveIdentity(g, Selection{Vertices: []domain.VertexID{v}}))
	})
}

func TestColorChangeRule(t *testing.T) {
	g := domain.NewGraph()
	v := g.AddVertex(domain.VertexZ, 0, 0)
	n := g.AddVertex(domain.VertexBoundary, 0, 1)
	g.AddEdge(domain.NewEdge(v, n), domain.EdgeSimple)

	matches := MatchColorChange(g, Selection{Vertices: []domain.VertexID{v, n}})
	require.Len(t, matches, 1, "boundary vertex must not match")

	res, err := RuleColorChange(g.Copy(), matches)
	require.NoError(t, err)
	require.NotNil(t, res.NewGraph)
	assert.Equal(t, domain.VertexX, res.NewGraph.Type(v))
	assert.Equal(t, domain.EdgeHadamard, res.NewGraph.EdgeType(domain.NewEdge(v, n)))
}

func TestHadamardToHBox(t *testing.T) {
	g := domain.NewGraph()
	u := g.AddVertex(domain.VertexZ, 0, 0)
	v := g.AddVertex(domain.VertexX, 0, 2)
	g.AddEdge(domain.NewEdge(u, v), domain.EdgeHadamard)

	matches := MatchHadamardEdges(g, Selection{Edges: []domain.Edge{domain.NewEdge(u, v)}})
	require.Len(t, matches, 1)

	res, err := RuleHadamardToHBox(g, matches)
	require.NoError(t, err)
	assert.Equal(t, []domain.Edge{domain.NewEdge(u, v)}, res.RemoveEdges)
	require.Len(t, res.EdgeTable, 2)
	for _, ty := range res.EdgeTable {
		assert.Equal(t, domain.EdgeSimple, ty)
	}
}
