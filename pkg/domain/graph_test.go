package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphVertexLifecycle(t *testing.T) {
	g := NewGraph()

	v1 := g.AddVertex(VertexZ, 0, 0)
	v2 := g.AddVertex(VertexX, 1, 2)
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, 2, g.NumVertices())
	assert.Equal(t, VertexZ, g.Type(v1))
	assert.Equal(t, 1.0, g.Qubit(v2))
	assert.Equal(t, 2.0, g.Row(v2))

	g.RemoveVertex(v1)
	assert.False(t, g.Contains(v1))
	assert.Equal(t, 1, g.NumVertices())

	// A fresh vertex never reuses a live ID.
	v3 := g.AddVertex(VertexZ, 0, 0)
	assert.NotEqual(t, v2, v3)
}

func TestGraphAddVertexIndexed(t *testing.T) {
	g := NewGraph()
	v := g.AddVertex(VertexZ, 0, 0)

	err := g.AddVertexIndexed(v)
	require.ErrorIs(t, err, ErrVertexExists)

	g.RemoveVertex(v)
	require.NoError(t, g.AddVertexIndexed(v))
	assert.True(t, g.Contains(v))

	// IDs handed out after a reintroduction stay fresh.
	require.NoError(t, g.AddVertexIndexed(VertexID(40)))
	next := g.AddVertex(VertexZ, 0, 0)
	assert.Equal(t, VertexID(41), next)
}

func TestGraphEdges(t *testing.T) {
	g := NewGraph()
	a := g.AddVertex(VertexZ, 0, 0)
	b := g.AddVertex(VertexX, 0, 1)
	c := g.AddVertex(VertexZ, 0, 2)

	g.AddEdge(NewEdge(b, a), EdgeSimple)
	g.AddEdge(NewEdge(b, c), EdgeHadamard)

	// Edges are unordered pairs.
	assert.True(t, g.Connected(a, b))
	assert.True(t, g.Connected(b, a))
	assert.Equal(t, EdgeSimple, g.EdgeType(NewEdge(a, b)))
	assert.Equal(t, EdgeHadamard, g.EdgeType(Edge{U: c, V: b}))

	// Re-adding an existing pair overwrites the kind; no parallel edge.
	g.AddEdge(NewEdge(a, b), EdgeHadamard)
	assert.Equal(t, 2, g.NumEdges())
	assert.Equal(t, EdgeHadamard, g.EdgeType(NewEdge(a, b)))

	assert.Equal(t, []VertexID{a, c}, g.Neighbors(b))
	assert.Equal(t, 2, g.Degree(b))
	assert.Equal(t, 1, g.Degree(a))

	g.RemoveEdge(NewEdge(b, c))
	assert.False(t, g.Connected(b, c))
	assert.Equal(t, 0, g.Degree(c))
}

func TestGraphRemoveVertexDropsIncidentEdges(t *testing.T) {
	g := NewGraph()
	a := g.AddVertex(VertexZ, 0, 0)
	b := g.AddVertex(VertexX, 0, 1)
	c := g.AddVertex(VertexZ, 0, 2)
	g.AddEdge(NewEdge(a, b), EdgeSimple)
	g.AddEdge(NewEdge(b, c), EdgeSimple)
	g.AddEdge(NewEdge(a, c), EdgeSimple)

	g.RemoveVertex(b)
	assert.Equal(t, 1, g.NumEdges())
	assert.True(t, g.Connected(a, c))
}

func TestGraphRemoveIsolatedVertices(t *testing.T) {
	g := NewGraph()
	a := g.AddVertex(VertexZ, 0, 0)
	b := g.AddVertex(VertexX, 0, 1)
	isolated := g.AddVertex(VertexZ, 0, 2)
	boundary := g.AddVertex(VertexBoundary, 0, 3)
	g.AddEdge(NewEdge(a, b), EdgeSimple)

	removed := g.RemoveIsolatedVertices()
	assert.Equal(t, []VertexID{isolated}, removed)

	// Boundaries stay even with no edges.
	assert.True(t, g.Contains(boundary))
	assert.Equal(t, 3, g.NumVertices())
}

func TestGraphCopyIsolation(t *testing.T) {
	g := NewGraph()
	v := g.AddVertex(VertexZ, 0, 0)
	w := g.AddVertex(VertexX, 0, 1)
	g.AddEdge(NewEdge(v, w), EdgeSimple)
	g.SetPhase(v, NewFraction(1, 2))

	cp := g.Copy()
	require.True(t, g.Equal(cp))

	cp.SetPhase(v, NewFraction(1, 4))
	cp.AddVertex(VertexZ, 5, 5)
	cp.SetEdgeType(NewEdge(v, w), EdgeHadamard)

	assert.True(t, g.Phase(v).Equal(NewFraction(1, 2)))
	assert.Equal(t, 2, g.NumVertices())
	assert.Equal(t, EdgeSimple, g.EdgeType(NewEdge(v, w)))
	assert.False(t, g.Equal(cp))
}

func TestGraphEqualIsIdentityBased(t *testing.T) {
	g1 := NewGraph()
	g1.AddVertex(VertexZ, 0, 0)

	// Same shape, different vertex IDs: not equal.
	g2 := NewGraph()
	burned := g2.AddVertex(VertexX, 0, 0)
	g2.AddVertex(VertexZ, 0, 0)
	g2.RemoveVertex(burned)

	assert.False(t, g1.Equal(g2))
	assert.False(t, g1.Equal(nil))
	assert.True(t, g1.Equal(g1.Copy()))
}

func TestGraphWPair(t *testing.T) {
	g := NewGraph()
	in := g.AddVertex(VertexWInput, 0, 0)
	out := g.AddVertex(VertexWOutput, 0.3, 0)
	other := g.AddVertex(VertexZ, 1, 1)
	g.AddEdge(NewEdge(in, out), EdgeWIO)
	g.AddEdge(NewEdge(out, other), EdgeSimple)

	partner, ok := g.WPartner(in)
	require.True(t, ok)
	assert.Equal(t, out, partner)

	gotIn, gotOut, ok := g.WIO(out)
	require.True(t, ok)
	assert.Equal(t, in, gotIn)
	assert.Equal(t, out, gotOut)

	gotIn, gotOut, ok = g.WIO(in)
	require.True(t, ok)
	assert.Equal(t, in, gotIn)
	assert.Equal(t, out, gotOut)

	_, ok = g.WPartner(other)
	assert.False(t, ok)
}

func TestColorChange(t *testing.T) {
	g := NewGraph()
	z := g.AddVertex(VertexZ, 0, 0)
	x := g.AddVertex(VertexX, 0, 1)
	boundary := g.AddVertex(VertexBoundary, 0, 2)
	g.AddEdge(NewEdge(z, x), EdgeSimple)
	g.AddEdge(NewEdge(z, boundary), EdgeHadamard)

	require.True(t, ColorChange(g, z))
	assert.Equal(t, VertexX, g.Type(z))
	assert.Equal(t, EdgeHadamard, g.EdgeType(NewEdge(z, x)))
	assert.Equal(t, EdgeSimple, g.EdgeType(NewEdge(z, boundary)))

	// Applying it twice restores the original graph.
	before := g.Copy()
	require.True(t, ColorChange(g, x))
	require.True(t, ColorChange(g, x))
	assert.True(t, g.Equal(before))

	assert.False(t, ColorChange(g, boundary))
	assert.Equal(t, VertexBoundary, g.Type(boundary))
}

func TestColorChangeLeavesWIOEdge(t *testing.T) {
	g := NewGraph()
	z := g.AddVertex(VertexZ, 0, 0)
	in := g.AddVertex(VertexWInput, 0, 1)
	out := g.AddVertex(VertexWOutput, 0.3, 1)
	g.AddEdge(NewEdge(in, out), EdgeWIO)
	g.AddEdge(NewEdge(z, out), EdgeWIO)

	require.True(t, ColorChange(g, z))
	assert.Equal(t, EdgeWIO, g.EdgeType(NewEdge(z, out)))
}

func TestGraphJSONRoundTrip(t *testing.T) {
	g := NewGraph()
	z := g.AddVertex(VertexZ, 0, 0)
	x := g.AddVertex(VertexX, 1, 1)
	box := g.AddVertex(VertexZBox, 2, 2)
	g.SetPhase(z, NewFraction(3, 4))
	g.SetLabel(box, "a+b")
	g.AddEdge(NewEdge(z, x), EdgeHadamard)
	g.AddEdge(NewEdge(x, box), EdgeSimple)
	g.RemoveVertex(g.AddVertex(VertexZ, 9, 9)) // bump nextID past a hole

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var loaded Graph
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.True(t, g.Equal(&loaded))
	assert.True(t, loaded.Phase(z).Equal(NewFraction(3, 4)))
	assert.Equal(t, "a+b", loaded.Label(box))
}

func TestGraphComputedZeroPhaseSurvivesRoundTrip(t *testing.T) {
	// A zero phase produced by arithmetic (fusing 1/2 and 3/2) must match
	// the zero value the decoder yields for an omitted phase.
	g := NewGraph()
	v := g.AddVertex(VertexZ, 0, 0)
	g.SetPhase(v, NewFraction(1, 2).Add(NewFraction(3, 2)))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var loaded Graph
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.True(t, g.Equal(&loaded))
	assert.True(t, Diff(g, &loaded).IsEmpty())
}

func TestGraphJSONZeroPhaseOmitted(t *testing.T) {
	g := NewGraph()
	g.AddVertex(VertexZ, 0, 0)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "phase")
}

func TestGraphJSONRejectsMalformed(t *testing.T) {
	var g Graph

	err := json.Unmarshal([]byte(`{"vertices":[],"edges":[],"bogus":1}`), &g)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"vertices":[{"id":0,"type":"Z","row":0,"qubit":0}],"edges":[{"u":0,"v":7,"type":"simple"}]}`), &g)
	assert.ErrorIs(t, err, ErrVertexNotFound)

	err = json.Unmarshal([]byte(`{"vertices":[{"id":0,"type":"Z","row":0,"qubit":0},{"id":0,"type":"X","row":0,"qubit":0}],"edges":[]}`), &g)
	assert.ErrorIs(t, err, ErrVertexExists)
}
