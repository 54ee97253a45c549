package domain

import (
	"fmt"
	"sort"
)

// Graph is a mutable attributed multigraph with at most one edge per
// unordered vertex pair. It is not safe for concurrent use; the engine is
// single-threaded by design and every command works on its own copy.
type Graph struct {
	vertices map[VertexID]VertexData
	edges    map[Edge]EdgeType
	nextID   VertexID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[VertexID]VertexData),
		edges:    make(map[Edge]EdgeType),
	}
}

// AddVertex inserts a fresh vertex and returns its ID.
func (g *Graph) AddVertex(ty VertexType, qubit, row float64) VertexID {
	id := g.nextID
	g.nextID++
	g.vertices[id] = VertexData{Type: ty, Qubit: qubit, Row: row}
	return id
}

// AddVertexIndexed reintroduces a vertex under a specific ID. It is used
// by undo paths to restore a deleted vertex with its original identity.
func (g *Graph) AddVertexIndexed(id VertexID) error {
	if _, ok := g.vertices[id]; ok {
		return fmt.Errorf("vertex %d: %w", id, ErrVertexExists)
	}
	g.vertices[id] = VertexData{}
	if id >= g.nextID {
		g.nextID = id + 1
	}
	return nil
}

// RemoveVertex deletes a vertex and all of its incident edges.
func (g *Graph) RemoveVertex(v VertexID) {
	for e := range g.edges {
		if e.Contains(v) {
			delete(g.edges, e)
		}
	}
	delete(g.vertices, v)
}

// RemoveVertices deletes a batch of vertices.
func (g *Graph) RemoveVertices(vs []VertexID) {
	for _, v := range vs {
		g.RemoveVertex(v)
	}
}

// Contains reports whether the vertex is present.
func (g *Graph) Contains(v VertexID) bool {
	_, ok := g.vertices[v]
	return ok
}

// AddEdge inserts the edge with the given kind, overwriting the kind of an
// already present edge. The pair-uniqueness invariant is structural: the
// edge set is keyed by the normalized pair.
func (g *Graph) AddEdge(e Edge, ty EdgeType) {
	g.edges[NewEdge(e.U, e.V)] = ty
}

// RemoveEdge deletes the edge if present.
func (g *Graph) RemoveEdge(e Edge) {
	delete(g.edges, NewEdge(e.U, e.V))
}

// RemoveEdges deletes a batch of edges.
func (g *Graph) RemoveEdges(es []Edge) {
	for _, e := range es {
		g.RemoveEdge(e)
	}
}

// Connected reports whether an edge exists between u and v.
func (g *Graph) Connected(u, v VertexID) bool {
	_, ok := g.edges[NewEdge(u, v)]
	return ok
}

// EdgeType returns the kind of the edge, or "" if the edge is absent.
func (g *Graph) EdgeType(e Edge) EdgeType {
	return g.edges[NewEdge(e.U, e.V)]
}

// SetEdgeType changes the kind of an existing edge.
func (g *Graph) SetEdgeType(e Edge, ty EdgeType) {
	e = NewEdge(e.U, e.V)
	if _, ok := g.edges[e]; ok {
		g.edges[e] = ty
	}
}

// Type returns the kind of a vertex, or "" if absent.
func (g *Graph) Type(v VertexID) VertexType {
	return g.vertices[v].Type
}

// SetType changes the kind of a vertex.
func (g *Graph) SetType(v VertexID, ty VertexType) {
	if data, ok := g.vertices[v]; ok {
		data.Type = ty
		g.vertices[v] = data
	}
}

// Phase returns the phase of a vertex.
func (g *Graph) Phase(v VertexID) Fraction {
	return g.vertices[v].Phase
}

// SetPhase changes the phase of a vertex.
func (g *Graph) SetPhase(v VertexID, phase Fraction) {
	if data, ok := g.vertices[v]; ok {
		data.Phase = phase
		g.vertices[v] = data
	}
}

// Label returns the symbolic box label of a vertex.
func (g *Graph) Label(v VertexID) string {
	return g.vertices[v].Label
}

// SetLabel changes the symbolic box label of a vertex.
func (g *Graph) SetLabel(v VertexID, label string) {
	if data, ok := g.vertices[v]; ok {
		data.Label = label
		g.vertices[v] = data
	}
}

// Row returns the row coordinate of a vertex.
func (g *Graph) Row(v VertexID) float64 {
	return g.vertices[v].Row
}

// SetRow changes the row coordinate of a vertex.
func (g *Graph) SetRow(v VertexID, row float64) {
	if data, ok := g.vertices[v]; ok {
		data.Row = row
		g.vertices[v] = data
	}
}

// Qubit returns the qubit coordinate of a vertex.
func (g *Graph) Qubit(v VertexID) float64 {
	return g.vertices[v].Qubit
}

// SetQubit changes the qubit coordinate of a vertex.
func (g *Graph) SetQubit(v VertexID, qubit float64) {
	if data, ok := g.vertices[v]; ok {
		data.Qubit = qubit
		g.vertices[v] = data
	}
}

// VertexData returns a copy of the full attribute record of a vertex.
func (g *Graph) VertexData(v VertexID) (VertexData, bool) {
	data, ok := g.vertices[v]
	return data, ok
}

// SetVertexData replaces the full attribute record of a vertex.
func (g *Graph) SetVertexData(v VertexID, data VertexData) {
	if _, ok := g.vertices[v]; ok {
		g.vertices[v] = data
	}
}

// Neighbors returns the adjacent vertices of v in ascending ID order.
func (g *Graph) Neighbors(v VertexID) []VertexID {
	var ns []VertexID
	for e := range g.edges {
		if e.Contains(v) {
			ns = append(ns, e.Other(v))
		}
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
	return ns
}

// Degree returns the number of incident edges of v.
func (g *Graph) Degree(v VertexID) int {
	n := 0
	for e := range g.edges {
		if e.Contains(v) {
			n++
		}
	}
	return n
}

// Vertices returns all vertex IDs in ascending order.
func (g *Graph) Vertices() []VertexID {
	vs := make([]VertexID, 0, len(g.vertices))
	for v := range g.vertices {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}

// Edges returns all edges in a deterministic order.
func (g *Graph) Edges() []Edge {
	es := make([]Edge, 0, len(g.edges))
	for e := range g.edges {
		es = append(es, e)
	}
	sort.Slice(es, func(i, j int) bool {
		if es[i].U != es[j].U {
			return es[i].U < es[j].U
		}
		return es[i].V < es[j].V
	})
	return es
}

// NumVertices returns the vertex count.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.edges) }

// RemoveIsolatedVertices deletes every non-boundary vertex with no
// incident edges and returns the removed IDs.
func (g *Graph) RemoveIsolatedVertices() []VertexID {
	var removed []VertexID
	for _, v := range g.Vertices() {
		if g.Type(v) != VertexBoundary && g.Degree(v) == 0 {
			g.RemoveVertex(v)
			removed = append(removed, v)
		}
	}
	return removed
}

// Copy returns a deep copy of the graph.
func (g *Graph) Copy() *Graph {
	cp := &Graph{
		vertices: make(map[VertexID]VertexData, len(g.vertices)),
		edges:    make(map[Edge]EdgeType, len(g.edges)),
		nextID:   g.nextID,
	}
	for v, data := range g.vertices {
		cp.vertices[v] = data
	}
	for e, ty := range g.edges {
		cp.edges[e] = ty
	}
	return cp
}

// Equal reports whether two graphs have identical vertex and edge sets
// with identical attributes. Vertex identity matters; it is not an
// isomorphism check.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || len(g.vertices) != len(other.vertices) || len(g.edges) != len(other.edges) {
		return false
	}
	for v, data := range g.vertices {
		otherData, ok := other.vertices[v]
		if !ok || data != otherData {
			return false
		}
	}
	for e, ty := range g.edges {
		if other.edges[e] != ty {
			return false
		}
	}
	return true
}

// WPartner returns the other half of a W node pair, located through the
// single W-I/O edge incident to v.
func (g *Graph) WPartner(v VertexID) (VertexID, bool) {
	for e, ty := range g.edges {
		if ty == EdgeWIO && e.Contains(v) {
			return e.Other(v), true
		}
	}
	return 0, false
}

// WIO resolves a W pair to its (input, output) vertices given either half.
func (g *Graph) WIO(v VertexID) (in VertexID, out VertexID, ok bool) {
	partner, ok := g.WPartner(v)
	if !ok {
		return 0, 0, false
	}
	if g.Type(v) == VertexWInput {
		return v, partner, true
	}
	return partner, v, true
}
