package domain

// GraphDiff represents the changes between two graphs. It is designed to
// be serialized to JSON so that a proof can persist one compact patch per
// step instead of a full graph snapshot.
type GraphDiff struct {
	// RemovedVertices lists vertices present in the old graph only.
	RemovedVertices []VertexID `json:"removed_vertices,omitempty"`

	// AddedVertices maps new vertex IDs to their full attribute records.
	AddedVertices map[VertexID]VertexData `json:"added_vertices,omitempty"`

	// ChangedVertices maps surviving vertices whose attributes differ to
	// their new attribute records. Sending the whole record keeps Apply
	// trivial; vertex records are small.
	ChangedVertices map[VertexID]VertexData `json:"changed_vertices,omitempty"`

	// RemovedEdges lists edges present in the old graph only.
	RemovedEdges []Edge `json:"removed_edges,omitempty"`

	// AddedEdges lists new edges with their kinds.
	AddedEdges []EdgeChange `json:"added_edges,omitempty"`

	// ChangedEdges lists surviving edges whose kind differs.
	ChangedEdges []EdgeChange `json:"changed_edges,omitempty"`
}

// EdgeChange pairs an edge with a kind, used for added and retyped edges.
type EdgeChange struct {
	Edge Edge     `json:"edge"`
	Type EdgeType `json:"type"`
}

// Diff calculates the difference between oldGraph and newGraph such that
// applying the result to oldGraph reproduces newGraph exactly.
func Diff(oldGraph, newGraph *Graph) *GraphDiff {
	d := &GraphDiff{}

	for _, v := range oldGraph.Vertices() {
		if !newGraph.Contains(v) {
			d.RemovedVertices = append(d.RemovedVertices, v)
		}
	}
	for _, v := range newGraph.Vertices() {
		newData := newGraph.vertices[v]
		oldData, ok := oldGraph.vertices[v]
		switch {
		case !ok:
			if d.AddedVertices == nil {
				d.AddedVertices = make(map[VertexID]VertexData)
			}
			d.AddedVertices[v] = newData
		case oldData != newData:
			if d.ChangedVertices == nil {
				d.ChangedVertices = make(map[VertexID]VertexData)
			}
			d.ChangedVertices[v] = newData
		}
	}

	for _, e := range oldGraph.Edges() {
		if _, ok := newGraph.edges[e]; !ok {
			d.RemovedEdges = append(d.RemovedEdges, e)
		}
	}
	for _, e := range newGraph.Edges() {
		newTy := newGraph.edges[e]
		oldTy, ok := oldGraph.edges[e]
		switch {
		case !ok:
			d.AddedEdges = append(d.AddedEdges, EdgeChange{Edge: e, Type: newTy})
		case oldTy != newTy:
			d.ChangedEdges = append(d.ChangedEdges, EdgeChange{Edge: e, Type: newTy})
		}
	}

	return d
}

// IsEmpty reports whether the diff carries no changes.
func (d *GraphDiff) IsEmpty() bool {
	return len(d.RemovedVertices) == 0 &&
		len(d.AddedVertices) == 0 &&
		len(d.ChangedVertices) == 0 &&
		len(d.RemovedEdges) == 0 &&
		len(d.AddedEdges) == 0 &&
		len(d.ChangedEdges) == 0
}

// Apply patches a copy of g with the diff and returns it. The input graph
// is left untouched. Removals run before insertions so a reused vertex ID
// or edge slot never conflicts.
func (d *GraphDiff) Apply(g *Graph) (*Graph, error) {
	out := g.Copy()

	out.RemoveEdges(d.RemovedEdges)
	out.RemoveVertices(d.RemovedVertices)

	for v, data := range d.AddedVertices {
		if err := out.AddVertexIndexed(v); err != nil {
			return nil, err
		}
		out.vertices[v] = data
	}
	for v, data := range d.ChangedVertices {
		if !out.Contains(v) {
			return nil, ErrVertexNotFound
		}
		out.vertices[v] = data
	}

	for _, ec := range d.AddedEdges {
		out.AddEdge(ec.Edge, ec.Type)
	}
	for _, ec := range d.ChangedEdges {
		out.SetEdgeType(ec.Edge, ec.Type)
	}

	return out, nil
}
