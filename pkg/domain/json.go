package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// vertexJSON is the wire form of a vertex.
type vertexJSON struct {
	ID    VertexID   `json:"id"`
	Type  VertexType `json:"type"`
	Phase Fraction   `json:"phase,omitzero"`
	Label string     `json:"label,omitempty"`
	Row   float64    `json:"row"`
	Qubit float64    `json:"qubit"`
}

// edgeJSON is the wire form of an edge.
type edgeJSON struct {
	U    VertexID `json:"u"`
	V    VertexID `json:"v"`
	Type EdgeType `json:"type"`
}

type graphJSON struct {
	Vertices []vertexJSON `json:"vertices"`
	Edges    []edgeJSON   `json:"edges"`
}

// MarshalJSON serializes the graph with vertices and edges in
// deterministic order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := graphJSON{
		Vertices: make([]vertexJSON, 0, len(g.vertices)),
		Edges:    make([]edgeJSON, 0, len(g.edges)),
	}
	for _, v := range g.Vertices() {
		data := g.vertices[v]
		doc.Vertices = append(doc.Vertices, vertexJSON{
			ID:    v,
			Type:  data.Type,
			Phase: data.Phase,
			Label: data.Label,
			Row:   data.Row,
			Qubit: data.Qubit,
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, edgeJSON{U: e.U, V: e.V, Type: g.edges[e]})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON deserializes a graph. Unknown fields are rejected so that
// a malformed document fails loudly instead of loading partially.
func (g *Graph) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc graphJSON
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode graph: %w", err)
	}

	parsed := NewGraph()
	for _, v := range doc.Vertices {
		if err := parsed.AddVertexIndexed(v.ID); err != nil {
			return fmt.Errorf("decode graph: %w", err)
		}
		parsed.vertices[v.ID] = VertexData{
			Type:  v.Type,
			Phase: v.Phase,
			Label: v.Label,
			Row:   v.Row,
			Qubit: v.Qubit,
		}
	}
	for _, e := range doc.Edges {
		if !parsed.Contains(e.U) || !parsed.Contains(e.V) {
			return fmt.Errorf("decode graph: edge (%d,%d): %w", e.U, e.V, ErrVertexNotFound)
		}
		parsed.AddEdge(NewEdge(e.U, e.V), e.Type)
	}

	*g = *parsed
	return nil
}
