package domain

// EdgeType constants define the kind of an edge.
const (
	// EdgeSimple is a plain wire.
	EdgeSimple EdgeType = "simple"
	// EdgeHadamard is a wire with a Hadamard gate on it.
	EdgeHadamard EdgeType = "hadamard"
	// EdgeWIO is the distinguished edge joining a W input to its W output.
	EdgeWIO EdgeType = "w_io"
)

// EdgeType is the kind of an edge.
type EdgeType string

// Edge is an unordered pair of vertex IDs. Always construct it through
// NewEdge so that (u,v) and (v,u) compare equal as map keys.
type Edge struct {
	U VertexID `json:"u"`
	V VertexID `json:"v"`
}

// NewEdge returns the normalized edge between u and v.
func NewEdge(u, v VertexID) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Other returns the endpoint opposite to v.
func (e Edge) Other(v VertexID) VertexID {
	if e.U == v {
		return e.V
	}
	return e.U
}

// Contains reports whether v is an endpoint of e.
func (e Edge) Contains(v VertexID) bool {
	return e.U == v || e.V == v
}
