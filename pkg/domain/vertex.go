package domain

// VertexID identifies a vertex within a graph. IDs are never reused while
// a vertex is present, but a removed ID may be reintroduced explicitly via
// AddVertexIndexed (used by undo paths to restore deleted vertices).
type VertexID int

// VertexType constants define the kind of a vertex.
const (
	// VertexBoundary marks an input/output of the diagram.
	VertexBoundary VertexType = "boundary"
	// VertexZ is a Z spider carrying a phase.
	VertexZ VertexType = "Z"
	// VertexX is an X spider carrying a phase.
	VertexX VertexType = "X"
	// VertexHBox is a Hadamard box.
	VertexHBox VertexType = "hbox"
	// VertexWInput is the input half of a W node pair. It carries no
	// structural edges other than the single W-I/O edge to its partner.
	VertexWInput VertexType = "w_input"
	// VertexWOutput is the output half of a W node pair. All structural
	// edges of the logical W node attach here.
	VertexWOutput VertexType = "w_output"
	// VertexZBox is a Z box carrying a symbolic label instead of a phase.
	VertexZBox VertexType = "z_box"
)

// VertexType is the kind of a vertex.
type VertexType string

// IsWNode reports whether the type is one half of a W node pair.
func (t VertexType) IsWNode() bool {
	return t == VertexWInput || t == VertexWOutput
}

// VertexData holds the attributes of a single vertex.
type VertexData struct {
	Type  VertexType `json:"type"`
	Phase Fraction   `json:"phase,omitzero"`
	Label string     `json:"label,omitempty"`
	Row   float64    `json:"row"`
	Qubit float64    `json:"qubit"`
}
