package domain

// ColorChange applies the color-change rule to a single spider: the vertex
// kind is swapped between Z and X and every incident non-W edge toggles
// between plain and Hadamard (Hadamard conjugation). The operation is an
// involution. Vertices that are not Z or X spiders are left untouched and
// the function reports false.
func ColorChange(g *Graph, v VertexID) bool {
	switch g.Type(v) {
	case VertexZ:
		g.SetType(v, VertexX)
	case VertexX:
		g.SetType(v, VertexZ)
	default:
		return false
	}
	for _, e := range g.Edges() {
		if !e.Contains(v) {
			continue
		}
		switch g.EdgeType(e) {
		case EdgeSimple:
			g.SetEdgeType(e, EdgeHadamard)
		case EdgeHadamard:
			g.SetEdgeType(e, EdgeSimple)
		}
	}
	return true
}
