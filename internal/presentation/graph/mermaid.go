// Package graph renders ZX diagrams as Mermaid flowcharts for terminal
// and documentation output.
package graph

import (
	"fmt"
	"strings"

	"github.com/openzx/proofline/pkg/domain"
)

// Overlay contains dynamic state to visualize on top of the diagram.
type Overlay struct {
	SelectedVertices []domain.VertexID
}

// GenerateMermaid produces Mermaid flowchart syntax for a ZX diagram.
// Shapes follow the vertex kind:
//   - boundary: ((circle))
//   - Z / X spider: (rounded), styled green/red
//   - H box: [[subroutine]]
//   - W input/output: {{hexagon}}
//   - Z box: [rectangle]
//
// Hadamard edges render dotted, W-I/O edges thick. Selected vertices get a
// highlight class when an overlay is provided.
func GenerateMermaid(g *domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, v := range g.Vertices() {
		id := vertexID(v)
		opener, closer := "(", ")"

		switch g.Type(v) {
		case domain.VertexBoundary:
			opener, closer = "((", "))"
		case domain.VertexHBox:
			opener, closer = "[[", "]]"
		case domain.VertexWInput, domain.VertexWOutput:
			opener, closer = "{{", "}}"
		case domain.VertexZBox:
			opener, closer = "[", "]"
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, vertexLabel(g, v), closer))
	}

	for _, e := range g.Edges() {
		arrow := "---"
		switch g.EdgeType(e) {
		case domain.EdgeHadamard:
			arrow = "-. \"H\" .-"
		case domain.EdgeWIO:
			arrow = "==="
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", vertexID(e.U), arrow, vertexID(e.V)))
	}

	sb.WriteString("\n    classDef zspider fill:#d5f5d5,stroke:#2d7a2d,color:#000;\n")
	sb.WriteString("    classDef xspider fill:#f5d5d5,stroke:#7a2d2d,color:#000;\n")
	for _, v := range g.Vertices() {
		switch g.Type(v) {
		case domain.VertexZ:
			sb.WriteString(fmt.Sprintf("    class %s zspider;\n", vertexID(v)))
		case domain.VertexX:
			sb.WriteString(fmt.Sprintf("    class %s xspider;\n", vertexID(v)))
		}
	}

	if overlay != nil && len(overlay.SelectedVertices) > 0 {
		sb.WriteString("    classDef selected stroke:#fbc02d,stroke-width:4px;\n")
		seen := make(map[domain.VertexID]bool)
		for _, v := range overlay.SelectedVertices {
			if !seen[v] && g.Contains(v) {
				seen[v] = true
				sb.WriteString(fmt.Sprintf("    class %s selected;\n", vertexID(v)))
			}
		}
	}

	return sb.String()
}

func vertexID(v domain.VertexID) string {
	return fmt.Sprintf("v%d", v)
}

func vertexLabel(g *domain.Graph, v domain.VertexID) string {
	ty := g.Type(v)
	switch ty {
	case domain.VertexBoundary:
		return fmt.Sprintf("b%d", v)
	case domain.VertexHBox:
		return "H"
	case domain.VertexWInput:
		return "w in"
	case domain.VertexWOutput:
		return "w out"
	case domain.VertexZBox:
		if label := g.Label(v); label != "" {
			return label
		}
		return "zbox"
	}

	label := string(ty)
	if phase := g.Phase(v); !phase.IsZero() {
		label += " " + phase.String() + "π"
	}
	return label
}
