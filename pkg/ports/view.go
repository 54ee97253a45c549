package ports

import "github.com/openzx/proofline/pkg/domain"

// GraphView is the engine's handle on whatever is displaying the live
// graph. Commands notify it after every application; the consumer is
// responsible for re-rendering.
type GraphView interface {
	// Graph returns the currently installed authoritative graph.
	Graph() *domain.Graph

	// SetGraph installs a graph wholesale as the new authoritative graph.
	SetGraph(g *domain.Graph)

	// UpdateGraphView notifies the view that the graph changed. When
	// selectNew is true the view should add vertices that are new relative
	// to its previous graph to the selection set (used to highlight
	// vertices a command introduced).
	UpdateGraphView(g *domain.Graph, selectNew bool)

	// Selection returns the currently selected vertices.
	Selection() []domain.VertexID

	// SelectVertices replaces the current vertex selection.
	SelectVertices(vs []domain.VertexID)
}

// StepCursor tracks which proof step is currently selected. The cursor is
// held by the navigation surface, not by the proof document itself.
type StepCursor interface {
	// CurrentStep returns the selected position in [0, NumSteps];
	// 0 denotes the initial graph.
	CurrentStep() int

	// SetCurrentStep moves the selection.
	SetCurrentStep(i int)
}
