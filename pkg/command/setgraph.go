package command

import (
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/ports"
)

// SetGraph replaces the current graph with an entirely new graph. Undo
// reinstalls the prior graph verbatim. It is both the raw "set graph"
// primitive and the base of the history-append commands.
type SetGraph struct {
	view ports.GraphView
	newG *domain.Graph

	oldG *domain.Graph
}

// NewSetGraph creates the command. The new graph is installed on Redo.
func NewSetGraph(view ports.GraphView, newG *domain.Graph) *SetGraph {
	return &SetGraph{view: view, newG: newG}
}

// Redo stores the currently installed graph and installs the new one.
func (c *SetGraph) Redo() {
	c.oldG = c.view.Graph()
	c.view.SetGraph(c.newG)
}

// Undo reinstalls the stored prior graph.
func (c *SetGraph) Undo() {
	oldG := mustApplied(c.oldG)
	c.view.SetGraph(oldG)
}

// UpdateGraph updates the current graph with a modified one, preserving
// the selection across undo. Unlike SetGraph it notifies through the
// view-update path so the consumer may reuse its existing scene items.
type UpdateGraph struct {
	base
	newG *domain.Graph

	applied *updateCapture
}

type updateCapture struct {
	oldG        *domain.Graph
	oldSelected []domain.VertexID
}

// NewUpdateGraph creates the command.
func NewUpdateGraph(view ports.GraphView, newG *domain.Graph) *UpdateGraph {
	return &UpdateGraph{base: newBase(view), newG: newG}
}

// Redo swaps in the modified graph, selecting the vertices it introduced.
func (c *UpdateGraph) Redo() {
	c.applied = &updateCapture{
		oldG:        c.view.Graph(),
		oldSelected: c.view.Selection(),
	}
	c.g = c.newG
	c.notify(true)
}

// Undo restores the prior graph and the prior selection.
func (c *UpdateGraph) Undo() {
	captured := mustApplied(c.applied)
	c.g = captured.oldG
	c.notify(false)
	c.view.SelectVertices(captured.oldSelected)
}
