package command

import (
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/ports"
)

// Command is an atomic, reversible mutation over one graph snapshot.
//
// Redo applies the forward mutation; the first call captures the undo
// state as a side effect. Undo restores the working graph to its exact
// pre-Redo state using only that captured data. Both end by notifying the
// view with the updated graph.
type Command interface {
	Redo()
	Undo()
}

// base carries the pieces shared by all commands: the view to notify and a
// private working copy of the graph taken at construction time. The copy
// guarantees that commands never mutate the caller's graph directly and
// never alias state across commands.
type base struct {
	view ports.GraphView
	g    *domain.Graph
}

func newBase(view ports.GraphView) base {
	return base{view: view, g: view.Graph().Copy()}
}

// notify pushes the working graph to the view. selectNew asks the view to
// highlight vertices that are new relative to what it showed before.
func (b *base) notify(selectNew bool) {
	b.view.UpdateGraphView(b.g, selectNew)
}

// mustApplied is the Pending-state guard: commands call it at the top of
// Undo with their captured-state pointer.
func mustApplied[T any](captured *T) *T {
	if captured == nil {
		panic("command: undo invoked before redo")
	}
	return captured
}
