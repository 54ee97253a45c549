package command

import (
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/ports"
	"github.com/openzx/proofline/pkg/proof"
)

// AddRewriteStep appends a new rewrite to the proof.
//
// The step is inserted after the currently selected one, replacing every
// step that came after the selection (truncation-on-edit). The discarded
// suffix is captured in order before deletion, so undoing the append
// restores it exactly and moves the cursor back.
type AddRewriteStep struct {
	*SetGraph
	doc    *proof.Document
	cursor ports.StepCursor
	name   string
	rule   string

	applied *rewriteStepCapture
}

type rewriteStepCapture struct {
	oldSelected int
	oldSteps    []proof.Rewrite // captured tail-first, as popped
}

// NewAddRewriteStep creates the command. newG is the graph produced by the
// rewrite named name (rule is the underlying rule identifier).
func NewAddRewriteStep(view ports.GraphView, doc *proof.Document, cursor ports.StepCursor, newG *domain.Graph, name, rule string) *AddRewriteStep {
	return &AddRewriteStep{
		SetGraph: NewSetGraph(view, newG),
		doc:      doc,
		cursor:   cursor,
		name:     name,
		rule:     rule,
	}
}

func (c *AddRewriteStep) Redo() {
	captured := &rewriteStepCapture{oldSelected: c.cursor.CurrentStep()}

	// Truncate to the steps at or before the cursor, keeping what we pop.
	for c.doc.NumSteps() > captured.oldSelected {
		captured.oldSteps = append(captured.oldSteps, c.doc.PopRewrite())
	}

	c.doc.AddRewrite(proof.Rewrite{DisplayName: c.name, Rule: c.rule, Graph: c.newG})
	c.cursor.SetCurrentStep(c.doc.NumSteps())

	c.applied = captured
	c.SetGraph.Redo()
}

func (c *AddRewriteStep) Undo() {
	captured := mustApplied(c.applied)

	c.doc.PopRewrite()

	// Re-append the previously discarded steps in their original order.
	for i := len(captured.oldSteps) - 1; i >= 0; i-- {
		c.doc.AddRewrite(captured.oldSteps[i])
	}

	c.cursor.SetCurrentStep(captured.oldSelected)
	c.applied = nil
	c.SetGraph.Undo()
}

// GoToRewriteStep shows the graph at some step in the proof. It is a pure
// cursor move: the step sequence is untouched, and undoing returns to the
// previously selected step.
type GoToRewriteStep struct {
	*SetGraph
	cursor  ports.StepCursor
	step    int
	oldStep int
}

// NewGoToRewriteStep creates the command. oldStep is the cursor position
// to return to on undo.
func NewGoToRewriteStep(view ports.GraphView, doc *proof.Document, cursor ports.StepCursor, oldStep, step int) *GoToRewriteStep {
	return &GoToRewriteStep{
		SetGraph: NewSetGraph(view, doc.GraphAt(step)),
		cursor:   cursor,
		step:     step,
		oldStep:  oldStep,
	}
}

func (c *GoToRewriteStep) Redo() {
	c.cursor.SetCurrentStep(c.step)
	c.SetGraph.Redo()
}

func (c *GoToRewriteStep) Undo() {
	c.cursor.SetCurrentStep(c.oldStep)
	c.SetGraph.Undo()
}

// MoveNodeInStep moves vertices while a proof step is selected. On top of
// the live position update, the moved graph is written back into the
// proof's stored snapshot for that step, so re-visiting the step later
// reflects the new geometry.
type MoveNodeInStep struct {
	*MoveNode
	doc    *proof.Document
	cursor ports.StepCursor
}

// NewMoveNodeInStep creates the command.
func NewMoveNodeInStep(view ports.GraphView, doc *proof.Document, cursor ports.StepCursor, moves []VertexMove) *MoveNodeInStep {
	return &MoveNodeInStep{
		MoveNode: NewMoveNode(view, moves),
		doc:      doc,
		cursor:   cursor,
	}
}

func (c *MoveNodeInStep) Redo() {
	c.MoveNode.Redo()
	c.doc.SetGraphAt(c.cursor.CurrentStep(), c.g.Copy())
}

func (c *MoveNodeInStep) Undo() {
	c.MoveNode.Undo()
	c.doc.SetGraphAt(c.cursor.CurrentStep(), c.g.Copy())
}
