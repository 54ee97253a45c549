package proof

import (
	"fmt"

	"github.com/openzx/proofline/pkg/domain"
)

// Rewrite is one step of a proof: a named transformation together with the
// graph it produced.
type Rewrite struct {
	// DisplayName is the name shown to the user. It may be edited later
	// without affecting the rule identity.
	DisplayName string

	// Rule identifies the rewrite rule that was applied.
	Rule string

	// Graph is the result of applying the rule to the previous step.
	Graph *domain.Graph
}

// Document is the ordered log of rewrite steps anchored at an initial graph.
type Document struct {
	initial *domain.Graph
	steps   []Rewrite
}

// New creates a proof document starting from the given graph.
func New(initial *domain.Graph) *Document {
	return &Document{initial: initial}
}

// NumSteps returns the number of rewrite steps (excluding the initial graph).
func (d *Document) NumSteps() int { return len(d.steps) }

// Steps returns a copy of the step log.
func (d *Document) Steps() []Rewrite {
	out := make([]Rewrite, len(d.steps))
	copy(out, d.steps)
	return out
}

// Step returns the i-th rewrite step, i in [0, NumSteps).
func (d *Document) Step(i int) Rewrite { return d.steps[i] }

// AddRewrite appends a rewrite step to the log.
func (d *Document) AddRewrite(r Rewrite) {
	d.steps = append(d.steps, r)
}

// PopRewrite removes and returns the latest rewrite step. Popping an empty
// log is a contract violation: the command stack guarantees a step exists
// whenever a pop is issued.
func (d *Document) PopRewrite() Rewrite {
	if len(d.steps) == 0 {
		panic("proof: pop on empty step log")
	}
	r := d.steps[len(d.steps)-1]
	d.steps = d.steps[:len(d.steps)-1]
	return r
}

// GraphAt returns a copy of the graph at position i, where 0 is the
// initial graph and i>0 is the result of step i-1. Copy-on-read keeps
// history snapshots isolated from live edits.
func (d *Document) GraphAt(i int) *domain.Graph {
	if i == 0 {
		return d.initial.Copy()
	}
	return d.steps[i-1].Graph.Copy()
}

// SetGraphAt writes a graph back into the stored snapshot at position i.
// Position edits applied while a step is selected use this so that
// re-visiting the step reflects the moved geometry.
func (d *Document) SetGraphAt(i int, g *domain.Graph) {
	if i == 0 {
		d.initial = g
		return
	}
	d.steps[i-1].Graph = g
}

// Graphs returns copies of every graph in the proof, initial first.
func (d *Document) Graphs() []*domain.Graph {
	out := make([]*domain.Graph, 0, len(d.steps)+1)
	for i := 0; i <= len(d.steps); i++ {
		out = append(out, d.GraphAt(i))
	}
	return out
}

// Copy returns a deep copy of the document, graphs included.
func (d *Document) Copy() *Document {
	out := &Document{initial: d.initial.Copy(), steps: make([]Rewrite, len(d.steps))}
	copy(out.steps, d.steps)
	for i := range out.steps {
		out.steps[i].Graph = out.steps[i].Graph.Copy()
	}
	return out
}

// RenameStep changes the display name of step i (1-based position in the
// proof, matching GraphAt). This is a cosmetic-only direct mutation and is
// deliberately not routed through the undo stack.
func (d *Document) RenameStep(i int, name string) error {
	if i < 1 || i > len(d.steps) {
		return fmt.Errorf("rename step %d: out of range [1,%d]", i, len(d.steps))
	}
	d.steps[i-1].DisplayName = name
	return nil
}
