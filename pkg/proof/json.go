package proof

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/openzx/proofline/pkg/domain"
)

// stepJSON is the wire form of a proof step. The diff is relative to the
// previous step's resulting graph, not the initial graph.
type stepJSON struct {
	DisplayName string            `json:"display_name"`
	Rule        string            `json:"rule"`
	Diff        *domain.GraphDiff `json:"diff"`
}

type documentJSON struct {
	InitialGraph *domain.Graph `json:"initial_graph"`
	ProofSteps   []stepJSON    `json:"proof_steps"`
}

// MarshalJSON serializes the document with one diff per step.
func (d *Document) MarshalJSON() ([]byte, error) {
	doc := documentJSON{
		InitialGraph: d.initial,
		ProofSteps:   make([]stepJSON, 0, len(d.steps)),
	}
	prev := d.initial
	for _, step := range d.steps {
		doc.ProofSteps = append(doc.ProofSteps, stepJSON{
			DisplayName: step.DisplayName,
			Rule:        step.Rule,
			Diff:        domain.Diff(prev, step.Graph),
		})
		prev = step.Graph
	}
	return json.Marshal(doc)
}

// UnmarshalJSON deserializes a document by replaying each step's diff on
// top of its predecessor. Unknown fields and missing diffs fail the whole
// load; no partial history is ever installed.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc documentJSON
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode proof: %w", err)
	}
	if doc.InitialGraph == nil {
		return fmt.Errorf("decode proof: missing initial_graph")
	}

	parsed := New(doc.InitialGraph)
	prev := doc.InitialGraph
	for i, step := range doc.ProofSteps {
		if step.Diff == nil {
			return fmt.Errorf("decode proof: step %d: missing diff", i)
		}
		next, err := step.Diff.Apply(prev)
		if err != nil {
			return fmt.Errorf("decode proof: step %d: %w", i, err)
		}
		name := step.DisplayName
		if name == "" {
			// Old proofs may predate display names.
			name = step.Rule
		}
		parsed.AddRewrite(Rewrite{DisplayName: name, Rule: step.Rule, Graph: next})
		prev = next
	}

	*d = *parsed
	return nil
}
