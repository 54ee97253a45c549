package proof

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openzx/proofline/pkg/domain"
)

func twoStepProof(t *testing.T) *Document {
	t.Helper()
	g := domain.NewGraph()
	a := g.AddVertex(domain.VertexZ, 0, 0)
	b := g.AddVertex(domain.VertexX, 0, 1)
	g.AddEdge(domain.NewEdge(a, b), domain.EdgeSimple)
	doc := New(g)

	s1 := g.Copy()
	s1.SetPhase(a, domain.NewFraction(1, 2))
	doc.AddRewrite(Rewrite{DisplayName: "phase", Rule: "phase", Graph: s1})

	s2 := s1.Copy()
	s2.RemoveVertex(b)
	doc.AddRewrite(Rewrite{DisplayName: "drop", Rule: "drop", Graph: s2})
	return doc
}

func TestDocumentStepLog(t *testing.T) {
	doc := twoStepProof(t)

	assert.Equal(t, 2, doc.NumSteps())
	assert.Equal(t, "phase", doc.Step(0).Rule)

	popped := doc.PopRewrite()
	assert.Equal(t, "drop", popped.Rule)
	assert.Equal(t, 1, doc.NumSteps())

	doc.AddRewrite(popped)
	assert.Equal(t, 2, doc.NumSteps())
}

func TestPopEmptyPanics(t *testing.T) {
	doc := New(domain.NewGraph())
	assert.Panics(t, func() { doc.PopRewrite() })
}

func TestGraphAtIsCopyOnRead(t *testing.T) {
	doc := twoStepProof(t)

	g := doc.GraphAt(0)
	g.AddVertex(domain.VertexZ, 9, 9)
	assert.Equal(t, 2, doc.GraphAt(0).NumVertices())

	g = doc.GraphAt(1)
	g.SetPhase(0, domain.NewFraction(3, 4))
	assert.True(t, doc.GraphAt(1).Phase(0).Equal(domain.NewFraction(1, 2)))
}

func TestSetGraphAt(t *testing.T) {
	doc := twoStepProof(t)

	moved := doc.GraphAt(1)
	moved.SetRow(0, 7)
	doc.SetGraphAt(1, moved)
	assert.Equal(t, 7.0, doc.GraphAt(1).Row(0))

	initial := doc.GraphAt(0)
	initial.SetRow(0, 3)
	doc.SetGraphAt(0, initial)
	assert.Equal(t, 3.0, doc.GraphAt(0).Row(0))
}

func TestGraphs(t *testing.T) {
	doc := twoStepProof(t)
	gs := doc.Graphs()
	require.Len(t, gs, 3)
	assert.True(t, gs[0].Equal(doc.GraphAt(0)))
	assert.True(t, gs[2].Equal(doc.GraphAt(2)))
}

func TestRenameStep(t *testing.T) {
	doc := twoStepProof(t)

	require.NoError(t, doc.RenameStep(1, "first"))
	assert.Equal(t, "first", doc.Step(0).DisplayName)

	assert.Error(t, doc.RenameStep(0, "x"))
	assert.Error(t, doc.RenameStep(3, "x"))
}

func TestDocumentCopyIsolation(t *testing.T) {
	doc := twoStepProof(t)
	cp := doc.Copy()

	mutated := cp.GraphAt(1)
	mutated.AddVertex(domain.VertexHBox, 5, 5)
	cp.SetGraphAt(1, mutated)
	require.NoError(t, cp.RenameStep(1, "renamed"))

	assert.Equal(t, 2, doc.GraphAt(1).NumVertices())
	assert.Equal(t, "phase", doc.Step(0).DisplayName)
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := twoStepProof(t)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var loaded Document
	require.NoError(t, json.Unmarshal(data, &loaded))

	require.Equal(t, 2, loaded.NumSteps())
	for i := 0; i <= 2; i++ {
		assert.True(t, loaded.GraphAt(i).Equal(doc.GraphAt(i)), "graph at %d differs", i)
	}
	assert.Equal(t, "phase", loaded.Step(0).DisplayName)
	assert.Equal(t, "drop", loaded.Step(1).Rule)
}

func TestDocumentJSONStoresDiffsPerStep(t *testing.T) {
	doc := twoStepProof(t)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw struct {
		InitialGraph json.RawMessage `json:"initial_graph"`
		ProofSteps   []struct {
			Diff *domain.GraphDiff `json:"diff"`
		} `json:"proof_steps"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.ProofSteps, 2)

	// Step 2 only dropped a vertex, so its diff must not re-encode the
	// phase change from step 1.
	require.NotNil(t, raw.ProofSteps[1].Diff)
	assert.Empty(t, raw.ProofSteps[1].Diff.ChangedVertices)
	assert.Len(t, raw.ProofSteps[1].Diff.RemovedVertices, 1)
}

func TestDocumentJSONErrors(t *testing.T) {
	var doc Document

	err := json.Unmarshal([]byte(`{"proof_steps":[]}`), &doc)
	assert.ErrorContains(t, err, "missing initial_graph")

	err = json.Unmarshal([]byte(`{"initial_graph":{"vertices":[],"edges":[]},"proof_steps":[{"display_name":"x","rule":"x"}]}`), &doc)
	assert.ErrorContains(t, err, "missing diff")

	err = json.Unmarshal([]byte(`{"initial_graph":{"vertices":[],"edges":[]},"bogus":true,"proof_steps":[]}`), &doc)
	assert.Error(t, err)
}

func TestDocumentJSONDisplayNameFallsBackToRule(t *testing.T) {
	src := `{
		"initial_graph": {"vertices": [], "edges": []},
		"proof_steps": [
			{"display_name": "", "rule": "fuse", "diff": {}}
		]
	}`
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(src), &doc))
	require.Equal(t, 1, doc.NumSteps())
	assert.Equal(t, "fuse", doc.Step(0).DisplayName)
}
