package rewrite

import (
	"errors"
	"fmt"

	"github.com/openzx/proofline/pkg/domain"
)

// ErrNoMatch is returned by Apply when the matcher finds nothing to
// rewrite in the current selection.
var ErrNoMatch = errors.New("no match")

// MatchKind says whether a matcher operates over selected vertices or
// selected edges.
type MatchKind string

const (
	// MatchesVertices passes the selected vertices to the matcher.
	MatchesVertices MatchKind = "vertex"
	// MatchesEdges passes the selected edges to the matcher.
	MatchesEdges MatchKind = "edge"
)

// Selection is the user's current selection of diagram elements.
type Selection struct {
	Vertices []domain.VertexID
	Edges    []domain.Edge
}

// HasVertex reports whether v is selected.
func (s Selection) HasVertex(v domain.VertexID) bool {
	for _, sv := range s.Vertices {
		if sv == v {
			return true
		}
	}
	return false
}

// HasEdge reports whether e is selected (in either orientation).
func (s Selection) HasEdge(e domain.Edge) bool {
	e = domain.NewEdge(e.U, e.V)
	for _, se := range s.Edges {
		if domain.NewEdge(se.U, se.V) == e {
			return true
		}
	}
	return false
}

// Match is one applicable occurrence of a rule.
type Match struct {
	Vertices []domain.VertexID
	Edges    []domain.Edge
}

// Matcher finds applicable matches among the selected elements. Depending
// on the action's MatchKind the selection it sees is restricted to
// vertices or to edges.
type Matcher func(g *domain.Graph, sel Selection) []Match

// Result is the output of a rule. Either NewGraph is set (the rule built a
// wholly new graph) or the change sets describe an in-place rewrite.
type Result struct {
	// NewGraph is the complete replacement graph, for rules flagged
	// ReturnsNewGraph.
	NewGraph *domain.Graph

	// EdgeTable lists edges to merge into the graph after removals.
	EdgeTable map[domain.Edge]domain.EdgeType

	// RemoveVertices and RemoveEdges are deleted before the edge table is
	// merged; removal first avoids duplicate-edge conflicts.
	RemoveVertices []domain.VertexID
	RemoveEdges    []domain.Edge

	// CheckIsolatedVertices asks the pipeline to drop vertices the
	// rewrite left without edges.
	CheckIsolatedVertices bool
}

// Rule applies a transformation to the given matches. The graph passed in
// is a private working copy; rules may mutate it.
type Rule func(g *domain.Graph, matches []Match) (*Result, error)

// Action is one catalog entry: a named rewrite with its matcher, rule and
// match kind.
type Action struct {
	Name      string
	MatchKind MatchKind
	Tooltip   string

	Matcher Matcher
	Rule    Rule

	// CopyFirst copies the graph before matching; required when the
	// matcher itself mutates shared state.
	CopyFirst bool

	// ReturnsNewGraph marks rules that return a replacement graph instead
	// of change sets.
	ReturnsNewGraph bool

	enabled bool
}

// Enabled reports whether the last UpdateActive found at least one match.
func (a *Action) Enabled() bool { return a.enabled }

// UpdateActive recomputes the enabled state against the given graph and
// selection. It is called for every catalog leaf on each selection change.
func (a *Action) UpdateActive(g *domain.Graph, sel Selection) {
	if a.CopyFirst {
		g = g.Copy()
	}
	a.enabled = len(a.findMatches(g, sel)) > 0
}

// findMatches restricts the selection to the action's match kind and runs
// the matcher.
func (a *Action) findMatches(g *domain.Graph, sel Selection) []Match {
	if a.MatchKind == MatchesEdges {
		sel = Selection{Edges: sel.Edges}
	} else {
		sel = Selection{Vertices: sel.Vertices}
	}
	return a.Matcher(g, sel)
}

// Apply runs the full pipeline against a copy of g: match, apply the rule,
// and return the rewritten graph. The input graph is never mutated. It
// returns ErrNoMatch when the matcher finds nothing; any failure inside
// the rule (error or panic) is returned as a plain error with no state
// change, so the caller can surface it as a non-fatal message.
func (a *Action) Apply(g *domain.Graph, sel Selection) (*domain.Graph, error) {
	working := g.Copy()
	matches := a.findMatches(working, sel)
	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	return a.applyRule(working, matches)
}

func (a *Action) applyRule(g *domain.Graph, matches []Match) (out *domain.Graph, err error) {
	// A misbehaving rule must never tear down the editor loop; the
	// mutated working copy is simply abandoned.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("rule %q panicked: %v", a.Name, r)
		}
	}()

	res, err := a.Rule(g, matches)
	if err != nil {
		return nil, fmt.Errorf("applying rule %q: %w", a.Name, err)
	}

	if a.ReturnsNewGraph {
		if res == nil || res.NewGraph == nil {
			return nil, fmt.Errorf("rule %q: flagged as returning a new graph but returned none", a.Name)
		}
		return res.NewGraph, nil
	}

	if res == nil {
		return nil, fmt.Errorf("rule %q: nil result", a.Name)
	}

	g.RemoveEdges(res.RemoveEdges)
	g.RemoveVertices(res.RemoveVertices)
	for e, ty := range res.EdgeTable {
		g.AddEdge(e, ty)
	}
	if res.CheckIsolatedVertices {
		g.RemoveIsolatedVertices()
	}
	return g, nil
}
