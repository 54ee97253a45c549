package rewrite

import (
	"github.com/openzx/proofline/pkg/domain"
)

// DefaultRegistry returns a registry with the built-in basic rewrites.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.RegisterMatcher("fuse", MatchFuse)
	reg.RegisterRule("fuse", RuleFuse)
	reg.RegisterMatcher("remove_identity", MatchRemoveIdentity)
	reg.RegisterRule("remove_identity", RuleRemoveIdentity)
	reg.RegisterMatcher("color_change", MatchColorChange)
	reg.RegisterRule("color_change", RuleColorChange)
	reg.RegisterMatcher("had_to_hbox", MatchHadamardEdges)
	reg.RegisterRule("had_to_hbox", RuleHadamardToHBox)
	return reg
}

func isSpider(ty domain.VertexType) bool {
	return ty == domain.VertexZ || ty == domain.VertexX
}

// MatchFuse finds disjoint pairs of selected same-color spiders joined by
// a plain edge.
func MatchFuse(g *domain.Graph, sel Selection) []Match {
	var matches []Match
	used := make(map[domain.VertexID]bool)
	for _, u := range sel.Vertices {
		if used[u] || !g.Contains(u) || !isSpider(g.Type(u)) {
			continue
		}
		for _, v := range g.Neighbors(u) {
			if used[u] || used[v] || !sel.HasVertex(v) {
				continue
			}
			if g.Type(v) != g.Type(u) {
				continue
			}
			if g.EdgeType(domain.NewEdge(u, v)) != domain.EdgeSimple {
				continue
			}
			used[u], used[v] = true, true
			matches = append(matches, Match{Vertices: []domain.VertexID{u, v}})
		}
	}
	return matches
}

// RuleFuse merges each matched pair onto its first vertex, adding the
// phases and re-attaching the second vertex's outside edges.
func RuleFuse(g *domain.Graph, matches []Match) (*Result, error) {
	res := &Result{EdgeTable: make(map[domain.Edge]domain.EdgeType)}
	for _, m := range matches {
		u, v := m.Vertices[0], m.Vertices[1]
		g.SetPhase(u, g.Phase(u).Add(g.Phase(v)))
		for _, n := range g.Neighbors(v) {
			if n == u {
				continue
			}
			res.EdgeTable[domain.NewEdge(u, n)] = g.EdgeType(domain.NewEdge(v, n))
		}
		res.RemoveVertices = append(res.RemoveVertices, v)
	}
	return res, nil
}

// MatchRemoveIdentity finds selected phaseless arity-two spiders whose
// neighbors are distinct and not already connected. Matches are kept
// disjoint: a vertex claimed as a neighbor of one match is not itself
// matched.
func MatchRemoveIdentity(g *domain.Graph, sel Selection) []Match {
	var matches []Match
	used := make(map[domain.VertexID]bool)
	for _, v := range sel.Vertices {
		if used[v] || !g.Contains(v) || !isSpider(g.Type(v)) {
			continue
		}
		if !g.Phase(v).IsZero() || g.Degree(v) != 2 {
			continue
		}
		ns := g.Neighbors(v)
		a, b := ns[0], ns[1]
		if a == b || g.Connected(a, b) || used[a] || used[b] {
			continue
		}
		used[v], used[a], used[b] = true, true, true
		matches = append(matches, Match{Vertices: []domain.VertexID{v}})
	}
	return matches
}

// RuleRemoveIdentity deletes each matched spider and joins its neighbors
// directly. The new edge is Hadamard iff exactly one of the two removed
// edges was.
func RuleRemoveIdentity(g *domain.Graph, matches []Match) (*Result, error) {
	res := &Result{EdgeTable: make(map[domain.Edge]domain.EdgeType)}
	for _, m := range matches {
		v := m.Vertices[0]
		ns := g.Neighbors(v)
		a, b := ns[0], ns[1]
		ea := g.EdgeType(domain.NewEdge(a, v))
		eb := g.EdgeType(domain.NewEdge(v, b))
		ety := domain.EdgeSimple
		if (ea == domain.EdgeHadamard) != (eb == domain.EdgeHadamard) {
			ety = domain.EdgeHadamard
		}
		res.EdgeTable[domain.NewEdge(a, b)] = ety
		res.RemoveVertices = append(res.RemoveVertices, v)
	}
	return res, nil
}

// MatchColorChange finds the selected Z and X spiders, one match each.
func MatchColorChange(g *domain.Graph, sel Selection) []Match {
	var matches []Match
	for _, v := range sel.Vertices {
		if g.Contains(v) && isSpider(g.Type(v)) {
			matches = append(matches, Match{Vertices: []domain.VertexID{v}})
		}
	}
	return matches
}

// RuleColorChange conjugates each matched spider with Hadamards: the color
// flips and every incident plain or Hadamard edge toggles. The rule works
// on its working copy and returns it whole.
func RuleColorChange(g *domain.Graph, matches []Match) (*Result, error) {
	for _, m := range matches {
		domain.ColorChange(g, m.Vertices[0])
	}
	return &Result{NewGraph: g}, nil
}

// MatchHadamardEdges finds the selected edges of Hadamard kind.
func MatchHadamardEdges(g *domain.Graph, sel Selection) []Match {
	var matches []Match
	for _, e := range sel.Edges {
		e = domain.NewEdge(e.U, e.V)
		if g.Connected(e.U, e.V) && g.EdgeType(e) == domain.EdgeHadamard {
			matches = append(matches, Match{Edges: []domain.Edge{e}})
		}
	}
	return matches
}

// RuleHadamardToHBox replaces each matched Hadamard edge with an explicit
// H-box at the edge midpoint, joined to both endpoints by plain edges.
func RuleHadamardToHBox(g *domain.Graph, matches []Match) (*Result, error) {
	res := &Result{EdgeTable: make(map[domain.Edge]domain.EdgeType)}
	for _, m := range matches {
		e := m.Edges[0]
		row := 0.5 * (g.Row(e.U) + g.Row(e.V))
		qubit := 0.5 * (g.Qubit(e.U) + g.Qubit(e.V))
		h := g.AddVertex(domain.VertexHBox, qubit, row)
		res.EdgeTable[domain.NewEdge(e.U, h)] = domain.EdgeSimple
		res.EdgeTable[domain.NewEdge(e.V, h)] = domain.EdgeSimple
		res.RemoveEdges = append(res.RemoveEdges, e)
	}
	return res, nil
}
