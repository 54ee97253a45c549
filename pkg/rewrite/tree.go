package rewrite

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/openzx/proofline/pkg/domain"
)

// Tree is one node of the rewrite catalog. A leaf carries an Action; an
// interior node carries a header and child groups.
type Tree struct {
	header   string
	action   *Action
	children []*Tree
}

// actionSpec is the recognized leaf shape in a catalog mapping.
type actionSpec struct {
	Text            string `mapstructure:"text"`
	Matcher         string `mapstructure:"matcher"`
	Rule            string `mapstructure:"rule"`
	Type            string `mapstructure:"type"`
	Tooltip         string `mapstructure:"tooltip"`
	CopyFirst       bool   `mapstructure:"copy_first"`
	ReturnsNewGraph bool   `mapstructure:"returns_new_graph"`
}

// isActionSpec reports whether a mapping has the leaf shape. The four
// required keys decide; extra keys are left for the decoder to reject.
func isActionSpec(m map[string]any) bool {
	for _, k := range []string{"text", "matcher", "rule", "type"} {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

// FromMap builds a catalog tree from a nested mapping. Every mapping value
// that has the action shape becomes a leaf; every other mapping becomes a
// child group keyed by its name. Child order is the sorted key order, so
// two loads of the same data produce the same tree.
func FromMap(header string, data map[string]any, reg *Registry) (*Tree, error) {
	if isActionSpec(data) {
		var spec actionSpec
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &spec,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(data); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", header, err)
		}
		action, err := buildAction(spec, reg)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", header, err)
		}
		return &Tree{header: spec.Text, action: action}, nil
	}

	node := &Tree{header: header}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sub, ok := data[k].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("catalog group %q: entry %q is not a mapping", header, k)
		}
		child, err := FromMap(k, sub, reg)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)
	}
	return node, nil
}

func buildAction(spec actionSpec, reg *Registry) (*Action, error) {
	kind := MatchKind(spec.Type)
	if kind != MatchesVertices && kind != MatchesEdges {
		return nil, fmt.Errorf("unknown match type %q", spec.Type)
	}
	m, err := reg.Matcher(spec.Matcher)
	if err != nil {
		return nil, err
	}
	rule, err := reg.Rule(spec.Rule)
	if err != nil {
		return nil, err
	}
	return &Action{
		Name:            spec.Text,
		MatchKind:       kind,
		Tooltip:         spec.Tooltip,
		Matcher:         m,
		Rule:            rule,
		CopyFirst:       spec.CopyFirst,
		ReturnsNewGraph: spec.ReturnsNewGraph,
	}, nil
}

// IsRewrite reports whether the node is a leaf carrying an action.
func (t *Tree) IsRewrite() bool { return t.action != nil }

// Header is the display name of the node.
func (t *Tree) Header() string { return t.header }

// Tooltip is the leaf's tooltip, empty for interior nodes.
func (t *Tree) Tooltip() string {
	if t.action == nil {
		return ""
	}
	return t.action.Tooltip
}

// Action returns the leaf's action, nil for interior nodes.
func (t *Tree) Action() *Action { return t.action }

// Children returns the node's child groups and leaves.
func (t *Tree) Children() []*Tree { return t.children }

// Enabled reports whether the node can be activated. Interior nodes are
// always enabled; a leaf follows its action's last recomputed state.
func (t *Tree) Enabled() bool {
	if t.action == nil {
		return true
	}
	return t.action.Enabled()
}

// UpdateOnSelection recomputes the enabled state of every leaf under the
// node against the given graph and selection.
func (t *Tree) UpdateOnSelection(g *domain.Graph, sel Selection) {
	if t.action != nil {
		t.action.UpdateActive(g, sel)
		return
	}
	for _, c := range t.children {
		c.UpdateOnSelection(g, sel)
	}
}

// Find walks the tree by header names and returns the node at the end of
// the path, or nil if any segment is missing. An empty path returns t.
func (t *Tree) Find(path ...string) *Tree {
	node := t
	for _, seg := range path {
		var next *Tree
		for _, c := range node.children {
			if c.header == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

// Walk calls fn for every leaf under the node, depth first, with the
// headers of the interior nodes leading to it.
func (t *Tree) Walk(fn func(path []string, a *Action)) {
	t.walk(nil, fn)
}

func (t *Tree) walk(path []string, fn func(path []string, a *Action)) {
	if t.action != nil {
		fn(path, t.action)
		return
	}
	if t.header != "" {
		path = append(path, t.header)
	}
	for _, c := range t.children {
		c.walk(path, fn)
	}
}
