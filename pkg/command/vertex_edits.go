package command

import (
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/ports"
)

// ChangeNodeType changes the kind of a set of vertices.
//
// W node pairs need special handling on both ends of the change. Retyping
// a plain vertex to W output synthesizes the paired input vertex at a
// configured offset. Retyping away from a W pair collapses the pair onto
// the surviving vertex: the partner's outside neighbors are re-attached
// (preserving edge kinds) and the partner is deleted, with enough recorded
// to recreate it exactly on undo. When both halves of one pair are
// requested, only the output representative is processed.
type ChangeNodeType struct {
	base
	cfg Config
	vs  []domain.VertexID
	vty domain.VertexType

	applied *nodeTypeCapture
}

type wPairInfo struct {
	partner      domain.VertexID
	partnerType  domain.VertexType
	partnerRow   float64
	partnerQubit float64
	neighbors    []domain.VertexID
}

type nodeTypeCapture struct {
	order      []domain.VertexID
	oldTypes   []domain.VertexType
	pairs      map[domain.VertexID]wPairInfo
	newWInputs []domain.VertexID
}

// NewChangeNodeType creates the command.
func NewChangeNodeType(view ports.GraphView, cfg Config, vs []domain.VertexID, vty domain.VertexType) *ChangeNodeType {
	return &ChangeNodeType{base: newBase(view), cfg: cfg, vs: vs, vty: vty}
}

func (c *ChangeNodeType) Redo() {
	captured := &nodeTypeCapture{pairs: make(map[domain.VertexID]wPairInfo)}

	// Normalize the working set: a W vertex promoted to W output is a
	// no-op, any other W vertex redirects to its output representative,
	// and a pair selected twice is processed once.
	seen := make(map[domain.VertexID]bool)
	add := func(v domain.VertexID) {
		if !seen[v] {
			seen[v] = true
			captured.order = append(captured.order, v)
		}
	}
	for _, v := range c.vs {
		isW := c.g.Type(v).IsWNode()
		switch {
		case isW && c.vty == domain.VertexWOutput:
			// Already a W node; nothing to promote.
		case isW:
			if _, out, ok := c.g.WIO(v); ok {
				add(out)
			}
		default:
			add(v)
		}
	}

	for _, v := range captured.order {
		captured.oldTypes = append(captured.oldTypes, c.g.Type(v))
	}

	if c.vty == domain.VertexWOutput {
		for _, v := range captured.order {
			wIn := c.g.AddVertex(domain.VertexWInput, c.g.Qubit(v)-c.cfg.WInputOffset, c.g.Row(v))
			c.g.AddEdge(domain.NewEdge(wIn, v), domain.EdgeWIO)
			captured.newWInputs = append(captured.newWInputs, wIn)
		}
	}

	for _, v := range captured.order {
		// Type is read before retyping: the branch fires only for
		// vertices that were W nodes going in, never for the plain
		// vertices that just received a synthesized input above.
		if c.g.Type(v).IsWNode() {
			partner, ok := c.g.WPartner(v)
			if ok {
				var neighbors []domain.VertexID
				for _, n := range c.g.Neighbors(partner) {
					if n != v {
						neighbors = append(neighbors, n)
					}
				}
				for _, n := range neighbors {
					c.g.AddEdge(domain.NewEdge(v, n), c.g.EdgeType(domain.NewEdge(partner, n)))
				}
				data, _ := c.g.VertexData(partner)
				captured.pairs[v] = wPairInfo{
					partner:      partner,
					partnerType:  data.Type,
					partnerRow:   data.Row,
					partnerQubit: data.Qubit,
					neighbors:    neighbors,
				}
				c.g.RemoveVertex(partner)
			}
		}
		c.g.SetType(v, c.vty)
	}

	c.applied = captured
	c.notify(false)
}

func (c *ChangeNodeType) Undo() {
	captured := mustApplied(c.applied)
	for i, v := range captured.order {
		oldTy := captured.oldTypes[i]
		if oldTy.IsWNode() {
			info := captured.pairs[v]
			if err := c.g.AddVertexIndexed(info.partner); err != nil {
				panic("command: cannot restore W partner: " + err.Error())
			}
			c.g.SetType(info.partner, info.partnerType)
			c.g.SetRow(info.partner, info.partnerRow)
			c.g.SetQubit(info.partner, info.partnerQubit)
			c.g.AddEdge(domain.NewEdge(v, info.partner), domain.EdgeWIO)
			for _, n := range info.neighbors {
				c.g.AddEdge(domain.NewEdge(info.partner, n), c.g.EdgeType(domain.NewEdge(v, n)))
				c.g.RemoveEdge(domain.NewEdge(v, n))
			}
		}
		c.g.SetType(v, oldTy)
	}
	for _, wIn := range captured.newWInputs {
		c.g.RemoveVertex(wIn)
	}
	c.applied = nil
	c.notify(false)
}

// AddNode adds a new spider at a given position, snapped to the grid.
type AddNode struct {
	base
	cfg  Config
	x, y float64
	vty  domain.VertexType

	addedVert *domain.VertexID
}

// NewAddNode creates the command.
func NewAddNode(view ports.GraphView, cfg Config, x, y float64, vty domain.VertexType) *AddNode {
	return &AddNode{base: newBase(view), cfg: cfg, x: x, y: y, vty: vty}
}

func (c *AddNode) Redo() {
	x := c.cfg.snap(c.x)
	y := c.cfg.snap(c.y)
	v := c.g.AddVertex(c.vty, y, x)
	c.addedVert = &v
	c.notify(false)
}

func (c *AddNode) Undo() {
	c.g.RemoveVertex(*mustApplied(c.addedVert))
	c.addedVert = nil
	c.notify(false)
}

// AddWNode adds a new W node pair at a given position: the input vertex
// sits at the configured offset above the output, joined by a W-I/O edge.
type AddWNode struct {
	base
	cfg  Config
	x, y float64

	applied *wNodeCapture
}

type wNodeCapture struct {
	input  domain.VertexID
	output domain.VertexID
}

// NewAddWNode creates the command.
func NewAddWNode(view ports.GraphView, cfg Config, x, y float64) *AddWNode {
	return &AddWNode{base: newBase(view), cfg: cfg, x: x, y: y}
}

func (c *AddWNode) Redo() {
	x := c.cfg.snap(c.x)
	y := c.cfg.snap(c.y)
	in := c.g.AddVertex(domain.VertexWInput, y-c.cfg.WInputOffset, x)
	out := c.g.AddVertex(domain.VertexWOutput, y, x)
	c.g.AddEdge(domain.NewEdge(in, out), domain.EdgeWIO)
	c.applied = &wNodeCapture{input: in, output: out}
	c.notify(false)
}

func (c *AddWNode) Undo() {
	captured := mustApplied(c.applied)
	c.g.RemoveVertex(captured.input)
	c.g.RemoveVertex(captured.output)
	c.applied = nil
	c.notify(false)
}

// VertexMove is one vertex's target position.
type VertexMove struct {
	V     domain.VertexID
	Row   float64
	Qubit float64
}

// MoveNode updates the location of a collection of vertices. Prior
// positions are captured in input order and restored pairwise.
type MoveNode struct {
	base
	moves []VertexMove

	applied *moveCapture
}

type moveCapture struct {
	oldPositions []VertexMove
}

// NewMoveNode creates the command.
func NewMoveNode(view ports.GraphView, moves []VertexMove) *MoveNode {
	return &MoveNode{base: newBase(view), moves: moves}
}

func (c *MoveNode) Redo() {
	captured := &moveCapture{}
	for _, m := range c.moves {
		captured.oldPositions = append(captured.oldPositions, VertexMove{
			V:     m.V,
			Row:   c.g.Row(m.V),
			Qubit: c.g.Qubit(m.V),
		})
		c.g.SetRow(m.V, m.Row)
		c.g.SetQubit(m.V, m.Qubit)
	}
	c.applied = captured
	c.notify(false)
}

func (c *MoveNode) Undo() {
	captured := mustApplied(c.applied)
	for _, m := range captured.oldPositions {
		c.g.SetRow(m.V, m.Row)
		c.g.SetQubit(m.V, m.Qubit)
	}
	c.applied = nil
	c.notify(false)
}

// ChangePhase updates the phase of a spider. For Z box vertices the value
// is stored in the symbolic label field instead of the scalar phase; the
// command picks the storage field from the vertex kind.
type ChangePhase struct {
	base
	v     domain.VertexID
	phase domain.Fraction
	label string

	applied *phaseCapture
}

type phaseCapture struct {
	oldPhase domain.Fraction
	oldLabel string
	isLabel  bool
}

// NewChangePhase creates the command. phase applies to spiders; label
// applies when the vertex is a Z box.
func NewChangePhase(view ports.GraphView, v domain.VertexID, phase domain.Fraction, label string) *ChangePhase {
	return &ChangePhase{base: newBase(view), v: v, phase: phase, label: label}
}

func (c *ChangePhase) Redo() {
	if c.g.Type(c.v) == domain.VertexZBox {
		c.applied = &phaseCapture{oldLabel: c.g.Label(c.v), isLabel: true}
		c.g.SetLabel(c.v, c.label)
	} else {
		c.applied = &phaseCapture{oldPhase: c.g.Phase(c.v)}
		c.g.SetPhase(c.v, c.phase)
	}
	c.notify(false)
}

func (c *ChangePhase) Undo() {
	captured := mustApplied(c.applied)
	if captured.isLabel {
		c.g.SetLabel(c.v, captured.oldLabel)
	} else {
		c.g.SetPhase(c.v, captured.oldPhase)
	}
	c.applied = nil
	c.notify(false)
}

// ChangeColor applies the color-change rule (Hadamard conjugation) to a
// set of vertices. The transformation is an involution, so the identical
// operation serves as both Undo and Redo and no state is captured.
type ChangeColor struct {
	base
	vs []domain.VertexID
}

// NewChangeColor creates the command.
func NewChangeColor(view ports.GraphView, vs []domain.VertexID) *ChangeColor {
	return &ChangeColor{base: newBase(view), vs: vs}
}

func (c *ChangeColor) toggle() {
	for _, v := range c.vs {
		domain.ColorChange(c.g, v)
	}
	c.notify(false)
}

func (c *ChangeColor) Redo() { c.toggle() }

func (c *ChangeColor) Undo() { c.toggle() }
