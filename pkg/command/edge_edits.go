package command

import (
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/ports"
)

// ChangeEdgeColor changes the kind of a set of edges. The batch is
// captured in enumeration order and undone element-wise from the stored
// list, never by re-querying the graph.
type ChangeEdgeColor struct {
	base
	es  []domain.Edge
	ety domain.EdgeType

	applied *edgeColorCapture
}

type edgeColorCapture struct {
	oldTypes []domain.EdgeType
}

// NewChangeEdgeColor creates the command.
func NewChangeEdgeColor(view ports.GraphView, es []domain.Edge, ety domain.EdgeType) *ChangeEdgeColor {
	return &ChangeEdgeColor{base: newBase(view), es: es, ety: ety}
}

func (c *ChangeEdgeColor) Redo() {
	captured := &edgeColorCapture{}
	for _, e := range c.es {
		captured.oldTypes = append(captured.oldTypes, c.g.EdgeType(e))
		c.g.SetEdgeType(e, c.ety)
	}
	c.applied = captured
	c.notify(false)
}

func (c *ChangeEdgeColor) Undo() {
	captured := mustApplied(c.applied)
	for i, e := range c.es {
		c.g.SetEdgeType(e, captured.oldTypes[i])
	}
	c.applied = nil
	c.notify(false)
}

// AddEdge adds an edge between two existing vertices. If the pair is
// already connected the command degrades to a retype of the existing edge;
// the captured prior state distinguishes the two cases so undo either
// restores the old kind or removes the edge entirely.
type AddEdge struct {
	base
	u, v domain.VertexID
	ety  domain.EdgeType

	applied *addEdgeCapture
}

type addEdgeCapture struct {
	existed bool
	oldType domain.EdgeType
}

// NewAddEdge creates the command.
func NewAddEdge(view ports.GraphView, u, v domain.VertexID, ety domain.EdgeType) *AddEdge {
	return &AddEdge{base: newBase(view), u: u, v: v, ety: ety}
}

func (c *AddEdge) Redo() {
	e := domain.NewEdge(c.u, c.v)
	if c.g.Connected(c.u, c.v) {
		c.applied = &addEdgeCapture{existed: true, oldType: c.g.EdgeType(e)}
		c.g.SetEdgeType(e, c.ety)
	} else {
		c.applied = &addEdgeCapture{}
		c.g.AddEdge(e, c.ety)
	}
	c.notify(false)
}

func (c *AddEdge) Undo() {
	captured := mustApplied(c.applied)
	e := domain.NewEdge(c.u, c.v)
	if captured.existed {
		c.g.AddEdge(e, captured.oldType)
	} else {
		c.g.RemoveEdge(e)
	}
	c.applied = nil
	c.notify(false)
}

// AddIdentity subdivides the edge between two connected vertices with an
// identity spider at the geometric midpoint. The original edge's kind
// moves onto the new-to-second-endpoint edge; the first endpoint connects
// to the new vertex with a plain edge.
type AddIdentity struct {
	base
	u, v domain.VertexID
	vty  domain.VertexType

	newVert *domain.VertexID
}

// NewAddIdentity creates the command.
func NewAddIdentity(view ports.GraphView, u, v domain.VertexID, vty domain.VertexType) *AddIdentity {
	return &AddIdentity{base: newBase(view), u: u, v: v, vty: vty}
}

func (c *AddIdentity) Redo() {
	uv := domain.NewEdge(c.u, c.v)
	row := 0.5 * (c.g.Row(c.u) + c.g.Row(c.v))
	qubit := 0.5 * (c.g.Qubit(c.u) + c.g.Qubit(c.v))
	w := c.g.AddVertex(c.vty, qubit, row)

	c.g.AddEdge(domain.NewEdge(c.u, w), domain.EdgeSimple)
	c.g.AddEdge(domain.NewEdge(c.v, w), c.g.EdgeType(uv))
	c.g.RemoveEdge(uv)
	c.newVert = &w
	c.notify(false)
}

func (c *AddIdentity) Undo() {
	w := *mustApplied(c.newVert)
	ety := c.g.EdgeType(domain.NewEdge(c.v, w))
	c.g.RemoveEdge(domain.NewEdge(c.u, w))
	c.g.RemoveEdge(domain.NewEdge(c.v, w))
	c.g.RemoveVertex(w)
	c.g.AddEdge(domain.NewEdge(c.u, c.v), ety)
	c.newVert = nil
	c.notify(false)
}
