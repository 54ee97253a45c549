package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/openzx/proofline/internal/logging"
	"github.com/openzx/proofline/pkg/command"
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/observability"
	"github.com/openzx/proofline/pkg/proof"
	"github.com/openzx/proofline/pkg/rewrite"
)

// Session is one live editing session over a proof. It owns the
// authoritative graph, the selection, the undo stack, the proof document
// and the step cursor, and exposes typed edit operations that route
// through the command stack.
//
// Session implements ports.GraphView and ports.StepCursor; commands talk
// back to it through those interfaces.
//
// A Session is not safe for concurrent use; the Manager serializes access
// per proof ID.
type Session struct {
	id  string
	cfg command.Config

	graph         *domain.Graph
	selectedVerts []domain.VertexID
	selectedEdges []domain.Edge

	stack   *command.Stack
	doc     *proof.Document
	cursor  int
	catalog *rewrite.Tree

	logger  *slog.Logger
	metrics *observability.Metrics
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithConfig overrides the edit configuration (grid snap, W input offset).
func WithConfig(cfg command.Config) SessionOption {
	return func(s *Session) { s.cfg = cfg }
}

// WithCatalog attaches a rewrite catalog; its leaves are kept in sync with
// the selection.
func WithCatalog(tree *rewrite.Tree) SessionOption {
	return func(s *Session) { s.catalog = tree }
}

// WithSessionLogger configures a logger for session events.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *observability.Metrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// NewSession creates a session over the given proof document, showing the
// graph at its latest step.
func NewSession(id string, doc *proof.Document, opts ...SessionOption) *Session {
	s := &Session{
		id:      id,
		cfg:     command.DefaultConfig(),
		doc:     doc,
		cursor:  doc.NumSteps(),
		stack:   command.NewStack(),
		logger:  logging.NewNop(),
		metrics: observability.NewNopMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.graph = doc.GraphAt(s.cursor)
	s.metrics.ProofSteps.Set(float64(doc.NumSteps()))
	return s
}

// ID returns the proof ID the session is editing.
func (s *Session) ID() string { return s.id }

// Document returns the proof document being edited.
func (s *Session) Document() *proof.Document { return s.doc }

// Graph returns the currently installed authoritative graph.
func (s *Session) Graph() *domain.Graph { return s.graph }

// SetGraph installs a graph wholesale.
func (s *Session) SetGraph(g *domain.Graph) {
	s.graph = g
	s.pruneSelection()
	s.refreshCatalog()
}

// UpdateGraphView installs the updated graph. When selectNew is set,
// vertices absent from the previous graph are added to the selection.
func (s *Session) UpdateGraphView(g *domain.Graph, selectNew bool) {
	if selectNew {
		for _, v := range g.Vertices() {
			if !s.graph.Contains(v) {
				s.selectedVerts = append(s.selectedVerts, v)
			}
		}
	}
	s.graph = g
	s.pruneSelection()
	s.refreshCatalog()
}

// Selection returns the currently selected vertices.
func (s *Session) Selection() []domain.VertexID {
	out := make([]domain.VertexID, len(s.selectedVerts))
	copy(out, s.selectedVerts)
	return out
}

// SelectVertices replaces the vertex selection. The slice is copied, so
// the caller's backing array is never mutated by pruning.
func (s *Session) SelectVertices(vs []domain.VertexID) {
	s.selectedVerts = append([]domain.VertexID(nil), vs...)
	s.pruneSelection()
	s.refreshCatalog()
}

// SelectEdges replaces the edge selection. The slice is copied.
func (s *Session) SelectEdges(es []domain.Edge) {
	s.selectedEdges = append([]domain.Edge(nil), es...)
	s.pruneSelection()
	s.refreshCatalog()
}

// SelectedEdges returns the currently selected edges.
func (s *Session) SelectedEdges() []domain.Edge {
	out := make([]domain.Edge, len(s.selectedEdges))
	copy(out, s.selectedEdges)
	return out
}

// CurrentStep returns the selected proof position; 0 is the initial graph.
func (s *Session) CurrentStep() int { return s.cursor }

// SetCurrentStep moves the proof cursor.
func (s *Session) SetCurrentStep(i int) {
	s.cursor = i
	s.metrics.ProofSteps.Set(float64(s.doc.NumSteps()))
}

// pruneSelection drops selected elements that no longer exist in the graph.
func (s *Session) pruneSelection() {
	verts := s.selectedVerts[:0]
	for _, v := range s.selectedVerts {
		if s.graph.Contains(v) {
			verts = append(verts, v)
		}
	}
	s.selectedVerts = verts

	edges := s.selectedEdges[:0]
	for _, e := range s.selectedEdges {
		if s.graph.Connected(e.U, e.V) {
			edges = append(edges, e)
		}
	}
	s.selectedEdges = edges
}

func (s *Session) rewriteSelection() rewrite.Selection {
	return rewrite.Selection{
		Vertices: s.Selection(),
		Edges:    s.SelectedEdges(),
	}
}

func (s *Session) refreshCatalog() {
	if s.catalog != nil {
		s.catalog.UpdateOnSelection(s.graph, s.rewriteSelection())
	}
}

func (s *Session) push(name string, cmd command.Command) {
	s.stack.Push(cmd)
	s.metrics.CommandsApplied.WithLabelValues(name).Inc()
	s.logger.Debug("command applied", "session_id", s.id, "command", name)
}

// Undo reverts the most recent command. It reports false when the undo
// stack is empty.
func (s *Session) Undo() bool {
	if !s.stack.Undo() {
		return false
	}
	s.metrics.UndosTotal.Inc()
	s.logger.Debug("undo", "session_id", s.id)
	return true
}

// Redo re-applies the most recently undone command. It reports false when
// there is nothing to redo.
func (s *Session) Redo() bool {
	if !s.stack.Redo() {
		return false
	}
	s.metrics.RedosTotal.Inc()
	s.logger.Debug("redo", "session_id", s.id)
	return true
}

// CanUndo reports whether an undo is available.
func (s *Session) CanUndo() bool { return s.stack.CanUndo() }

// CanRedo reports whether a redo is available.
func (s *Session) CanRedo() bool { return s.stack.CanRedo() }

func (s *Session) requireVertices(vs ...domain.VertexID) error {
	for _, v := range vs {
		if !s.graph.Contains(v) {
			return fmt.Errorf("%w: %d", domain.ErrVertexNotFound, v)
		}
	}
	return nil
}

// AddNode adds a spider at a position, snapped to the grid.
func (s *Session) AddNode(x, y float64, vty domain.VertexType) {
	s.push("add_node", command.NewAddNode(s, s.cfg, x, y, vty))
}

// AddWNode adds a W node pair at a position.
func (s *Session) AddWNode(x, y float64) {
	s.push("add_w_node", command.NewAddWNode(s, s.cfg, x, y))
}

// AddEdge adds or retypes the edge between two existing vertices.
func (s *Session) AddEdge(u, v domain.VertexID, ety domain.EdgeType) error {
	if u == v {
		return fmt.Errorf("cannot connect vertex %d to itself", u)
	}
	if err := s.requireVertices(u, v); err != nil {
		return err
	}
	s.push("add_edge", command.NewAddEdge(s, u, v, ety))
	return nil
}

// AddIdentity subdivides the edge between two connected vertices with an
// identity spider.
func (s *Session) AddIdentity(u, v domain.VertexID, vty domain.VertexType) error {
	if err := s.requireVertices(u, v); err != nil {
		return err
	}
	if !s.graph.Connected(u, v) {
		return fmt.Errorf("vertices %d and %d are not connected", u, v)
	}
	s.push("add_identity", command.NewAddIdentity(s, u, v, vty))
	return nil
}

// MoveVertices updates vertex positions. While the proof has steps, the
// move is written through to the snapshot at the cursor (the latest step
// included), so navigating away and back keeps the geometry.
func (s *Session) MoveVertices(moves []command.VertexMove) error {
	for _, m := range moves {
		if err := s.requireVertices(m.V); err != nil {
			return err
		}
	}
	if s.doc.NumSteps() == 0 {
		s.push("move_node", command.NewMoveNode(s, moves))
		return nil
	}
	s.push("move_node_in_step", command.NewMoveNodeInStep(s, s.doc, s, moves))
	return nil
}

// ChangePhase updates the phase (or, for Z boxes, the label) of a vertex.
func (s *Session) ChangePhase(v domain.VertexID, phase domain.Fraction, label string) error {
	if err := s.requireVertices(v); err != nil {
		return err
	}
	s.push("change_phase", command.NewChangePhase(s, v, phase, label))
	return nil
}

// ChangeNodeType changes the kind of a set of vertices.
func (s *Session) ChangeNodeType(vs []domain.VertexID, vty domain.VertexType) error {
	if err := s.requireVertices(vs...); err != nil {
		return err
	}
	s.push("change_node_type", command.NewChangeNodeType(s, s.cfg, vs, vty))
	return nil
}

// ChangeColor applies the color-change rule to a set of vertices.
func (s *Session) ChangeColor(vs []domain.VertexID) error {
	if err := s.requireVertices(vs...); err != nil {
		return err
	}
	s.push("change_color", command.NewChangeColor(s, vs))
	return nil
}

// ChangeEdgeColor changes the kind of a set of edges.
func (s *Session) ChangeEdgeColor(es []domain.Edge, ety domain.EdgeType) error {
	for _, e := range es {
		if !s.graph.Connected(e.U, e.V) {
			return fmt.Errorf("no edge between %d and %d", e.U, e.V)
		}
	}
	s.push("change_edge_color", command.NewChangeEdgeColor(s, es, ety))
	return nil
}

// ReplaceGraph installs a new graph wholesale, through the undo stack.
func (s *Session) ReplaceGraph(g *domain.Graph) {
	s.push("set_graph", command.NewSetGraph(s, g))
}

// NavigateToStep moves the proof cursor to the given position and shows
// that step's graph. Position 0 is the initial graph.
func (s *Session) NavigateToStep(i int) error {
	if i < 0 || i > s.doc.NumSteps() {
		return fmt.Errorf("step %d out of range [0,%d]", i, s.doc.NumSteps())
	}
	if i == s.cursor {
		return nil
	}
	s.push("go_to_step", command.NewGoToRewriteStep(s, s.doc, s, s.cursor, i))
	return nil
}

// ApplyRewrite runs a catalog action against the current graph and
// selection and, on success, appends the result as a new proof step.
// A failed rule leaves the session untouched.
func (s *Session) ApplyRewrite(action *rewrite.Action) error {
	out, err := action.Apply(s.graph, s.rewriteSelection())
	if err != nil {
		if !errors.Is(err, rewrite.ErrNoMatch) {
			s.logger.Warn("rewrite failed", "session_id", s.id, "rule", action.Name, "err", err)
		}
		return err
	}

	s.push("add_rewrite_step", command.NewAddRewriteStep(s, s.doc, s, out, action.Name, action.Name))
	s.metrics.RewritesApplied.WithLabelValues(action.Name).Inc()
	s.logger.Info("rewrite applied", "session_id", s.id, "rule", action.Name, "steps", s.doc.NumSteps())
	return nil
}

// RenameStep changes the display name of a proof step. Cosmetic only; not
// routed through the undo stack.
func (s *Session) RenameStep(i int, name string) error {
	return s.doc.RenameStep(i, name)
}

// SyncToDocument writes the live graph back into the proof snapshot at the
// cursor, so direct edits survive persistence. Called before a checkpoint.
func (s *Session) SyncToDocument() {
	s.doc.SetGraphAt(s.cursor, s.graph.Copy())
}
