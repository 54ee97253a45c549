// Package http exposes proofs over a REST API: CRUD on stored proofs,
// graph retrieval per step, rewrite application and Prometheus metrics.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openzx/proofline/internal/logging"
	"github.com/openzx/proofline/internal/presentation/graph"
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/proof"
	"github.com/openzx/proofline/pkg/rewrite"
	"github.com/openzx/proofline/pkg/session"
)

// Server routes proof operations to a session manager.
type Server struct {
	manager *session.Manager
	catalog *rewrite.Tree
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithCatalog sets the rewrite catalog served by the rewrite endpoints.
func WithCatalog(tree *rewrite.Tree) Option {
	return func(s *Server) { s.catalog = tree }
}

// WithMetrics mounts /metrics for the given registry.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(manager *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		manager: manager,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		tree, err := rewrite.DefaultCatalog()
		if err != nil {
			panic("http: default catalog failed to load: " + err.Error())
		}
		s.catalog = tree
	}

	r := chi.NewRouter()
	r.Get("/health", s.getHealth)
	r.Route("/proofs", func(r chi.Router) {
		r.Get("/", s.listProofs)
		r.Route("/{proofID}", func(r chi.Router) {
			r.Get("/", s.getProof)
			r.Put("/", s.putProof)
			r.Delete("/", s.deleteProof)
			r.Get("/graph", s.getGraph)
			r.Get("/mermaid", s.getMermaid)
			r.Post("/rewrites", s.applyRewrite)
			r.Post("/steps/{step}/rename", s.renameStep)
		})
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrProofNotFound) {
		http.Error(w, "proof not found", http.StatusNotFound)
		return
	}
	s.logger.Error("request failed", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listProofs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.manager.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"proofs": ids})
}

func (s *Server) getProof(w http.ResponseWriter, r *http.Request) {
	doc, err := s.manager.Load(r.Context(), chi.URLParam(r, "proofID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// putProof creates or replaces a proof from a serialized document. An
// empty body starts a fresh proof over an empty graph.
func (s *Server) putProof(w http.ResponseWriter, r *http.Request) {
	proofID := chi.URLParam(r, "proofID")

	var doc *proof.Document
	if r.ContentLength != 0 {
		doc = &proof.Document{}
		if err := json.NewDecoder(r.Body).Decode(doc); err != nil {
			http.Error(w, fmt.Sprintf("invalid proof document: %v", err), http.StatusBadRequest)
			return
		}
	}

	if doc == nil {
		if _, err := s.manager.LoadOrStart(r.Context(), proofID, nil); err != nil {
			s.writeError(w, err)
			return
		}
	} else {
		if err := s.manager.Save(r.Context(), proofID, doc); err != nil {
			s.writeError(w, err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"proof_id": proofID})
}

func (s *Server) deleteProof(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(r.Context(), chi.URLParam(r, "proofID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// stepParam parses the optional ?step=N query; -1 means "latest".
func stepParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("step")
	if raw == "" {
		return -1, nil
	}
	return strconv.Atoi(raw)
}

func (s *Server) graphAt(r *http.Request) (*domain.Graph, error) {
	doc, err := s.manager.Load(r.Context(), chi.URLParam(r, "proofID"))
	if err != nil {
		return nil, err
	}
	step, err := stepParam(r)
	if err != nil {
		return nil, errBadRequest{fmt.Errorf("invalid step: %w", err)}
	}
	if step == -1 {
		step = doc.NumSteps()
	}
	if step < 0 || step > doc.NumSteps() {
		return nil, errBadRequest{fmt.Errorf("step %d out of range [0,%d]", step, doc.NumSteps())}
	}
	return doc.GraphAt(step), nil
}

type errBadRequest struct{ error }

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.graphAt(r)
	if err != nil {
		var bad errBadRequest
		if errors.As(err, &bad) {
			http.Error(w, bad.Error(), http.StatusBadRequest)
			return
		}
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) getMermaid(w http.ResponseWriter, r *http.Request) {
	g, err := s.graphAt(r)
	if err != nil {
		var bad errBadRequest
		if errors.As(err, &bad) {
			http.Error(w, bad.Error(), http.StatusBadRequest)
			return
		}
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(g, nil))
}

type rewriteRequest struct {
	Rule     []string          `json:"rule"`
	Vertices []domain.VertexID `json:"vertices"`
	Edges    []domain.Edge     `json:"edges"`
}

// applyRewrite opens a session on the proof, applies the named rule
// against the given selection, and persists the extended proof.
func (s *Server) applyRewrite(w http.ResponseWriter, r *http.Request) {
	proofID := chi.URLParam(r, "proofID")

	var req rewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	node := s.catalog.Find(req.Rule...)
	if node == nil || !node.IsRewrite() {
		http.Error(w, fmt.Sprintf("unknown rule %v", req.Rule), http.StatusNotFound)
		return
	}

	doc, err := s.manager.Load(r.Context(), proofID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess := session.NewSession(proofID, doc)
	sess.SelectVertices(req.Vertices)
	sess.SelectEdges(req.Edges)

	if err := sess.ApplyRewrite(node.Action()); err != nil {
		if errors.Is(err, rewrite.ErrNoMatch) {
			http.Error(w, "rule does not match the selection", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("rewrite failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	if err := s.manager.Save(r.Context(), proofID, sess.Document()); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("rewrite applied", "proof_id", proofID, "rule", req.Rule)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"proof_id": proofID,
		"steps":    sess.Document().NumSteps(),
	})
}

type renameRequest struct {
	Name string `json:"name"`
}

func (s *Server) renameStep(w http.ResponseWriter, r *http.Request) {
	proofID := chi.URLParam(r, "proofID")

	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		http.Error(w, "invalid step", http.StatusBadRequest)
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	doc, err := s.manager.Load(r.Context(), proofID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := doc.RenameStep(step, req.Name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.manager.Save(r.Context(), proofID, doc); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
