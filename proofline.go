package proofline

import (
	"context"
	"log/slog"

	"github.com/openzx/proofline/internal/logging"
	"github.com/openzx/proofline/pkg/adapters/memory"
	"github.com/openzx/proofline/pkg/observability"
	"github.com/openzx/proofline/pkg/ports"
	"github.com/openzx/proofline/pkg/rewrite"
	"github.com/openzx/proofline/pkg/session"
)

// Version is the library version, reported by the CLI.
var Version = "0.1.0"

// Engine is the high-level entry point for the proofline library. It wires
// a proof store, a rewrite catalog and the session manager behind a
// simplified API for consumers.
type Engine struct {
	manager *session.Manager
	catalog *rewrite.Tree
	store   ports.ProofStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a proof store, bypassing the default in-memory one.
func WithStore(store ports.ProofStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithCatalog injects a rewrite catalog, bypassing the built-in one.
func WithCatalog(tree *rewrite.Tree) Option {
	return func(e *Engine) {
		e.catalog = tree
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors recorded by every session.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes a new Engine. By default it keeps proofs in memory and
// serves the built-in rewrite catalog.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.metrics == nil {
		eng.metrics = observability.NewNopMetrics()
	}
	if eng.catalog == nil {
		tree, err := rewrite.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		eng.catalog = tree
	}

	eng.manager = session.NewManager(eng.store,
		session.WithLogger(eng.logger),
		session.WithSessionOptions(
			session.WithCatalog(eng.catalog),
			session.WithSessionLogger(eng.logger),
			session.WithMetrics(eng.metrics),
		),
	)
	return eng, nil
}

// Open loads (or starts) a proof and returns an editing session over it.
func (e *Engine) Open(ctx context.Context, proofID string) (*session.Session, error) {
	return e.manager.Open(ctx, proofID)
}

// Checkpoint persists a session's proof document.
func (e *Engine) Checkpoint(ctx context.Context, s *session.Session) error {
	return e.manager.Checkpoint(ctx, s)
}

// Manager returns the underlying session manager.
func (e *Engine) Manager() *session.Manager {
	return e.manager
}

// Catalog returns the rewrite catalog served by the engine.
func (e *Engine) Catalog() *rewrite.Tree {
	return e.catalog
}
