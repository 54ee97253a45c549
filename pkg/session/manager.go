package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"log/slog"

	"github.com/openzx/proofline/internal/logging"
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/ports"
	"github.com/openzx/proofline/pkg/proof"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates proof access, ensuring safe concurrent operations
// against one store. It uses reference counting to garbage collect unused
// locks, so the lock map never grows with the number of proofs ever seen.
type Manager struct {
	store ports.ProofStore

	mu    sync.Mutex            // global lock for the map
	locks map[string]*lockEntry // active per-proof locks

	logger         *slog.Logger
	sessionOptions []SessionOption
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSessionOptions sets the options applied to every session the
// manager opens.
func WithSessionOptions(opts ...SessionOption) Option {
	return func(m *Manager) {
		m.sessionOptions = opts
	}
}

// NewManager creates a new proof Manager with the given persistence store.
func NewManager(store ports.ProofStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
func (m *Manager) acquire(proofID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[proofID]
	if !exists {
		entry = &lockEntry{}
		m.locks[proofID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(proofID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[proofID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, proofID)
	}
}

// WithLock executes a function while holding the lock for the proof.
func (m *Manager) WithLock(ctx context.Context, proofID string, fn func(context.Context) error) error {
	entry := m.acquire(proofID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(proofID)
	}()

	return fn(ctx)
}

// Load retrieves an existing proof from the store.
func (m *Manager) Load(ctx context.Context, proofID string) (*proof.Document, error) {
	var doc *proof.Document
	err := m.WithLock(ctx, proofID, func(ctx context.Context) error {
		var err error
		doc, err = m.store.Load(ctx, proofID)
		return err
	})
	return doc, err
}

// LoadOrStart tries to load a proof. If not found, it starts a new one
// anchored at the given initial graph (an empty graph when nil) and
// persists it immediately to reserve the ID.
func (m *Manager) LoadOrStart(ctx context.Context, proofID string, initial *domain.Graph) (*proof.Document, error) {
	var doc *proof.Document
	err := m.WithLock(ctx, proofID, func(ctx context.Context) error {
		var err error
		doc, err = m.store.Load(ctx, proofID)
		if err == nil {
			return nil
		}

		if !errors.Is(err, domain.ErrProofNotFound) {
			return fmt.Errorf("failed to check proof existence: %w", err)
		}

		if initial == nil {
			initial = domain.NewGraph()
		}
		doc = proof.New(initial)

		if err := m.store.Save(ctx, proofID, doc); err != nil {
			return fmt.Errorf("failed to initialize proof: %w", err)
		}
		m.logger.Info("proof started", "proof_id", proofID)
		return nil
	})
	return doc, err
}

// Open loads (or starts) a proof and returns an editing session over it,
// positioned at the latest step.
func (m *Manager) Open(ctx context.Context, proofID string, opts ...SessionOption) (*Session, error) {
	doc, err := m.LoadOrStart(ctx, proofID, nil)
	if err != nil {
		return nil, err
	}
	all := make([]SessionOption, 0, len(m.sessionOptions)+len(opts))
	all = append(all, m.sessionOptions...)
	all = append(all, opts...)
	return NewSession(proofID, doc, all...), nil
}

// Checkpoint syncs the session's live graph into its proof document and
// persists it.
func (m *Manager) Checkpoint(ctx context.Context, s *Session) error {
	s.SyncToDocument()
	return m.Save(ctx, s.ID(), s.Document())
}

// Save persists the proof document.
func (m *Manager) Save(ctx context.Context, proofID string, doc *proof.Document) error {
	return m.WithLock(ctx, proofID, func(ctx context.Context) error {
		return m.store.Save(ctx, proofID, doc)
	})
}

// Delete removes the proof from the store.
func (m *Manager) Delete(ctx context.Context, proofID string) error {
	return m.WithLock(ctx, proofID, func(ctx context.Context) error {
		return m.store.Delete(ctx, proofID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying proof store.
func (m *Manager) Store() ports.ProofStore {
	return m.store
}
