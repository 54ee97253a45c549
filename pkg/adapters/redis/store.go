// Package redis provides a Redis-backed proof store. Proofs are stored as
// JSON values with a ZSET index for listing and lazy expiry.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/proof"
)

// Store implements ports.ProofStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored proofs.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored proofs.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "proofline:proof:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(proofID string) string {
	return s.prefix + proofID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the proof to Redis and records it in the index ZSET. The
// index score is the expiry time, so List can prune lazily.
func (s *Store) Save(ctx context.Context, proofID string, doc *proof.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal proof: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(proofID), data, s.ttl)

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01, effectively never
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: proofID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the proof from Redis.
func (s *Store) Load(ctx context.Context, proofID string) (*proof.Document, error) {
	val, err := s.client.Get(ctx, s.key(proofID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrProofNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var doc proof.Document
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proof: %w", err)
	}
	return &doc, nil
}

// Delete removes the proof and its index entry.
func (s *Store) Delete(ctx context.Context, proofID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(proofID))
	pipe.ZRem(ctx, s.indexKey(), proofID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored proof IDs, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired proofs: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list proofs: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
