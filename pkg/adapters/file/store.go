// Package file provides a filesystem-backed proof store. Proofs are
// stored as JSON files, one per proof, in a configured directory.
package file

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/proof"
)

// Store implements ports.ProofStore using the local filesystem.
type Store struct {
	BasePath   string
	encryption *EncryptionConfig
}

// Option defines a functional option for configuring the Store.
type Option func(*Store)

// WithEncryption enables AES-GCM encryption of proof files at rest. The
// active key encrypts new writes; fallback keys are tried on reads so keys
// can be rotated without re-encrypting every stored proof.
func WithEncryption(cfg EncryptionConfig) Option {
	if len(cfg.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(s *Store) {
		s.encryption = &cfg
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".proofline/proofs".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".proofline", "proofs")
	}
	s := &Store{BasePath: basePath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// envelopeJSON is the on-disk form of an encrypted proof. The payload is
// opaque; nothing about the diagram leaks into the file.
type envelopeJSON struct {
	Encrypted string `json:"encrypted"`
}

// Save persists the proof to a JSON file atomically: it writes a temporary
// file in the same directory, fsyncs, and renames it over the destination.
func (s *Store) Save(ctx context.Context, proofID string, doc *proof.Document) error {
	if proofID == "" {
		return fmt.Errorf("proofID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure proof directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, proofID+".json")

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal proof: %w", err)
	}

	if s.encryption != nil {
		ciphertext, err := encrypt(data, s.encryption.ActiveKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt proof: %w", err)
		}
		data, err = json.Marshal(envelopeJSON{
			Encrypted: base64.StdEncoding.EncodeToString(ciphertext),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal envelope: %w", err)
		}
	}

	// The temp file lives in the destination directory so the rename stays
	// on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+proofID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

// Load retrieves the proof from its JSON file.
func (s *Store) Load(ctx context.Context, proofID string) (*proof.Document, error) {
	if proofID == "" {
		return nil, fmt.Errorf("proofID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, proofID+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrProofNotFound
		}
		return nil, fmt.Errorf("failed to read proof file: %w", err)
	}

	if s.encryption != nil {
		var envelope envelopeJSON
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
		}
		// Encryption is configured, so a plain file fails secure instead of
		// loading silently.
		if envelope.Encrypted == "" {
			return nil, fmt.Errorf("proof file is missing its encrypted envelope")
		}
		ciphertext, err := base64.StdEncoding.DecodeString(envelope.Encrypted)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
		}
		data, err = decryptWithRotation(ciphertext, s.encryption.ActiveKey, s.encryption.FallbackKeys)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt proof: %w", err)
		}
	}

	var doc proof.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proof: %w", err)
	}
	return &doc, nil
}

// Delete removes the proof file.
func (s *Store) Delete(ctx context.Context, proofID string) error {
	if proofID == "" {
		return fmt.Errorf("proofID cannot be empty")
	}

	err := os.Remove(filepath.Join(s.BasePath, proofID+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete proof file: %w", err)
	}
	return nil
}

// List returns all stored proof IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list proofs: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			ids = append(ids, name[:len(name)-len(".json")])
		}
	}
	return ids, nil
}
