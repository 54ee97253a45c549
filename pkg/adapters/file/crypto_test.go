package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/proof"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func encryptedProof(t *testing.T) *proof.Document {
	t.Helper()
	g := domain.NewGraph()
	v := g.AddVertex(domain.VertexZ, 0, 0)
	g.SetPhase(v, domain.NewFraction(1, 2))
	return proof.New(g)
}

func TestEncryptedSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, WithEncryption(EncryptionConfig{ActiveKey: testKey(1)}))
	ctx := context.Background()
	doc := encryptedProof(t)

	require.NoError(t, store.Save(ctx, "p1", doc))

	loaded, err := store.Load(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, loaded.GraphAt(0).Equal(doc.GraphAt(0)))
}

func TestEncryptedFileIsOpaque(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, WithEncryption(EncryptionConfig{ActiveKey: testKey(1)}))
	require.NoError(t, store.Save(context.Background(), "p1", encryptedProof(t)))

	raw, err := os.ReadFile(filepath.Join(dir, "p1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "encrypted")
	assert.NotContains(t, string(raw), "initial_graph")
	assert.NotContains(t, string(raw), "vertices")
}

func TestEncryptionKeyRotation(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	doc := encryptedProof(t)

	oldStore := New(dir, WithEncryption(EncryptionConfig{ActiveKey: testKey(1)}))
	require.NoError(t, oldStore.Save(ctx, "p1", doc))

	// After a rotation the old key rides along as a fallback.
	rotated := New(dir, WithEncryption(EncryptionConfig{
		ActiveKey:    testKey(2),
		FallbackKeys: [][]byte{testKey(1)},
	}))
	loaded, err := rotated.Load(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, loaded.GraphAt(0).Equal(doc.GraphAt(0)))

	// Re-saving re-encrypts under the new active key.
	require.NoError(t, rotated.Save(ctx, "p1", loaded))
	strict := New(dir, WithEncryption(EncryptionConfig{ActiveKey: testKey(2)}))
	_, err = strict.Load(ctx, "p1")
	assert.NoError(t, err)
}

func TestEncryptionWrongKeyFails(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := New(dir, WithEncryption(EncryptionConfig{ActiveKey: testKey(1)}))
	require.NoError(t, store.Save(ctx, "p1", encryptedProof(t)))

	wrong := New(dir, WithEncryption(EncryptionConfig{ActiveKey: testKey(9)}))
	_, err := wrong.Load(ctx, "p1")
	assert.ErrorContains(t, err, "decrypt")
}

func TestEncryptionRejectsPlainFile(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	plain := New(dir)
	require.NoError(t, plain.Save(ctx, "p1", encryptedProof(t)))

	encrypted := New(dir, WithEncryption(EncryptionConfig{ActiveKey: testKey(1)}))
	_, err := encrypted.Load(ctx, "p1")
	assert.Error(t, err)
}

func TestWithEncryptionValidatesKeyLength(t *testing.T) {
	assert.Panics(t, func() {
		WithEncryption(EncryptionConfig{ActiveKey: []byte("short")})
	})
}
