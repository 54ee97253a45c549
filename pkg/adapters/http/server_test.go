package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/openzx/proofline/pkg/adapters/http"
	"github.com/openzx/proofline/pkg/adapters/memory"
	"github.com/openzx/proofline/pkg/domain"
	"github.com/openzx/proofline/pkg/proof"
	"github.com/openzx/proofline/pkg/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()
	manager := session.NewManager(memory.NewStore())
	srv := httptest.NewServer(httpadapter.NewHandler(manager))
	t.Cleanup(srv.Close)
	return srv, manager
}

func seedProof(t *testing.T, m *session.Manager, id string) (domain.VertexID, domain.VertexID) {
	t.Helper()
	g := domain.NewGraph()
	u := g.AddVertex(domain.VertexZ, 0, 0)
	v := g.AddVertex(domain.VertexZ, 0, 1)
	g.AddEdge(domain.NewEdge(u, v), domain.EdgeSimple)
	require.NoError(t, m.Save(context.Background(), id, proof.New(g)))
	return u, v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProofLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	// Create an empty proof.
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/proofs/p1/", nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// It shows up in the listing.
	resp, err = client.Get(srv.URL + "/proofs/")
	require.NoError(t, err)
	var listing struct {
		Proofs []string `json:"proofs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()
	assert.Contains(t, listing.Proofs, "p1")

	// Fetch the document.
	resp, err = client.Get(srv.URL + "/proofs/p1/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete it.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/proofs/p1/", nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/proofs/p1/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetGraphAndMermaid(t *testing.T) {
	srv, manager := newTestServer(t)
	seedProof(t, manager, "p2")

	resp, err := http.Get(srv.URL + "/proofs/p2/graph")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var g domain.Graph
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&g))
	assert.Equal(t, 2, g.NumVertices())

	resp, err = http.Get(srv.URL + "/proofs/p2/mermaid")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/proofs/p2/graph?step=7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApplyRewrite(t *testing.T) {
	srv, manager := newTestServer(t)
	u, v := seedProof(t, manager, "p3")

	body, _ := json.Marshal(map[string]any{
		"rule":     []string{"spider rules", "fuse spiders"},
		"vertices": []domain.VertexID{u, v},
	})
	resp, err := http.Post(srv.URL+"/proofs/p3/rewrites", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Steps int `json:"steps"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.Steps)

	// The extended proof was persisted.
	doc, err := manager.Load(context.Background(), "p3")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.NumSteps())
	assert.Equal(t, 1, doc.GraphAt(1).NumVertices())

	// A non-matching selection is rejected without touching the proof.
	body, _ = json.Marshal(map[string]any{
		"rule":     []string{"spider rules", "fuse spiders"},
		"vertices": []domain.VertexID{},
	})
	resp, err = http.Post(srv.URL+"/proofs/p3/rewrites", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown rules are a 404.
	body, _ = json.Marshal(map[string]any{"rule": []string{"no", "such rule"}})
	resp, err = http.Post(srv.URL+"/proofs/p3/rewrites", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenameStep(t *testing.T) {
	srv, manager := newTestServer(t)
	u, v := seedProof(t, manager, "p4")

	body, _ := json.Marshal(map[string]any{
		"rule":     []string{"spider rules", "fuse spiders"},
		"vertices": []domain.VertexID{u, v},
	})
	resp, err := http.Post(srv.URL+"/proofs/p4/rewrites", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ = json.Marshal(map[string]string{"name": "my fusion"})
	resp, err = http.Post(srv.URL+"/proofs/p4/steps/1/rename", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	doc, err := manager.Load(context.Background(), "p4")
	require.NoError(t, err)
	assert.Equal(t, "my fusion", doc.Step(0).DisplayName)
}
