package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileSHAReturnsEmptyForMissingFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("tok", "owner/blog", "main").SetBaseURL(server.URL)

	sha, err := client.GetFileSHA(context.Background(), "_posts/missing.md")
	require.NoError(t, err)
	assert.Empty(t, sha)
}

func TestGetFileSHAReturnsExistingBlobSHA(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/blog/contents/_posts/existing.md", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		assert.Equal(t, "token tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"sha": "blob456"})
	}))
	defer server.Close()

	client := NewClient("tok", "owner/blog", "main").SetBaseURL(server.URL)

	sha, err := client.GetFileSHA(context.Background(), "_posts/existing.md")
	require.NoError(t, err)
	assert.Equal(t, "blob456", sha)
}

func TestPutFileCreatesFile(t *testing.T) {
	var received putRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/repos/owner/blog/contents/_posts/new.md", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"commit":{"sha":"commit123"}}`))
	}))
	defer server.Close()

	client := NewClient("tok", "owner/blog", "main").SetBaseURL(server.URL)

	commitSHA, err := client.PutFile(context.Background(), "_posts/new.md", "# hello", "Add blog post: hello", "")
	require.NoError(t, err)

	assert.Equal(t, "commit123", commitSHA)
	assert.Equal(t, "Add blog post: hello", received.Message)
	assert.Equal(t, "main", received.Branch)
	assert.Empty(t, received.SHA)

	decoded, err := base64.StdEncoding.DecodeString(received.Content)
	require.NoError(t, err)
	assert.Equal(t, "# hello", string(decoded))
}

func TestPutFileSendsSHAOnUpdate(t *testing.T) {
	var received putRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"commit":{"sha":"commit456"}}`))
	}))
	defer server.Close()

	client := NewClient("tok", "owner/blog", "main").SetBaseURL(server.URL)

	commitSHA, err := client.PutFile(context.Background(), "_posts/old.md", "# updated", "Update blog post: hello", "blob456")
	require.NoError(t, err)

	assert.Equal(t, "commit456", commitSHA)
	assert.Equal(t, "blob456", received.SHA)
}

func TestPutFileSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Resource not accessible"}`))
	}))
	defer server.Close()

	client := NewClient("tok", "owner/blog", "main").SetBaseURL(server.URL)

	_, err := client.PutFile(context.Background(), "_posts/x.md", "c", "m", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resource not accessible")
}
