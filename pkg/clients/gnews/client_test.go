package gnews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPayload = `{
  "totalArticles": 3,
  "articles": [
    {
      "title": "Markets rally",
      "description": "Stocks close higher.",
      "url": "https://example.com/1",
      "publishedAt": "2026-08-24T06:00:00Z",
      "author": "Jo Reporter",
      "source": {"name": "Wire"}
    },
    {
      "title": "No description here",
      "description": "",
      "url": "https://example.com/2",
      "publishedAt": "2026-08-24T06:30:00Z",
      "source": {"name": "Wire"}
    },
    {
      "title": "New chip unveiled",
      "description": "Faster and cooler.",
      "url": "https://example.com/3",
      "publishedAt": "2026-08-24T07:00:00Z",
      "source": {"name": "Tech Desk"}
    }
  ]
}`

func TestSearchMapsAndFiltersArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "technology", query.Get("q"))
		assert.Equal(t, "en", query.Get("lang"))
		assert.Equal(t, "us", query.Get("country"))
		assert.Equal(t, "3", query.Get("max"))
		assert.Equal(t, "key123", query.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client := NewClient("key123").SetBaseURL(server.URL)

	articles, err := client.Search(context.Background(), "technology", 3)
	require.NoError(t, err)

	// The description-less article is filtered out.
	require.Len(t, articles, 2)
	assert.Equal(t, "Markets rally", articles[0].Title)
	assert.Equal(t, "Stocks close higher.", articles[0].Summary)
	assert.Equal(t, "Wire", articles[0].Source)
	assert.Equal(t, "technology", articles[0].Category)
	assert.Equal(t, "Jo Reporter", articles[0].Author)
	assert.Equal(t, "New chip unveiled", articles[1].Title)
}

func TestSearchCapsRequestedResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("max"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalArticles":0,"articles":[]}`))
	}))
	defer server.Close()

	client := NewClient("key123").SetBaseURL(server.URL)

	_, err := client.Search(context.Background(), "world news", 50)
	require.NoError(t, err)
}

func TestSearchSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":["Your API key is invalid"]}`))
	}))
	defer server.Close()

	client := NewClient("bad").SetBaseURL(server.URL)

	_, err := client.Search(context.Background(), "economy", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your API key is invalid")
}

func TestSearchRequiresAPIKey(t *testing.T) {
	client := NewClient("")

	_, err := client.Search(context.Background(), "economy", 3)
	assert.Error(t, err)
}
