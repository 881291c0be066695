package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavilyProvider_Search(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"url":"https://www.upwork.com/jobs/~01","title":"QS needed","content":"BOQ work"},
			{"url":"https://mostaql.com/project/2","title":"حصر كميات","content":"مشروع فيلا"}
		]}`))
	}))
	defer server.Close()

	provider := NewTavilyProvider("test-key", server.URL, 5, []string{"upwork.com", "mostaql.com"})

	hits, err := provider.Search(context.Background(), "quantity surveyor freelance")

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "https://www.upwork.com/jobs/~01", hits[0].URL)
	assert.Equal(t, "QS needed", hits[0].Title)
	assert.Equal(t, "BOQ work", hits[0].Content)
	assert.Equal(t, "حصر كميات", hits[1].Title)

	assert.Equal(t, "test-key", captured["api_key"])
	assert.Equal(t, "quantity surveyor freelance", captured["query"])
	assert.Equal(t, "basic", captured["search_depth"])
	assert.Equal(t, float64(5), captured["max_results"])
	domains := captured["include_domains"].([]interface{})
	assert.Len(t, domains, 2)
}

func TestTavilyProvider_Search_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewTavilyProvider("bad-key", server.URL, 5, nil)

	_, err := provider.Search(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestTavilyProvider_Search_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	provider := NewTavilyProvider("k", server.URL, 5, nil)

	_, err := provider.Search(context.Background(), "anything")

	require.Error(t, err)
}

func TestTavilyProvider_Search_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	provider := NewTavilyProvider("k", server.URL, 5, nil)

	hits, err := provider.Search(context.Background(), "anything")

	require.NoError(t, err)
	assert.Empty(t, hits)
}
