package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Opportunities: []models.Opportunity{
			{ID: "opp_1_abc", Title: "BOQ job", Platform: "Upwork", Link: "https://a.com"},
		},
		LastUpdated:   time.Now(),
		SearchCount:   23,
		RelevantCount: 1,
	}
}

func TestGitHubStore_Publish(t *testing.T) {
	var putBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/contents/data.json", r.URL.Path)
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))

		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"sha":"abc123"}`))
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			w.Write([]byte(`{"commit":{"message":"ok"}}`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	store := NewGitHubStore("test-token", "owner/repo", "data.json", server.URL)

	err := store.Publish(context.Background(), testSnapshot())

	require.NoError(t, err)
	assert.Equal(t, "abc123", putBody["sha"])
	assert.Equal(t, "Auto-update: 1 opportunities found", putBody["message"])

	// The content is the base64 of the full JSON snapshot.
	raw, err := base64.StdEncoding.DecodeString(putBody["content"].(string))
	require.NoError(t, err)
	var snapshot models.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Equal(t, 23, snapshot.SearchCount)
	assert.Len(t, snapshot.Opportunities, 1)
}

func TestGitHubStore_Publish_MissingDocumentCreatesWithoutSHA(t *testing.T) {
	var putBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&putBody)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	store := NewGitHubStore("t", "owner/repo", "data.json", server.URL)

	err := store.Publish(context.Background(), testSnapshot())

	require.NoError(t, err)
	_, hasSHA := putBody["sha"]
	assert.False(t, hasSHA)
}

func TestGitHubStore_Publish_StaleRevisionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"sha":"stale"}`))
		case http.MethodPut:
			// GitHub answers 409 when the supplied sha no longer matches.
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"data.json does not match"}`))
		}
	}))
	defer server.Close()

	store := NewGitHubStore("t", "owner/repo", "data.json", server.URL)

	err := store.Publish(context.Background(), testSnapshot())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 409")
}

func TestGitHubStore_Publish_RevisionReadFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := NewGitHubStore("t", "owner/repo", "data.json", server.URL)

	err := store.Publish(context.Background(), testSnapshot())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read current revision")
}
