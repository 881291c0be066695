package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/go-resty/resty/v2"
)

// GitHubStore persists run snapshots as a single JSON document in a GitHub
// repository via the contents API. Writes are read-modify-write guarded by
// the file's sha: a concurrent writer that read an older sha loses visibly
// instead of silently corrupting the document.
type GitHubStore struct {
	token    string
	repo     string // "owner/repo"
	path     string
	baseURL  string
	client   *resty.Client
}

// Ensure GitHubStore implements SnapshotStore
var _ SnapshotStore = (*GitHubStore)(nil)

type contentsResponse struct {
	SHA string `json:"sha"`
}

type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// NewGitHubStore creates a new GitHub contents store
func NewGitHubStore(token, repo, path, baseURL string) *GitHubStore {
	return &GitHubStore{
		token:   token,
		repo:    repo,
		path:    path,
		baseURL: baseURL,
		client:  resty.New().SetTimeout(30 * time.Second),
	}
}

// Publish reads the current revision of the document, then overwrites it
// with the new snapshot, supplying the revision as the write precondition.
func (g *GitHubStore) Publish(ctx context.Context, snapshot *models.Snapshot) error {
	sha, err := g.currentSHA(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current revision: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	req := updateRequest{
		Message: fmt.Sprintf("Auto-update: %d opportunities found", len(snapshot.Opportunities)),
		Content: base64.StdEncoding.EncodeToString(data),
		SHA:     sha,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "token "+g.token).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put(g.contentsURL())

	if err != nil {
		return fmt.Errorf("snapshot write failed: %w", err)
	}

	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return fmt.Errorf("snapshot write rejected with status %d", resp.StatusCode())
	}

	return nil
}

func (g *GitHubStore) currentSHA(ctx context.Context) (string, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "token "+g.token).
		Get(g.contentsURL())

	if err != nil {
		return "", err
	}

	// 404 means the document does not exist yet; create it without a sha.
	if resp.StatusCode() == 404 {
		return "", nil
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("contents API returned status %d", resp.StatusCode())
	}

	var contents contentsResponse
	if err := json.Unmarshal(resp.Body(), &contents); err != nil {
		return "", err
	}

	return contents.SHA, nil
}

func (g *GitHubStore) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", g.baseURL, g.repo, g.path)
}
