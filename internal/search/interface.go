package search

import (
	"context"

	"github.com/baselomar044-dev/qs-empire/internal/models"
)

// Provider defines the contract for search providers
type Provider interface {
	GetName() string
	Search(ctx context.Context, query string) ([]models.SearchHit, error)
}
