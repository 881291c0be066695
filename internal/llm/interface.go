package llm

import (
	"context"

	"github.com/baselomar044-dev/qs-empire/internal/models"
)

// ClassifierInterface defines the contract for relevance classification
type ClassifierInterface interface {
	Classify(ctx context.Context, hit models.SearchHit) (*models.Classification, error)
}
