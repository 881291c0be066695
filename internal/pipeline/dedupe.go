package pipeline

import "github.com/baselomar044-dev/qs-empire/internal/models"

// DedupeByURL removes duplicate hits by URL, keeping the first occurrence.
// The result preserves input order, so applying it twice is a no-op.
func DedupeByURL(hits []models.SearchHit) []models.SearchHit {
	seen := make(map[string]bool, len(hits))
	var unique []models.SearchHit

	for _, hit := range hits {
		if !seen[hit.URL] {
			seen[hit.URL] = true
			unique = append(unique, hit)
		}
	}

	return unique
}
