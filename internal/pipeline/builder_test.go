package pipeline

import (
	"testing"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildOpportunity(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	hit := models.SearchHit{
		URL:     "https://www.upwork.com/jobs/~01",
		Title:   "BOQ preparation for villa",
		Content: "Need a quantity surveyor...",
	}
	classification := models.Classification{
		IsRelevant:  true,
		Title:       "حصر كميات فيلا",
		Platform:    "Upwork",
		Budget:      "$500",
		SuccessRate: 80,
		Warning:     "tight deadline",
		Proposal:    "I can deliver the BOQ in 3 days.",
	}

	opp := BuildOpportunity(hit, classification, now)

	assert.Equal(t, "حصر كميات فيلا", opp.Title)
	assert.Equal(t, "Upwork", opp.Platform)
	assert.Equal(t, "$500", opp.Budget)
	assert.Equal(t, 80, opp.SuccessRate)
	assert.Equal(t, StatusNew, opp.Status)
	assert.Equal(t, hit.URL, opp.Link)
	assert.Equal(t, "tight deadline", opp.Warning)
	assert.Equal(t, "I can deliver the BOQ in 3 days.", opp.Proposal)
	assert.Equal(t, "2025-06-10", opp.FoundDate)
	assert.Equal(t, "2025-06-17", opp.Deadline)
}

func TestBuildOpportunity_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	hit := models.SearchHit{
		URL:   "https://mostaql.com/project/1",
		Title: "fallback title",
	}
	classification := models.Classification{IsRelevant: true}

	opp := BuildOpportunity(hit, classification, now)

	assert.Equal(t, "fallback title", opp.Title)
	assert.Equal(t, DefaultPlatform, opp.Platform)
	assert.Equal(t, DefaultBudget, opp.Budget)
	assert.Equal(t, DefaultSuccessRate, opp.SuccessRate)
	assert.Empty(t, opp.Warning)
}

func TestBuildOpportunity_IDsNotContentDerived(t *testing.T) {
	now := time.Now()
	hit := models.SearchHit{URL: "https://a.com"}
	classification := models.Classification{IsRelevant: true, Title: "same"}

	first := BuildOpportunity(hit, classification, now)
	second := BuildOpportunity(hit, classification, now)

	// Same input, same millisecond: ids must still differ, all other
	// fields must match.
	assert.NotEqual(t, first.ID, second.ID)

	first.ID = ""
	second.ID = ""
	assert.Equal(t, first, second)
}

func TestBuildOpportunity_IDUniqueWithinRun(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)

	for i := 0; i < 500; i++ {
		opp := BuildOpportunity(models.SearchHit{URL: "https://a.com"}, models.Classification{}, now)
		assert.False(t, seen[opp.ID], "id collision: %s", opp.ID)
		seen[opp.ID] = true
		assert.Regexp(t, `^opp_\d+_[0-9a-z]{9}$`, opp.ID)
	}
}
