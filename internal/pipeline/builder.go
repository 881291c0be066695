package pipeline

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/models"
)

// Defaults substituted when the classifier leaves a field absent
const (
	DefaultBudget      = "unspecified"
	DefaultSuccessRate = 50
	DefaultPlatform    = "Unknown"

	// StatusNew is the initial status of every built record
	StatusNew = "new"

	deadlineDays = 7
)

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// BuildOpportunity converts one accepted (hit, classification) pair into a
// persisted record. The id concatenates a millisecond timestamp with a
// random suffix; the suffix is required because several records in one run
// can share the same millisecond.
func BuildOpportunity(hit models.SearchHit, c models.Classification, now time.Time) models.Opportunity {
	title := c.Title
	if title == "" {
		title = hit.Title
	}

	platform := c.Platform
	if platform == "" {
		platform = DefaultPlatform
	}

	budget := c.Budget
	if budget == "" {
		budget = DefaultBudget
	}

	successRate := c.SuccessRate
	if successRate == 0 {
		successRate = DefaultSuccessRate
	}

	return models.Opportunity{
		ID:          newOpportunityID(now),
		Title:       title,
		Platform:    platform,
		Budget:      budget,
		SuccessRate: successRate,
		Status:      StatusNew,
		Deadline:    now.AddDate(0, 0, deadlineDays).Format("2006-01-02"),
		Link:        hit.URL,
		Proposal:    c.Proposal,
		Warning:     c.Warning,
		FoundDate:   now.Format("2006-01-02"),
	}
}

func newOpportunityID(now time.Time) string {
	var suffix strings.Builder
	for i := 0; i < 9; i++ {
		suffix.WriteByte(suffixAlphabet[rand.Intn(len(suffixAlphabet))])
	}
	return fmt.Sprintf("opp_%d_%s", now.UnixMilli(), suffix.String())
}
