package models

import "time"

// SearchHit is one raw result returned by the search provider for one query.
// Hits only live within a single pipeline run.
type SearchHit struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Classification is the AI's structured judgment about one hit.
type Classification struct {
	IsRelevant  bool   `json:"isRelevant"`
	Title       string `json:"title"`
	Platform    string `json:"platform"`    // "Upwork", "Freelancer", "Mostaql", "Fiverr", "LinkedIn", "Other"
	Budget      string `json:"budget"`      // free text, no currency parsing guaranteed
	SuccessRate int    `json:"successRate"` // 0-100
	Warning     string `json:"warning,omitempty"`
	Proposal    string `json:"proposal"`
}

// Opportunity is the persisted record combining a hit and its classification.
type Opportunity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	Budget      string `json:"budget"`
	SuccessRate int    `json:"successRate"`
	Status      string `json:"status"`   // "new", "applied", ...
	Deadline    string `json:"deadline"` // YYYY-MM-DD
	Link        string `json:"link"`
	Proposal    string `json:"proposal"`
	Warning     string `json:"warning,omitempty"`
	FoundDate   string `json:"foundDate"` // YYYY-MM-DD
}

// Snapshot is the full document written to the remote store on each run.
// Each write is a complete overwrite of the collection, not a merge.
type Snapshot struct {
	Opportunities []Opportunity `json:"opportunities"`
	LastUpdated   time.Time     `json:"lastUpdated"`
	SearchCount   int           `json:"searchCount"`
	RelevantCount int           `json:"relevantCount"`
}

// Digest is the rendered notification summarizing one run.
type Digest struct {
	Date          string
	Opportunities []Opportunity
	TotalCount    int
	HighCount     int // opportunities at or above the high success threshold
}

// RunSummary reports per-sub-step outcomes of one pipeline run.
// Publisher steps are best-effort, so a summary can report overall
// success with individual steps false.
type RunSummary struct {
	RunID         string    `json:"runId"`
	Searched      int       `json:"searched"`
	Relevant      int       `json:"relevant"`
	EmailSent     bool      `json:"emailSent"`
	GithubUpdated bool      `json:"githubUpdated"`
	DBSaved       bool      `json:"dbSaved"`
	StartedAt     time.Time `json:"startedAt"`
	Duration      string    `json:"duration"`
}
