package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/config"
	"github.com/baselomar044-dev/qs-empire/internal/llm"
	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/baselomar044-dev/qs-empire/internal/notify"
	"github.com/baselomar044-dev/qs-empire/internal/search"
	"github.com/baselomar044-dev/qs-empire/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// runTimeout bounds a whole run to fit the platform's 60-second
// invocation deadline.
const runTimeout = 55 * time.Second

// Service runs the opportunity discovery pipeline:
// query fanout, dedupe, classify, build, publish.
type Service struct {
	config        *config.Config
	provider      search.Provider
	classifier    llm.ClassifierInterface
	snapshots     store.SnapshotStore
	opportunities store.OpportunityStore
	notifier      notify.NotificationInterface
	metrics       *Metrics
	mu            sync.RWMutex
}

// Options carries the trigger metadata that differentiates the scheduled
// run from the on-demand one. The stages themselves are identical.
type Options struct {
	Recipient string
	Persist   bool // write the GitHub snapshot and the local database
	Notify    bool // send the digest email
}

// Metrics holds pipeline run metrics
type Metrics struct {
	LastRunID       string    `json:"last_run_id"`
	LastRun         time.Time `json:"last_run"`
	LastRunDuration string    `json:"last_run_duration"`
	SearchedCount   int       `json:"searched_count"`
	RelevantCount   int       `json:"relevant_count"`
	FailedQueries   int       `json:"failed_queries"`
	FailedAnalyses  int       `json:"failed_analyses"`
}

// NewService creates a new pipeline service
func NewService(
	cfg *config.Config,
	provider search.Provider,
	classifier llm.ClassifierInterface,
	snapshots store.SnapshotStore,
	opportunities store.OpportunityStore,
	notifier notify.NotificationInterface,
) *Service {
	return &Service{
		config:        cfg,
		provider:      provider,
		classifier:    classifier,
		snapshots:     snapshots,
		opportunities: opportunities,
		notifier:      notifier,
		metrics:       &Metrics{},
	}
}

// Run executes one pipeline pass. Per-item failures (one query, one
// classification) and publisher sub-steps are best-effort: they are logged,
// surfaced in the summary, and never fail the run. The returned error is
// reserved for failures escaping all per-stage guards.
func (s *Service) Run(ctx context.Context, opts Options) (*models.RunSummary, []models.Opportunity, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logrus.WithField("runId", runID)

	log.Info("Starting discovery run")

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	// 1. Query fanout: one search per query, failures count as zero results.
	var allHits []models.SearchHit
	failedQueries := 0
	for _, query := range s.config.Queries {
		hits, err := s.provider.Search(ctx, query)
		if err != nil {
			log.Errorf("Search query %q failed: %v", query, err)
			failedQueries++
			continue
		}
		allHits = append(allHits, hits...)
	}

	// 2. Dedupe by URL, first occurrence wins.
	unique := DedupeByURL(allHits)
	log.Infof("Found %d unique results (%d raw, %d failed queries)", len(unique), len(allHits), failedQueries)

	// 3. Classify the first MaxAnalyzed hits; the rest are never sent.
	capped := unique
	if len(capped) > s.config.MaxAnalyzed {
		capped = capped[:s.config.MaxAnalyzed]
	}

	now := time.Now()
	var records []models.Opportunity
	failedAnalyses := 0
	for _, hit := range capped {
		classification, err := s.classifier.Classify(ctx, hit)
		if err != nil {
			log.Errorf("Analysis failed for %s: %v", hit.URL, err)
			failedAnalyses++
			continue
		}
		if !classification.IsRelevant {
			continue
		}

		// 4. Build the persisted record.
		records = append(records, BuildOpportunity(hit, *classification, now))
	}

	log.Infof("Analyzed %d relevant opportunities", len(records))

	summary := &models.RunSummary{
		RunID:     runID,
		Searched:  len(unique),
		Relevant:  len(records),
		StartedAt: start,
	}

	// 5. Publish: snapshot write and digest notification are independent
	// best-effort steps; neither blocks the other.
	if opts.Persist {
		s.publishSnapshot(ctx, log, records, summary)
		s.saveLocal(ctx, log, records, summary)
	}

	if opts.Notify {
		digest := s.buildDigest(records, now)
		if err := s.notifier.SendDigest(digest, opts.Recipient); err != nil {
			log.Errorf("Failed to send digest: %v", err)
		} else {
			summary.EmailSent = true
		}
	}

	summary.Duration = time.Since(start).String()
	s.updateMetrics(summary, failedQueries, failedAnalyses)

	log.Infof("Discovery run completed in %v", time.Since(start))
	return summary, records, nil
}

func (s *Service) buildDigest(records []models.Opportunity, runDate time.Time) *models.Digest {
	high := 0
	for _, opp := range records {
		if opp.SuccessRate >= s.config.HighSuccessThreshold {
			high++
		}
	}

	return &models.Digest{
		Date:          runDate.Format("Monday, January 2, 2006"),
		Opportunities: records,
		TotalCount:    len(records),
		HighCount:     high,
	}
}

func (s *Service) publishSnapshot(ctx context.Context, log *logrus.Entry, records []models.Opportunity, summary *models.RunSummary) {
	if s.snapshots == nil || len(records) == 0 {
		return
	}

	snapshot := &models.Snapshot{
		Opportunities: records,
		LastUpdated:   time.Now(),
		SearchCount:   summary.Searched,
		RelevantCount: summary.Relevant,
	}

	if err := s.snapshots.Publish(ctx, snapshot); err != nil {
		log.Errorf("Snapshot write failed: %v", err)
		return
	}

	summary.GithubUpdated = true
}

func (s *Service) saveLocal(ctx context.Context, log *logrus.Entry, records []models.Opportunity, summary *models.RunSummary) {
	if s.opportunities == nil || len(records) == 0 {
		return
	}

	if err := s.opportunities.Save(ctx, records); err != nil {
		log.Errorf("Failed to save opportunities locally: %v", err)
		return
	}

	summary.DBSaved = true
}

func (s *Service) updateMetrics(summary *models.RunSummary, failedQueries, failedAnalyses int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.LastRunID = summary.RunID
	s.metrics.LastRun = summary.StartedAt
	s.metrics.LastRunDuration = summary.Duration
	s.metrics.SearchedCount = summary.Searched
	s.metrics.RelevantCount = summary.Relevant
	s.metrics.FailedQueries = failedQueries
	s.metrics.FailedAnalyses = failedAnalyses
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
