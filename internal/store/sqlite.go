package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/baselomar044-dev/qs-empire/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the opportunity collection in the embedded agent
// database so the read API can serve it without touching GitHub.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements OpportunityStore
var _ OpportunityStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS qs_opportunities (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	platform TEXT NOT NULL,
	budget TEXT NOT NULL,
	success_rate INTEGER NOT NULL,
	status TEXT NOT NULL,
	deadline TEXT NOT NULL,
	url TEXT NOT NULL,
	proposal TEXT NOT NULL,
	warning TEXT,
	found_at TEXT NOT NULL
);
`

// NewSQLiteStore opens (and if needed initializes) the local database
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save upserts the given opportunities by id
func (s *SQLiteStore) Save(ctx context.Context, opportunities []models.Opportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO qs_opportunities (
		id, title, platform, budget, success_rate, status, deadline, url, proposal, warning, found_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, opp := range opportunities {
		_, err := tx.ExecContext(ctx, query,
			opp.ID,
			opp.Title,
			opp.Platform,
			opp.Budget,
			opp.SuccessRate,
			opp.Status,
			opp.Deadline,
			opp.Link,
			opp.Proposal,
			opp.Warning,
			opp.FoundDate,
		)
		if err != nil {
			return fmt.Errorf("failed to save opportunity %s: %w", opp.ID, err)
		}
	}

	return tx.Commit()
}

// List returns all stored opportunities in descending discovery-date order
func (s *SQLiteStore) List(ctx context.Context) ([]models.Opportunity, error) {
	query := `
	SELECT id, title, platform, budget, success_rate, status, deadline, url, proposal, warning, found_at
	FROM qs_opportunities
	ORDER BY found_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []models.Opportunity
	for rows.Next() {
		var opp models.Opportunity
		var warning sql.NullString

		err := rows.Scan(
			&opp.ID, &opp.Title, &opp.Platform, &opp.Budget, &opp.SuccessRate,
			&opp.Status, &opp.Deadline, &opp.Link, &opp.Proposal, &warning, &opp.FoundDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}

		opp.Warning = warning.String
		opportunities = append(opportunities, opp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read opportunities: %w", err)
	}

	return opportunities, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
