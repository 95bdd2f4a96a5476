// Package store keeps the run archive: every completed query is recorded
// with its filters, provenance and record set, browsable over the API.
// The CSV cache remains the engine's source of truth; the archive is
// history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"callscout-engine/internal/domain"
	"callscout-engine/internal/query"
)

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  at TEXT NOT NULL,
  mode TEXT NOT NULL,
  source TEXT NOT NULL,
  theme TEXT NOT NULL DEFAULT '',
  goal INTEGER NOT NULL DEFAULT 0,
  keywords TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  cache_only INTEGER NOT NULL DEFAULT 0,
  record_count INTEGER NOT NULL DEFAULT 0,
  failed_sources TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS run_records (
  run_id INTEGER NOT NULL REFERENCES runs(id),
  pos INTEGER NOT NULL,
  title TEXT NOT NULL,
  link TEXT NOT NULL,
  opening_date TEXT NOT NULL DEFAULT '',
  deadline_date TEXT NOT NULL DEFAULT '',
  summary TEXT NOT NULL DEFAULT '',
  goals TEXT NOT NULL DEFAULT 'unknown',
  source TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (run_id, pos)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// RunSummary is one row of the history listing.
type RunSummary struct {
	ID            int64           `json:"id"`
	At            string          `json:"at"`
	Mode          domain.Mode     `json:"mode"`
	Source        string          `json:"source"`
	Theme         string          `json:"theme,omitempty"`
	Goal          int             `json:"goal,omitempty"`
	Keywords      string          `json:"keywords,omitempty"`
	Category      domain.Category `json:"category,omitempty"`
	CacheOnly     bool            `json:"cache_only"`
	RecordCount   int             `json:"record_count"`
	FailedSources []string        `json:"failed_sources,omitempty"`
}

const dateLayout = "2006-01-02"

// RecordRun archives one completed query with its result set.
func (d *DB) RecordRun(ctx context.Context, req query.Request, res *query.Result) error {
	var failed []string
	for _, sr := range res.Sources {
		if sr.Failed {
			failed = append(failed, string(sr.Source))
		}
	}

	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	r, err := tx.ExecContext(ctx, `
INSERT INTO runs (at, mode, source, theme, goal, keywords, category, cache_only, record_count, failed_sources)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		res.At.UTC().Format(time.RFC3339), string(req.Mode), req.Source, req.Theme,
		int(req.Goal), req.Keywords, string(req.Category),
		boolInt(req.UseCacheOnly), len(res.Records), strings.Join(failed, ","),
	)
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	runID, err := r.LastInsertId()
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}

	for i, rec := range res.Records {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO run_records (run_id, pos, title, link, opening_date, deadline_date, summary, goals, source, category)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			runID, i, rec.Title, rec.Link,
			formatDate(rec.OpeningDate), formatDate(rec.DeadlineDate),
			rec.Summary, domain.FormatGoals(rec.Goals), string(rec.Source), string(rec.Category),
		); err != nil {
			return fmt.Errorf("archive record: %w", err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the newest runs first, capped at limit.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, at, mode, source, theme, goal, keywords, category, cache_only, record_count, failed_sources
FROM runs ORDER BY id DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var mode, category, failed string
		var cacheOnly int
		if err := rows.Scan(&rs.ID, &rs.At, &mode, &rs.Source, &rs.Theme, &rs.Goal,
			&rs.Keywords, &category, &cacheOnly, &rs.RecordCount, &failed); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		rs.Mode = domain.Mode(mode)
		rs.Category = domain.Category(category)
		rs.CacheOnly = cacheOnly != 0
		if failed != "" {
			rs.FailedSources = strings.Split(failed, ",")
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// RunRecords returns the archived record set of one run, in ranked order.
func (d *DB) RunRecords(ctx context.Context, runID int64) ([]domain.CallRecord, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT title, link, opening_date, deadline_date, summary, goals, source, category
FROM run_records WHERE run_id = ? ORDER BY pos;`, runID)
	if err != nil {
		return nil, fmt.Errorf("run records: %w", err)
	}
	defer rows.Close()

	var out []domain.CallRecord
	for rows.Next() {
		var rec domain.CallRecord
		var opening, deadline, goals, source, category string
		if err := rows.Scan(&rec.Title, &rec.Link, &opening, &deadline,
			&rec.Summary, &goals, &source, &category); err != nil {
			return nil, fmt.Errorf("run records: %w", err)
		}
		rec.OpeningDate = parseDate(opening)
		rec.DeadlineDate = parseDate(deadline)
		rec.Goals = domain.ParseGoals(goals)
		rec.Source = domain.Source(source)
		rec.Category = domain.Category(category)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
