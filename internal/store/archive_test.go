package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"callscout-engine/internal/domain"
	"callscout-engine/internal/query"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db.Pool); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestRecordAndListRuns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	deadline := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	res := &query.Result{
		Records: []domain.CallRecord{
			{
				Title:        "Water call",
				Link:         "https://example.org/w",
				DeadlineDate: &deadline,
				Summary:      "sanitation",
				Goals:        []domain.Goal{6},
				Source:       domain.SourceEC,
			},
			{
				Title:  "Undated call",
				Link:   "https://example.org/u",
				Goals:  []domain.Goal{domain.GoalUnknown},
				Source: domain.SourceIBRO,
			},
		},
		Sources: []query.SourceReport{
			{Source: domain.SourceEC, Fetched: 1},
			{Source: domain.SourceIBRO, Fetched: 1},
			{Source: domain.SourceAKA, Failed: true, Err: "boom"},
		},
		At: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	req := query.Request{Mode: domain.ModeInternational, Source: "all", Theme: "water"}

	if err := db.RecordRun(ctx, req, res); err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListRuns(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs", len(runs))
	}
	run := runs[0]
	if run.Mode != domain.ModeInternational || run.Theme != "water" || run.RecordCount != 2 {
		t.Fatalf("run = %+v", run)
	}
	if len(run.FailedSources) != 1 || run.FailedSources[0] != "aka" {
		t.Fatalf("failed sources = %v", run.FailedSources)
	}

	records, err := db.RunRecords(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].Title != "Water call" || records[0].DeadlineDate == nil || !records[0].DeadlineDate.Equal(deadline) {
		t.Fatalf("record 0 = %+v", records[0])
	}
	if records[1].DeadlineDate != nil {
		t.Fatalf("nil deadline became %v", records[1].DeadlineDate)
	}
	if len(records[0].Goals) != 1 || records[0].Goals[0] != 6 {
		t.Fatalf("goals = %v", records[0].Goals)
	}
}

func TestListRunsOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := &query.Result{At: time.Date(2026, time.March, 1+i, 0, 0, 0, 0, time.UTC)}
		req := query.Request{Mode: domain.ModeNational, Source: "mintic"}
		if err := db.RecordRun(ctx, req, res); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := db.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID <= runs[1].ID {
		t.Fatalf("runs not newest-first: %d then %d", runs[0].ID, runs[1].ID)
	}
}
