package cache

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"callscout-engine/internal/domain"
)

// GlobalFile is the fixed-path store holding the latest consolidated
// result, distinct from any per-query entry.
const GlobalFile = "calls_for_proposals.csv"

// Store persists one CSV file per query signature under CacheDir plus the
// global last-result file under ResultsDir. Writes are whole-file replace
// via temp-and-rename so a reader never sees a partial entry.
type Store struct {
	CacheDir   string
	ResultsDir string

	// Horizon is the freshness safety window: a cached record whose
	// deadline falls inside it is stale and must be re-verified online.
	Horizon time.Duration
}

func NewStore(cacheDir, resultsDir string, horizon time.Duration) (*Store, error) {
	for _, dir := range []string{cacheDir, resultsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	return &Store{CacheDir: cacheDir, ResultsDir: resultsDir, Horizon: horizon}, nil
}

func (s *Store) entryPath(sig Signature) string {
	return filepath.Join(s.CacheDir, "cache_"+sig.Slug()+".csv")
}

// Load returns the cached records for a signature. A missing, unreadable
// or corrupt file yields an empty set; a bad row is skipped, not fatal to
// the rest of the file.
func (s *Store) Load(sig Signature) []domain.CallRecord {
	return s.readFile(s.entryPath(sig))
}

// LoadGlobal returns the latest consolidated result, if any.
func (s *Store) LoadGlobal() []domain.CallRecord {
	return s.readFile(filepath.Join(s.ResultsDir, GlobalFile))
}

func (s *Store) readFile(path string) []domain.CallRecord {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[cache] read %s: %v", path, err)
		}
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []domain.CallRecord
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Quoting damage in one row; keep whatever decoded so far.
			log.Printf("[cache] %s: skipping bad row: %v", filepath.Base(path), err)
			continue
		}
		if first {
			first = false
			if len(row) > 0 && row[0] == csvHeader[0] {
				continue
			}
		}
		rec, err := decodeRecord(row)
		if err != nil {
			log.Printf("[cache] %s: skipping row: %v", filepath.Base(path), err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FilterValid splits records into still-usable and stale. A record is
// valid when it has no deadline (open-ended calls stay usable) or the
// deadline is at least the freshness horizon past ref. Stale records are
// excluded, never deleted from disk.
func (s *Store) FilterValid(records []domain.CallRecord, ref time.Time) (valid, stale []domain.CallRecord) {
	// Deadlines carry no time of day, so the horizon counts whole calendar
	// days from ref's date, not from ref's clock time.
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := day.Add(s.Horizon)
	for _, rec := range records {
		if rec.DeadlineDate == nil || !rec.DeadlineDate.Before(cutoff) {
			valid = append(valid, rec)
		} else {
			stale = append(stale, rec)
		}
	}
	return valid, stale
}

// Write replaces the entry for sig with records.
func (s *Store) Write(sig Signature, records []domain.CallRecord) error {
	return s.writeFile(s.entryPath(sig), records)
}

// WriteGlobal overwrites the global last-result store.
func (s *Store) WriteGlobal(records []domain.CallRecord) error {
	return s.writeFile(filepath.Join(s.ResultsDir, GlobalFile), records)
}

func (s *Store) writeFile(path string, records []domain.CallRecord) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("cache write: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(encodeRecord(rec)); err != nil {
			tmp.Close()
			return fmt.Errorf("cache write: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("cache write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}
