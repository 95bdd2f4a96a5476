package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"callscout-engine/internal/config"
	"callscout-engine/internal/domain"
	"callscout-engine/internal/events"
	"callscout-engine/internal/query"
)

func testDeps(runQuery func(ctx context.Context, req query.Request) (*query.Result, error)) Deps {
	cfg, _ := config.NormalizeAndValidate(config.Config{})
	var cfgVal, lastResult atomic.Value
	cfgVal.Store(cfg)
	return Deps{
		Hub:        events.NewHub(),
		CfgVal:     &cfgVal,
		LastResult: &lastResult,
		LoadGlobal: func() []domain.CallRecord { return nil },
		RunQuery:   runQuery,
	}
}

func TestQueryEndpoint(t *testing.T) {
	want := &query.Result{
		Records: []domain.CallRecord{{Title: "A", Link: "https://x/a", Source: domain.SourceEC}},
		At:      time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	deps := testDeps(func(_ context.Context, req query.Request) (*query.Result, error) {
		if req.Mode != domain.ModeInternational {
			t.Errorf("mode = %q", req.Mode)
		}
		return want, nil
	})
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	body := `{"mode":"international","source":"all"}`
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got query.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Records) != 1 || got.Records[0].Title != "A" {
		t.Fatalf("got %+v", got)
	}
}

func TestQueryEndpointInvalidQuery(t *testing.T) {
	deps := testDeps(func(_ context.Context, _ query.Request) (*query.Result, error) {
		return nil, &query.InvalidQueryError{Reason: "unknown source"}
	})
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"mode":"international","source":"nope"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`not json`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad JSON status = %d", rec.Code)
	}
}

func TestQueryMethodNotAllowed(t *testing.T) {
	mux := NewMux(testDeps(nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLastResultAndClear(t *testing.T) {
	res := &query.Result{Records: []domain.CallRecord{{Title: "A", Link: "https://x/a"}}}
	deps := testDeps(func(_ context.Context, _ query.Request) (*query.Result, error) {
		return res, nil
	})
	mux := NewMux(deps)

	// Before any query: falls back to the global store (empty here).
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/last", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"mode":"international"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("query status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/last", nil))
	var got query.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Records) != 1 {
		t.Fatalf("last result has %d records", len(got.Records))
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clear", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}

	// Cleared: back to the global fallback shape.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/last", nil))
	var fallback map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &fallback); err != nil {
		t.Fatal(err)
	}
	if _, ok := fallback["sources"]; ok {
		t.Fatal("held result survived /clear")
	}
}

func TestHealth(t *testing.T) {
	mux := NewMux(testDeps(nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "true") {
		t.Fatalf("health: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHistoryDisabled(t *testing.T) {
	mux := NewMux(testDeps(nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
