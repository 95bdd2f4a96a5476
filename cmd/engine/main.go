package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"callscout-engine/internal/cache"
	"callscout-engine/internal/config"
	"callscout-engine/internal/domain"
	"callscout-engine/internal/events"
	"callscout-engine/internal/httpapi"
	"callscout-engine/internal/query"
	"callscout-engine/internal/scrape"
	"callscout-engine/internal/scrape/util"
	"callscout-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("CALLSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would race the cache and
	// the global result file.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance holds %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		log.Fatalf("config invalid (%s): %v", userCfgPath, vr.Errors)
	}
	for _, warn := range vr.Warnings {
		log.Printf("[config] %s", warn)
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	cacheStore, err := cache.NewStore(
		filepath.Join(dataDir, "cache"),
		filepath.Join(dataDir, "results"),
		cfg.FreshnessHorizon(),
	)
	if err != nil {
		log.Fatal(err)
	}

	dbPath := filepath.Join(dataDir, "callscout.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	limiter := util.NewHostLimiter(cfg.Scrape.RequestsPerSecond, cfg.Scrape.Burst)

	orch := &query.Orchestrator{
		Store:          cacheStore,
		Fetchers:       scrape.Fetchers(cfg.Scrape.UserAgent, cfg.Engine.SummaryWordLimit, limiter),
		Archive:        db,
		PerSourceLimit: cfg.Engine.PerSourceLimit,
		MinPerSource:   cfg.Engine.MinResultsPerSource,
	}

	hub := events.NewHub()
	var lastResult atomic.Value

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:        hub,
		CfgVal:     &cfgVal,
		LastResult: &lastResult,
		Archive:    db,
		LoadGlobal: func() []domain.CallRecord { return cacheStore.LoadGlobal() },
		RunQuery: func(ctx context.Context, req query.Request) (*query.Result, error) {
			return orch.Run(ctx, req)
		},
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
