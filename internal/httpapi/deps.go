package httpapi

import (
	"context"
	"sync/atomic"

	"callscout-engine/internal/domain"
	"callscout-engine/internal/events"
	"callscout-engine/internal/query"
	"callscout-engine/internal/store"
)

// History is the slice of the run archive the API reads.
type History interface {
	ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error)
	RunRecords(ctx context.Context, runID int64) ([]domain.CallRecord, error)
}

type Deps struct {
	Hub *events.Hub

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	LastResult *atomic.Value // stores *query.Result

	Archive History // nil when the archive is disabled

	// Fallback for /results/last when no query ran this process.
	LoadGlobal func() []domain.CallRecord

	// Query entrypoint (inject for testability)
	RunQuery func(ctx context.Context, req query.Request) (*query.Result, error)
}
