// Package scrape wires the per-source adapters into the registry the
// orchestrator dispatches on.
package scrape

import (
	"callscout-engine/internal/domain"
	"callscout-engine/internal/scrape/aka"
	"callscout-engine/internal/scrape/anr"
	"callscout-engine/internal/scrape/ec"
	"callscout-engine/internal/scrape/ibro"
	"callscout-engine/internal/scrape/idrc"
	"callscout-engine/internal/scrape/ministry"
	"callscout-engine/internal/scrape/types"
	"callscout-engine/internal/scrape/util"
	"callscout-engine/internal/scrape/wellcome"
)

// Fetchers builds the full adapter registry, one entry per source id.
// Resolved once at startup; the orchestrator never constructs adapters.
func Fetchers(ua string, summaryWords int, limiter *util.HostLimiter) map[domain.Source]types.Fetcher {
	mcfg := ministry.Config{UserAgent: ua, SummaryWords: summaryWords}

	fetchers := []types.Fetcher{
		ec.New(ec.Config{UserAgent: ua, SummaryWords: summaryWords}, limiter),
		wellcome.New(wellcome.Config{UserAgent: ua, SummaryWords: summaryWords}, limiter),
		aka.New(aka.Config{UserAgent: ua, SummaryWords: summaryWords}, limiter),
		anr.New(anr.Config{UserAgent: ua, SummaryWords: summaryWords}, limiter),
		ibro.New(ibro.Config{UserAgent: ua, SummaryWords: summaryWords}, limiter),
		idrc.New(idrc.Config{UserAgent: ua, SummaryWords: summaryWords}, limiter),

		ministry.NewMinEnergia(mcfg, limiter),
		ministry.NewMinAmbiente(mcfg, limiter),
		ministry.NewMinCiencias(mcfg, limiter),
		ministry.NewMinCultura(mcfg, limiter),
		ministry.NewMinTIC(mcfg, limiter),
		ministry.NewMinEducacion(mcfg, limiter),
	}

	out := make(map[domain.Source]types.Fetcher, len(fetchers))
	for _, f := range fetchers {
		out[f.Source()] = f
	}
	return out
}
