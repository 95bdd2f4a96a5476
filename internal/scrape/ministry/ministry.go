// Package ministry holds the scrapers for the Colombian ministry pages of
// national mode. Each ministry publishes calls in its own page shape, so
// each gets its own Fetcher; they share the HTTP plumbing here.
package ministry

import (
	"net/http"
	"time"

	"callscout-engine/internal/scrape/util"
)

type Config struct {
	UserAgent    string
	SummaryWords int
}

type client struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func newClient(cfg Config, limiter *util.HostLimiter) client {
	return client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}
