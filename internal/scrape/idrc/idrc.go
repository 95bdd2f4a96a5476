package idrc

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"callscout-engine/internal/classify"
	"callscout-engine/internal/domain"
	"callscout-engine/internal/scrape/types"
	"callscout-engine/internal/scrape/util"
	"callscout-engine/internal/summary"
)

const (
	baseURL    = "https://idrc-crdi.ca"
	fundingURL = baseURL + "/en/funding"
)

type Config struct {
	UserAgent    string
	SummaryWords int
}

// Scraper reads the IDRC funding page.
type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Source() domain.Source { return domain.SourceIDRC }

func (s *Scraper) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, fundingURL)
	if err != nil {
		return nil, fmt.Errorf("idrc funding: %w", err)
	}

	var out []domain.CallRecord
	doc.Find("div.views-row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		a := row.Find("div.views-field-title a").First()
		if a.Length() == 0 {
			return true
		}
		title := util.CleanText(a.Text())
		link := util.CanonicalizeURL(util.AbsoluteURL(baseURL, a.AttrOr("href", "")))
		if title == "" || link == "" {
			return true
		}

		deadline := rowDeadline(row)

		desc := s.scopeDescription(ctx, link)
		if desc == "" {
			desc = title
		}
		sum := summary.Truncate(desc, s.cfg.SummaryWords)

		out = append(out, domain.CallRecord{
			Title:        title,
			Link:         link,
			DeadlineDate: util.ParseDate(deadline),
			Summary:      sum,
			Goals:        classify.Goals(sum),
			Source:       domain.SourceIDRC,
		})
		return true
	})
	return out, nil
}

// rowDeadline prefers the machine-readable datetime attribute
// (e.g. 2025-09-18T03:59:00Z) over the rendered text.
func rowDeadline(row *goquery.Selection) string {
	field := row.Find("div.views-field-field-award-deadline").First()
	if field.Length() == 0 {
		return ""
	}
	if attr := field.Find("time").First().AttrOr("datetime", ""); attr != "" {
		if len(attr) >= 10 {
			return attr[:10] // ISO date prefix
		}
	}
	return util.StripLabel(field.Text(), "Deadline")
}

// scopeDescription collects up to three paragraphs following the "Scope"
// heading of the detail page's body field, falling back to the first
// paragraphs of the body.
func (s *Scraper) scopeDescription(ctx context.Context, link string) string {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, link)
	if err != nil {
		return ""
	}
	body := doc.Find("div.field--name-field-body").First()
	if body.Length() == 0 {
		return ""
	}

	var parts []string
	scope := body.Find("h3").FilterFunction(func(_ int, h *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(h.Text()), "scope")
	}).First()
	if scope.Length() > 0 {
		scope.NextAll().Filter("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			if text := util.CleanText(p.Text()); text != "" {
				parts = append(parts, text)
			}
			return len(parts) < 3
		})
	}
	if len(parts) == 0 {
		body.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			if text := util.CleanText(p.Text()); text != "" {
				parts = append(parts, text)
			}
			return len(parts) < 3
		})
	}
	return strings.Join(parts, "\n")
}
