package anr

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
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
	baseURL  = "https://anr.fr"
	callsURL = baseURL + "/en/open-calls-and-preannouncements/?" +
		"tx_solr%5Bfilter%5D%5B0%5D=international%253A1"
)

// Date ranges come as "06/01/2025 - 15/09/2025" or "Mars 2026 - Juin 2026".
var (
	numericRange = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*-\s*(\d{2}/\d{2}/\d{4})`)
	wordRange    = regexp.MustCompile(`([A-Za-zÀ-ÿ]+\s+\d{4})\s*-\s*([A-Za-zÀ-ÿ]+\s+\d{4})`)
)

type Config struct {
	UserAgent    string
	SummaryWords int
}

// Scraper reads the ANR open-calls listing filtered to international
// calls.
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

func (s *Scraper) Source() domain.Source { return domain.SourceANR }

func (s *Scraper) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, callsURL)
	if err != nil {
		return nil, fmt.Errorf("anr list: %w", err)
	}

	seen := map[string]bool{}
	var out []domain.CallRecord
	doc.Find("div.card.appel").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		a := card.Find("h2 a").First()
		if a.Length() == 0 {
			return true
		}
		title := util.CleanText(a.Text())
		link := util.CanonicalizeURL(util.AbsoluteURL(baseURL, a.AttrOr("href", "")))
		if title == "" || link == "" || seen[link] {
			return true
		}
		seen[link] = true

		opening, closing := dateRange(card.Find("div[class*='date']").First().Text())

		desc := s.callDescription(ctx, link)
		if desc == "" {
			desc = title
		}
		sum := summary.Truncate(desc, s.cfg.SummaryWords)

		out = append(out, domain.CallRecord{
			Title:        title,
			Link:         link,
			OpeningDate:  util.ParseDate(opening),
			DeadlineDate: util.ParseDate(closing),
			Summary:      sum,
			Goals:        classify.Goals(sum),
			Source:       domain.SourceANR,
		})
		return true
	})
	return out, nil
}

func dateRange(text string) (opening, closing string) {
	text = util.CleanText(text)
	if m := numericRange.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	if m := wordRange.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", ""
}

// callDescription takes the first two paragraphs of the detail page's
// content section.
func (s *Scraper) callDescription(ctx context.Context, link string) string {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, link)
	if err != nil {
		return ""
	}
	var parts []string
	doc.Find("section.content-style p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if text := util.CleanText(p.Text()); text != "" {
			parts = append(parts, text)
		}
		return len(parts) < 2
	})
	return strings.Join(parts, "\n")
}
