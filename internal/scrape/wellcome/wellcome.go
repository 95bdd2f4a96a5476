package wellcome

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

// Open and upcoming schemes only.
const schemesURL = "https://wellcome.org/research-funding/schemes" +
	"?f%5B0%5D=currently_accepting_applications%3AYes" +
	"&f%5B1%5D=currently_accepting_applications%3AUpcoming"

type Config struct {
	UserAgent    string
	SummaryWords int
}

// Scraper reads Wellcome's research-funding scheme listing. Only schemes
// whose administering-organisation location is "anywhere" or includes
// low- or middle-income countries are kept.
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

func (s *Scraper) Source() domain.Source { return domain.SourceWellcome }

func (s *Scraper) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, schemesURL)
	if err != nil {
		return nil, fmt.Errorf("wellcome schemes: %w", err)
	}

	var out []domain.CallRecord
	doc.Find("article.c-text-card").EachWithBreak(func(_ int, art *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		a := art.Find("h3.c-text-card__title a").First()
		if a.Length() == 0 {
			return true
		}
		title := util.CleanText(a.Text())
		link := util.CanonicalizeURL(a.AttrOr("href", ""))
		if title == "" || link == "" {
			return true
		}

		locationOK, programmes := schemeInfo(art)
		if !locationOK {
			return true
		}

		// Deadline pill reads like "Closing date: 23 February 2026".
		var deadline string
		if pill := util.CleanText(art.Find("div.c-text-card__status div.c-pill").First().Text()); pill != "" {
			if i := strings.Index(pill, ":"); i >= 0 {
				deadline = strings.TrimSpace(pill[i+1:])
			}
		}

		var parts []string
		art.Find("div.c-rich-text.c-text-card__description p").Each(func(_ int, p *goquery.Selection) {
			if text := util.CleanText(p.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		desc := strings.Join(parts, "\n")
		if desc == "" {
			desc = title
		}
		sum := summary.Truncate(desc, s.cfg.SummaryWords)

		// Wellcome exposes programme categories, so the theme filter can
		// match those in addition to text.
		if req.Theme != "" && !matchesTheme(req.Theme, title, sum, programmes) {
			return true
		}

		out = append(out, domain.CallRecord{
			Title:        title,
			Link:         link,
			DeadlineDate: util.ParseDate(deadline),
			Summary:      sum,
			Goals:        classify.Goals(sum),
			Source:       domain.SourceWellcome,
		})
		return true
	})
	return out, nil
}

// schemeInfo walks the c-scheme-info blocks for the location gate and the
// strategic-programme categories.
func schemeInfo(art *goquery.Selection) (locationOK bool, programmes []string) {
	art.Find("div.c-scheme-info").Each(func(_ int, info *goquery.Selection) {
		label := strings.ToLower(util.CleanText(info.Find("h4.c-scheme-info__title").First().Text()))
		switch {
		case strings.Contains(label, "administering organisation location"):
			info.Find("li.c-scheme-info__segment").Each(func(_ int, seg *goquery.Selection) {
				text := strings.ToLower(util.CleanText(seg.Text()))
				if strings.Contains(text, "anywhere") || strings.Contains(text, "low-") {
					locationOK = true
				}
			})
		case strings.Contains(label, "strategic programme"):
			info.Find("li.c-scheme-info__segment").Each(func(_ int, seg *goquery.Selection) {
				if text := util.CleanText(seg.Text()); text != "" {
					programmes = append(programmes, text)
				}
			})
		}
	})
	return locationOK, programmes
}

func matchesTheme(theme, title, sum string, programmes []string) bool {
	t := strings.ToLower(theme)
	for _, p := range programmes {
		if strings.Contains(strings.ToLower(p), t) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(title), t) ||
		strings.Contains(strings.ToLower(sum), t)
}
