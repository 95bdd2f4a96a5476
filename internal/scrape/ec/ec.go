package ec

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"callscout-engine/internal/classify"
	"callscout-engine/internal/domain"
	"callscout-engine/internal/scrape/types"
	"callscout-engine/internal/scrape/util"
	"callscout-engine/internal/summary"
)

const baseURL = "https://ec.europa.eu"

// Only open and forthcoming calls (portal status facet values).
const listParams = "order=ASC&pageNumber=1&pageSize=100&sortBy=deadlineDate" +
	"&isExactMatch=true&status=31094501,31094502"

type Config struct {
	UserAgent    string
	SummaryWords int
}

// Scraper reads the EC Funding & Tenders calls-for-proposals portal.
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

func (s *Scraper) Source() domain.Source { return domain.SourceEC }

func (s *Scraper) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	searchURL := baseURL +
		"/info/funding-tenders/opportunities/portal/screen/opportunities/calls-for-proposals?" +
		listParams
	if req.Theme != "" {
		searchURL += "&keywords=" + url.QueryEscape(req.Theme)
	}

	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, searchURL)
	if err != nil {
		return nil, fmt.Errorf("ec list: %w", err)
	}

	cards := doc.Find("sedia-result-card-calls-for-proposals")
	if cards.Length() == 0 {
		cards = doc.Find("eui-card[data-e2e='eui-card']")
	}

	var out []domain.CallRecord
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		a := card.Find("eui-card-header-title a.eui-u-text-link").First()
		if a.Length() == 0 {
			return true
		}
		title := util.CleanText(a.Text())
		link := util.CanonicalizeURL(util.AbsoluteURL(baseURL, a.AttrOr("href", "")))
		if title == "" || link == "" {
			return true
		}

		// The second sedia-result-card-type in the subtitle holds the
		// opening and deadline dates as a pair of <strong> elements.
		var opening, deadline string
		kinds := card.Find("eui-card-header-subtitle sedia-result-card-type")
		if kinds.Length() >= 2 {
			strongs := kinds.Eq(1).Find("strong")
			if strongs.Length() >= 2 {
				opening = util.CleanText(strongs.Eq(0).Text())
				deadline = util.CleanText(strongs.Eq(1).Text())
			}
		}

		desc := s.topicDescription(ctx, link)
		if desc == "" {
			desc = title
		}
		sum := summary.Truncate(desc, s.cfg.SummaryWords)

		out = append(out, domain.CallRecord{
			Title:        title,
			Link:         link,
			OpeningDate:  util.ParseDate(opening),
			DeadlineDate: util.ParseDate(deadline),
			Summary:      sum,
			Goals:        classify.Goals(sum),
			Source:       domain.SourceEC,
		})
		return true
	})
	return out, nil
}

// topicDescription pulls the "Topic description" card off a call's detail
// page, falling back to the further-information section. Best effort: an
// empty string just means the summary comes from the title.
func (s *Scraper) topicDescription(ctx context.Context, link string) string {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, link)
	if err != nil {
		return ""
	}

	var parts []string
	header := doc.Find("eui-card-header-title").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return strings.Contains(sel.Text(), "Topic description")
	}).First()
	if header.Length() > 0 {
		header.Closest("eui-card").Find("eui-card-content").Find("p, li").Each(func(_ int, el *goquery.Selection) {
			text := util.CleanText(el.Text())
			if text == "" {
				return
			}
			if goquery.NodeName(el) == "li" {
				text = "- " + text
			}
			parts = append(parts, text)
		})
	}
	if len(parts) == 0 {
		doc.Find("section#scroll-fi p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			if text := util.CleanText(p.Text()); text != "" {
				parts = append(parts, text)
			}
			return len(parts) < 4
		})
	}
	return strings.Join(parts, "\n")
}
