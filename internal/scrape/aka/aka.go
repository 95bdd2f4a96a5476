package aka

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
	baseURL  = "https://www.aka.fi"
	callsURL = baseURL + "/en/research-funding/apply-for-funding/calls-for-applications"
)

type Config struct {
	UserAgent    string
	SummaryWords int
}

// Scraper reads the Research Council of Finland call listing, restricted
// to the "International calls" section.
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

func (s *Scraper) Source() domain.Source { return domain.SourceAKA }

func (s *Scraper) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, callsURL)
	if err != nil {
		return nil, fmt.Errorf("aka calls: %w", err)
	}

	boxes := internationalBoxes(doc)

	var out []domain.CallRecord
	boxes.EachWithBreak(func(_ int, box *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		a := box.Find("a").First()
		if a.Length() == 0 {
			return true
		}
		title := util.CleanText(a.Text())
		link := util.CanonicalizeURL(util.AbsoluteURL(baseURL, a.AttrOr("href", "")))
		if title == "" || link == "" {
			return true
		}

		opening := dateTail(box.Find("div[class*='app-start']").First().Text(), "Call opens", "opens")
		closing := dateTail(box.Find("div[class*='app-end']").First().Text(), "Call closes", "closes")

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
			Source:       domain.SourceAKA,
		})
		return true
	})
	return out, nil
}

// internationalBoxes finds the application boxes under the
// "International calls" heading; when the heading's own row carries none,
// the next row is used.
func internationalBoxes(doc *goquery.Document) *goquery.Selection {
	heading := doc.Find("h2, h3").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(util.CleanText(sel.Text())), "international calls")
	}).First()
	if heading.Length() == 0 {
		return doc.Find("nothing")
	}
	row := heading.Closest("div.row")
	boxes := row.Find("div.application-box")
	if boxes.Length() == 0 {
		boxes = row.NextFiltered("div.row").Find("div.application-box")
	}
	return boxes
}

// dateTail strips the label from "Call opens 4 Sep 2025" style text and
// keeps the trailing date tokens.
func dateTail(text string, labels ...string) string {
	text = util.CleanText(text)
	for _, l := range labels {
		text = strings.ReplaceAll(text, l, "")
	}
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return ""
	}
	return strings.Join(fields[len(fields)-3:], " ")
}

// callDescription collects detail-page paragraphs up to the
// "More information" heading.
func (s *Scraper) callDescription(ctx context.Context, link string) string {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, link)
	if err != nil {
		return ""
	}
	var parts []string
	doc.Find("p, h2").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if goquery.NodeName(el) == "h2" &&
			strings.Contains(strings.ToLower(el.Text()), "more information") {
			return false
		}
		if goquery.NodeName(el) == "p" {
			if text := util.CleanText(el.Text()); text != "" {
				parts = append(parts, text)
			}
		}
		return true
	})
	return strings.Join(parts, "\n")
}
