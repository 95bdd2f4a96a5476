package ibro

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"callscout-engine/internal/classify"
	"callscout-engine/internal/domain"
	"callscout-engine/internal/scrape/types"
	"callscout-engine/internal/scrape/util"
	"callscout-engine/internal/summary"
)

const callsURL = "https://ibro.org/grants/?tab=open-calls"

type Config struct {
	UserAgent    string
	SummaryWords int
}

// Scraper reads IBRO's open grant calls, keeping those open to
// international applicants.
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

func (s *Scraper) Source() domain.Source { return domain.SourceIBRO }

func (s *Scraper) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, callsURL)
	if err != nil {
		return nil, fmt.Errorf("ibro grants: %w", err)
	}

	var out []domain.CallRecord
	doc.Find("div.call-tile").EachWithBreak(func(_ int, tile *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		title := util.CleanText(tile.Find("h3.title-calls-events-list").First().Text())
		if title == "" {
			return true
		}
		// Each tile is wrapped in an <a class="clickable-tile"> carrying
		// the call URL.
		link := util.CanonicalizeURL(tile.Closest("a").AttrOr("href", ""))
		if link == "" {
			return true
		}

		fields := labeledFields(tile)
		if openTo := fields["open to"]; openTo != "" &&
			!strings.Contains(strings.ToLower(openTo), "international") {
			return true
		}

		desc := fields["grant aim"]
		if desc == "" {
			desc = title
		}
		sum := summary.Truncate(desc, s.cfg.SummaryWords)

		out = append(out, domain.CallRecord{
			Title:        title,
			Link:         link,
			OpeningDate:  parseTileDate(fields["application start date"]),
			DeadlineDate: parseTileDate(fields["application deadline"]),
			Summary:      sum,
			Goals:        classify.Goals(sum),
			Source:       domain.SourceIBRO,
		})
		return true
	})
	return out, nil
}

// labeledFields reads the tile's "<b>Label:</b> value<br>" pairs: the
// value is whatever text follows the bold label up to the next line break.
func labeledFields(tile *goquery.Selection) map[string]string {
	fields := map[string]string{}
	tile.Find("b").Each(func(_ int, b *goquery.Selection) {
		label := strings.TrimRight(strings.ToLower(util.CleanText(b.Text())), ":")
		if label == "" || len(b.Nodes) == 0 {
			return
		}
		var value strings.Builder
		for n := b.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
			if n.Type == html.ElementNode && n.Data == "br" {
				break
			}
			value.WriteString(" " + nodeText(n))
		}
		fields[label] = util.CleanText(value.String())
	})
	return fields
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// parseTileDate treats "Program dependent" / "Event dependent" entries as
// open-ended.
func parseTileDate(s string) *time.Time {
	low := strings.ToLower(s)
	if strings.HasPrefix(low, "program dependent") || strings.HasPrefix(low, "event dependent") {
		return nil
	}
	return util.ParseDate(s)
}
