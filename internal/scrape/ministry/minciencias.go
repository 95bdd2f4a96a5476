package ministry

import (
	"context"
	"fmt"
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
	mincienciasBase = "https://minciencias.gov.co"
	mincienciasURL  = mincienciasBase + "/convocatorias/todas"
)

// MinCiencias reads the ministry's royalty-funded call table. The listing
// only keeps the first five rows stable, so that is all we consider.
type MinCiencias struct{ client }

func NewMinCiencias(cfg Config, limiter *util.HostLimiter) *MinCiencias {
	return &MinCiencias{newClient(cfg, limiter)}
}

func (s *MinCiencias) Source() domain.Source { return domain.SourceMinCiencias }

func (s *MinCiencias) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, mincienciasURL)
	if err != nil {
		return nil, fmt.Errorf("minciencias list: %w", err)
	}

	var out []domain.CallRecord
	doc.Find("tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= 5 || (req.Limit > 0 && len(out) >= req.Limit) {
			return false
		}
		cells := row.Find("td")
		if cells.Length() < 5 {
			return true
		}
		a := cells.Eq(1).Find("a[href]").First()
		if a.Length() == 0 {
			return true
		}
		title := util.CleanText(a.Text())
		link := util.CanonicalizeURL(util.AbsoluteURL(mincienciasBase, a.AttrOr("href", "")))
		if title == "" || link == "" {
			return true
		}

		sum := summary.Truncate(util.CleanText(cells.Eq(2).Text()), s.cfg.SummaryWords)
		opening := util.CleanText(cells.Eq(4).Text())

		out = append(out, domain.CallRecord{
			Title:        title,
			Link:         link,
			OpeningDate:  util.ParseDate(opening),
			DeadlineDate: s.closingDate(ctx, link),
			Summary:      sum,
			Goals:        classify.Goals(sum),
			Source:       domain.SourceMinCiencias,
			Category:     domain.CategoryRoyalties,
		})
		return true
	})
	return out, nil
}

// closingDate visits the detail page and reads the row whose first cell
// says "Cierre". Dates there are long-form Spanish, e.g.
// "jueves 25 septiembre 2025 07:00 pm".
func (s *MinCiencias) closingDate(ctx context.Context, link string) *time.Time {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, link)
	if err != nil {
		return nil
	}
	var deadline *time.Time
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		header := row.Find("td.views-field-field-numero").First()
		if header.Length() == 0 || !strings.Contains(header.Text(), "Cierre") {
			return true
		}
		deadline = util.ParseDate(row.Find("td.views-field-body").First().Text())
		return false
	})
	return deadline
}
