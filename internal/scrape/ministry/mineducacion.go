package ministry

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"callscout-engine/internal/classify"
	"callscout-engine/internal/domain"
	"callscout-engine/internal/scrape/types"
	"callscout-engine/internal/scrape/util"
	"callscout-engine/internal/summary"
)

const (
	mineducacionBase = "https://www.mineducacion.gov.co"
	mineducacionURL  = mineducacionBase +
		`/1780/w3-multipropertyvalues-55249-69679.html#data=%7B"orfilter":"56678","page":1%7D`
)

// MinEducacion reads the education portal's call rows. The portal never
// publishes a closing date; deadlines live in each call's annex documents,
// so records stay open-ended and the summary points readers at the
// annexes.
type MinEducacion struct{ client }

func NewMinEducacion(cfg Config, limiter *util.HostLimiter) *MinEducacion {
	return &MinEducacion{newClient(cfg, limiter)}
}

func (s *MinEducacion) Source() domain.Source { return domain.SourceMinEducacion }

func (s *MinEducacion) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, mineducacionURL)
	if err != nil {
		return nil, fmt.Errorf("mineducacion calls: %w", err)
	}

	var out []domain.CallRecord
	doc.Find("div.recuadro").EachWithBreak(func(_ int, entry *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		a := entry.Find("h3.titulo a[href]").First()
		if a.Length() == 0 {
			return true
		}
		title := util.CleanText(a.Text())
		link := entryLink(a.AttrOr("href", ""))
		if title == "" || link == "" {
			return true
		}

		sum := summary.Truncate(util.CleanText(entry.Find("p.abstract").First().Text()), s.cfg.SummaryWords)
		if sum == "" {
			sum = "Fecha de cierre: mirar anexos."
		} else {
			sum += " Fecha de cierre: mirar anexos."
		}

		out = append(out, domain.CallRecord{
			Title:       title,
			Link:        link,
			OpeningDate: util.ParseDate(entry.Find("h6.fecha").First().Text()),
			Summary:     sum,
			Goals:       classify.Goals(sum),
			Source:      domain.SourceMinEducacion,
			Category:    domain.CategoryProjects,
		})
		return true
	})
	return out, nil
}

// entryLink resolves the portal's relative article hrefs, which hang off
// the /1780/ segment rather than the site root.
func entryLink(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return util.CanonicalizeURL(href)
	}
	return util.CanonicalizeURL(mineducacionBase + "/1780/" + strings.TrimPrefix(href, "/"))
}
