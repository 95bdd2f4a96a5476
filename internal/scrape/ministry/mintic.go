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
)

const (
	minticBase = "https://www.mintic.gov.co"
	minticURL  = minticBase + "/portal/inicio/Sala-de-prensa/Convocatorias"
)

// MinTIC reads the press-room call cards, keeping only those whose status
// badge says "Abierta". The cards carry no closing date or description.
type MinTIC struct{ client }

func NewMinTIC(cfg Config, limiter *util.HostLimiter) *MinTIC {
	return &MinTIC{newClient(cfg, limiter)}
}

func (s *MinTIC) Source() domain.Source { return domain.SourceMinTIC }

func (s *MinTIC) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, minticURL)
	if err != nil {
		return nil, fmt.Errorf("mintic calls: %w", err)
	}

	var out []domain.CallRecord
	doc.Find("div.recuadro").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		open := card.Find("span").FilterFunction(func(_ int, sp *goquery.Selection) bool {
			return strings.Contains(strings.ToLower(sp.Text()), "abierta")
		})
		if open.Length() == 0 {
			return true
		}
		a := card.Find("div.titulo a[href]").First()
		if a.Length() == 0 {
			return true
		}
		title := util.CleanText(a.Text())
		link := util.CanonicalizeURL(util.AbsoluteURL(minticBase, a.AttrOr("href", "")))
		if title == "" || link == "" {
			return true
		}

		out = append(out, domain.CallRecord{
			Title:       title,
			Link:        link,
			OpeningDate: util.ParseDate(card.Find("div.fecha").First().Text()),
			Goals:       classify.Goals(""),
			Source:      domain.SourceMinTIC,
			Category:    domain.CategoryProjects,
		})
		return true
	})
	return out, nil
}
