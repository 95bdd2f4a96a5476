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

const minambienteURL = "https://regalias.minambiente.gov.co/invitacion-2025-2026"

// MinAmbiente reads the royalty-funded project invitations page. The page
// lists invitations as columns with a heading and a detail link but no
// dates, so records carry neither opening nor deadline.
type MinAmbiente struct{ client }

func NewMinAmbiente(cfg Config, limiter *util.HostLimiter) *MinAmbiente {
	return &MinAmbiente{newClient(cfg, limiter)}
}

func (s *MinAmbiente) Source() domain.Source { return domain.SourceMinAmbiente }

func (s *MinAmbiente) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, minambienteURL)
	if err != nil {
		return nil, fmt.Errorf("minambiente invitations: %w", err)
	}

	var out []domain.CallRecord
	cols := doc.Find("div[class]").FilterFunction(func(_ int, col *goquery.Selection) bool {
		return strings.HasPrefix(col.AttrOr("class", ""), "vc_column-inner")
	})
	cols.EachWithBreak(func(_ int, col *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		heading := util.CleanText(col.Find("h3").First().Text())
		href := col.Find("a[href]").First().AttrOr("href", "")
		if heading == "" || href == "" {
			return true
		}
		link := util.CanonicalizeURL(util.AbsoluteURL(minambienteURL, href))
		sum := summary.Truncate(heading, s.cfg.SummaryWords)

		out = append(out, domain.CallRecord{
			Title:    fmt.Sprintf("Convocatoria %d", len(out)+1),
			Link:     link,
			Summary:  sum,
			Goals:    classify.Goals(sum),
			Source:   domain.SourceMinAmbiente,
			Category: domain.CategoryRoyalties,
		})
		return true
	})
	return out, nil
}
