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

// MinEnergia reads the yearly "Incentivo a la Producción" royalty call.
// The ministry publishes at most one call per biennium, on a URL keyed by
// year, with the closing date on a separate cronograma page.
type MinEnergia struct {
	client
	// Year overrides the biennium year; zero means the current year.
	Year int
}

func NewMinEnergia(cfg Config, limiter *util.HostLimiter) *MinEnergia {
	return &MinEnergia{client: newClient(cfg, limiter)}
}

func (s *MinEnergia) Source() domain.Source { return domain.SourceMinEnergia }

func (s *MinEnergia) Fetch(ctx context.Context, _ types.FetchRequest) ([]domain.CallRecord, error) {
	year := s.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	pageURL := fmt.Sprintf(
		"https://www.minenergia.gov.co/es/misional/sistema-general-de-regalias/convocatoria-ip-%d", year)

	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, pageURL)
	if err != nil {
		return nil, fmt.Errorf("minenergia page: %w", err)
	}

	var paragraphs []string
	doc.Find("#intro-convocatoria p").Each(func(_ int, p *goquery.Selection) {
		if text := util.CleanText(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	sum := summary.Truncate(strings.Join(paragraphs, " "), s.cfg.SummaryWords)

	deadline := s.cronogramaClosing(ctx, pageURL+"/cronograma")

	if sum == "" && deadline == nil {
		// Nothing extractable this year.
		return nil, nil
	}

	return []domain.CallRecord{{
		Title:        fmt.Sprintf("Convocatoria Regalías Minenergía %d", year),
		Link:         pageURL,
		DeadlineDate: deadline,
		Summary:      sum,
		Goals:        classify.Goals(sum),
		Source:       domain.SourceMinEnergia,
		Category:     domain.CategoryRoyalties,
	}}, nil
}

// cronogramaClosing finds the schedule item whose label mentions "cierre"
// and reads the dd/mm/yyyy date following its "Fecha de finalización"
// marker.
func (s *MinEnergia) cronogramaClosing(ctx context.Context, cronURL string) *time.Time {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, cronURL)
	if err != nil {
		return nil
	}
	var deadline *time.Time
	doc.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		label := li.Find("div.fecha").First()
		if label.Length() == 0 || !strings.Contains(strings.ToLower(label.Text()), "cierre") {
			return true
		}
		li.Find("strong").EachWithBreak(func(_ int, st *goquery.Selection) bool {
			if !strings.Contains(st.Text(), "Fecha de finalización") {
				return true
			}
			if len(st.Nodes) > 0 && st.Nodes[0].NextSibling != nil {
				deadline = util.ParseDate(st.Nodes[0].NextSibling.Data)
			}
			return false
		})
		return deadline == nil
	})
	return deadline
}
