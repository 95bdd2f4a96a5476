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

const minculturaURL = "https://www.mincultura.gov.co/convocatorias"

// MinCultura reads the national cultural programme calls, keeping those
// titled "Programa Nacional". Closing dates come as "dd / mm / yyyy" or as
// semester labels ("primer semestre" / "segundo semestre").
type MinCultura struct {
	client
	// now is swapped in tests to pin semester interpretation.
	now func() time.Time
}

func NewMinCultura(cfg Config, limiter *util.HostLimiter) *MinCultura {
	return &MinCultura{client: newClient(cfg, limiter), now: time.Now}
}

func (s *MinCultura) Source() domain.Source { return domain.SourceMinCultura }

func (s *MinCultura) Fetch(ctx context.Context, req types.FetchRequest) ([]domain.CallRecord, error) {
	doc, err := util.FetchDoc(ctx, s.hc, s.limiter, s.cfg.UserAgent, minculturaURL)
	if err != nil {
		return nil, fmt.Errorf("mincultura calls: %w", err)
	}

	var out []domain.CallRecord
	doc.Find("div.convocatoria-container").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if req.Limit > 0 && len(out) >= req.Limit {
			return false
		}
		title := util.CleanText(card.Find("span.convocatoria-nombre").First().Text())
		if !strings.Contains(strings.ToLower(title), "programa nacional") {
			return true
		}
		href := card.Find("a[href]").First().AttrOr("href", "")
		if href == "" {
			return true
		}
		link := util.CanonicalizeURL(util.AbsoluteURL(minculturaURL, href))

		opening, closing := cardDates(card)
		deadline, keep := s.interpretClosing(closing)
		if !keep {
			return true
		}

		sum := summary.Truncate(util.CleanText(card.Find("p.convocatoria-texto").First().Text()), s.cfg.SummaryWords)

		out = append(out, domain.CallRecord{
			Title:        title,
			Link:         link,
			OpeningDate:  util.ParseDate(strings.ReplaceAll(opening, " ", "")),
			DeadlineDate: deadline,
			Summary:      sum,
			Goals:        classify.Goals(sum),
			Source:       domain.SourceMinCultura,
			Category:     domain.CategoryProjects,
		})
		return true
	})
	return out, nil
}

// cardDates reads the two item containers under the fecha section: the
// first holds the opening date, the second the closing.
func cardDates(card *goquery.Selection) (opening, closing string) {
	items := card.Find("div.fecha-section-container div.convocatoria-item-container")
	if items.Length() > 0 {
		opening = util.CleanText(items.Eq(0).Find("p.convocatoria-item-segundo-texto").First().Text())
	}
	if items.Length() > 1 {
		closing = util.CleanText(items.Eq(1).Find("p.convocatoria-item-segundo-texto").First().Text())
	}
	return opening, closing
}

// interpretClosing turns the closing label into a deadline. Slash dates
// parse as dd/mm/yyyy. Semester labels carry no date: a call closing in a
// semester that has already passed is dropped, one in the current
// semester stays with an open-ended deadline.
func (s *MinCultura) interpretClosing(closing string) (*time.Time, bool) {
	low := strings.ToLower(closing)
	if strings.Contains(low, "semestre") {
		month := s.now().Month()
		if strings.Contains(low, "primer") && month > time.June {
			return nil, false
		}
		if strings.Contains(low, "segundo") && month < time.July {
			return nil, false
		}
		return nil, true
	}
	return util.ParseDate(strings.ReplaceAll(closing, " ", "")), true
}
