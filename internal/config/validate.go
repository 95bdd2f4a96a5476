package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults for omitted numeric knobs and
// rejects values the engine cannot run with.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port == 0 {
		out.App.Port = 8787
	}
	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Engine.PerSourceLimit == 0 {
		out.Engine.PerSourceLimit = 10
	}
	if out.Engine.PerSourceLimit < 0 {
		res.addErr("engine.per_source_limit must be > 0")
	}
	if out.Engine.MinResultsPerSource == 0 {
		out.Engine.MinResultsPerSource = 10
	}
	if out.Engine.MinResultsPerSource < 0 {
		res.addErr("engine.min_results_per_source must be > 0")
	}
	if out.Engine.FreshnessHorizonDays == 0 {
		out.Engine.FreshnessHorizonDays = 7
	}
	if out.Engine.FreshnessHorizonDays < 0 {
		res.addErr("engine.freshness_horizon_days must be > 0")
	}
	if out.Engine.SummaryWordLimit == 0 {
		out.Engine.SummaryWordLimit = 100
	} else if out.Engine.SummaryWordLimit < 10 {
		res.addWarn("engine.summary_word_limit is very low (%d); summaries will be unreadable.", out.Engine.SummaryWordLimit)
	}

	if out.Scrape.RequestsPerSecond == 0 {
		out.Scrape.RequestsPerSecond = 1.0
	}
	if out.Scrape.RequestsPerSecond < 0 {
		res.addErr("scrape.requests_per_second must be > 0")
	}
	if out.Scrape.Burst == 0 {
		out.Scrape.Burst = 2
	}
	if strings.TrimSpace(out.Scrape.UserAgent) == "" {
		out.Scrape.UserAgent = "Mozilla/5.0 (compatible; callscout/1.0)"
	}

	var themes []string
	seen := map[string]bool{}
	for _, t := range out.Themes {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		themes = append(themes, t)
	}
	out.Themes = themes

	return out, res
}
