package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Engine struct {
		PerSourceLimit       int `yaml:"per_source_limit" json:"per_source_limit"`
		MinResultsPerSource  int `yaml:"min_results_per_source" json:"min_results_per_source"`
		FreshnessHorizonDays int `yaml:"freshness_horizon_days" json:"freshness_horizon_days"`
		SummaryWordLimit     int `yaml:"summary_word_limit" json:"summary_word_limit"`
	} `yaml:"engine" json:"engine"`

	Scrape struct {
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
		UserAgent         string  `yaml:"user_agent" json:"user_agent"`
	} `yaml:"scrape" json:"scrape"`

	// Themes offered for international-mode queries. Informative: any free
	// text is accepted as a theme.
	Themes []string `yaml:"themes" json:"themes"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// FreshnessHorizon converts the configured day count to a duration.
func (c Config) FreshnessHorizon() time.Duration {
	return time.Duration(c.Engine.FreshnessHorizonDays) * 24 * time.Hour
}
