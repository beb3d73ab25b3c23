// Package config loads the jobcurator YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"jobcurator/internal/extract"
)

const appName = "jobcurator"

type Config struct {
	Search struct {
		APIKey     string `yaml:"api_key,omitempty"`
		EngineID   string `yaml:"engine_id"`
		MaxResults int    `yaml:"max_results"`
	} `yaml:"search"`

	Fetch struct {
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		DelaySeconds   float64 `yaml:"delay_seconds"`
		UserAgent      string  `yaml:"user_agent"`
	} `yaml:"fetch"`

	Cache struct {
		Enabled bool   `yaml:"enabled"`
		HTMLDir string `yaml:"html_dir"`
		URLFile string `yaml:"url_file"`
	} `yaml:"cache"`

	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`

	Filters struct {
		Location       string   `yaml:"location"`
		Company        string   `yaml:"company"`
		Keywords       []string `yaml:"keywords"`
		Days           int      `yaml:"days"`
		IncludeUndated bool     `yaml:"include_undated"`
	} `yaml:"filters"`

	Boards struct {
		Known     []string `yaml:"known"`
		File      string   `yaml:"file,omitempty"`
		APIBase   string   `yaml:"api_base"`
		BoardBase string   `yaml:"board_base"`
	} `yaml:"boards"`

	// Extraction overrides the built-in rule tables; empty lists keep the defaults.
	Extraction extract.Rules `yaml:"extraction"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var c Config
	c.Search.MaxResults = 30
	c.Fetch.TimeoutSeconds = 15
	c.Fetch.DelaySeconds = 1
	c.Fetch.UserAgent = "Mozilla/5.0 (compatible; jobcurator/1.0)"
	c.Cache.Enabled = true
	c.Cache.HTMLDir = filepath.Join(xdg.CacheHome, appName, "html")
	c.Cache.URLFile = filepath.Join(xdg.CacheHome, appName, "job_urls.json")
	c.Export.Dir = "."
	c.Boards.Known = []string{
		"airbnb", "stripe", "gitlab", "figma", "discord", "dropbox", "reddit",
		"robinhood", "coinbase", "instacart", "lyft", "pinterest", "doordash",
		"databricks", "cloudflare", "asana", "duolingo", "twitch", "squarespace", "affirm",
	}
	c.Boards.APIBase = "https://boards-api.greenhouse.io/v1/boards"
	c.Boards.BoardBase = "https://boards.greenhouse.io"
	return c
}

// DefaultPath is $XDG_CONFIG_HOME/jobcurator/config.yml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yml")
}

// Load reads path over the defaults. A missing file yields ErrConfigNotFound
// together with the defaults so callers can decide whether that matters.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Boards.File != "" {
		bf := cfg.Boards.File
		if !filepath.IsAbs(bf) {
			bf = filepath.Join(filepath.Dir(path), bf)
		}
		if err := OverlayBoards(&cfg, bf); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Rules is the built-in extraction rule set with the file's overrides applied.
func (c Config) Rules() extract.Rules {
	return extract.DefaultRules().Merge(c.Extraction)
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func (c Config) Delay() time.Duration {
	return time.Duration(c.Fetch.DelaySeconds * float64(time.Second))
}
