// Package greenhouse lists open jobs on Greenhouse boards through the public
// boards API, falling back to scraping the hosted board page.
package greenhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"jobcurator/internal/domain"
	"jobcurator/internal/ingest/ats"
	ghscrape "jobcurator/internal/scrape/greenhouse"
	"jobcurator/internal/scrape/util"
)

const (
	DefaultAPIBase = "https://boards-api.greenhouse.io/v1/boards"

	// MaxDiscovered caps how many active boards Discover returns.
	MaxDiscovered = 20

	discoverWorkers = 4
)

type Config struct {
	APIBase   string
	UserAgent string
	Timeout   time.Duration
	Limiter   *util.HostLimiter
	Board     *ghscrape.Scraper // HTML fallback; nil disables it
	Logger    *slog.Logger
}

type Connector struct {
	cfg Config
	hc  *http.Client
	log *slog.Logger
}

var _ ats.Connector = (*Connector)(nil)

func New(cfg Config) *Connector {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Connector{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		log: cfg.Logger.With("component", "greenhouse"),
	}
}

func (c *Connector) Type() string { return "greenhouse" }

type apiJobs struct {
	Jobs []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		AbsoluteURL string `json:"absolute_url"`
		UpdatedAt   string `json:"updated_at"`
	} `json:"jobs"`
}

// ListJobURLs asks the boards API first; an API failure or an empty board
// falls back to the hosted board page.
func (c *Connector) ListJobURLs(ctx context.Context, co domain.Company) ([]string, error) {
	urls, apiErr := c.apiJobURLs(ctx, co.Slug)
	if apiErr == nil && len(urls) > 0 {
		return urls, nil
	}
	if c.cfg.Board == nil {
		if apiErr != nil {
			return nil, apiErr
		}
		return nil, nil
	}
	if apiErr != nil {
		c.log.Debug("boards api failed, scraping board page", "board", co.Slug, "err", apiErr)
	}
	return c.cfg.Board.BoardLinks(ctx, co)
}

func (c *Connector) apiJobURLs(ctx context.Context, slug string) ([]string, error) {
	jobs, err := c.fetchJobs(ctx, slug)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(jobs.Jobs))
	for _, j := range jobs.Jobs {
		if u := strings.TrimSpace(j.AbsoluteURL); u != "" {
			urls = append(urls, u)
		}
	}
	return util.DedupeURLs(urls), nil
}

func (c *Connector) fetchJobs(ctx context.Context, slug string) (apiJobs, error) {
	var out apiJobs
	u := fmt.Sprintf("%s/%s/jobs", strings.TrimRight(c.cfg.APIBase, "/"), slug)

	if err := c.cfg.Limiter.WaitURL(ctx, u); err != nil {
		return out, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return out, err
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return out, fmt.Errorf("greenhouse api %s: %w", slug, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return out, fmt.Errorf("greenhouse api %s: status %d", slug, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("greenhouse api %s: decode: %w", slug, err)
	}
	return out, nil
}

// Discover probes slugs and returns, in input order, the boards that have
// at least one open job, capped at MaxDiscovered. Unreachable boards are
// skipped.
func (c *Connector) Discover(ctx context.Context, slugs []string) []domain.Company {
	active := make([]bool, len(slugs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(discoverWorkers)
	for i, slug := range slugs {
		slug = strings.ToLower(strings.TrimSpace(slug))
		if slug == "" {
			continue
		}
		g.Go(func() error {
			jobs, err := c.fetchJobs(gctx, slug)
			if err != nil {
				c.log.Debug("board not active", "board", slug, "err", err)
				return nil // best-effort: one dead board must not cancel the rest
			}
			if len(jobs.Jobs) > 0 {
				mu.Lock()
				active[i] = true
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.Company
	for i, ok := range active {
		if !ok {
			continue
		}
		slug := strings.ToLower(strings.TrimSpace(slugs[i]))
		out = append(out, domain.Company{Slug: slug, Name: util.DisplayName(slug)})
		if len(out) == MaxDiscovered {
			break
		}
	}
	return out
}
