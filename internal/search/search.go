// Package search finds Greenhouse job URLs for a job title through Google
// Custom Search. The search engine itself is expected to be restricted to
// Greenhouse board hosts.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"jobcurator/internal/scrape/util"
)

const (
	pageSize = 10
	// maxStart is the last start index the Custom Search API accepts.
	maxStart = 91

	DefaultMaxResults = 30
)

// Searcher returns job page URLs for a title, best match first.
type Searcher interface {
	Search(ctx context.Context, jobTitle string, maxResults int) ([]string, error)
}

type Google struct {
	svc     *customsearch.Service
	cx      string
	limiter *util.HostLimiter
	log     *slog.Logger
}

var _ Searcher = (*Google)(nil)

// NewGoogle builds a client for engine cx. apiKey may be empty when opts
// already carry credentials (or, in tests, a plain HTTP client).
func NewGoogle(ctx context.Context, apiKey, cx string, limiter *util.HostLimiter, logger *slog.Logger, opts ...option.ClientOption) (*Google, error) {
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("custom search client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Google{
		svc:     svc,
		cx:      cx,
		limiter: limiter,
		log:     logger.With("component", "search"),
	}, nil
}

// Search pages through results ten at a time until maxResults URLs are
// collected, a page comes back empty, or the API's start ceiling is hit.
// A provider error ends the search; URLs gathered so far are returned with it.
func (g *Google) Search(ctx context.Context, jobTitle string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	query := fmt.Sprintf("%q", jobTitle)

	var urls []string
	for start := 1; len(urls) < maxResults && start <= maxStart; start += pageSize {
		if err := g.limiter.WaitURL(ctx, g.svc.BasePath); err != nil {
			return urls, err
		}
		num := min(pageSize, maxResults-len(urls))
		res, err := g.svc.Cse.List().
			Q(query).
			Cx(g.cx).
			Start(int64(start)).
			Num(int64(num)).
			Context(ctx).
			Do()
		if err != nil {
			return util.DedupeURLs(urls), fmt.Errorf("custom search start=%d: %w", start, err)
		}
		if len(res.Items) == 0 {
			break
		}
		for _, it := range res.Items {
			if it.Link != "" {
				urls = append(urls, it.Link)
			}
		}
		g.log.Debug("search page", "query", query, "start", start, "items", len(res.Items))
	}

	urls = util.DedupeURLs(urls)
	if len(urls) > maxResults {
		urls = urls[:maxResults]
	}
	return urls, nil
}
