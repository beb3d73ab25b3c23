package scrape

import (
	"context"
	"fmt"

	"jobcurator/internal/fetch"
	"jobcurator/internal/scrape/types"
	"jobcurator/internal/search"
)

// SearchSource finds job URLs through the search collaborator and records
// them in the URL cache for later reuse.
type SearchSource struct {
	Searcher   search.Searcher
	Query      string
	MaxResults int
	URLCache   *fetch.URLCache // optional
}

func (s *SearchSource) Name() string { return "search" }

func (s *SearchSource) Collect(ctx context.Context) (types.ScrapeResult, error) {
	urls, err := s.Searcher.Search(ctx, s.Query, s.MaxResults)
	if s.URLCache != nil && len(urls) > 0 {
		if serr := s.URLCache.Save(urls); serr != nil && err == nil {
			err = fmt.Errorf("save url cache: %w", serr)
		}
	}
	return types.ScrapeResult{URLs: urls}, err
}

// URLCacheSource replays the URLs saved by an earlier search.
type URLCacheSource struct {
	Cache *fetch.URLCache
}

func (s *URLCacheSource) Name() string { return "url_cache" }

func (s *URLCacheSource) Collect(context.Context) (types.ScrapeResult, error) {
	urls, err := s.Cache.Load()
	return types.ScrapeResult{URLs: urls}, err
}

// HTMLCacheSource hands every cached page to the runner without touching the network.
type HTMLCacheSource struct {
	Cache *fetch.HTMLCache
}

func (s *HTMLCacheSource) Name() string { return "html_cache" }

func (s *HTMLCacheSource) Collect(context.Context) (types.ScrapeResult, error) {
	pages, err := s.Cache.Pages()
	return types.ScrapeResult{Pages: pages}, err
}
