package scrape

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"jobcurator/internal/domain"
	"jobcurator/internal/scrape/types"
	"jobcurator/internal/scrape/util"
)

// sourceTimeout bounds a single source so a stuck board cannot hang the run.
const sourceTimeout = 5 * time.Minute

// Gather runs every source concurrently and merges what they return. A
// failing source is logged and contributes whatever partial result it
// produced; siblings keep running.
func Gather(ctx context.Context, sources []types.Source, log *slog.Logger) types.ScrapeResult {
	if log == nil {
		log = slog.Default()
	}

	var g errgroup.Group
	results := make([]types.ScrapeResult, len(sources))

	for i, s := range sources {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, sourceTimeout)
			defer cancel()

			log.Info("collecting", "source", s.Name())
			res, err := s.Collect(sctx)
			if err != nil {
				log.Warn("source error", "source", s.Name(), "err", err)
			}
			res.Source = s.Name()
			results[i] = res
			return nil // best-effort: don't cancel siblings
		})
	}

	_ = g.Wait()

	var out types.ScrapeResult
	var urls []string
	seenPage := map[string]bool{}
	for _, res := range results {
		log.Info("collected", "source", res.Source, "urls", len(res.URLs), "pages", len(res.Pages))
		urls = append(urls, res.URLs...)
		for _, p := range res.Pages {
			key := p.Filename + "|" + p.URL
			if seenPage[key] {
				continue
			}
			seenPage[key] = true
			out.Pages = append(out.Pages, p)
		}
	}
	out.URLs = util.DedupeURLs(urls)
	out.URLs = dropFetched(out.URLs, out.Pages)
	return out
}

// dropFetched removes URLs whose page is already in hand.
func dropFetched(urls []string, pages []domain.RawPage) []string {
	if len(pages) == 0 {
		return urls
	}
	have := make(map[string]bool, len(pages))
	for _, p := range pages {
		if p.URL != "" {
			have[util.CanonicalizeURL(p.URL)] = true
		}
	}
	out := urls[:0]
	for _, u := range urls {
		if !have[util.CanonicalizeURL(u)] {
			out = append(out, u)
		}
	}
	return out
}

// Execute gathers from sources and runs every page and URL through r.
func Execute(ctx context.Context, r *Runner, sources []types.Source) (Result, error) {
	got := Gather(ctx, sources, r.logger())

	res, err := r.RunPages(ctx, got.Pages)
	if err != nil {
		return res, err
	}
	more, err := r.Run(ctx, got.URLs)
	res.Merge(more)
	return res, err
}
