package scrape

import (
	"context"
	"errors"
	"log/slog"

	"jobcurator/internal/domain"
	"jobcurator/internal/extract"
	"jobcurator/internal/fetch"
	"jobcurator/internal/scrape/types"
)

// Skip records why a page produced no kept record.
type Skip struct {
	URL    string
	Reason string
}

type Result struct {
	Records []domain.JobRecord
	Skipped []Skip
	Stats   types.Stats
}

// Runner fetches, extracts and filters pages one at a time. A failing page
// is logged and skipped; it never stops the batch.
type Runner struct {
	Fetcher   fetch.Fetcher
	Extractor *extract.Extractor
	Filter    FilterOptions
	Log       *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

// Run processes urls in order. On cancellation it returns what it has so
// far together with ctx.Err().
func (r *Runner) Run(ctx context.Context, urls []string) (Result, error) {
	var res Result
	log := r.logger()
	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		log.Info("processing", "n", i+1, "of", len(urls), "url", u)

		page, err := r.Fetcher.Fetch(ctx, u)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return res, err
			}
			reason := "fetch"
			var fe *fetch.Error
			if errors.As(err, &fe) {
				reason = "fetch:" + fe.Kind.String()
			}
			log.Warn("skipped", "reason", reason, "url", u, "err", err)
			res.skip(u, reason)
			continue
		}
		r.process(&res, page)
	}
	return res, nil
}

// RunPages processes pages that are already in hand, such as the HTML cache.
func (r *Runner) RunPages(ctx context.Context, pages []domain.RawPage) (Result, error) {
	var res Result
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		r.process(&res, p)
	}
	return res, nil
}

func (r *Runner) process(res *Result, page domain.RawPage) {
	log := r.logger()
	res.Stats.Pages++

	id := page.URL
	if id == "" {
		id = page.Filename
	}

	rec, ok := r.Extractor.Extract(page)
	if !ok {
		log.Debug("skipped", "reason", "no_record", "url", id)
		res.skip(id, "no_record")
		return
	}
	res.Stats.Extracted++

	keep, why := ShouldKeep(r.Filter, rec)
	if !keep {
		log.Debug("skipped", "reason", "filtered:"+why, "title", rec.Title, "loc", rec.Location, "url", id)
		res.skip(id, "filtered:"+why)
		return
	}
	res.Stats.Kept++
	res.Records = append(res.Records, rec)
}

func (res *Result) skip(id, reason string) {
	res.Stats.Skipped++
	res.Skipped = append(res.Skipped, Skip{URL: id, Reason: reason})
}

// Merge appends o to res.
func (res *Result) Merge(o Result) {
	res.Records = append(res.Records, o.Records...)
	res.Skipped = append(res.Skipped, o.Skipped...)
	res.Stats.Pages += o.Stats.Pages
	res.Stats.Extracted += o.Stats.Extracted
	res.Stats.Kept += o.Stats.Kept
	res.Stats.Skipped += o.Stats.Skipped
}
