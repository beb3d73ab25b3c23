package scrape

import (
	"context"
	"log/slog"

	"jobcurator/internal/domain"
	"jobcurator/internal/ingest/ats"
	"jobcurator/internal/scrape/types"
)

// BoardSource lists job URLs straight from the companies' ATS boards.
type BoardSource struct {
	Connector ats.Connector
	Companies []domain.Company
	Log       *slog.Logger
}

func (s *BoardSource) Name() string { return "board:" + s.Connector.Type() }

// Collect walks the boards in order. A board that fails is logged and
// skipped; the error is only returned when every board failed.
func (s *BoardSource) Collect(ctx context.Context) (types.ScrapeResult, error) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}

	var (
		out     types.ScrapeResult
		lastErr error
		failed  int
	)
	for _, co := range s.Companies {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		urls, err := s.Connector.ListJobURLs(ctx, co)
		if err != nil {
			log.Warn("board fetch error", "board", co.Slug, "err", err)
			lastErr = err
			failed++
			continue
		}
		log.Info("board listed", "board", co.Slug, "company", co.Name, "jobs", len(urls))
		out.URLs = append(out.URLs, urls...)
	}
	if failed > 0 && failed == len(s.Companies) {
		return out, lastErr
	}
	return out, nil
}
