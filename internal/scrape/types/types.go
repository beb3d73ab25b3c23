package types

import (
	"context"

	"jobcurator/internal/domain"
)

// ScrapeResult is what one source contributes to a run: job URLs still to
// be fetched, pages already in hand, or both.
type ScrapeResult struct {
	Source string
	URLs   []string
	Pages  []domain.RawPage
}

type Source interface {
	Name() string
	Collect(ctx context.Context) (ScrapeResult, error)
}

// Stats summarises one batch.
type Stats struct {
	Pages     int `json:"pages"`
	Extracted int `json:"extracted"`
	Kept      int `json:"kept"`
	Skipped   int `json:"skipped"`
}
