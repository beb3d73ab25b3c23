package ats

import (
	"context"

	"jobcurator/internal/domain"
)

// Connector lists the job page URLs a company's applicant tracking system publishes.
type Connector interface {
	Type() string
	ListJobURLs(ctx context.Context, company domain.Company) ([]string, error)
}
