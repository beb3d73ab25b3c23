package scrape

import (
	"strings"
	"time"

	"jobcurator/internal/domain"
)

// FilterOptions narrows extracted records. Zero values disable each filter.
type FilterOptions struct {
	Title    string
	Location string
	Company  string
	Keywords []string // any one must appear in the description

	// Days > 0 keeps only records posted within that many days of Now.
	Days           int
	IncludeUndated bool
	Now            time.Time
}

// ParseKeywords splits a comma-separated keyword flag.
func ParseKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// ShouldKeep applies the filters in a fixed order and names the first one that rejects rec.
func ShouldKeep(opts FilterOptions, rec domain.JobRecord) (keep bool, reason string) {
	if !containsFold(rec.Title, opts.Title) {
		return false, "title"
	}
	if !containsFold(rec.Location, opts.Location) {
		return false, "location"
	}
	if !containsFold(rec.Company, opts.Company) {
		return false, "company"
	}
	if !matchesAnyKeyword(rec.Description, opts.Keywords) {
		return false, "keywords"
	}
	if opts.Days > 0 {
		if rec.PostedAt == nil {
			if !opts.IncludeUndated {
				return false, "undated"
			}
		} else {
			now := opts.Now
			if now.IsZero() {
				now = time.Now()
			}
			cutoff := now.AddDate(0, 0, -opts.Days)
			if rec.PostedAt.Before(cutoff) {
				return false, "too_old"
			}
		}
	}
	return true, ""
}

func containsFold(haystack, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}

func matchesAnyKeyword(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	text = strings.ToLower(text)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
