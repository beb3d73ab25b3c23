package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every invalid field at once, each wrapping its sentinel.
func Validate(cfg Config) error {
	var errs []error

	if cfg.Fetch.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrInvalidTimeout, cfg.Fetch.TimeoutSeconds))
	}
	if cfg.Fetch.DelaySeconds < 0 {
		errs = append(errs, fmt.Errorf("%w (got %g)", ErrInvalidDelay, cfg.Fetch.DelaySeconds))
	}
	if cfg.Search.MaxResults < 1 || cfg.Search.MaxResults > 100 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrInvalidMaxResults, cfg.Search.MaxResults))
	}
	if cfg.Filters.Days < 0 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrInvalidDays, cfg.Filters.Days))
	}
	if cfg.Cache.Enabled && strings.TrimSpace(cfg.Cache.HTMLDir) == "" {
		errs = append(errs, ErrInvalidCacheDir)
	}
	return errors.Join(errs...)
}

// RequireSearchCredentials fails unless both search credentials are present.
func RequireSearchCredentials(cfg Config) error {
	if strings.TrimSpace(cfg.Search.APIKey) == "" || strings.TrimSpace(cfg.Search.EngineID) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Normalize trims and dedupes the free-form lists and returns warnings for
// settings that are legal but probably unintended.
func Normalize(cfg Config) (Config, []string) {
	out := cfg
	var warns []string

	trimList := func(xs []string, lower bool) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			if lower {
				x = key
			}
			ys = append(ys, x)
		}
		return ys
	}

	out.Boards.Known = trimList(out.Boards.Known, true)
	out.Filters.Keywords = trimList(out.Filters.Keywords, false)
	out.Filters.Location = strings.TrimSpace(out.Filters.Location)
	out.Filters.Company = strings.TrimSpace(out.Filters.Company)

	if out.Fetch.DelaySeconds > 0 && out.Fetch.DelaySeconds < 0.5 {
		warns = append(warns, fmt.Sprintf("fetch.delay_seconds is very low (%g) and may get you rate limited", out.Fetch.DelaySeconds))
	}
	if out.Filters.Days > 365 {
		warns = append(warns, fmt.Sprintf("filters.days is %d; recency filtering will keep almost everything", out.Filters.Days))
	}
	if len(out.Boards.Known) == 0 {
		warns = append(warns, "boards.known is empty; --discover will find nothing")
	}
	return out, warns
}
