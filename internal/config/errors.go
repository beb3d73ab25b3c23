package config

import "errors"

// Sentinels returned by Load and Validate; match them with errors.Is.
var (
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrMissingCredentials means the search API key or engine id is unset
	// in the file, the environment, and the keychain.
	ErrMissingCredentials = errors.New("missing search credentials: set GOOGLE_API_KEY and GOOGLE_CSE_ID")

	ErrInvalidTimeout    = errors.New("invalid fetch.timeout_seconds: must be positive")
	ErrInvalidDelay      = errors.New("invalid fetch.delay_seconds: must be non-negative")
	ErrInvalidMaxResults = errors.New("invalid search.max_results: must be 1..100")
	ErrInvalidDays       = errors.New("invalid filters.days: must be non-negative")
	ErrInvalidCacheDir   = errors.New("invalid cache.html_dir: required when cache.enabled=true")
)
