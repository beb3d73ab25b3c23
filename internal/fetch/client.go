// Package fetch retrieves job pages over HTTP and keeps optional on-disk
// caches of pages and discovered URLs.
package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"jobcurator/internal/domain"
	"jobcurator/internal/scrape/util"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	maxBodyBytes = 8 << 20
)

// Fetcher returns the raw content of a job page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (domain.RawPage, error)
}

type Options struct {
	Timeout   time.Duration
	UserAgent string
	Limiter   *util.HostLimiter
	Logger    *slog.Logger
}

// Client is the network Fetcher. Every request waits on the host limiter
// first, so successive fetches to one host are spaced by the politeness delay.
type Client struct {
	hc        *http.Client
	userAgent string
	limiter   *util.HostLimiter
	log       *slog.Logger
}

var _ Fetcher = (*Client)(nil)

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		hc:        &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		limiter:   opts.Limiter,
		log:       opts.Logger.With("component", "fetch"),
	}
}

func (c *Client) Fetch(ctx context.Context, url string) (domain.RawPage, error) {
	if err := c.limiter.WaitURL(ctx, url); err != nil {
		return domain.RawPage{}, classify(url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RawPage{}, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	c.log.Debug("fetching", "url", url)
	res, err := c.hc.Do(req)
	if err != nil {
		return domain.RawPage{}, classify(url, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return domain.RawPage{}, &Error{Kind: KindHTTPStatus, URL: url, Status: res.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return domain.RawPage{}, classify(url, err)
	}
	return domain.RawPage{
		Content:  string(b),
		URL:      url,
		Filename: CacheFilename(url),
	}, nil
}

func classify(url string, err error) *Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	return &Error{Kind: KindNetwork, URL: url, Err: err}
}
