package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"jobcurator/internal/domain"
)

const (
	htmlExt        = ".html"
	metadataSuffix = "_metadata.json"
	lockName       = ".lock"
)

// Metadata is the sidecar written next to every cached page.
type Metadata struct {
	URL           string  `json:"url"`
	Filename      string  `json:"filename"`
	StatusCode    int     `json:"status_code"`
	ContentLength int     `json:"content_length"`
	FetchTime     float64 `json:"fetch_time"`
}

// CacheFilename derives a stable cache name from a job URL:
// /{company}/jobs/{id} becomes {company}_jobs_{id}.html, anything else
// job_{first 12 hex of md5(url)}.html.
func CacheFilename(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) >= 3 && parts[0] != "" && parts[2] != "" {
			return fmt.Sprintf("%s_jobs_%s%s", parts[0], parts[2], htmlExt)
		}
	}
	sum := md5.Sum([]byte(rawURL))
	return "job_" + hex.EncodeToString(sum[:])[:12] + htmlExt
}

// HTMLCache stores one .html and one _metadata.json per page. Writers hold
// an exclusive file lock on the directory so concurrent runs do not
// interleave a page with another run's metadata.
type HTMLCache struct {
	dir  string
	lock *flock.Flock
	log  *slog.Logger
}

func OpenHTMLCache(dir string, logger *slog.Logger) (*HTMLCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create html cache %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLCache{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockName)),
		log:  logger.With("component", "html_cache"),
	}, nil
}

func (c *HTMLCache) Dir() string { return c.dir }

func (c *HTMLCache) path(filename string) string {
	return filepath.Join(c.dir, filepath.Base(filename))
}

func metadataPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, htmlExt) + metadataSuffix
}

// Load reads a cached page. The URL comes from the metadata sidecar when
// one exists; a missing sidecar leaves it empty.
func (c *HTMLCache) Load(filename string) (domain.RawPage, error) {
	p := c.path(filename)
	b, err := os.ReadFile(p)
	if err != nil {
		return domain.RawPage{}, err
	}
	page := domain.RawPage{Content: string(b), Filename: filepath.Base(p)}

	if mb, err := os.ReadFile(metadataPath(p)); err == nil {
		var md Metadata
		if err := json.Unmarshal(mb, &md); err != nil {
			c.log.Warn("bad metadata sidecar", "file", page.Filename, "err", err)
		} else {
			page.URL = md.URL
		}
	}
	return page, nil
}

// Save writes page and its metadata.
func (c *HTMLCache) Save(page domain.RawPage, status int) error {
	if page.Filename == "" {
		page.Filename = CacheFilename(page.URL)
	}
	if err := c.lock.Lock(); err != nil {
		return fmt.Errorf("lock html cache: %w", err)
	}
	defer func() { _ = c.lock.Unlock() }()

	p := c.path(page.Filename)
	if err := writeFileAtomic(p, []byte(page.Content)); err != nil {
		return fmt.Errorf("write %s: %w", page.Filename, err)
	}

	md := Metadata{
		URL:           page.URL,
		Filename:      filepath.Base(p),
		StatusCode:    status,
		ContentLength: len(page.Content),
		FetchTime:     float64(time.Now().UnixNano()) / float64(time.Second),
	}
	mb, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(metadataPath(p), mb); err != nil {
		return fmt.Errorf("write metadata for %s: %w", page.Filename, err)
	}
	c.log.Debug("cached page", "file", md.Filename, "size", humanize.Bytes(uint64(md.ContentLength)))
	return nil
}

// Pages loads every cached page in filename order.
func (c *HTMLCache) Pages() ([]domain.RawPage, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), htmlExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	pages := make([]domain.RawPage, 0, len(names))
	for _, n := range names {
		p, err := c.Load(n)
		if err != nil {
			c.log.Warn("unreadable cached page", "file", n, "err", err)
			continue
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// CachedFetcher serves pages from an HTMLCache and fills it from next on a miss.
type CachedFetcher struct {
	next  Fetcher
	cache *HTMLCache
}

var _ Fetcher = (*CachedFetcher)(nil)

func NewCachedFetcher(next Fetcher, cache *HTMLCache) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache}
}

func (f *CachedFetcher) Fetch(ctx context.Context, rawURL string) (domain.RawPage, error) {
	name := CacheFilename(rawURL)
	if page, err := f.cache.Load(name); err == nil {
		if page.URL == "" {
			page.URL = rawURL
		}
		f.cache.log.Debug("cache hit", "file", name)
		return page, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		f.cache.log.Warn("cache read failed", "file", name, "err", err)
	}

	page, err := f.next.Fetch(ctx, rawURL)
	if err != nil {
		return domain.RawPage{}, err
	}
	page.Filename = name
	if err := f.cache.Save(page, 200); err != nil {
		f.cache.log.Warn("cache write failed", "file", name, "err", err)
	}
	return page, nil
}

func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
