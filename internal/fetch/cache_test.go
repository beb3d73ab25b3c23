package fetch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcurator/internal/domain"
)

func TestCacheFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acme_jobs_123.html", CacheFilename("https://boards.greenhouse.io/acme/jobs/123"))
	assert.Equal(t, "acme_jobs_123.html", CacheFilename("https://boards.greenhouse.io/acme/jobs/123?gh_jid=123"))

	hashed := CacheFilename("https://example.com/careers")
	assert.Regexp(t, `^job_[0-9a-f]{12}\.html$`, hashed)
	assert.Equal(t, hashed, CacheFilename("https://example.com/careers"))
}

func TestHTMLCache_SaveLoadPages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := OpenHTMLCache(dir, quietLogger())
	require.NoError(t, err)

	page := domain.RawPage{Content: "<title>A - B</title>", URL: "https://boards.greenhouse.io/acme/jobs/1"}
	require.NoError(t, c.Save(page, 200))

	got, err := c.Load("acme_jobs_1.html")
	require.NoError(t, err)
	assert.Equal(t, page.Content, got.Content)
	assert.Equal(t, page.URL, got.URL)
	assert.Equal(t, "acme_jobs_1.html", got.Filename)

	b, err := os.ReadFile(filepath.Join(dir, "acme_jobs_1_metadata.json"))
	require.NoError(t, err)
	var md Metadata
	require.NoError(t, json.Unmarshal(b, &md))
	assert.Equal(t, 200, md.StatusCode)
	assert.Equal(t, len(page.Content), md.ContentLength)

	// a page without a sidecar still loads; the filename is the only hint
	require.NoError(t, os.WriteFile(filepath.Join(dir, "globex_jobs_2.html"), []byte("x"), 0o644))
	pages, err := c.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "acme_jobs_1.html", pages[0].Filename)
	assert.Equal(t, "globex_jobs_2.html", pages[1].Filename)
	assert.Empty(t, pages[1].URL)
}

type countingFetcher struct {
	calls int
	page  domain.RawPage
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context, url string) (domain.RawPage, error) {
	f.calls++
	p := f.page
	p.URL = url
	return p, f.err
}

func TestCachedFetcher(t *testing.T) {
	t.Parallel()

	c, err := OpenHTMLCache(t.TempDir(), quietLogger())
	require.NoError(t, err)
	next := &countingFetcher{page: domain.RawPage{Content: "<title>Recruiter - Acme</title>"}}
	f := NewCachedFetcher(next, c)

	url := "https://boards.greenhouse.io/acme/jobs/9"
	first, err := f.Fetch(context.Background(), url)
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, url, second.URL)
	assert.Equal(t, "acme_jobs_9.html", second.Filename)
}

func TestCachedFetcher_ErrorNotCached(t *testing.T) {
	t.Parallel()

	c, err := OpenHTMLCache(t.TempDir(), quietLogger())
	require.NoError(t, err)
	next := &countingFetcher{err: &Error{Kind: KindHTTPStatus, Status: 500}}
	f := NewCachedFetcher(next, c)

	_, err = f.Fetch(context.Background(), "https://boards.greenhouse.io/acme/jobs/1")
	require.Error(t, err)
	_, err = f.Fetch(context.Background(), "https://boards.greenhouse.io/acme/jobs/1")
	require.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestURLCache(t *testing.T) {
	t.Parallel()

	c := NewURLCache(filepath.Join(t.TempDir(), "nested", "urls.json"))
	_, err := c.Load()
	assert.ErrorIs(t, err, os.ErrNotExist)

	urls := []string{"https://boards.greenhouse.io/a/jobs/1", "https://boards.greenhouse.io/b/jobs/2"}
	require.NoError(t, c.Save(urls))
	got, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, urls, got)
}
