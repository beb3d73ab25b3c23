package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type fakeCSE struct {
	mu     sync.Mutex
	starts []int
	total  int
	fail   bool
}

func (f *fakeCSE) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, _ := strconv.Atoi(q.Get("start"))
	num, _ := strconv.Atoi(q.Get("num"))

	f.mu.Lock()
	f.starts = append(f.starts, start)
	f.mu.Unlock()

	if f.fail && start > 1 {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"quota"}}`)
		return
	}

	var items []map[string]string
	for i := start; i < start+num && i <= f.total; i++ {
		items = append(items, map[string]string{"link": fmt.Sprintf("https://boards.greenhouse.io/acme/jobs/%d", i)})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func newTestGoogle(t *testing.T, h http.Handler) *Google {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g, err := NewGoogle(context.Background(), "", "cx", nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return g
}

func TestGoogle_SearchPaginates(t *testing.T) {
	t.Parallel()

	fake := &fakeCSE{total: 100}
	g := newTestGoogle(t, fake)

	urls, err := g.Search(context.Background(), "Data Engineer", 25)
	require.NoError(t, err)
	assert.Len(t, urls, 25)
	assert.Equal(t, []int{1, 11, 21}, fake.starts)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", urls[0])
}

func TestGoogle_SearchStopsOnEmptyPage(t *testing.T) {
	t.Parallel()

	fake := &fakeCSE{total: 12}
	g := newTestGoogle(t, fake)

	urls, err := g.Search(context.Background(), "Recruiter", 50)
	require.NoError(t, err)
	assert.Len(t, urls, 12)
	assert.Equal(t, []int{1, 11, 21}, fake.starts)
}

func TestGoogle_SearchRespectsStartCeiling(t *testing.T) {
	t.Parallel()

	fake := &fakeCSE{total: 1000}
	g := newTestGoogle(t, fake)

	urls, err := g.Search(context.Background(), "Engineer", 500)
	require.NoError(t, err)
	assert.Len(t, urls, 100)
	assert.Equal(t, 91, fake.starts[len(fake.starts)-1])
}

func TestGoogle_SearchReturnsPartialOnError(t *testing.T) {
	t.Parallel()

	fake := &fakeCSE{total: 100, fail: true}
	g := newTestGoogle(t, fake)

	urls, err := g.Search(context.Background(), "Engineer", 30)
	require.Error(t, err)
	assert.Len(t, urls, 10)
	assert.Equal(t, []int{1, 11}, fake.starts)
}
