package greenhouse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcurator/internal/domain"
	ghscrape "jobcurator/internal/scrape/greenhouse"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestListJobURLs_FromAPI(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/acme/jobs", r.URL.Path)
		fmt.Fprint(w, `{"jobs":[
			{"id":1,"title":"Engineer","absolute_url":"https://boards.greenhouse.io/acme/jobs/1"},
			{"id":2,"title":"Designer","absolute_url":"https://boards.greenhouse.io/acme/jobs/2?gh_src=abc"},
			{"id":3,"title":"Dup","absolute_url":"https://boards.greenhouse.io/acme/jobs/1"},
			{"id":4,"title":"Blank","absolute_url":""}
		]}`)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{APIBase: srv.URL, Logger: quietLogger()})
	urls, err := c.ListJobURLs(context.Background(), domain.Company{Slug: "acme"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://boards.greenhouse.io/acme/jobs/1",
		"https://boards.greenhouse.io/acme/jobs/2",
	}, urls)
}

func TestListJobURLs_FallsBackToBoardPage(t *testing.T) {
	t.Parallel()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	t.Cleanup(api.Close)

	board := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/acme/jobs/55">Role</a></body></html>`)
	}))
	t.Cleanup(board.Close)

	c := New(Config{
		APIBase: api.URL,
		Board:   ghscrape.New(ghscrape.Config{BoardBase: board.URL}),
		Logger:  quietLogger(),
	})
	urls, err := c.ListJobURLs(context.Background(), domain.Company{Slug: "acme"})
	require.NoError(t, err)
	assert.Equal(t, []string{board.URL + "/acme/jobs/55"}, urls)
}

func TestListJobURLs_APIErrorWithoutFallback(t *testing.T) {
	t.Parallel()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(api.Close)

	c := New(Config{APIBase: api.URL, Logger: quietLogger()})
	_, err := c.ListJobURLs(context.Background(), domain.Company{Slug: "acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestDiscover_KeepsInputOrderAndSkipsEmptyBoards(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := strings.Split(strings.Trim(r.URL.Path, "/"), "/")[0]
		switch slug {
		case "acme", "hooli":
			fmt.Fprint(w, `{"jobs":[{"id":1,"absolute_url":"https://x/jobs/1"}]}`)
		case "empty":
			fmt.Fprint(w, `{"jobs":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	c := New(Config{APIBase: srv.URL, Logger: quietLogger()})
	got := c.Discover(context.Background(), []string{"hooli", "empty", "missing", " Acme ", ""})
	assert.Equal(t, []domain.Company{
		{Slug: "hooli", Name: "Hooli"},
		{Slug: "acme", Name: "Acme"},
	}, got)
}

func TestDiscover_CapsResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobs":[{"id":1}]}`)
	}))
	t.Cleanup(srv.Close)

	slugs := make([]string, MaxDiscovered+5)
	for i := range slugs {
		slugs[i] = fmt.Sprintf("co%02d", i)
	}
	c := New(Config{APIBase: srv.URL, Logger: quietLogger()})
	got := c.Discover(context.Background(), slugs)
	require.Len(t, got, MaxDiscovered)
	assert.Equal(t, "co00", got[0].Slug)
}
