package greenhouse

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobcurator/internal/domain"
	"jobcurator/internal/scrape/util"
)

const DefaultBoardBase = "https://boards.greenhouse.io"

type Config struct {
	BoardBase string // scheme+host of the hosted boards
	UserAgent string
	Timeout   time.Duration
	Limiter   *util.HostLimiter
}

// Scraper reads a company's hosted board page and collects links to its job pages.
type Scraper struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Scraper {
	if cfg.BoardBase == "" {
		cfg.BoardBase = DefaultBoardBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "jobcurator/1.0 (+local)"
	}
	return &Scraper{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
}

// BoardLinks returns the absolute job URLs linked from the board, deduped by job id.
func (s *Scraper) BoardLinks(ctx context.Context, co domain.Company) ([]string, error) {
	base := strings.TrimRight(s.cfg.BoardBase, "/")
	boardURL := fmt.Sprintf("%s/%s", base, co.Slug)

	if err := s.cfg.Limiter.WaitURL(ctx, boardURL); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, boardURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenhouse get board: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("greenhouse board status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("greenhouse parse board html: %w", err)
	}
	return boardLinks(doc, base, co.Slug), nil
}

// Greenhouse boards link to /<slug>/jobs/<id> or absolute .../jobs/<id>.
func boardLinks(doc *goquery.Document, base, slug string) []string {
	seen := map[string]bool{}
	var out []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		abs := href
		if strings.HasPrefix(href, "/") {
			abs = base + href
		}
		if !strings.Contains(strings.ToLower(abs), "/jobs/") {
			return
		}

		jobID := ExtractJobID(abs)
		if jobID == "" {
			return
		}

		key := slug + ":" + jobID
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, util.CanonicalizeURL(abs))
	})
	return out
}

// ExtractJobID returns the run of digits after "/jobs/", or "".
func ExtractJobID(u string) string {
	parts := strings.SplitN(u, "/jobs/", 2)
	if len(parts) < 2 {
		return ""
	}
	var id strings.Builder
	for _, r := range parts[1] {
		if r < '0' || r > '9' {
			break
		}
		id.WriteRune(r)
	}
	return id.String()
}
