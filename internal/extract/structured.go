package extract

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"

	"jobcurator/internal/scrape/util"
)

// ParseError marks malformed embedded data. It is never fatal: extraction
// falls through to the next strategy.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Source, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// structured holds what a schema.org JobPosting block provided. Any field may be empty.
type structured struct {
	Title        string
	Company      string
	Location     string
	Compensation string
	Description  string
	PostedAt     *time.Time
}

var payRange = regexp.MustCompile(`(?i)pay\s+range[^$]{0,120}?(\$[\d,]+(?:\.\d{2})?k?\s*(?:-|–|—|to)\s*\$[\d,]+(?:\.\d{2})?k?)`)

// extractStructured returns the first JobPosting found in the page's
// ld+json blocks. Blocks that fail to decode are reported through onErr
// and skipped.
func extractStructured(doc *goquery.Document, onErr func(error)) (structured, bool) {
	var (
		out   structured
		found bool
	)
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			if onErr != nil {
				onErr(&ParseError{Source: fmt.Sprintf("ld+json block %d", i), Err: err})
			}
			return true
		}
		posting, ok := findJobPosting(v)
		if !ok {
			return true
		}
		out = postingFields(posting)
		found = true
		return false
	})
	return out, found
}

func findJobPosting(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case []any:
		for _, e := range t {
			if m, ok := findJobPosting(e); ok {
				return m, true
			}
		}
	case map[string]any:
		if isJobPosting(t["@type"]) {
			return t, true
		}
		if g, ok := t["@graph"]; ok {
			return findJobPosting(g)
		}
	}
	return nil, false
}

func isJobPosting(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, "JobPosting")
	case []any:
		for _, e := range t {
			if isJobPosting(e) {
				return true
			}
		}
	}
	return false
}

func postingFields(m map[string]any) structured {
	out := structured{
		Title:    util.CleanText(html.UnescapeString(str(m["title"]))),
		Company:  organizationName(m["hiringOrganization"]),
		Location: locationText(m["jobLocation"]),
		PostedAt: parseDate(str(m["datePosted"])),
	}
	if d := str(m["description"]); d != "" {
		out.Description = htmlToText(d)
		if sm := payRange.FindStringSubmatch(out.Description); sm != nil {
			out.Compensation = sm[1]
		}
	}
	return out
}

func organizationName(v any) string {
	switch t := v.(type) {
	case string:
		return util.CleanText(t)
	case map[string]any:
		return util.CleanText(str(t["name"]))
	case []any:
		for _, e := range t {
			if n := organizationName(e); n != "" {
				return n
			}
		}
	}
	return ""
}

// locationText accepts {"address": "..."}, {"address": PostalAddress},
// a plain string, or an array of any of those (first usable entry wins).
func locationText(v any) string {
	switch t := v.(type) {
	case string:
		return util.CleanText(t)
	case []any:
		for _, e := range t {
			if s := locationText(e); s != "" {
				return s
			}
		}
	case map[string]any:
		if a, ok := t["address"]; ok {
			if s := addressText(a); s != "" {
				return s
			}
		}
		return util.CleanText(str(t["name"]))
	}
	return ""
}

func addressText(v any) string {
	switch t := v.(type) {
	case string:
		return util.CleanText(t)
	case []any:
		for _, e := range t {
			if s := addressText(e); s != "" {
				return s
			}
		}
	case map[string]any:
		var parts []string
		for _, k := range []string{"addressLocality", "addressRegion"} {
			if s := util.CleanText(str(t[k])); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return organizationName(t["addressCountry"])
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// htmlToText flattens a description that may be escaped HTML.
func htmlToText(s string) string {
	s = html.UnescapeString(s)
	if !strings.Contains(s, "<") {
		return util.CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return util.CleanText(s)
	}
	return util.CleanText(blockText(doc.Selection))
}

// blockText joins text nodes in document order with a space between them
// so "<li>a</li><li>b</li>" does not collapse into "ab".
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		switch n.Type {
		case xhtml.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case xhtml.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return b.String()
}
