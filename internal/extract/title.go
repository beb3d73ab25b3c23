package extract

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobcurator/internal/domain"
	"jobcurator/internal/scrape/util"
)

const titleSeparator = " - "

// PageTitle is what a "Title - Location - Company" page title yields.
type PageTitle struct {
	Title    string
	Location string
	Company  string
}

// ParsePageTitle splits a page title on " - ". Three or more segments give
// title, location (middle segments re-joined) and company; two give title
// and company; a single segment is all title.
func ParsePageTitle(s string) PageTitle {
	s = util.CleanText(s)
	if s == "" {
		return PageTitle{}
	}
	parts := strings.Split(s, titleSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch {
	case len(parts) >= 3:
		last := len(parts) - 1
		return PageTitle{
			Title:    parts[0],
			Location: strings.Join(parts[1:last], titleSeparator),
			Company:  parts[last],
		}
	case len(parts) == 2:
		return PageTitle{Title: parts[0], Company: parts[1]}
	default:
		return PageTitle{Title: s}
	}
}

var filenameCompany = regexp.MustCompile(`^(.+?)_jobs_[^_]+$`)

// CompanyFromFilename recovers the board slug from a cache filename of the
// form {company}_jobs_{id}.html.
func CompanyFromFilename(name string) string {
	name = path.Base(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, path.Ext(name))
	m := filenameCompany.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// CompanyFromURL recovers the board slug from a Greenhouse URL:
// boards.greenhouse.io/{company}/jobs/{id}, job-boards.greenhouse.io/{company}/...,
// or the embed form ...?for={company}.
func CompanyFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	if !strings.HasSuffix(host, "greenhouse.io") {
		return ""
	}
	if f := strings.TrimSpace(u.Query().Get("for")); f != "" {
		return f
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) == 0 || segs[0] == "" || segs[0] == "embed" {
		return ""
	}
	return segs[0]
}

// recoverCompany tries the filename, then the URL, then gives up with the sentinel.
func recoverCompany(page domain.RawPage) string {
	if slug := CompanyFromFilename(page.Filename); slug != "" {
		return util.DisplayName(slug)
	}
	if slug := CompanyFromURL(page.URL); slug != "" {
		return util.DisplayName(slug)
	}
	return domain.UnknownCompany
}

// pageTitleText is the <title> string, falling back to og:title and then the first h1.
func pageTitleText(doc *goquery.Document) string {
	if t := util.CleanText(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t := util.CleanText(v); t != "" {
			return t
		}
	}
	return util.CleanText(doc.Find("h1").First().Text())
}
