// Package extract turns a raw Greenhouse job page into a JobRecord.
//
// Structured data (schema.org JobPosting in ld+json) is trusted first. The
// page title fills what it leaves empty, and when the location is still
// unknown a fixed table of heuristic strategies collects candidates that are
// validated, ranked, and reduced to one best guess. A final guard keeps
// title text out of the location and rejects pages without a usable title.
package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobcurator/internal/domain"
	"jobcurator/internal/rank"
	"jobcurator/internal/scrape/util"
)

type Extractor struct {
	rules  Rules
	scorer rank.LocationScorer
	log    *slog.Logger
}

func New(rules Rules, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		rules:  rules,
		scorer: rules.Scorer(),
		log:    logger.With("component", "extract"),
	}
}

// Extract builds a record from page. ok is false when the page has no
// extractable job; that is a normal outcome, not an error.
func (e *Extractor) Extract(page domain.RawPage) (rec domain.JobRecord, ok bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Content))
	if err != nil {
		e.log.Warn("unparsable page", "url", page.URL, "file", page.Filename, "err", err)
		return domain.JobRecord{}, false
	}

	st, found := extractStructured(doc, func(err error) {
		e.log.Debug("skipping structured data", "url", page.URL, "err", err)
	})
	pt := ParsePageTitle(pageTitleText(doc))

	rec = domain.JobRecord{
		Title:       firstNonEmpty(st.Title, pt.Title),
		Company:     firstNonEmpty(st.Company, pt.Company),
		Description: st.Description,
		PostedAt:    st.PostedAt,
		URL:         page.URL,
	}
	if rec.Company == "" {
		rec.Company = recoverCompany(page)
	}

	switch {
	case found && st.Location != "":
		rec.Location = st.Location
		e.log.Debug("location resolved",
			"url", page.URL, "location", st.Location, "origin", OriginStructuredData)
	case pt.Location != "":
		rec.Location = pt.Location
	default:
		rec.Location = e.bestLocation(doc, page)
	}

	if rec.Description == "" {
		rec.Description = e.descriptionText(doc)
	}

	switch {
	case st.Compensation != "":
		rec.Compensation = st.Compensation
	case found && st.Description != "":
		rec.Compensation = ExtractCompensation(st.Description)
	default:
		rec.Compensation = ExtractCompensation(util.CleanText(blockText(doc.Find("body"))))
	}

	rec.Location = guardLocation(rec.Title, rec.Location, e.rules)
	if !validRecord(rec.Title, rec.Company) {
		e.log.Debug("no extractable job", "url", page.URL, "file", page.Filename, "title", rec.Title)
		return domain.JobRecord{}, false
	}
	if rec.Location == "" {
		rec.Location = domain.LocationNotSpecified
	}
	return rec, true
}

func (e *Extractor) bestLocation(doc *goquery.Document, page domain.RawPage) string {
	cands := searchLocations(doc, e.rules)
	texts := make([]string, len(cands))
	for i, c := range cands {
		texts[i] = c.Text
	}
	best, ok := e.scorer.Best(texts)
	if !ok {
		return ""
	}
	e.log.Debug("location resolved",
		"url", page.URL, "location", best.Text, "origin", originOf(cands, best.Text),
		"score", best.Score, "rules", best.Tags, "candidates", len(cands))
	return best.Text
}

// originOf reports the strategy of the first candidate with text.
func originOf(cands []Candidate, text string) Origin {
	for _, c := range cands {
		if c.Text == text {
			return c.Origin
		}
	}
	return Origin(-1)
}

// descriptionText is the text of the first description section, used when
// the page has no structured description.
func (e *Extractor) descriptionText(doc *goquery.Document) string {
	for _, sel := range e.rules.DescriptionSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			if t := util.CleanText(blockText(s)); t != "" {
				return t
			}
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
