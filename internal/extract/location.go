package extract

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobcurator/internal/scrape/util"
)

// Origin names the strategy that produced a candidate.
type Origin int

const (
	OriginScriptPayload Origin = iota
	OriginCSSSelector
	OriginHeadingTag
	OriginTextPattern
	OriginStructuredData
)

// LogValue renders the origin by name in structured logs.
func (o Origin) LogValue() slog.Value { return slog.StringValue(o.String()) }

func (o Origin) String() string {
	switch o {
	case OriginScriptPayload:
		return "script_payload"
	case OriginCSSSelector:
		return "css_selector"
	case OriginHeadingTag:
		return "heading_tag"
	case OriginTextPattern:
		return "text_pattern"
	case OriginStructuredData:
		return "structured_data"
	default:
		return "unknown"
	}
}

// Candidate is a provisional location produced by one strategy.
type Candidate struct {
	Text   string
	Origin Origin
}

type finder func(doc *goquery.Document, r Rules) []string

type strategy struct {
	origin Origin
	find   finder
	// fallback strategies only run while no candidate has been kept.
	fallback bool
}

var strategies = []strategy{
	{origin: OriginScriptPayload, find: scriptPayloadLocations},
	{origin: OriginCSSSelector, find: selectorLocations},
	{origin: OriginHeadingTag, find: headingLocations, fallback: true},
	{origin: OriginTextPattern, find: descriptionLocations},
}

// searchLocations runs every strategy in order and keeps the candidates
// that pass IsLocationText.
func searchLocations(doc *goquery.Document, r Rules) []Candidate {
	var out []Candidate
	for _, st := range strategies {
		if st.fallback && len(out) > 0 {
			continue
		}
		for _, text := range st.find(doc, r) {
			if r.IsLocationText(text) {
				out = append(out, Candidate{Text: text, Origin: st.origin})
			}
		}
	}
	return out
}

var scriptLocation = regexp.MustCompile(`"location"\s*:\s*"((?:[^"\\]|\\.)*)"`)

func scriptPayloadLocations(doc *goquery.Document, _ Rules) []string {
	var out []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		for _, m := range scriptLocation.FindAllStringSubmatch(s.Text(), -1) {
			v := m[1]
			var dec string
			if err := json.Unmarshal([]byte(`"`+v+`"`), &dec); err == nil {
				v = dec
			}
			v = strings.TrimRight(util.CleanText(v), ".,;:!-| ")
			if v != "" {
				out = append(out, v)
			}
		}
	})
	return out
}

func selectorLocations(doc *goquery.Document, r Rules) []string {
	var out []string
	for _, sel := range r.LocationSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := util.NormalizeLocation(s.Text()); t != "" {
				out = append(out, t)
			}
		})
	}
	return out
}

func headingLocations(doc *goquery.Document, _ Rules) []string {
	var out []string
	doc.Find("h3").Each(func(_ int, s *goquery.Selection) {
		if t := util.NormalizeLocation(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

// descriptionPatterns are tried in order; the first hit in a section wins.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][A-Za-z.'\-]*(?:\s+[A-Z][A-Za-z.'\-]*)*,\s*[A-Z]{2}(?:,\s*United States)?\b`),
	regexp.MustCompile(`\bRemote(?:\s*[-–]\s*[A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*)?\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+,\s*[A-Z]{2}\b`),
}

func descriptionLocations(doc *goquery.Document, r Rules) []string {
	var out []string
	for _, sel := range r.DescriptionSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := util.CleanText(blockText(s))
			for _, re := range descriptionPatterns {
				if m := re.FindString(text); m != "" {
					out = append(out, strings.TrimSpace(m))
					return
				}
			}
		})
	}
	return out
}
