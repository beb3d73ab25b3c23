package extract

import (
	"regexp"
	"strings"

	"jobcurator/internal/rank"
	"jobcurator/internal/scrape/util"
)

// Rules is the tunable data behind location validation and ranking. Every
// list may be replaced from the config file; empty lists keep the defaults.
type Rules struct {
	// Denylist rejects candidates that leak job-title or HR text.
	Denylist []string `yaml:"denylist"`
	// Indicators must appear at least once for a candidate to count as a location.
	Indicators []string `yaml:"indicators"`
	Cities     []string `yaml:"cities"`
	States     []string `yaml:"states"`
	StateCodes []string `yaml:"state_codes"`
	// Countries are the generic country sentinels scored when matched exactly.
	Countries []string `yaml:"countries"`
	// RoleKeywords discard a resolved location that looks like part of a title.
	RoleKeywords []string `yaml:"role_keywords"`

	LocationSelectors    []string `yaml:"location_selectors"`
	DescriptionSelectors []string `yaml:"description_selectors"`

	Weights rank.Weights `yaml:"weights"`
}

func DefaultRules() Rules {
	return Rules{
		Denylist: []string{
			"engineer", "developer", "scientist", "analyst", "manager", "director",
			"designer", "architect", "consultant", "specialist", "coordinator",
			"recruiter", "internship", "senior", "junior", "staff", "principal",
			"data", "careers", "career", "benefits", "requirements", "responsibilities",
			"qualifications", "apply", "application", "salary", "compensation",
			"about us", "our team", "job description", "equal opportunity",
		},
		Indicators: append(append(append([]string{
			"remote", "hybrid", "anywhere", "worldwide",
			"united states", "usa", "us", "america", "canada", "mexico", "brazil",
			"united kingdom", "uk", "england", "ireland", "germany", "france", "spain",
			"portugal", "netherlands", "poland", "sweden", "switzerland", "israel",
			"india", "singapore", "japan", "australia", "new zealand", "philippines",
		}, defaultStates...), defaultStateCodes...), defaultCities...),
		Cities:     append([]string(nil), defaultCities...),
		States:     append([]string(nil), defaultStates...),
		StateCodes: append([]string(nil), defaultStateCodes...),
		Countries:  []string{"united states", "usa", "america"},
		RoleKeywords: []string{
			"scientist", "engineer", "manager", "director", "senior", "staff", "principal", "data",
		},
		LocationSelectors: []string{
			"div.location",
			".location",
			"[data-qa='job-location']",
			".job-location",
			".job__location",
			".opening .location",
			".app-title + .location",
			"[data-testid='job-location']",
			"[data-testid='location']",
			"div[class*='location']",
			"span[class*='location']",
			"span.caption",
			".job__header h2",
			"#header h2",
			"h4",
		},
		DescriptionSelectors: []string{
			"#content",
			".job__description",
			"#app_body",
			"div[class*='description']",
			"section[class*='description']",
		},
		Weights: rank.DefaultWeights(),
	}
}

var defaultCities = []string{
	"new york", "san francisco", "los angeles", "seattle", "boston", "chicago", "austin",
	"denver", "atlanta", "miami", "dallas", "houston", "washington", "philadelphia",
	"san diego", "san jose", "portland", "phoenix", "minneapolis", "pittsburgh",
	"salt lake city", "nashville", "raleigh", "detroit", "toronto", "vancouver", "montreal",
	"london", "dublin", "berlin", "munich", "paris", "amsterdam", "madrid", "barcelona",
	"lisbon", "stockholm", "zurich", "tel aviv", "bangalore", "bengaluru", "hyderabad",
	"pune", "mumbai", "new delhi", "gurgaon", "chennai", "singapore", "tokyo", "sydney",
	"melbourne", "sao paulo", "mexico city",
}

var defaultStates = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado", "connecticut",
	"delaware", "florida", "georgia", "hawaii", "idaho", "illinois", "indiana", "iowa",
	"kansas", "kentucky", "louisiana", "maine", "maryland", "massachusetts", "michigan",
	"minnesota", "mississippi", "missouri", "montana", "nebraska", "nevada",
	"new hampshire", "new jersey", "new mexico", "new york", "north carolina",
	"north dakota", "ohio", "oklahoma", "oregon", "pennsylvania", "rhode island",
	"south carolina", "south dakota", "tennessee", "texas", "utah", "vermont", "virginia",
	"washington", "west virginia", "wisconsin", "wyoming",
}

var defaultStateCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN",
	"IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV",
	"NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN",
	"TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY", "DC",
}

// Merge overlays the non-empty lists and non-zero weights of o onto r.
func (r Rules) Merge(o Rules) Rules {
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&r.Denylist, o.Denylist)
	pick(&r.Indicators, o.Indicators)
	pick(&r.Cities, o.Cities)
	pick(&r.States, o.States)
	pick(&r.StateCodes, o.StateCodes)
	pick(&r.Countries, o.Countries)
	pick(&r.RoleKeywords, o.RoleKeywords)
	pick(&r.LocationSelectors, o.LocationSelectors)
	pick(&r.DescriptionSelectors, o.DescriptionSelectors)

	r.Weights = r.Weights.Overlay(o.Weights)
	return r
}

// Scorer builds the disambiguator for these rules.
func (r Rules) Scorer() rank.LocationScorer {
	return rank.LocationScorer{
		Cities:    lowerAll(r.Cities),
		States:    lowerAll(r.States),
		Countries: lowerAll(r.Countries),
		Weights:   r.Weights,
	}
}

var shortToken = regexp.MustCompile(`\b[a-z]{2,3}\b`)

// IsLocationText is the two-sided filter every heuristic candidate must
// pass: sane length, no denylisted term, at least one location indicator.
// Indicators of three characters or fewer match whole words only, in any
// case, so "id" counts in "Boise, id" but not inside "video".
func (r Rules) IsLocationText(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) <= 2 || len(text) > 100 {
		return false
	}
	lower := util.FoldAccents(text)
	for _, d := range r.Denylist {
		if d != "" && strings.Contains(lower, strings.ToLower(d)) {
			return false
		}
	}

	tokens := map[string]bool{}
	for _, t := range shortToken.FindAllString(lower, -1) {
		tokens[t] = true
	}
	for _, ind := range r.Indicators {
		ind = strings.TrimSpace(ind)
		if ind == "" {
			continue
		}
		if len(ind) <= 3 {
			if tokens[strings.ToLower(ind)] {
				return true
			}
			continue
		}
		if strings.Contains(lower, util.FoldAccents(ind)) {
			return true
		}
	}
	return false
}

func (r Rules) hasRoleKeyword(lower string) bool {
	for _, k := range r.RoleKeywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = util.FoldAccents(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
