// Package rank scores and ranks location candidates collected from a job page.
package rank

import (
	"regexp"
	"strings"

	"jobcurator/internal/scrape/util"
)

// Weights are the additive points awarded by LocationScorer.
type Weights struct {
	City       int `yaml:"city"`
	CommaState int `yaml:"comma_state"`
	StateCode  int `yaml:"state_code"`
	Remote     int `yaml:"remote"`
	India      int `yaml:"india"`
	StateName  int `yaml:"state_name"`
	Country    int `yaml:"country"`
	Short      int `yaml:"short"`
}

func DefaultWeights() Weights {
	return Weights{
		City:       100,
		CommaState: 80,
		StateCode:  70,
		Remote:     60,
		India:      50,
		StateName:  40,
		Country:    10,
		Short:      -20,
	}
}

// Overlay returns w with every non-zero weight of o applied.
func (w Weights) Overlay(o Weights) Weights {
	set := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	set(&w.City, o.City)
	set(&w.CommaState, o.CommaState)
	set(&w.StateCode, o.StateCode)
	set(&w.Remote, o.Remote)
	set(&w.India, o.India)
	set(&w.StateName, o.StateName)
	set(&w.Country, o.Country)
	set(&w.Short, o.Short)
	return w
}

var trailingStateCode = regexp.MustCompile(`,\s*[A-Z]{2}\s*$`)

// LocationScorer ranks location strings so that specific geography
// (a city, "City, ST") beats generic text ("USA", a bare "NY").
type LocationScorer struct {
	Cities    []string // lower-case
	States    []string // lower-case full names
	Countries []string // generic sentinels matched exactly
	Weights   Weights
}

var _ Scorer = LocationScorer{}

func (s LocationScorer) Score(text string) (int, []string) {
	lower := util.FoldAccents(strings.TrimSpace(text))
	w := s.Weights

	score := 0
	var tags []string
	add := func(tag string, pts int) {
		score += pts
		tags = append(tags, tag)
	}

	if containsAny(lower, s.Cities) {
		add("city", w.City)
	}
	hasState := containsAny(lower, s.States)
	if hasState && strings.Contains(lower, ",") {
		add("comma_state", w.CommaState)
	}
	if trailingStateCode.MatchString(text) {
		add("state_code", w.StateCode)
	}
	if strings.Contains(lower, "remote") {
		add("remote", w.Remote)
	}
	if strings.Contains(lower, "india") {
		add("india", w.India)
	}
	if hasState {
		add("state_name", w.StateName)
	}
	for _, c := range s.Countries {
		if lower == c {
			add("country", w.Country)
			break
		}
	}
	if len(strings.TrimSpace(text)) <= 3 {
		add("short", w.Short)
	}
	return score, tags
}

// Ranked is a scored candidate.
type Ranked struct {
	Text  string
	Score int
	Tags  []string
}

// Rank dedupes candidates by exact text (first occurrence wins) and scores
// each one, preserving first-seen order.
func (s LocationScorer) Rank(candidates []string) []Ranked {
	seen := make(map[string]bool, len(candidates))
	out := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		score, tags := s.Score(c)
		out = append(out, Ranked{Text: c, Score: score, Tags: tags})
	}
	return out
}

// Best returns the highest scoring candidate. Ties go to the earliest one.
func (s LocationScorer) Best(candidates []string) (Ranked, bool) {
	ranked := s.Rank(candidates)
	if len(ranked) == 0 {
		return Ranked{}, false
	}
	best := ranked[0]
	for _, r := range ranked[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best, true
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
