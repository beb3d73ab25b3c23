package scrape

import (
	"strings"

	"jobcurator/internal/domain"
	"jobcurator/internal/scrape/util"
)

// MapBoards turns board slugs into companies, display-casing the slug for
// the name and dropping blanks and repeats.
func MapBoards(slugs []string) []domain.Company {
	seen := map[string]bool{}
	out := make([]domain.Company, 0, len(slugs))
	for _, s := range slugs {
		slug := strings.ToLower(strings.TrimSpace(s))
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, domain.Company{
			Slug: slug,
			Name: util.DisplayName(slug),
		})
	}
	return out
}
