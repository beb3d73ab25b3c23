package extract

import (
	"strings"

	"jobcurator/internal/scrape/util"
)

const minTitleLen = 3

// guardLocation drops a location that is really title text: equal to the
// title, containing it, or carrying a role keyword.
func guardLocation(title, location string, r Rules) string {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return ""
	}
	lowerLoc := util.FoldAccents(loc)
	lowerTitle := util.FoldAccents(strings.TrimSpace(title))
	if lowerTitle != "" && (lowerLoc == lowerTitle || strings.Contains(lowerLoc, lowerTitle)) {
		return ""
	}
	if r.hasRoleKeyword(lowerLoc) {
		return ""
	}
	return loc
}

func validRecord(title, company string) bool {
	title = strings.TrimSpace(title)
	return title != "" && len(title) > minTitleLen && strings.TrimSpace(company) != ""
}
