package extract

import "regexp"

var compensationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$[\d,]+\s*-\s*\$[\d,]+`),
	regexp.MustCompile(`(?i)\$[\d,]+k?\s*-\s*\$[\d,]+k?`),
	regexp.MustCompile(`(?i)salary:?\s*\$[\d,]+`),
	regexp.MustCompile(`(?i)compensation:?\s*\$[\d,]+`),
}

// ExtractCompensation returns the first dollar range or labeled salary
// figure in text, or "" when there is none.
func ExtractCompensation(text string) string {
	for _, re := range compensationPatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
