package domain

// RawPage is one fetched or cached job page. Filename is the cache name
// ({company}_jobs_{id}.html) and doubles as a company hint when URL is empty.
type RawPage struct {
	Content  string
	URL      string
	Filename string
}
