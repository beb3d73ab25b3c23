package domain

import "time"

// LocationNotSpecified stands in for a location no strategy could resolve.
const LocationNotSpecified = "Location not specified"

// UnknownCompany is used when neither the page nor its source identifies the employer.
const UnknownCompany = "Unknown Company"

type JobRecord struct {
	Title        string
	Company      string
	Location     string
	Compensation string // empty when the posting does not state pay
	Description  string
	PostedAt     *time.Time
	URL          string
}

// HasCompensation reports whether a pay range or salary figure was found.
func (j JobRecord) HasCompensation() bool { return j.Compensation != "" }
