// Package report presents job records as a console table, a CSV export,
// and an optional Markdown report.
package report

import (
	"jobcurator/internal/domain"
	"jobcurator/internal/scrape/util"
)

const (
	NotSpecified = "Not specified"

	tableURLWidth   = 50
	csvDescription  = 200
	tableTitleWidth = 60
)

var (
	tableHeader = []string{"Job Title", "Company", "Location", "Compensation", "URL"}
	csvHeader   = []string{"Job Title", "Company", "Location", "Compensation", "URL", "Description"}
)

func compensation(r domain.JobRecord) string {
	if r.HasCompensation() {
		return r.Compensation
	}
	return NotSpecified
}

func tableRow(r domain.JobRecord) []string {
	return []string{
		util.Truncate(r.Title, tableTitleWidth),
		r.Company,
		r.Location,
		compensation(r),
		util.Truncate(r.URL, tableURLWidth),
	}
}

func csvRow(r domain.JobRecord) []string {
	return []string{
		r.Title,
		r.Company,
		r.Location,
		compensation(r),
		r.URL,
		util.Truncate(r.Description, csvDescription),
	}
}
