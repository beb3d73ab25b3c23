package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"jobcurator/internal/domain"
)

// WriteTable prints records as a grid, or a one-line notice when there are none.
func WriteTable(w io.Writer, records []domain.JobRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No jobs found matching your criteria.")
		return err
	}
	if _, err := fmt.Fprintf(w, "\nFound %d job(s):\n", len(records)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(tableHeader)
	for _, r := range records {
		if err := table.Append(tableRow(r)); err != nil {
			return fmt.Errorf("table row: %w", err)
		}
	}
	return table.Render()
}
