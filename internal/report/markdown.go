package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"jobcurator/internal/domain"
)

// Summary describes the run a Markdown report was produced from.
type Summary struct {
	Query     string
	Generated time.Time
	Pages     int
	Skipped   int
}

// WriteMarkdown writes a report with a run summary, per-company counts and
// the full job list.
func WriteMarkdown(w io.Writer, s Summary, records []domain.JobRecord) error {
	md := markdown.NewMarkdown(w)

	md.H1("Job Search Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Query", s.Query},
			{"Generated", s.Generated.Format("2006-01-02 15:04:05 MST")},
			{"Pages processed", strconv.Itoa(s.Pages)},
			{"Pages skipped", strconv.Itoa(s.Skipped)},
			{"Jobs", strconv.Itoa(len(records))},
		},
	})
	md.PlainText("")

	if len(records) == 0 {
		md.Note("No jobs matched the filters.")
		return md.Build()
	}

	md.H2("Companies")
	md.PlainText("")
	var companies []string
	for _, c := range companyCounts(records) {
		companies = append(companies, fmt.Sprintf("%s (%d)", c.name, c.n))
	}
	md.BulletList(companies...)
	md.PlainText("")

	md.H2("Jobs")
	md.PlainText("")
	rows := make([][]string, 0, len(records))
	withPay := 0
	for _, r := range records {
		if r.HasCompensation() {
			withPay++
		}
		rows = append(rows, []string{
			r.Title,
			r.Company,
			r.Location,
			compensation(r),
			markdown.Link("link", r.URL),
		})
	}
	md.Table(markdown.TableSet{Header: tableHeader, Rows: rows})
	md.PlainText("")
	md.Tip(fmt.Sprintf("%d of %d postings list compensation.", withPay, len(records)))
	return md.Build()
}

type companyCount struct {
	name string
	n    int
}

// companyCounts orders companies by posting count, then name.
func companyCounts(records []domain.JobRecord) []companyCount {
	m := map[string]int{}
	for _, r := range records {
		m[r.Company]++
	}
	out := make([]companyCount, 0, len(m))
	for name, n := range m {
		out = append(out, companyCount{name: name, n: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].name < out[j].name
	})
	return out
}
