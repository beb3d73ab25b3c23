package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcurator/internal/domain"
)

func sampleRecords() []domain.JobRecord {
	return []domain.JobRecord{
		{
			Title:        "Senior Data Engineer",
			Company:      "Acme",
			Location:     "Remote",
			Compensation: "$120,000 - $150,000",
			Description:  strings.Repeat("x", 250),
			URL:          "https://boards.greenhouse.io/acme/jobs/1234567890?gh_jid=1234567890",
		},
		{
			Title:    "Product Designer",
			Company:  "Globex",
			Location: domain.LocationNotSpecified,
			URL:      "https://boards.greenhouse.io/globex/jobs/7",
		},
		{
			Title:    "Backend Engineer",
			Company:  "Acme",
			Location: "Austin, TX",
			URL:      "https://boards.greenhouse.io/acme/jobs/8",
		},
	}
}

func TestExportName(t *testing.T) {
	t.Parallel()
	ts := time.Date(2026, 10, 19, 8, 5, 9, 0, time.UTC)
	assert.Equal(t, "jobs_20261019_080509.csv", ExportName(ts))
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "$120,000 - $150,000", first[3])
	assert.Equal(t, sampleRecords()[0].URL, first[4], "csv keeps the full url")
	assert.Equal(t, strings.Repeat("x", 200)+"...", first[5])

	assert.Equal(t, NotSpecified, rows[2][3])
	assert.Equal(t, "", rows[2][5])
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "jobs.csv")
	n, err := ExportCSV(path, sampleRecords())
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(b)), n)
	assert.True(t, strings.HasPrefix(string(b), "Job Title,Company,Location,Compensation,URL,Description\n"))
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, WriteTable(&buf, nil))
		assert.Equal(t, "No jobs found matching your criteria.\n", buf.String())
	})

	t.Run("rows", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, WriteTable(&buf, sampleRecords()))
		out := buf.String()
		assert.Contains(t, out, "Found 3 job(s):")
		assert.Contains(t, out, "Globex")
		assert.Contains(t, out, "Remote")
		assert.Contains(t, out, sampleRecords()[0].URL[:50]+"...")
		assert.NotContains(t, out, sampleRecords()[0].URL)
	})
}

func TestTableRow(t *testing.T) {
	t.Parallel()
	row := tableRow(sampleRecords()[0])
	assert.Len(t, row, len(tableHeader))
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1234567890?...", row[4])
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := Summary{Query: "engineer", Generated: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), Pages: 5, Skipped: 2}
	require.NoError(t, WriteMarkdown(&buf, s, sampleRecords()))

	out := buf.String()
	assert.Contains(t, out, "# Job Search Report")
	assert.Contains(t, out, "engineer")
	assert.Contains(t, out, "Acme (2)")
	assert.Contains(t, out, "Globex (1)")
	assert.Less(t, strings.Index(out, "Acme (2)"), strings.Index(out, "Globex (1)"))
	assert.Contains(t, out, "(https://boards.greenhouse.io/globex/jobs/7)")
	assert.Contains(t, out, "1 of 3 postings list compensation.")
}

func TestWriteMarkdown_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, Summary{Query: "x", Generated: time.Now()}, nil))
	assert.Contains(t, buf.String(), "No jobs matched the filters.")
	assert.NotContains(t, buf.String(), "## Jobs")
}
