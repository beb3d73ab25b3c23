package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"jobcurator/internal/domain"
)

// ExportName is the default export file name for a run started at t.
func ExportName(t time.Time) string {
	return fmt.Sprintf("jobs_%s.csv", t.Format("20060102_150405"))
}

func WriteCSV(w io.Writer, records []domain.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(csvRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes records to path, creating its directory. It returns the
// number of bytes written.
func ExportCSV(path string, records []domain.JobRecord) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("write export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
