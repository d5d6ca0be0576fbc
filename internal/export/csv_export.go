package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

type entryRow struct {
	Text string `csv:"text"`
}

// CSVExporter writes the entries as a single-column CSV with a header row.
type CSVExporter struct{}

func (e *CSVExporter) Export(entries []string, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	rows := make([]entryRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entryRow{Text: entry})
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
