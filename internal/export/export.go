package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Exporter serializes a harvested entry sequence to a file. A failed write
// is the one hard failure of a run and must propagate to the caller.
type Exporter interface {
	Export(entries []string, filename string) error
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONExporter{}, nil
	case "csv":
		return &CSVExporter{}, nil
	case "text":
		return &TextExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// InferFormat guesses the format from a file extension; empty when unknown.
func InferFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	case ".txt":
		return "text"
	default:
		return ""
	}
}
