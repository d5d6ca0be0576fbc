package export

import (
	"fmt"
	"os"
	"strings"
)

// TextExporter writes the entries as plain text separated by blank lines.
// Entries may span multiple lines, so this format is for reading, not for
// re-parsing; use JSON or CSV for downstream consumers.
type TextExporter struct{}

func (e *TextExporter) Export(entries []string, filename string) error {
	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(entry)
	}
	sb.WriteString("\n")

	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
