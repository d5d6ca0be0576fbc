package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONExporter writes the entries as a pretty-printed JSON array of strings,
// the artifact shape the downstream sentiment classifier reads.
type JSONExporter struct{}

func (e *JSONExporter) Export(entries []string, filename string) error {
	if entries == nil {
		entries = []string{}
	}
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
