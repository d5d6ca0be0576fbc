package harvest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractEntries reads all currently-rendered tweet texts from an HTML
// snapshot and returns them trimmed, in DOM order. Blank items (media-only
// tweets) are kept so the batch length matches the rendered element count
// that the growth-wait polls; the Deduplicator skips them on insert.
// It is a pure read over the snapshot and is safe to call repeatedly.
func ExtractEntries(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	var entries []string
	doc.Find(entrySelector).Each(func(_ int, s *goquery.Selection) {
		entries = append(entries, strings.TrimSpace(s.Text()))
	})
	return entries, nil
}
