package harvest

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Deduplicator accumulates unique entries in first-seen order. Entries are
// keyed on exact string equality after trimming; no further canonicalization,
// so items differing only in casing or internal whitespace stay distinct.
//
// It is mutated by a single goroutine only and is not safe for concurrent use.
type Deduplicator struct {
	seen  mapset.Set[string]
	order []string
}

// NewDeduplicator creates an empty Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: mapset.NewThreadUnsafeSet[string]()}
}

// Add inserts the given items, trimming each and skipping blanks and
// duplicates, and returns the unique size afterwards. Inserting an
// already-present entry is a no-op.
func (d *Deduplicator) Add(items []string) int {
	for _, item := range items {
		entry := strings.TrimSpace(item)
		if entry == "" {
			continue
		}
		if d.seen.Add(entry) {
			d.order = append(d.order, entry)
		}
	}
	return len(d.order)
}

// Size returns the number of unique entries.
func (d *Deduplicator) Size() int {
	return len(d.order)
}

// Entries returns the unique entries in first-seen order.
func (d *Deduplicator) Entries() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}
