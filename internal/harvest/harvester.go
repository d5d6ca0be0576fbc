package harvest

import "context"

// Harvester runs one complete harvest and returns the unique entries in
// first-seen order. Implementations never fail the run: any page-interaction
// failure is logged and whatever was accumulated before it is returned.
type Harvester interface {
	Run(ctx context.Context) []string
}
