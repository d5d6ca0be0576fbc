package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// State names a position in the pagination protocol.
type State int

const (
	StateReady State = iota
	StateCycling
	StateExhausted
	StateStalled
	StateDone
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateCycling:
		return "cycling"
	case StateExhausted:
		return "exhausted"
	case StateStalled:
		return "stalled"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// pageDriver is the minimal page surface the paginator drives. The rod
// client implements it against a live page; tests substitute fakes.
type pageDriver interface {
	// ExtractItems returns the currently-rendered tweet texts in DOM order.
	ExtractItems() ([]string, error)
	// CountItems returns the current rendered tweet count.
	CountItems() (int, error)
	// TriggerLoadMore activates the load-more control. It returns false
	// when the control is absent, which means the content is exhausted.
	TriggerLoadMore() (bool, error)
}

// Result summarizes a finished pagination run.
type Result struct {
	Iterations int
	Stalls     int
	Final      State
}

// Paginator drives the incremental-load protocol: extract the visible batch,
// trigger the next one, then wait for the rendered count to grow. The
// load-more control's absence is the only hard stop; a cycle whose count
// never grows within the retry budget is recorded as a stall and the run
// continues, since a lagging page may recover on a later trigger.
type Paginator struct {
	driver pageDriver
	dedup  *Deduplicator
	cfg    Config
}

// NewPaginator creates a Paginator feeding the given Deduplicator.
func NewPaginator(driver pageDriver, dedup *Deduplicator, cfg Config) *Paginator {
	return &Paginator{driver: driver, dedup: dedup, cfg: cfg}
}

// Run performs up to maxIterations cycles and reports how the loop ended.
// On error the Deduplicator keeps everything accumulated so far.
func (p *Paginator) Run(ctx context.Context, maxIterations int) (Result, error) {
	res := Result{Final: StateReady}

	for i := 0; i < maxIterations; i++ {
		res.Iterations = i + 1
		res.Final = StateCycling

		items, err := p.driver.ExtractItems()
		if err != nil {
			return res, fmt.Errorf("failed to extract items on iteration %d: %w", i, err)
		}
		// Extraction keeps blank items, so this equals the rendered
		// element count that the growth-wait polls against.
		countBefore := len(items)
		unique := p.dedup.Add(items)
		log.Debug("extracted batch", "iteration", i, "visible", countBefore, "unique", unique)

		triggered, err := p.driver.TriggerLoadMore()
		if err != nil {
			return res, fmt.Errorf("failed to trigger load more on iteration %d: %w", i, err)
		}
		if !triggered {
			res.Final = StateExhausted
			log.Info("no load-more control, content exhausted", "iteration", i, "unique", unique)
			return res, nil
		}

		if !p.waitForGrowth(ctx, countBefore) {
			res.Stalls++
			res.Final = StateStalled
			log.Warn("item count did not grow, continuing anyway", "iteration", i, "visible", countBefore)
		}

		if err := ctx.Err(); err != nil {
			return res, err
		}
	}

	res.Final = StateDone
	return res, nil
}

// waitForGrowth polls the rendered count until it exceeds countBefore,
// giving up after the configured retry budget.
func (p *Paginator) waitForGrowth(ctx context.Context, countBefore int) bool {
	for attempt := 0; attempt < p.cfg.RetryBudget; attempt++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(p.cfg.PollInterval):
		}

		count, err := p.driver.CountItems()
		if err != nil {
			log.Debug("count poll failed", "attempt", attempt, "err", err)
			continue
		}
		if count > countBefore {
			log.Debug("new items rendered", "attempt", attempt, "count", count)
			return true
		}
	}
	return false
}
