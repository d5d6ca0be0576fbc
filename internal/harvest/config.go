package harvest

import "time"

// Selectors for the Nitter search timeline. The load-more control is the
// anchor whose target carries the continuation cursor; its absence is the
// authoritative end-of-content signal.
const (
	entrySelector    = `.timeline .timeline-item .tweet-content`
	loadMoreSelector = `.show-more a[href*="cursor"]`
)

// DefaultMaxIterations is the pagination depth used when the CLI does not
// specify one.
const DefaultMaxIterations = 5

// Config holds the timing constants and browser identity for a harvest run.
// Everything here has a working default; tests substitute short intervals.
type Config struct {
	// BaseURL is the Nitter instance to search on.
	BaseURL string
	// UserAgent is sent on every page and request.
	UserAgent string
	// NavTimeout bounds navigation and the network-idle wait.
	NavTimeout time.Duration
	// EvalTimeout bounds individual in-page evaluations.
	EvalTimeout time.Duration
	// SettleDelay is the fixed wait that lets asynchronous rendering catch
	// up after the initial load and after the first scroll.
	SettleDelay time.Duration
	// PollInterval spaces the growth-wait polls after a load-more trigger.
	PollInterval time.Duration
	// RetryBudget is the number of growth-wait polls per cycle before the
	// cycle is declared stalled.
	RetryBudget int

	ShowUI   bool
	ProxyURL string
}

// DefaultConfig returns the production timing profile.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://nitter.net",
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		NavTimeout:   30 * time.Second,
		EvalTimeout:  10 * time.Second,
		SettleDelay:  2 * time.Second,
		PollInterval: 2 * time.Second,
		RetryBudget:  10,
	}
}
