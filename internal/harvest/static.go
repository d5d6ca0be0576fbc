package harvest

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/gocolly/colly/v2"
)

// Static harvests a server-rendered Nitter instance without a browser,
// fetching each page over plain HTTP and following the cursor link. It is a
// fallback for instances that render the timeline without JavaScript; the
// dedup semantics match the browser session, and so does the depth: one
// iteration is one page extracted, so a ceiling of zero fetches nothing.
type Static struct {
	query Query
	cfg   Config
	dedup *Deduplicator
}

// NewStatic creates a Static harvester for the given query.
func NewStatic(query Query, cfg Config) *Static {
	return &Static{query: query, cfg: cfg, dedup: NewDeduplicator()}
}

// Run performs the harvest and returns the accumulated unique entries.
// Fetch failures are logged and leave the run with a partial result.
func (s *Static) Run(ctx context.Context) []string {
	if s.query.MaxIterations == 0 {
		log.Info("iteration ceiling is zero, nothing to fetch")
		return s.dedup.Entries()
	}

	c := colly.NewCollector(
		colly.UserAgent(s.cfg.UserAgent),
	)
	c.SetRequestTimeout(s.cfg.NavTimeout)

	follows := 0
	nextURL := ""

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		log.Debug("fetching page", "url", r.URL.String())
	})

	c.OnHTML(entrySelector, func(e *colly.HTMLElement) {
		s.dedup.Add([]string{e.Text})
	})

	// The bottom-most cursor link on the page is the one that advances;
	// remember it and follow it once the current page is fully parsed.
	c.OnHTML(loadMoreSelector, func(e *colly.HTMLElement) {
		nextURL = e.Request.AbsoluteURL(e.Attr("href"))
	})

	c.OnScraped(func(r *colly.Response) {
		if nextURL == "" {
			log.Info("no load-more link, content exhausted", "unique", s.dedup.Size())
			return
		}
		// The initial page already used up one iteration.
		if follows >= s.query.MaxIterations-1 {
			return
		}
		follows++
		next := nextURL
		nextURL = ""
		if err := c.Visit(next); err != nil {
			log.Warn("failed to follow cursor link", "url", next, "err", err)
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		log.Warn("page fetch failed", "url", r.Request.URL.String(), "err", err)
	})

	searchURL := SearchURL(s.cfg.BaseURL, s.query.SearchTerm)
	log.Info("fetching", "url", searchURL)
	if err := c.Visit(searchURL); err != nil {
		log.Error("harvest ended early, keeping partial results",
			"err", err, "unique", s.dedup.Size())
	}
	c.Wait()

	return s.dedup.Entries()
}
