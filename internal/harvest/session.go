package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod/lib/proto"

	"nitharvest/internal/browser"
)

// Session drives a headless browser through one harvest run. The browser and
// page are owned exclusively by the session and released on every exit path.
type Session struct {
	query Query
	cfg   Config
	dedup *Deduplicator
}

// NewSession creates a Session for the given query.
func NewSession(query Query, cfg Config) *Session {
	return &Session{query: query, cfg: cfg, dedup: NewDeduplicator()}
}

// Run performs the harvest and returns the accumulated unique entries.
// Navigation, extraction and controller failures end the run early with a
// partial result; they are logged here, never re-raised.
func (s *Session) Run(ctx context.Context) []string {
	if err := s.harvest(ctx); err != nil {
		log.Error("harvest ended early, keeping partial results",
			"err", err, "unique", s.dedup.Size())
	}
	return s.dedup.Entries()
}

func (s *Session) harvest(ctx context.Context) (err error) {
	// rod panics on some driver-level failures; contain them at this
	// boundary like any other page-interaction error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page interaction failed: %v", r)
		}
	}()

	b, err := browser.New(browser.Config{
		ProxyURL: s.cfg.ProxyURL,
		Headless: !s.cfg.ShowUI,
	})
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	defer b.Close()

	page, err := b.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: s.cfg.UserAgent,
	})

	searchURL := SearchURL(s.cfg.BaseURL, s.query.SearchTerm)
	log.Info("navigating", "url", searchURL)

	if err := page.Timeout(s.cfg.NavTimeout).Navigate(searchURL); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.Timeout(s.cfg.NavTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}

	// Wait for network idle so the timeline is populated before the first
	// extraction.
	wait := page.Timeout(s.cfg.NavTimeout).WaitRequestIdle(
		500*time.Millisecond, nil, nil,
		[]proto.NetworkResourceType{proto.NetworkResourceTypeImage, proto.NetworkResourceTypeMedia},
	)
	wait()

	settle(ctx, s.cfg.SettleDelay)
	if _, err := page.Timeout(s.cfg.EvalTimeout).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		return fmt.Errorf("failed to scroll: %w", err)
	}
	settle(ctx, s.cfg.SettleDelay)

	paginator := NewPaginator(NewClient(page, s.cfg), s.dedup, s.cfg)
	res, err := paginator.Run(ctx, s.query.MaxIterations)
	log.Info("pagination finished",
		"state", res.Final, "iterations", res.Iterations,
		"stalls", res.Stalls, "unique", s.dedup.Size())
	return err
}

// settle sleeps for the given delay, returning early on cancellation.
func settle(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
