package harvest

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod"
)

// Client adapts a live rod page to the pageDriver surface.
type Client struct {
	page *rod.Page
	cfg  Config
}

// NewClient creates a Client for the given page.
func NewClient(page *rod.Page, cfg Config) *Client {
	return &Client{page: page, cfg: cfg}
}

// ExtractItems snapshots the page HTML and parses out the rendered tweets.
func (c *Client) ExtractItems() ([]string, error) {
	html, err := c.page.Timeout(c.cfg.EvalTimeout).HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot page: %w", err)
	}
	return ExtractEntries(strings.NewReader(html))
}

// CountItems returns the number of rendered tweets without parsing them.
func (c *Client) CountItems() (int, error) {
	val, err := c.page.Timeout(c.cfg.EvalTimeout).Eval(
		fmt.Sprintf(`() => document.querySelectorAll(%q).length`, entrySelector))
	if err != nil {
		return 0, err
	}
	return val.Value.Int(), nil
}

// TriggerLoadMore clicks the load-more control. A search page can render a
// "load newest" link above the timeline as well, so the bottom-most match is
// the one that advances the cursor. Returns false when no control exists.
func (c *Client) TriggerLoadMore() (bool, error) {
	val, err := c.page.Timeout(c.cfg.EvalTimeout).Eval(fmt.Sprintf(`() => {
		const links = document.querySelectorAll(%q);
		if (links.length === 0) return false;
		links[links.length - 1].click();
		return true;
	}`, loadMoreSelector))
	if err != nil {
		return false, err
	}
	return val.Value.Bool(), nil
}
