// Package browser provides utilities for browser automation with Rod.
package browser

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Options configure the launched browser.
type Options struct {
	Headless bool
	SlowMo   time.Duration
	Timeout  time.Duration
}

// Launch starts a Chromium instance. One browser is shared by the whole run;
// each scenario gets its own page via NewPage.
func Launch(opts Options) (*rod.Browser, error) {
	url, err := launcher.New().
		Headless(opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("window-size", "1920,1080").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(url)
	if opts.SlowMo > 0 {
		b = b.SlowMotion(opts.SlowMo)
	}
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	return b, nil
}

// NewPage opens a fresh stealth page. Callers own the page and must close it
// when the scenario ends.
func NewPage(b *rod.Browser, timeout time.Duration) (*rod.Page, error) {
	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	if timeout > 0 {
		page = page.Timeout(timeout)
	}

	return page, nil
}
