// Package flows implements the end-to-end scenarios: registering payment
// requests and driving them through their approval chains. Flows wire the
// threshold resolver and the correlation store to the portal page objects.
package flows

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal/browser"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/approval"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/config"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/correlation"
)

// Context carries everything a scenario needs. It is threaded explicitly
// through each flow instead of living in process-wide globals, so two
// contexts never share hidden state.
type Context struct {
	Cfg      config.Config
	Data     *config.TestData
	Fixtures config.RequestFixtures
	Store    *correlation.Store
	Resolver *approval.Resolver
	Browser  *rod.Browser
	Log      zerolog.Logger
}

// NewPage opens a fresh page for one login session. Every authentication in
// a flow uses its own page: each login is a stateless session by design.
func (c *Context) NewPage() (*rod.Page, error) {
	page, err := browser.NewPage(c.Browser, c.Cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("new scenario page: %w", err)
	}
	return page, nil
}
