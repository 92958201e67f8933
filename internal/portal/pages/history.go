package pages

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal"
	"github.com/interseguro-qa/paynova-e2e/internal/portal/browser"
)

type HistoryPage struct {
	page *rod.Page
	log  zerolog.Logger
}

func NewHistoryPage(page *rod.Page, log zerolog.Logger) *HistoryPage {
	return &HistoryPage{page: page, log: log}
}

// Navigate opens the personal request history view.
func (p *HistoryPage) Navigate() error {
	return openSubmenu(p.page, SelectorHistoryLink, "history")
}

// SearchCorrelative fills the correlative filter and runs the search.
func (p *HistoryPage) SearchCorrelative(correlative string) error {
	input, err := p.page.Element(SelectorReportCorrelativeFilter)
	if err != nil {
		return &portal.PortalError{Page: "history", Operation: "search correlative",
			Cause: portal.ErrElementNotFound, Details: SelectorReportCorrelativeFilter}
	}
	if err := browser.ClearAndType(input, correlative); err != nil {
		return &portal.PortalError{Page: "history", Operation: "search correlative", Cause: err}
	}

	// The search button only exists in some builds; the filter itself is
	// reactive, so a missing button is not an error.
	if btn, err := p.page.Timeout(3*time.Second).ElementR("button", "BUSCAR|Buscar"); err == nil {
		if err := btn.Click("left", 1); err != nil {
			return &portal.PortalError{Page: "history", Operation: "search correlative", Cause: err}
		}
	}
	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}

// Columns reads the history-table header names.
func (p *HistoryPage) Columns() ([]string, error) {
	html, err := p.page.HTML()
	if err != nil {
		return nil, &portal.PortalError{Page: "history", Operation: "read columns", Cause: err}
	}
	return ParseTableHeaders(html)
}

// HasRecord reports whether the history table lists the correlative.
func (p *HistoryPage) HasRecord(correlative string) (bool, error) {
	html, err := p.page.HTML()
	if err != nil {
		return false, &portal.PortalError{Page: "history", Operation: "read history", Cause: err}
	}
	return tableHasCell(html, correlative), nil
}
