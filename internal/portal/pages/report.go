package pages

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal"
	"github.com/interseguro-qa/paynova-e2e/internal/portal/browser"
)

type ReportPage struct {
	page *rod.Page
	log  zerolog.Logger
}

func NewReportPage(page *rod.Page, log zerolog.Logger) *ReportPage {
	return &ReportPage{page: page, log: log}
}

// Navigate opens the reportería view. The result table stays empty until a
// filter is applied or CONSULTAR is pressed.
func (p *ReportPage) Navigate() error {
	if err := openSubmenu(p.page, SelectorReportLink, "report"); err != nil {
		return err
	}
	if _, err := p.page.Timeout(10*time.Second).ElementR("h1, h2, h3, div", TextReportTitle); err != nil {
		return &portal.PortalError{Page: "report", Operation: "open report",
			Cause: portal.ErrTimeout, Details: TextReportTitle}
	}
	return nil
}

// FilterByCorrelative fills the reactive correlative filter.
func (p *ReportPage) FilterByCorrelative(correlative string) error {
	input, err := p.page.Element(SelectorReportCorrelativeFilter)
	if err != nil {
		return &portal.PortalError{Page: "report", Operation: "filter correlative",
			Cause: portal.ErrElementNotFound, Details: SelectorReportCorrelativeFilter}
	}
	if err := browser.ClearAndType(input, correlative); err != nil {
		return &portal.PortalError{Page: "report", Operation: "filter correlative", Cause: err}
	}
	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}

// Consult runs the query with the current filters.
func (p *ReportPage) Consult() error {
	btn, err := p.page.ElementR("button", TextConsult)
	if err != nil {
		return &portal.PortalError{Page: "report", Operation: "consult",
			Cause: portal.ErrElementNotFound, Details: TextConsult}
	}
	if err := btn.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "report", Operation: "consult", Cause: err}
	}
	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}

// Columns reads the result-table header names.
func (p *ReportPage) Columns() ([]string, error) {
	html, err := p.page.HTML()
	if err != nil {
		return nil, &portal.PortalError{Page: "report", Operation: "read columns", Cause: err}
	}
	return ParseTableHeaders(html)
}

// HasRecord reports whether the filtered results list the correlative.
func (p *ReportPage) HasRecord(correlative string) (bool, error) {
	html, err := p.page.HTML()
	if err != nil {
		return false, &portal.PortalError{Page: "report", Operation: "read results", Cause: err}
	}
	return tableHasCell(html, correlative), nil
}

// openSubmenu expands the payments menu and follows a submenu link.
func openSubmenu(page *rod.Page, linkSelector, pageName string) error {
	menu, err := page.ElementR("button", TextMenuPayRequests)
	if err != nil {
		return &portal.PortalError{Page: pageName, Operation: "open menu",
			Cause: portal.ErrElementNotFound, Details: TextMenuPayRequests}
	}
	if err := menu.Click("left", 1); err != nil {
		return &portal.PortalError{Page: pageName, Operation: "open menu", Cause: err}
	}

	link, err := page.Element(linkSelector)
	if err != nil {
		return &portal.PortalError{Page: pageName, Operation: "open submenu",
			Cause: portal.ErrElementNotFound, Details: linkSelector}
	}
	if err := link.Click("left", 1); err != nil {
		return &portal.PortalError{Page: pageName, Operation: "open submenu", Cause: err}
	}
	return page.WaitDOMStable(300*time.Millisecond, 0)
}

// ParseTableHeaders extracts the thead cell texts of the first table that
// declares headers.
func ParseTableHeaders(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var headers []string
	doc.Find("table thead th").Each(func(_ int, th *goquery.Selection) {
		if text := strings.TrimSpace(th.Text()); text != "" {
			headers = append(headers, text)
		}
	})
	return headers, nil
}

// tableHasCell reports whether any table cell holds the text.
func tableHasCell(html, text string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	found := false
	doc.Find("table tbody td").Each(func(_ int, cell *goquery.Selection) {
		if strings.Contains(strings.TrimSpace(cell.Text()), text) {
			found = true
		}
	})
	return found
}
