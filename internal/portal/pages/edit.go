package pages

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal"
	"github.com/interseguro-qa/paynova-e2e/internal/portal/browser"
)

// StateObserved is the inbox state an observed request carries while it waits
// for the registrar to correct and resend it.
const StateObserved = "OBSERVADO"

type EditPage struct {
	page *rod.Page
	log  zerolog.Logger
}

func NewEditPage(page *rod.Page, log zerolog.Logger) *EditPage {
	return &EditPage{page: page, log: log}
}

// OpenObserved scans the inbox for the first row in OBSERVADO state matching
// the correlative or incident, and opens its detail view.
func (p *EditPage) OpenObserved(correlative, incident string) error {
	rows, err := p.page.Elements(SelectorInboxRow)
	if err != nil {
		return &portal.PortalError{Page: "edit", Operation: "open observed", Cause: err}
	}

	for _, row := range rows {
		text, err := row.Text()
		if err != nil {
			continue
		}
		if !strings.Contains(text, StateObserved) {
			continue
		}
		if !rowTextMatches(text, correlative, incident) {
			continue
		}

		view, err := row.Element(`button[title*="Ver"], button[title*="Detalle"], a[title*="Ver"]`)
		if err != nil {
			return &portal.PortalError{Page: "edit", Operation: "open observed",
				Cause: portal.ErrElementNotFound, Details: "view button on observed row"}
		}
		if err := view.Click("left", 1); err != nil {
			return &portal.PortalError{Page: "edit", Operation: "open observed", Cause: err}
		}

		// Editing only unlocks on observed requests, so the button doubles
		// as the loaded-and-in-the-right-state check.
		if _, err := p.page.Timeout(15*time.Second).ElementR("button", TextEditRequest); err != nil {
			return &portal.PortalError{Page: "edit", Operation: "open observed",
				Cause: portal.ErrTimeout, Details: "edit button did not render"}
		}
		return nil
	}

	return &portal.PortalError{Page: "edit", Operation: "open observed",
		Cause: portal.ErrRequestNotInbox, Details: "no row in " + StateObserved + " state matched"}
}

// StartEdit opens the edit form from the detail view.
func (p *EditPage) StartEdit() error {
	btn, err := p.page.ElementR("button", TextEditRequest)
	if err != nil {
		return &portal.PortalError{Page: "edit", Operation: "start edit",
			Cause: portal.ErrElementNotFound, Details: TextEditRequest}
	}
	if err := btn.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "edit", Operation: "start edit", Cause: err}
	}

	if _, err := p.page.Timeout(15*time.Second).ElementR("h1, h2, h3, div", TextEditFormTitle); err != nil {
		return &portal.PortalError{Page: "edit", Operation: "start edit",
			Cause: portal.ErrTimeout, Details: TextEditFormTitle}
	}
	if _, err := p.page.Timeout(15*time.Second).Element(SelectorAmountInput); err != nil {
		return &portal.PortalError{Page: "edit", Operation: "start edit",
			Cause: portal.ErrElementNotFound, Details: SelectorAmountInput}
	}
	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}

// SetAmount replaces the amount field value.
func (p *EditPage) SetAmount(amount string) error {
	input, err := p.page.Element(SelectorAmountInput)
	if err != nil {
		return &portal.PortalError{Page: "edit", Operation: "set amount",
			Cause: portal.ErrElementNotFound, Details: SelectorAmountInput}
	}
	if err := browser.ClearAndType(input, amount); err != nil {
		return &portal.PortalError{Page: "edit", Operation: "set amount", Cause: err}
	}
	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}

// AmountSaved reports whether the saved-data grid refreshed with the new
// amount. The grid lags behind the input, so it polls a few times.
func (p *EditPage) AmountSaved(amount string) bool {
	for attempt := 0; attempt < 5; attempt++ {
		html, err := p.page.HTML()
		if err == nil && amountInGrid(html, amount) {
			return true
		}
		time.Sleep(2 * time.Second)
	}
	return false
}

var nonDigitRe = regexp.MustCompile(`\D`)

// amountInGrid looks for the amount, digits only, inside any table cell of
// the saved-data grid.
func amountInGrid(html, amount string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	want := nonDigitRe.ReplaceAllString(amount, "")
	if want == "" {
		return false
	}

	found := false
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if found {
			return
		}
		tableText := strings.ToLower(table.Text())
		if !strings.Contains(tableText, "guardados") && !strings.Contains(tableText, "monto") {
			return
		}
		table.Find("td").Each(func(_ int, cell *goquery.Selection) {
			if nonDigitRe.ReplaceAllString(cell.Text(), "") == want {
				found = true
			}
		})
	})
	return found
}

// Update saves the edited form.
func (p *EditPage) Update() error {
	btn, err := p.page.ElementR("button", TextUpdate)
	if err != nil {
		return &portal.PortalError{Page: "edit", Operation: "update",
			Cause: portal.ErrElementNotFound, Details: TextUpdate}
	}
	if err := btn.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "edit", Operation: "update", Cause: err}
	}

	// The portal flashes a success alert when the grid resyncs; some builds
	// skip it, so its absence is not a failure.
	if el, err := p.page.Timeout(5*time.Second).Element(SelectorSuccessAlert); err == nil {
		if text, err := el.Text(); err == nil {
			p.log.Debug().Str("alerta", strings.TrimSpace(text)).Msg("update confirmed")
		}
	}
	return nil
}

// Send resubmits the corrected request into the approval chain.
func (p *EditPage) Send() error {
	btn, err := p.page.ElementR("button", TextSendRequest)
	if err != nil {
		return &portal.PortalError{Page: "edit", Operation: "send",
			Cause: portal.ErrElementNotFound, Details: TextSendRequest}
	}
	if err := btn.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "edit", Operation: "send", Cause: err}
	}
	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}
