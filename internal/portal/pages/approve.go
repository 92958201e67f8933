package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal"
	"github.com/interseguro-qa/paynova-e2e/internal/portal/browser"
)

type ApprovePage struct {
	page *rod.Page
	log  zerolog.Logger
}

func NewApprovePage(page *rod.Page, log zerolog.Logger) *ApprovePage {
	return &ApprovePage{page: page, log: log}
}

// NavigateInbox opens the pending-requests view through the payments menu.
func (p *ApprovePage) NavigateInbox() error {
	menu, err := p.page.ElementR("button", TextMenuPayRequests)
	if err != nil {
		return &portal.PortalError{Page: "approve", Operation: "open menu",
			Cause: portal.ErrElementNotFound, Details: TextMenuPayRequests}
	}
	if err := menu.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "approve", Operation: "open menu", Cause: err}
	}

	link, err := p.page.Element(SelectorInboxLink)
	if err != nil {
		return &portal.PortalError{Page: "approve", Operation: "open inbox",
			Cause: portal.ErrElementNotFound, Details: SelectorInboxLink}
	}
	if err := link.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "approve", Operation: "open inbox", Cause: err}
	}

	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}

// Rows reads the current inbox table.
func (p *ApprovePage) Rows() ([]InboxRow, error) {
	html, err := p.page.HTML()
	if err != nil {
		return nil, &portal.PortalError{Page: "approve", Operation: "read inbox", Cause: err}
	}
	return ParseInbox(html)
}

// OpenRequest clicks the view-detail button on the row carrying the
// correlative or incident.
func (p *ApprovePage) OpenRequest(correlative, incident string) error {
	rows, err := p.page.Elements(SelectorInboxRow)
	if err != nil {
		return &portal.PortalError{Page: "approve", Operation: "open request", Cause: err}
	}

	for _, row := range rows {
		text, err := row.Text()
		if err != nil {
			continue
		}
		if !rowTextMatches(text, correlative, incident) {
			continue
		}

		view, err := row.Element(`button[title*="Ver"], button[title*="Detalle"], a[title*="Ver"]`)
		if err != nil {
			return &portal.PortalError{Page: "approve", Operation: "open request",
				Cause: portal.ErrElementNotFound, Details: "view button on matched row"}
		}
		if err := view.Click("left", 1); err != nil {
			return &portal.PortalError{Page: "approve", Operation: "open request", Cause: err}
		}

		// The detail view is ready once the action buttons render.
		if _, err := p.page.Timeout(10*time.Second).ElementR("button", TextApprove); err != nil {
			return &portal.PortalError{Page: "approve", Operation: "open request",
				Cause: portal.ErrTimeout, Details: "detail view did not load"}
		}
		return nil
	}

	return &portal.PortalError{Page: "approve", Operation: "open request",
		Cause:   portal.ErrRequestNotInbox,
		Details: fmt.Sprintf("correlativo=%s incidente=%s", correlative, incident)}
}

func rowTextMatches(text, correlative, incident string) bool {
	if correlative != "" && strings.Contains(text, correlative) {
		return true
	}
	return incident != "" && strings.Contains(text, incident)
}

// Approve clicks APROBAR on the open detail view and confirms.
func (p *ApprovePage) Approve() error {
	return p.act(TextApprove, "")
}

// Reject clicks RECHAZAR, enters the reason and confirms.
func (p *ApprovePage) Reject(reason string) error {
	return p.act(TextReject, reason)
}

// Observe clicks OBSERVAR (flag for review), enters the reason and confirms.
func (p *ApprovePage) Observe(reason string) error {
	return p.act(TextObserve, reason)
}

func (p *ApprovePage) act(buttonText, reason string) error {
	btn, err := p.page.ElementR("button", buttonText)
	if err != nil {
		return &portal.PortalError{Page: "approve", Operation: "action",
			Cause: portal.ErrElementNotFound, Details: buttonText}
	}
	if err := btn.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "approve", Operation: "action", Cause: err, Details: buttonText}
	}

	if reason != "" {
		textarea, err := p.page.Timeout(5*time.Second).Element("textarea")
		if err != nil {
			return &portal.PortalError{Page: "approve", Operation: "enter reason",
				Cause: portal.ErrElementNotFound}
		}
		if err := browser.Type(textarea, reason); err != nil {
			return &portal.PortalError{Page: "approve", Operation: "enter reason", Cause: err}
		}
	}

	confirm, err := p.page.Timeout(10*time.Second).ElementR("button", TextConfirm)
	if err != nil {
		return &portal.PortalError{Page: "approve", Operation: "confirm",
			Cause: portal.ErrModalNotFound, Details: buttonText}
	}
	if err := confirm.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "approve", Operation: "confirm", Cause: err}
	}

	p.log.Debug().Str("action", buttonText).Msg("request action confirmed")
	return nil
}

// BackInInbox reports whether the page returned to the pending-requests view.
func (p *ApprovePage) BackInInbox() bool {
	el, err := p.page.Timeout(10*time.Second).Element(SelectorInboxRow)
	if err != nil {
		return false
	}
	visible, _ := el.Visible()
	return visible
}

// StateOf refreshes the inbox and returns the state column for a request.
// The empty string means the request is no longer listed.
func (p *ApprovePage) StateOf(correlative, incident string) (string, error) {
	if err := p.page.Reload(); err != nil {
		return "", &portal.PortalError{Page: "approve", Operation: "refresh inbox", Cause: err}
	}
	if err := p.page.WaitDOMStable(300*time.Millisecond, 0); err != nil {
		return "", &portal.PortalError{Page: "approve", Operation: "refresh inbox", Cause: err}
	}

	rows, err := p.Rows()
	if err != nil {
		return "", err
	}

	row, ok := FindInboxRow(rows, correlative, incident)
	if !ok {
		return "", nil
	}
	return row.State, nil
}
