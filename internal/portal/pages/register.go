package pages

import (
	"strconv"
	"time"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal"
	"github.com/interseguro-qa/paynova-e2e/internal/portal/browser"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// RequestForm carries the values for one register-request submission.
type RequestForm struct {
	DNI           string
	Policy        string
	Currency      string
	Amount        money.Amount
	Bank          string
	AccountType   string
	AccountNumber string
}

type RegisterPage struct {
	page *rod.Page
	log  zerolog.Logger
}

func NewRegisterPage(page *rod.Page, log zerolog.Logger) *RegisterPage {
	return &RegisterPage{page: page, log: log}
}

// Navigate opens the register-request view through the payments menu.
func (p *RegisterPage) Navigate() error {
	menu, err := p.page.ElementR("button", TextMenuPayRequests)
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "open menu",
			Cause: portal.ErrElementNotFound, Details: TextMenuPayRequests}
	}
	if err := menu.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "register", Operation: "open menu", Cause: err}
	}

	link, err := p.page.Element(SelectorRegisterLink)
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "open register view",
			Cause: portal.ErrElementNotFound, Details: SelectorRegisterLink}
	}
	if err := link.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "register", Operation: "open register view", Cause: err}
	}

	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}

// SelectMemo picks the memo (business reason) driving this request.
func (p *RegisterPage) SelectMemo(memo string) error {
	sel, err := p.page.Element(SelectorMemoSelect)
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "select memo",
			Cause: portal.ErrElementNotFound, Details: SelectorMemoSelect}
	}
	if err := sel.Select([]string{memo}, true, rod.SelectorTypeText); err != nil {
		return &portal.PortalError{Page: "register", Operation: "select memo", Cause: err, Details: memo}
	}
	return nil
}

// SendMemo submits the memo selection; the portal answers with the group
// modal listing the candidate policy records.
func (p *RegisterPage) SendMemo() error {
	btn, err := p.page.ElementR("button", TextSendMemo)
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "send memo",
			Cause: portal.ErrElementNotFound, Details: TextSendMemo}
	}
	if err := btn.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "register", Operation: "send memo", Cause: err}
	}

	if _, err := p.page.Element(SelectorModal); err != nil {
		return &portal.PortalError{Page: "register", Operation: "send memo",
			Cause: portal.ErrModalNotFound, Details: "group modal"}
	}
	return nil
}

// SelectModalRecord ticks the nth (1-based) record in the group modal and
// saves the selection into the grid.
func (p *RegisterPage) SelectModalRecord(n int) error {
	selector := "table tbody tr:nth-child(" + strconv.Itoa(n) + `) input[type="checkbox"]`
	checkbox, err := p.page.Element(selector)
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "select modal record",
			Cause: portal.ErrElementNotFound, Details: selector}
	}
	if err := checkbox.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "register", Operation: "select modal record", Cause: err}
	}

	save, err := p.page.ElementR("button", TextSaveSelected)
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "save selected",
			Cause: portal.ErrElementNotFound, Details: TextSaveSelected}
	}
	if err := save.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "register", Operation: "save selected", Cause: err}
	}
	return nil
}

// FillForm completes the payment form for the selected record.
func (p *RegisterPage) FillForm(form RequestForm) error {
	type field struct {
		selector string
		value    string
	}

	for _, f := range []field{
		{SelectorDNIInput, form.DNI},
		{SelectorPolicyInput, form.Policy},
		{SelectorAmountInput, form.Amount.String()},
	} {
		if f.value == "" {
			continue
		}
		el, err := p.page.Element(f.selector)
		if err != nil {
			return &portal.PortalError{Page: "register", Operation: "fill form",
				Cause: portal.ErrElementNotFound, Details: f.selector}
		}
		if err := browser.ClearAndType(el, f.value); err != nil {
			return &portal.PortalError{Page: "register", Operation: "fill form", Cause: err, Details: f.selector}
		}
	}

	for _, sel := range []struct {
		label string
		value string
	}{
		{"Moneda", form.Currency},
		{"Banco", form.Bank},
		{"Tipo de cuenta", form.AccountType},
	} {
		if sel.value == "" {
			continue
		}
		if err := p.selectByLabel(sel.label, sel.value); err != nil {
			return err
		}
	}

	if form.AccountNumber != "" {
		el, err := p.page.Element(`input[placeholder*="cuenta"]`)
		if err != nil {
			return &portal.PortalError{Page: "register", Operation: "fill account number",
				Cause: portal.ErrElementNotFound}
		}
		if err := browser.ClearAndType(el, form.AccountNumber); err != nil {
			return &portal.PortalError{Page: "register", Operation: "fill account number", Cause: err}
		}
	}

	p.log.Debug().
		Str("banco", form.Bank).
		Str("moneda", form.Currency).
		Str("monto", form.Amount.String()).
		Msg("request form completed")
	return nil
}

// selectByLabel drives the dropdown inside the form group carrying a label.
// The bank and account-type selects render dynamically after the subtype is
// chosen, so they can only be located by their label.
func (p *RegisterPage) selectByLabel(label, value string) error {
	group, err := p.page.ElementR("label", label)
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "locate form group",
			Cause: portal.ErrElementNotFound, Details: label}
	}
	parent, err := group.Parent()
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "locate form group", Cause: err, Details: label}
	}
	sel, err := parent.Element("select")
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "locate select",
			Cause: portal.ErrElementNotFound, Details: label}
	}
	if err := sel.Select([]string{value}, true, rod.SelectorTypeText); err != nil {
		return &portal.PortalError{Page: "register", Operation: "select option", Cause: err,
			Details: label + "=" + value}
	}
	return nil
}

// Send submits the completed request.
func (p *RegisterPage) Send() error {
	btn, err := p.page.ElementR("button", TextSendRequest)
	if err != nil {
		return &portal.PortalError{Page: "register", Operation: "send request",
			Cause: portal.ErrElementNotFound, Details: TextSendRequest}
	}
	if err := btn.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "register", Operation: "send request", Cause: err}
	}
	return nil
}

// ConfirmationText waits for the success modal and returns its full text,
// which carries the assigned correlative and incident.
func (p *RegisterPage) ConfirmationText() (string, error) {
	modal, err := p.page.Timeout(20*time.Second).Element(SelectorModalMessage)
	if err != nil {
		return "", &portal.PortalError{Page: "register", Operation: "read confirmation",
			Cause: portal.ErrModalNotFound, Details: SelectorModalMessage}
	}

	text, err := modal.Text()
	if err != nil {
		return "", &portal.PortalError{Page: "register", Operation: "read confirmation", Cause: err}
	}
	return text, nil
}

// DismissConfirmation closes the success modal so the next scenario starts
// from a clean page.
func (p *RegisterPage) DismissConfirmation() error {
	btn, err := p.page.Timeout(5*time.Second).ElementR("button", TextUnderstood)
	if err != nil {
		// Some flows auto-close the modal.
		return nil
	}
	return btn.Click("left", 1)
}
