// Package pages implements the page objects the suite drives: login,
// register-request, and approve-request. Each wraps a rod page and exposes
// the actions a scenario step needs; no business decisions live here.
package pages

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal"
	"github.com/interseguro-qa/paynova-e2e/internal/portal/browser"
)

type LoginPage struct {
	page *rod.Page
	log  zerolog.Logger
}

func NewLoginPage(page *rod.Page, log zerolog.Logger) *LoginPage {
	return &LoginPage{page: page, log: log}
}

// Navigate opens the login URL and waits for the DOM to settle.
func (p *LoginPage) Navigate(loginURL string) error {
	if err := p.page.Navigate(loginURL); err != nil {
		return &portal.PortalError{Page: "login", Operation: "navigate", Cause: err, Details: loginURL}
	}
	if err := p.page.WaitDOMStable(300*time.Millisecond, 0); err != nil {
		return &portal.PortalError{Page: "login", Operation: "wait dom", Cause: err}
	}
	return nil
}

// ToggleTraditionalLogin switches from the Google SSO widget to the
// username/password form.
func (p *LoginPage) ToggleTraditionalLogin() error {
	toggle, err := p.page.Element(SelectorToggleTraditionalLogin)
	if err != nil {
		return &portal.PortalError{Page: "login", Operation: "toggle traditional login",
			Cause: portal.ErrElementNotFound, Details: SelectorToggleTraditionalLogin}
	}
	if err := toggle.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "login", Operation: "toggle traditional login", Cause: err}
	}

	// The username input renders only after the toggle animation.
	if _, err := p.page.Element(SelectorUsernameInput); err != nil {
		return &portal.PortalError{Page: "login", Operation: "toggle traditional login",
			Cause: portal.ErrElementNotFound, Details: SelectorUsernameInput}
	}
	return nil
}

// Login fills the credentials and submits the form.
func (p *LoginPage) Login(username, password string) error {
	userEl, err := p.page.Element(SelectorUsernameInput)
	if err != nil {
		return &portal.PortalError{Page: "login", Operation: "enter username",
			Cause: portal.ErrElementNotFound, Details: SelectorUsernameInput}
	}
	if err := browser.ClearAndType(userEl, username); err != nil {
		return &portal.PortalError{Page: "login", Operation: "enter username", Cause: err}
	}

	passEl, err := p.page.Element(SelectorPasswordInput)
	if err != nil {
		return &portal.PortalError{Page: "login", Operation: "enter password",
			Cause: portal.ErrElementNotFound, Details: SelectorPasswordInput}
	}
	if err := browser.ClearAndType(passEl, password); err != nil {
		return &portal.PortalError{Page: "login", Operation: "enter password", Cause: err}
	}

	submit, err := p.page.Element(SelectorLoginButton)
	if err != nil {
		return &portal.PortalError{Page: "login", Operation: "submit",
			Cause: portal.ErrElementNotFound, Details: SelectorLoginButton}
	}
	if err := submit.Click("left", 1); err != nil {
		return &portal.PortalError{Page: "login", Operation: "submit", Cause: err}
	}

	p.log.Debug().Str("username", username).Msg("credentials submitted")
	return nil
}

// LoggedIn waits for the dashboard chrome. The sidebar is the primary
// marker; the navbar plus user info block is accepted as a fallback since
// some roles land on a sidebar-less view.
func (p *LoginPage) LoggedIn() bool {
	if el, err := p.page.Timeout(15*time.Second).Element(SelectorSidebar); err == nil {
		if visible, _ := el.Visible(); visible {
			return true
		}
	}

	navbar, err := p.page.Timeout(3*time.Second).Element(SelectorNavbar)
	if err != nil {
		return false
	}
	navbarVisible, _ := navbar.Visible()

	userInfo, err := p.page.Timeout(3*time.Second).Element(SelectorUserInfo)
	if err != nil {
		return false
	}
	userInfoVisible, _ := userInfo.Visible()

	return navbarVisible && userInfoVisible
}

// Authenticate runs the full login sequence and fails loudly when the
// dashboard never appears.
func (p *LoginPage) Authenticate(loginURL, username, password string) error {
	if err := p.Navigate(loginURL); err != nil {
		return err
	}
	if err := p.ToggleTraditionalLogin(); err != nil {
		return err
	}
	if err := p.Login(username, password); err != nil {
		return err
	}
	if !p.LoggedIn() {
		return &portal.PortalError{Page: "login", Operation: "authenticate",
			Cause: portal.ErrLoginFailed, Details: username}
	}

	p.log.Info().Str("username", username).Msg("login successful")
	return nil
}
