package flows

import (
	"fmt"
	"time"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/correlation"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"

	"github.com/interseguro-qa/paynova-e2e/internal/portal/pages"
)

// RegisterRequest describes one registration scenario.
type RegisterRequest struct {
	User    string
	Area    string
	Memo    string
	Fixture string // identifier into the area's request fixtures

	// Action and Level tag the stored record with the scenario this copy is
	// destined for, so approval scenarios can re-find their own seed.
	Action correlation.Action
	Level  int
}

// Register logs in as the registrar, creates the request in the portal,
// extracts the assigned correlative and incident from the confirmation
// modal, and records the request in the correlation store.
func Register(ctx *Context, req RegisterRequest) (*correlation.Record, error) {
	user, err := ctx.Data.UserByName(req.User)
	if err != nil {
		return nil, err
	}

	fixture, err := ctx.Fixtures.ForArea(req.Area, req.Fixture)
	if err != nil {
		return nil, err
	}

	bank, err := ctx.Data.BankByName(fixture.Bank)
	if err != nil {
		return nil, err
	}
	if len(fixture.AccountNumber) != bank.Digits {
		return nil, fmt.Errorf("fixture %s: account number has %d digits, %s requires %d",
			req.Fixture, len(fixture.AccountNumber), bank.Name, bank.Digits)
	}

	page, err := ctx.NewPage()
	if err != nil {
		return nil, err
	}
	defer func() { _ = page.Close() }()

	log := ctx.Log.With().Str("flow", "register").Str("memo", req.Memo).Logger()

	login := pages.NewLoginPage(page, log)
	if err := login.Authenticate(ctx.Cfg.LoginURL, user.Username, user.Password); err != nil {
		return nil, err
	}

	register := pages.NewRegisterPage(page, log)
	if err := register.Navigate(); err != nil {
		return nil, err
	}
	if err := register.SelectMemo(req.Memo); err != nil {
		return nil, err
	}
	if err := register.SendMemo(); err != nil {
		return nil, err
	}
	if err := register.SelectModalRecord(1); err != nil {
		return nil, err
	}

	amount := money.FromFloat(fixture.Amount)
	if err := register.FillForm(pages.RequestForm{
		DNI:           fixture.DNI,
		Policy:        fixture.Policy,
		Currency:      fixture.Currency,
		Amount:        amount,
		Bank:          fixture.Bank,
		AccountType:   fixture.AccountType,
		AccountNumber: fixture.AccountNumber,
	}); err != nil {
		return nil, err
	}

	if err := register.Send(); err != nil {
		return nil, err
	}

	modalText, err := register.ConfirmationText()
	if err != nil {
		return nil, err
	}

	conf, ok := correlation.ExtractConfirmation(modalText)
	if !ok {
		return nil, fmt.Errorf("confirmation modal carried no correlative/incident: %q", modalText)
	}
	_ = register.DismissConfirmation()

	rec := correlation.Record{
		Correlative: conf.Correlative,
		Incident:    conf.Incident,
		Area:        req.Area,
		Memo:        req.Memo,
		Amount:      amount,
		Currency:    fixture.Currency,
		CreatedAt:   time.Now().UTC(),
		User:        user.Username,
		Action:      req.Action,
		Level:       req.Level,
	}
	if err := ctx.Store.Insert(rec); err != nil {
		return nil, err
	}

	log.Info().
		Str("correlativo", rec.Correlative).
		Str("incidente", rec.Incident).
		Msg("request registered")

	return &rec, nil
}
