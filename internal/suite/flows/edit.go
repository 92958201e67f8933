package flows

import (
	"fmt"
	"strconv"
	"time"

	"github.com/interseguro-qa/paynova-e2e/internal/portal/pages"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/correlation"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// EditRequest describes correcting an observed request: the registrar fixes
// the amount and resends it into the approval chain.
type EditRequest struct {
	User      string
	Area      string
	Memo      string
	NewAmount money.Amount
}

// EditObserved re-finds the request an observe scenario flagged, logs in as
// the registrar, edits the amount on the observed request, and resubmits it.
// The store receives a fresh copy of the record with the corrected amount;
// existing records are never rewritten.
func EditObserved(ctx *Context, req EditRequest) error {
	rec, err := findObserved(ctx, req)
	if err != nil {
		return err
	}

	user, err := ctx.Data.UserByName(req.User)
	if err != nil {
		return err
	}

	log := ctx.Log.With().
		Str("flow", "edit").
		Str("correlativo", rec.Correlative).
		Logger()

	page, err := ctx.NewPage()
	if err != nil {
		return err
	}
	defer func() { _ = page.Close() }()

	login := pages.NewLoginPage(page, log)
	if err := login.Authenticate(ctx.Cfg.LoginURL, user.Username, user.Password); err != nil {
		return err
	}

	inbox := pages.NewApprovePage(page, log)
	if err := inbox.NavigateInbox(); err != nil {
		return err
	}

	edit := pages.NewEditPage(page, log)
	if err := edit.OpenObserved(rec.Correlative, rec.Incident); err != nil {
		return err
	}
	if err := edit.StartEdit(); err != nil {
		return err
	}

	amount := amountFieldValue(req.NewAmount)
	if err := edit.SetAmount(amount); err != nil {
		return err
	}
	if !edit.AmountSaved(amount) {
		return fmt.Errorf("saved-data grid did not refresh with monto=%s for correlativo=%s",
			req.NewAmount, rec.Correlative)
	}

	if err := edit.Update(); err != nil {
		return err
	}
	if err := edit.Send(); err != nil {
		return err
	}

	resent := resubmittedRecord(*rec, req.NewAmount)
	if err := ctx.Store.Insert(resent); err != nil {
		return err
	}

	log.Info().
		Str("monto", req.NewAmount.String()).
		Msg("observed request corrected and resent")
	return nil
}

// findObserved locates the record the observe scenario flagged back.
func findObserved(ctx *Context, req EditRequest) (*correlation.Record, error) {
	rec, err := ctx.Store.ByMemoActionLevel(req.Memo, correlation.ActionObserve, 1, req.Area)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("no registered request matches area=%s memo=%q accion=%s; run the observe scenario first",
			req.Area, req.Memo, correlation.ActionObserve)
	}
	return rec, nil
}

// resubmittedRecord is the store copy for a corrected request. Same
// correlative and incident, new amount, fresh timestamp; the action tag is
// cleared because the resent request re-enters the ordinary approval chain.
func resubmittedRecord(rec correlation.Record, amount money.Amount) correlation.Record {
	rec.Amount = amount
	rec.CreatedAt = time.Now().UTC()
	rec.Action = ""
	return rec
}

// amountFieldValue renders an amount the way the numeric form input expects
// it, without thousands separators or a forced decimal tail.
func amountFieldValue(a money.Amount) string {
	return strconv.FormatFloat(a.Float(), 'f', -1, 64)
}
