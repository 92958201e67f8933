package flows

import (
	"fmt"
	"strings"
	"time"

	"github.com/interseguro-qa/paynova-e2e/internal/portal/pages"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/correlation"
)

// ReviewRequest describes a single-level reject or observe scenario. These
// always run against the level-1 approver: a request never reaches higher
// tiers before being sent back or discarded.
type ReviewRequest struct {
	Area   string
	Memo   string
	Reason string
}

// Reject re-finds the record seeded for rejection and has the level-1
// approver reject it with the given reason.
func Reject(ctx *Context, req ReviewRequest) error {
	return review(ctx, req, correlation.ActionReject)
}

// Observe re-finds the record seeded for observation and has the level-1
// approver flag it back to the registrar with the given reason.
func Observe(ctx *Context, req ReviewRequest) error {
	return review(ctx, req, correlation.ActionObserve)
}

func review(ctx *Context, req ReviewRequest, action correlation.Action) error {
	log := ctx.Log.With().
		Str("flow", string(action)).
		Str("memo", req.Memo).
		Logger()

	rec, err := ctx.Store.ByMemoActionLevel(req.Memo, action, 1, req.Area)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no registered request matches area=%s memo=%q accion=%s nivel=1; run the registration scenario first",
			req.Area, req.Memo, action)
	}

	approver, err := ctx.Data.ApproverFor(req.Area, 1)
	if err != nil {
		return err
	}

	page, err := ctx.NewPage()
	if err != nil {
		return err
	}
	defer func() { _ = page.Close() }()

	login := pages.NewLoginPage(page, log)
	if err := login.Authenticate(ctx.Cfg.LoginURL, approver.Username, approver.Password); err != nil {
		return err
	}

	approve := pages.NewApprovePage(page, log)
	if err := approve.NavigateInbox(); err != nil {
		return err
	}
	if err := approve.OpenRequest(rec.Correlative, rec.Incident); err != nil {
		return err
	}

	switch action {
	case correlation.ActionReject:
		err = approve.Reject(req.Reason)
	default:
		err = approve.Observe(req.Reason)
	}
	if err != nil {
		return err
	}

	if !approve.BackInInbox() {
		return fmt.Errorf("inbox did not return after %s", action)
	}

	// Observed requests return to the registrar's queue; confirm the state
	// change actually landed.
	if action == correlation.ActionObserve {
		time.Sleep(2 * time.Second)
		state, err := approve.StateOf(rec.Correlative, rec.Incident)
		if err != nil {
			return err
		}
		if state != "" && !strings.EqualFold(state, pages.StateObserved) {
			log.Warn().Str("estado", state).Msg("observed state not yet visible, backend may still be processing")
		}
	}

	log.Info().
		Str("correlativo", rec.Correlative).
		Str("aprobador", approver.Username).
		Msg("review action completed")
	return nil
}
