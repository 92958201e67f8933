package flows

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal/pages"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/correlation"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// ApproveRequest describes an approval-chain scenario. Memo and Amount are
// both optional; whichever identifying information the scenario carries
// selects the lookup strategy.
type ApproveRequest struct {
	Area     string
	Memo     string
	Amount   money.Amount
	Currency string
	Action   correlation.Action
}

// Approve resolves the approver chain the request's amount demands, re-finds
// the registered record, and drives the request through every required level
// in sequence. Each level is a fresh, independently-authenticated session.
func Approve(ctx *Context, req ApproveRequest) error {
	levels, err := ctx.Resolver.RequiredLevels(req.Amount, req.Currency, req.Area)
	if err != nil {
		return err
	}
	maxLevel := levels[len(levels)-1]

	log := ctx.Log.With().Str("flow", "approve").Str("memo", req.Memo).Logger()
	log.Info().
		Ints("niveles", levels).
		Str("monto", req.Amount.String()).
		Str("moneda", req.Currency).
		Msg("approval chain resolved")

	rec, err := findRecord(ctx, req, maxLevel)
	if err != nil {
		return err
	}
	if rec == nil {
		return notFoundErr(req, maxLevel)
	}

	log.Info().
		Str("correlativo", rec.Correlative).
		Str("incidente", rec.Incident).
		Msg("request located")

	for i, level := range levels {
		last := i == len(levels)-1
		if err := approveAtLevel(ctx, rec, level, last, log); err != nil {
			return fmt.Errorf("approval at level %d: %w", level, err)
		}
	}

	log.Info().Ints("niveles", levels).Msg("approval chain completed")
	return nil
}

// findRecord picks the lookup strategy the available information allows:
// memo plus monetary parameters, memo plus action, or action alone.
func findRecord(ctx *Context, req ApproveRequest, maxLevel int) (*correlation.Record, error) {
	switch {
	case req.Memo != "" && req.Amount > 0:
		return ctx.Store.ByMemoAmountLevel(req.Memo, req.Amount, req.Currency, maxLevel, req.Area)
	case req.Memo != "":
		return ctx.Store.ByMemoActionLevel(req.Memo, req.Action, maxLevel, req.Area)
	default:
		return ctx.Store.ByActionLevelInRange(req.Action, maxLevel, ctx.Resolver, req.Area)
	}
}

// notFoundErr names every search parameter so an exhausted lookup is
// diagnosable without re-running with verbose logging.
func notFoundErr(req ApproveRequest, maxLevel int) error {
	params := []string{fmt.Sprintf("area=%s", req.Area)}
	if req.Memo != "" {
		params = append(params, fmt.Sprintf("memo=%q", req.Memo))
	}
	if req.Amount > 0 {
		params = append(params, fmt.Sprintf("monto=%s %s", req.Amount, req.Currency))
	}
	if req.Action != "" {
		params = append(params, fmt.Sprintf("accion=%s", req.Action))
	}
	params = append(params, fmt.Sprintf("nivel=%d", maxLevel))

	return fmt.Errorf("no registered request matches %s; run the registration scenario first",
		strings.Join(params, " "))
}

func approveAtLevel(ctx *Context, rec *correlation.Record, level int, last bool, log zerolog.Logger) error {
	approver, err := ctx.Data.ApproverFor(rec.Area, level)
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
	if err := approve.Approve(); err != nil {
		return err
	}
	if !approve.BackInInbox() {
		return fmt.Errorf("inbox did not return after approval by level %d", level)
	}

	if last {
		// Give the backend a moment, then confirm the request left this
		// approver's pending queue.
		time.Sleep(2 * time.Second)
		state, err := approve.StateOf(rec.Correlative, rec.Incident)
		if err != nil {
			return err
		}
		if state != "" && strings.EqualFold(state, "PENDIENTE") {
			return fmt.Errorf("request %s still pending after final approval", rec.Correlative)
		}
	}

	log.Info().Int("nivel", level).Str("aprobador", approver.Username).Msg("level approved")
	return nil
}
