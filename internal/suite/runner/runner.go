package runner

import (
	"fmt"
	"time"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/flows"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// Result captures the outcome of one scenario.
type Result struct {
	Name     string
	Kind     string
	Err      error
	Duration time.Duration
}

// Runner drives a plan over a prepared flow context. Scenarios run in plan
// order; a failing scenario is recorded and the run continues, since later
// scenarios may target independent requests.
type Runner struct {
	ctx *flows.Context
}

func New(ctx *flows.Context) *Runner {
	return &Runner{ctx: ctx}
}

// Run executes every scenario of the plan and returns one result per
// scenario, in order.
func (r *Runner) Run(plan *Plan) []Result {
	log := r.ctx.Log.With().Str("plan", plan.Name).Logger()
	log.Info().Int("scenarios", len(plan.Scenarios)).Msg("starting plan")

	results := make([]Result, 0, len(plan.Scenarios))
	for _, sc := range plan.Scenarios {
		start := time.Now()
		err := r.runScenario(sc)
		res := Result{Name: sc.Name, Kind: sc.Kind, Err: err, Duration: time.Since(start)}
		results = append(results, res)

		if err != nil {
			log.Error().Err(err).Str("scenario", sc.Name).Dur("duracion", res.Duration).Msg("scenario failed")
		} else {
			log.Info().Str("scenario", sc.Name).Dur("duracion", res.Duration).Msg("scenario passed")
		}
	}

	return results
}

func (r *Runner) runScenario(sc Scenario) error {
	switch sc.Kind {
	case KindRegister:
		req := flows.RegisterRequest{
			User:    sc.User,
			Area:    sc.Area,
			Memo:    sc.Memo,
			Fixture: sc.Fixture,
			Level:   sc.Level,
		}
		if sc.Action != "" {
			action, err := parseAction(sc.Action)
			if err != nil {
				return err
			}
			req.Action = action
		}
		_, err := flows.Register(r.ctx, req)
		return err
	case KindApprove:
		req := flows.ApproveRequest{
			Area:     sc.Area,
			Memo:     sc.Memo,
			Currency: sc.Currency,
		}
		if sc.Amount > 0 {
			req.Amount = money.FromFloat(sc.Amount)
		}
		if sc.Action != "" {
			action, err := parseAction(sc.Action)
			if err != nil {
				return err
			}
			req.Action = action
		}
		return flows.Approve(r.ctx, req)
	case KindReject:
		return flows.Reject(r.ctx, flows.ReviewRequest{Area: sc.Area, Memo: sc.Memo, Reason: sc.Reason})
	case KindObserve:
		return flows.Observe(r.ctx, flows.ReviewRequest{Area: sc.Area, Memo: sc.Memo, Reason: sc.Reason})
	case KindEdit:
		return flows.EditObserved(r.ctx, flows.EditRequest{
			User:      sc.User,
			Area:      sc.Area,
			Memo:      sc.Memo,
			NewAmount: money.FromFloat(sc.Amount),
		})
	case KindValidateDetail:
		return flows.ValidateDetail(r.ctx, flows.ValidateRequest{User: sc.User, Area: sc.Area, Memo: sc.Memo})
	case KindValidateHistory:
		return flows.ValidateHistory(r.ctx, flows.ValidateRequest{User: sc.User, Area: sc.Area, Memo: sc.Memo})
	case KindValidateReport:
		return flows.ValidateReport(r.ctx, flows.ValidateRequest{User: sc.User, Area: sc.Area, Memo: sc.Memo})
	default:
		return fmt.Errorf("unknown scenario kind %q", sc.Kind)
	}
}

// Failed reports how many results carry an error.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
