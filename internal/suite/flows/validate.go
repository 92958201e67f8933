package flows

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal/pages"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/correlation"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// ValidateRequest identifies the stored record a validation scenario checks
// the portal against.
type ValidateRequest struct {
	User string
	Area string
	Memo string
}

// ValidateDetail opens the request's detail view and checks that every field
// of Información General matches the stored record and that the data sections
// rendered.
func ValidateDetail(ctx *Context, req ValidateRequest) error {
	rec, err := findValidationRecord(ctx, req)
	if err != nil {
		return err
	}

	log := ctx.Log.With().
		Str("flow", "validate-detail").
		Str("correlativo", rec.Correlative).
		Logger()

	page, err := authenticatedPage(ctx, req.User, log)
	if err != nil {
		return err
	}
	defer func() { _ = page.Close() }()

	inbox := pages.NewApprovePage(page, log)
	if err := inbox.NavigateInbox(); err != nil {
		return err
	}
	if err := inbox.OpenRequest(rec.Correlative, rec.Incident); err != nil {
		return err
	}

	detail := pages.NewDetailPage(page, log)
	if err := detail.WaitLoaded(); err != nil {
		return err
	}
	view, err := detail.View()
	if err != nil {
		return err
	}

	if mismatches := detailMismatches(view, rec); len(mismatches) > 0 {
		return fmt.Errorf("detail view does not match stored record %s: %s",
			rec.Correlative, strings.Join(mismatches, "; "))
	}

	log.Info().Int("registros", view.DataRecords).Msg("detail view validated")
	return nil
}

// detailMismatches compares a rendered detail view against the stored record
// and names every field that disagrees.
func detailMismatches(view *pages.DetailView, rec *correlation.Record) []string {
	var mismatches []string

	if view.Correlative != rec.Correlative {
		mismatches = append(mismatches, fmt.Sprintf("correlativo %q != %q", view.Correlative, rec.Correlative))
	}
	if view.Incident != rec.Incident {
		mismatches = append(mismatches, fmt.Sprintf("incidente %q != %q", view.Incident, rec.Incident))
	}
	if !strings.EqualFold(strings.TrimSpace(view.Subject), strings.TrimSpace(rec.Memo)) {
		mismatches = append(mismatches, fmt.Sprintf("asunto %q != %q", view.Subject, rec.Memo))
	}
	if amount, err := money.ParseAmount(view.Amount); err != nil || amount != rec.Amount {
		mismatches = append(mismatches, fmt.Sprintf("monto %q != %s", view.Amount, rec.Amount))
	}
	if view.State == "" {
		mismatches = append(mismatches, "estado is empty")
	}
	if view.DataRecords < 1 {
		mismatches = append(mismatches, "no records in the Datos section")
	}
	for _, section := range []string{"Datos", "Documentos", "Observaciones"} {
		if !view.HasSection(section) {
			mismatches = append(mismatches, "missing section "+section)
		}
	}

	return mismatches
}

// ValidateHistory opens the personal history view, filters by the stored
// correlative, and checks the request is listed under named columns.
func ValidateHistory(ctx *Context, req ValidateRequest) error {
	rec, err := findValidationRecord(ctx, req)
	if err != nil {
		return err
	}

	log := ctx.Log.With().
		Str("flow", "validate-history").
		Str("correlativo", rec.Correlative).
		Logger()

	page, err := authenticatedPage(ctx, req.User, log)
	if err != nil {
		return err
	}
	defer func() { _ = page.Close() }()

	history := pages.NewHistoryPage(page, log)
	if err := history.Navigate(); err != nil {
		return err
	}

	columns, err := history.Columns()
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("history table renders no columns")
	}

	if err := history.SearchCorrelative(rec.Correlative); err != nil {
		return err
	}
	listed, err := history.HasRecord(rec.Correlative)
	if err != nil {
		return err
	}
	if !listed {
		return fmt.Errorf("correlativo=%s not listed in history", rec.Correlative)
	}

	log.Info().Strs("columnas", columns).Msg("history validated")
	return nil
}

// ValidateReport opens reportería, filters by the stored correlative, and
// checks the request shows up in the query results.
func ValidateReport(ctx *Context, req ValidateRequest) error {
	rec, err := findValidationRecord(ctx, req)
	if err != nil {
		return err
	}

	log := ctx.Log.With().
		Str("flow", "validate-report").
		Str("correlativo", rec.Correlative).
		Logger()

	page, err := authenticatedPage(ctx, req.User, log)
	if err != nil {
		return err
	}
	defer func() { _ = page.Close() }()

	report := pages.NewReportPage(page, log)
	if err := report.Navigate(); err != nil {
		return err
	}
	if err := report.FilterByCorrelative(rec.Correlative); err != nil {
		return err
	}
	if err := report.Consult(); err != nil {
		return err
	}

	listed, err := report.HasRecord(rec.Correlative)
	if err != nil {
		return err
	}
	if !listed {
		return fmt.Errorf("correlativo=%s not listed in report results", rec.Correlative)
	}

	log.Info().Msg("report results validated")
	return nil
}

// findValidationRecord picks the stored record a validation scenario targets:
// the latest memo match when a memo is given, otherwise the area's most
// recent registration.
func findValidationRecord(ctx *Context, req ValidateRequest) (*correlation.Record, error) {
	var rec *correlation.Record
	var err error
	if req.Memo != "" {
		rec, err = ctx.Store.ByMemo(req.Memo, req.Area)
	} else {
		rec, err = ctx.Store.LatestByArea(req.Area)
	}
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("no registered request matches area=%s memo=%q; run the registration scenario first",
			req.Area, req.Memo)
	}
	return rec, nil
}

// authenticatedPage opens a fresh page and logs the named user in.
func authenticatedPage(ctx *Context, userName string, log zerolog.Logger) (*rod.Page, error) {
	user, err := ctx.Data.UserByName(userName)
	if err != nil {
		return nil, err
	}

	page, err := ctx.NewPage()
	if err != nil {
		return nil, err
	}

	login := pages.NewLoginPage(page, log)
	if err := login.Authenticate(ctx.Cfg.LoginURL, user.Username, user.Password); err != nil {
		_ = page.Close()
		return nil, err
	}
	return page, nil
}
