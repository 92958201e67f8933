package pages

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/portal"
)

// DetailView holds the Información General block of an open request plus the
// record counts of its sections.
type DetailView struct {
	Correlative string
	Incident    string
	Subject     string
	Amount      string
	State       string
	CreatedAt   string

	DataRecords int
	Sections    []string
}

// The detail view renders labeled values as free text, so extraction works
// the same way as the confirmation modal: label-anchored regexes.
var (
	detailCorrelativeRe = regexp.MustCompile(`(?i)correlativo[:\s]+([0-9A-Z\-]+)`)
	detailIncidentRe    = regexp.MustCompile(`(?i)incidente[:\s]+(\d+)`)
	detailSubjectRe     = regexp.MustCompile(`(?i)asunto[:\s]+([^\n]+)`)
	detailAmountRe      = regexp.MustCompile(`(?i)monto[:\s]+([S/$\s]*[\d.,]+)`)
	detailStateRe       = regexp.MustCompile(`(?i)estado[:\s]+([^\n]+)`)
	detailCreatedRe     = regexp.MustCompile(`(?i)fecha\s+creaci[oó]n[:\s]+([^\n]+)`)
	dataRecordsRe       = regexp.MustCompile(`(?i)datos\s*\((\d+)\s*registros?\)`)
)

var detailSectionNames = []string{"Datos", "Documentos", "Observaciones", "Distribución"}

// ParseDetail extracts a DetailView from the detail page HTML.
func ParseDetail(html string) (*DetailView, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &portal.PortalError{Page: "detail", Operation: "parse detail", Cause: err}
	}

	text := doc.Text()
	view := &DetailView{
		Correlative: firstGroup(detailCorrelativeRe, text),
		Incident:    firstGroup(detailIncidentRe, text),
		Subject:     strings.TrimSpace(firstGroup(detailSubjectRe, text)),
		Amount:      strings.TrimSpace(firstGroup(detailAmountRe, text)),
		State:       strings.TrimSpace(firstGroup(detailStateRe, text)),
		CreatedAt:   strings.TrimSpace(firstGroup(detailCreatedRe, text)),
	}

	if m := dataRecordsRe.FindStringSubmatch(text); m != nil {
		view.DataRecords, _ = strconv.Atoi(m[1])
	}
	for _, name := range detailSectionNames {
		if strings.Contains(text, name) {
			view.Sections = append(view.Sections, name)
		}
	}

	return view, nil
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// HasSection reports whether a named section rendered in the detail view.
func (v *DetailView) HasSection(name string) bool {
	for _, s := range v.Sections {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

type DetailPage struct {
	page *rod.Page
	log  zerolog.Logger
}

func NewDetailPage(page *rod.Page, log zerolog.Logger) *DetailPage {
	return &DetailPage{page: page, log: log}
}

// WaitLoaded blocks until the detail view finished rendering its header.
func (p *DetailPage) WaitLoaded() error {
	if _, err := p.page.Timeout(15*time.Second).ElementR("h1, h2, h3, div", TextDetailTitle); err != nil {
		return &portal.PortalError{Page: "detail", Operation: "wait detail",
			Cause: portal.ErrTimeout, Details: TextDetailTitle}
	}
	return p.page.WaitDOMStable(300*time.Millisecond, 0)
}

// View parses the open detail page.
func (p *DetailPage) View() (*DetailView, error) {
	html, err := p.page.HTML()
	if err != nil {
		return nil, &portal.PortalError{Page: "detail", Operation: "read detail", Cause: err}
	}
	return ParseDetail(html)
}

// CurrentStep reads the highlighted step of the approval timeline.
func (p *DetailPage) CurrentStep() (string, error) {
	el, err := p.page.Timeout(5*time.Second).Element(SelectorTraceState)
	if err != nil {
		return "", &portal.PortalError{Page: "detail", Operation: "read current step",
			Cause: portal.ErrElementNotFound, Details: SelectorTraceState}
	}
	text, err := el.Text()
	if err != nil {
		return "", &portal.PortalError{Page: "detail", Operation: "read current step", Cause: err}
	}
	return strings.TrimSpace(text), nil
}

// Back returns to the pending-requests view.
func (p *DetailPage) Back() error {
	btn, err := p.page.Timeout(5*time.Second).ElementR("button", TextBackToInbox)
	if err != nil {
		return &portal.PortalError{Page: "detail", Operation: "back to inbox",
			Cause: portal.ErrElementNotFound, Details: TextBackToInbox}
	}
	return btn.Click("left", 1)
}
