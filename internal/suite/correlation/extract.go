package correlation

import (
	"regexp"
	"strings"
)

var (
	correlativeRe = regexp.MustCompile(`(?i)correlativo[:\s]+([0-9A-Z\-]+)`)
	incidentRe    = regexp.MustCompile(`(?i)incidente[:\s]+(\d+)`)
)

// Confirmation holds the identifiers the portal assigns when a request is
// registered, as announced in the success modal.
type Confirmation struct {
	Correlative string
	Incident    string
}

// ExtractConfirmation pulls the correlative and incident out of the raw
// confirmation modal text. Both must be present for the extraction to count.
func ExtractConfirmation(modalText string) (*Confirmation, bool) {
	correlative := correlativeRe.FindStringSubmatch(modalText)
	incident := incidentRe.FindStringSubmatch(modalText)

	if correlative == nil || incident == nil {
		return nil, false
	}

	return &Confirmation{
		Correlative: strings.TrimSpace(correlative[1]),
		Incident:    strings.TrimSpace(incident[1]),
	}, true
}
