// Package correlation persists the requests a registration scenario created
// so that later, independently-authenticated approval scenarios can re-find
// them. Each login is a fresh browser session with no shared in-memory state;
// the store is the note-to-self passed between those sessions.
package correlation

import (
	"time"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// Action is the outcome a stored request copy was registered for.
type Action string

const (
	ActionReject  Action = "rechazar"
	ActionObserve Action = "observar"
	ActionApprove Action = "aprobar"
)

// Record is one payment request created during a run. Correlatives are not
// unique across records: the suite pre-seeds multiple copies of the same
// business request tagged with different (Action, Level) combinations so that
// order-sensitive scenarios stay independent.
//
// JSON field names match the solicitudes-creadas.json layout the approval
// scenarios have always consumed.
type Record struct {
	Correlative string       `json:"correlativo"`
	Incident    string       `json:"incidente"`
	Area        string       `json:"area"`
	Memo        string       `json:"memo"`
	Amount      money.Amount `json:"monto"`
	Currency    string       `json:"moneda"`
	CreatedAt   time.Time    `json:"fechaCreacion"`
	User        string       `json:"usuario"`

	// Action and Level tag which scenario this copy was registered for.
	// Zero values mean the registering scenario did not declare them.
	Action Action `json:"accion,omitempty"`
	Level  int    `json:"nivelAprobador,omitempty"`
}
