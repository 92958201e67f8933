// Package runner executes scenario plans strictly sequentially. The
// correlation store tolerates exactly one writer, so the concurrency factor
// is pinned to 1 and plans declaring anything else are rejected.
package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/correlation"
)

// Scenario kinds.
const (
	KindRegister        = "register"
	KindApprove         = "approve"
	KindReject          = "reject"
	KindObserve         = "observe"
	KindEdit            = "edit"
	KindValidateDetail  = "validate-detail"
	KindValidateHistory = "validate-history"
	KindValidateReport  = "validate-report"
)

// Scenario is one entry of a plan. Fields beyond Kind and Area are
// kind-specific; validation below enforces the required combinations.
type Scenario struct {
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"`
	Area     string  `yaml:"area"`
	User     string  `yaml:"user,omitempty"`
	Memo     string  `yaml:"memo,omitempty"`
	Fixture  string  `yaml:"fixture,omitempty"`
	Amount   float64 `yaml:"amount,omitempty"`
	Currency string  `yaml:"currency,omitempty"`
	Action   string  `yaml:"action,omitempty"`
	Level    int     `yaml:"level,omitempty"`
	Reason   string  `yaml:"reason,omitempty"`
}

// Plan is an ordered list of scenarios. Order matters: approval scenarios
// depend on the records their registration scenarios inserted.
type Plan struct {
	Name        string     `yaml:"name"`
	Concurrency int        `yaml:"concurrency,omitempty"`
	Scenarios   []Scenario `yaml:"scenarios"`
}

// LoadPlan reads and validates a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}

	if err := plan.validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}

	return &plan, nil
}

func (p *Plan) validate() error {
	if p.Concurrency > 1 {
		return fmt.Errorf("concurrency %d not supported: the request store allows a single writer", p.Concurrency)
	}
	if len(p.Scenarios) == 0 {
		return fmt.Errorf("plan declares no scenarios")
	}

	for i, sc := range p.Scenarios {
		if sc.Name == "" {
			return fmt.Errorf("scenario %d has no name", i)
		}
		if sc.Area == "" {
			return fmt.Errorf("scenario %q has no area", sc.Name)
		}

		switch sc.Kind {
		case KindRegister:
			if sc.User == "" || sc.Memo == "" || sc.Fixture == "" {
				return fmt.Errorf("register scenario %q needs user, memo and fixture", sc.Name)
			}
			if sc.Action != "" {
				if _, err := parseAction(sc.Action); err != nil {
					return fmt.Errorf("scenario %q: %w", sc.Name, err)
				}
			}
			if sc.Level < 0 || sc.Level > 3 {
				return fmt.Errorf("register scenario %q: level %d out of range", sc.Name, sc.Level)
			}
		case KindApprove:
			if sc.Memo == "" && sc.Action == "" {
				return fmt.Errorf("approve scenario %q needs a memo or an action", sc.Name)
			}
			if sc.Amount > 0 && sc.Currency == "" {
				return fmt.Errorf("approve scenario %q declares an amount without a currency", sc.Name)
			}
		case KindReject, KindObserve:
			if sc.Memo == "" {
				return fmt.Errorf("%s scenario %q needs a memo", sc.Kind, sc.Name)
			}
		case KindEdit:
			if sc.User == "" || sc.Memo == "" {
				return fmt.Errorf("edit scenario %q needs user and memo", sc.Name)
			}
			if sc.Amount <= 0 {
				return fmt.Errorf("edit scenario %q needs the corrected amount", sc.Name)
			}
		case KindValidateDetail, KindValidateHistory, KindValidateReport:
			if sc.User == "" {
				return fmt.Errorf("%s scenario %q needs a user", sc.Kind, sc.Name)
			}
		default:
			return fmt.Errorf("scenario %q has unknown kind %q", sc.Name, sc.Kind)
		}
	}

	return nil
}

func parseAction(s string) (correlation.Action, error) {
	switch correlation.Action(s) {
	case correlation.ActionReject, correlation.ActionObserve, correlation.ActionApprove:
		return correlation.Action(s), nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}
