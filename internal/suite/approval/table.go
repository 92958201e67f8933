// Package approval decides which chain of approver levels must sign off a
// payment request of a given amount.
package approval

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

var (
	ErrNoApproversForArea = errors.New("no approvers defined for area")
	ErrInvalidRangeTable  = errors.New("invalid approver range table")
)

// Range is an inclusive amount interval owned by one approver level.
type Range struct {
	Min money.Amount
	Max money.Amount
}

func (r Range) Contains(a money.Amount) bool {
	return a >= r.Min && a <= r.Max
}

// ApproverDefinition is one approval authority tier for a business area.
type ApproverDefinition struct {
	Level  int
	Ranges map[money.Currency]Range
}

// Table holds the approver definitions for every business area, keyed by
// upper-cased area name. Loaded once per run and immutable afterwards.
type Table map[string][]ApproverDefinition

// NewTable canonicalizes area keys, sorts each area's definitions by level
// and validates that per-currency ranges are non-overlapping and
// monotonically increasing with level. The resolver's downward scan depends
// on that invariant, so a table violating it is rejected here instead of
// producing undefined results later.
func NewTable(defs map[string][]ApproverDefinition) (Table, error) {
	t := make(Table, len(defs))

	for area, levels := range defs {
		sorted := make([]ApproverDefinition, len(levels))
		copy(sorted, levels)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

		for i, def := range sorted {
			if def.Level <= 0 {
				return nil, fmt.Errorf("%w: area %s has non-positive level %d", ErrInvalidRangeTable, area, def.Level)
			}
			if i > 0 && def.Level == sorted[i-1].Level {
				return nil, fmt.Errorf("%w: area %s defines level %d twice", ErrInvalidRangeTable, area, def.Level)
			}
		}

		if err := validateRanges(area, sorted); err != nil {
			return nil, err
		}

		t[strings.ToUpper(area)] = sorted
	}

	return t, nil
}

// validateRanges checks that for each currency, every level's range lies
// entirely above the previous level's range.
func validateRanges(area string, sorted []ApproverDefinition) error {
	for _, currency := range []money.Currency{money.CurrencySoles, money.CurrencyDolares} {
		prevMax := money.Amount(-1)
		prevLevel := 0

		for _, def := range sorted {
			rng, ok := def.Ranges[currency]
			if !ok {
				continue
			}
			if rng.Min > rng.Max {
				return fmt.Errorf("%w: area %s level %d has inverted %s range", ErrInvalidRangeTable, area, def.Level, currency)
			}
			if prevLevel > 0 && rng.Min <= prevMax {
				return fmt.Errorf("%w: area %s level %d %s range overlaps level %d", ErrInvalidRangeTable, area, def.Level, currency, prevLevel)
			}
			prevMax = rng.Max
			prevLevel = def.Level
		}
	}
	return nil
}

// ForArea returns the area's definitions sorted ascending by level.
func (t Table) ForArea(area string) ([]ApproverDefinition, error) {
	defs, ok := t[strings.ToUpper(area)]
	if !ok || len(defs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoApproversForArea, area)
	}
	return defs, nil
}
