// Package money defines the amount and currency types shared between the
// approval resolver and the correlation store.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount represents a monetary value with two decimal precision
// (e.g., 12,500.50 is stored as 1250050).
type Amount int64

// ParseAmount transforms a string representation of a number to an Amount.
// Thousand separators, spaces and the display currency symbols are tolerated
// ("12,500.50", "S/ 8,500.00", "$ 2,500.00").
func ParseAmount(s string) (Amount, error) {
	cleanStr := strings.NewReplacer(",", "", " ", "", "S/", "", "$", "").Replace(s)

	floatVal, err := strconv.ParseFloat(cleanStr, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return FromFloat(floatVal), nil
}

// FromFloat converts a decimal value in whole currency units to an Amount.
func FromFloat(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// Float returns the amount in whole currency units.
func (a Amount) Float() float64 {
	return float64(a) / 100
}

func (a Amount) String() string {
	return strconv.FormatFloat(a.Float(), 'f', 2, 64)
}

// MarshalJSON encodes the amount as a plain decimal number so the backing
// store round-trips a true numeric, never a display-formatted string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(a.Float(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts any JSON number, including legacy records written
// with fractional values.
func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse amount %s: %w", data, err)
	}
	*a = FromFloat(v)
	return nil
}
