package money

import "strings"

type Currency string

const (
	CurrencySoles   Currency = "Soles"
	CurrencyDolares Currency = "Dolares"
)

// solesSynonyms covers the spellings the portal and fixture data use for the
// local currency. Anything not recognized here is treated as dollars; the
// normalization is deliberately permissive, not a validation gate.
var solesSynonyms = map[string]bool{
	"soles": true,
	"sol":   true,
	"s/":    true,
	"pen":   true,
}

// Normalize maps any input spelling to one of the two supported codes.
func Normalize(s string) Currency {
	if solesSynonyms[strings.ToLower(strings.TrimSpace(s))] {
		return CurrencySoles
	}
	return CurrencyDolares
}
