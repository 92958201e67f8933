package approval

import (
	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// Resolver maps (amount, currency, area) to the ordered chain of approver
// levels that must all sign off. It holds no mutable state; identical inputs
// against the same table always yield identical results.
type Resolver struct {
	table Table
	log   zerolog.Logger
}

func NewResolver(table Table, log zerolog.Logger) *Resolver {
	return &Resolver{table: table, log: log}
}

// RequiredLevels returns the ascending, duplicate-free list of levels that
// must approve a request of the given size. The scan runs from the highest
// configured level downward; the first level whose currency range contains
// the amount wins, and the cascade rule requires every level from 1 up to it.
//
// When no configured range contains the amount the degraded default [1] is
// returned so scenarios stay runnable with incomplete range tables. A gap
// like that is arguably a configuration error, so it is logged at warn level.
func (r *Resolver) RequiredLevels(amount money.Amount, currency, area string) ([]int, error) {
	defs, err := r.table.ForArea(area)
	if err != nil {
		return nil, err
	}

	cur := money.Normalize(currency)

	for i := len(defs) - 1; i >= 0; i-- {
		rng, ok := defs[i].Ranges[cur]
		if !ok || !rng.Contains(amount) {
			continue
		}

		levels := make([]int, 0, defs[i].Level)
		for l := 1; l <= defs[i].Level; l++ {
			levels = append(levels, l)
		}
		return levels, nil
	}

	r.log.Warn().
		Str("area", area).
		Str("currency", string(cur)).
		Str("amount", amount.String()).
		Msg("amount outside every configured range, falling back to level 1")

	return []int{1}, nil
}

// LevelRange returns the amount interval owned by the given level and
// currency in an area, if one is configured.
func (r *Resolver) LevelRange(area string, level int, currency money.Currency) (Range, bool) {
	defs, err := r.table.ForArea(area)
	if err != nil {
		return Range{}, false
	}

	for _, def := range defs {
		if def.Level != level {
			continue
		}
		rng, ok := def.Ranges[currency]
		return rng, ok
	}

	return Range{}, false
}
