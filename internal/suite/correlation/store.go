package correlation

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/approval"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// Backend is the persistence seam under the Store. Implementations must
// return records in exact insertion order from ReadAll (the most-recent-wins
// tie-breaks below depend on it) and must never deduplicate.
//
// No backend is safe for concurrent writers from multiple processes. The
// suite runs scenarios strictly sequentially; do not point two runners at the
// same backing store.
type Backend interface {
	ReadAll() ([]Record, error)
	Append(Record) error
	Clear() error
}

// Store answers the partially-specified lookups the approval scenarios have
// available at each stage of a multi-session flow. A nil record with a nil
// error is a soft miss, not a failure; callers decide whether that fails the
// scenario.
type Store struct {
	backend Backend
	log     zerolog.Logger
}

func NewStore(backend Backend, log zerolog.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// Insert appends the record. No uniqueness is enforced: duplicate
// correlatives are expected and meaningful. Storage errors propagate to the
// caller unmodified.
func (s *Store) Insert(rec Record) error {
	if err := s.backend.Append(rec); err != nil {
		return err
	}

	s.log.Info().
		Str("correlativo", rec.Correlative).
		Str("incidente", rec.Incident).
		Str("area", rec.Area).
		Str("memo", rec.Memo).
		Msg("request recorded")

	return nil
}

// LatestByArea returns the most recently inserted record, optionally
// filtered to an area. An empty store or an excluding filter yields nil, nil.
func (s *Store) LatestByArea(area string) (*Record, error) {
	recs, err := s.backend.ReadAll()
	if err != nil {
		return nil, err
	}
	return lastOf(filterArea(recs, area)), nil
}

// ByCorrelative returns the first record (in insertion order) with an exact
// correlative match.
func (s *Store) ByCorrelative(correlative string) (*Record, error) {
	recs, err := s.backend.ReadAll()
	if err != nil {
		return nil, err
	}

	for i := range recs {
		if recs[i].Correlative == correlative {
			rec := recs[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// ByMemo returns the most recently inserted record whose memo fuzzily
// matches the query.
func (s *Store) ByMemo(memo, area string) (*Record, error) {
	recs, err := s.backend.ReadAll()
	if err != nil {
		return nil, err
	}
	return lastOf(filterMemo(filterArea(recs, area), memo)), nil
}

// ByMemoActionLevel locates a record by memo, intended action and approver
// level, degrading through three tiers: exact on all three, then ignoring
// the level, then memo alone. Each tier that matches anything returns its
// most recent match; only an empty tier falls through.
func (s *Store) ByMemoActionLevel(memo string, action Action, level int, area string) (*Record, error) {
	recs, err := s.backend.ReadAll()
	if err != nil {
		return nil, err
	}

	byMemo := filterMemo(filterArea(recs, area), memo)

	if rec := lastOf(filter(byMemo, func(r Record) bool {
		return r.Action == action && r.Level == level
	})); rec != nil {
		return rec, nil
	}

	if rec := lastOf(filter(byMemo, func(r Record) bool {
		return r.Action == action
	})); rec != nil {
		s.log.Debug().Str("memo", memo).Int("nivel", level).
			Msg("no record tagged with requested level, matched on memo and action")
		return rec, nil
	}

	return lastOf(byMemo), nil
}

// ByMemoAmountLevel mirrors ByMemoActionLevel but keyed on the monetary
// parameters, for scenario outlines that only carry an amount table:
// memo+amount+currency+level, then without the level, then memo alone.
func (s *Store) ByMemoAmountLevel(memo string, amount money.Amount, currency string, level int, area string) (*Record, error) {
	recs, err := s.backend.ReadAll()
	if err != nil {
		return nil, err
	}

	byMemo := filterMemo(filterArea(recs, area), memo)
	byAmount := filter(byMemo, func(r Record) bool {
		return r.Amount == amount && strings.EqualFold(r.Currency, currency)
	})

	if rec := lastOf(filter(byAmount, func(r Record) bool {
		return r.Level == level
	})); rec != nil {
		return rec, nil
	}

	if rec := lastOf(byAmount); rec != nil {
		return rec, nil
	}

	return lastOf(byMemo), nil
}

// ByActionLevelInRange serves scenarios that approve any eligible request
// rather than one by name. It filters to the intended action and keeps the
// records whose amount actually falls inside the range the given level owns
// for their currency, cross-checking the resolver configuration rather than
// trusting the record's own Level tag. Fallbacks: action plus the stored
// level tag, then action alone.
func (s *Store) ByActionLevelInRange(action Action, level int, resolver *approval.Resolver, area string) (*Record, error) {
	recs, err := s.backend.ReadAll()
	if err != nil {
		return nil, err
	}

	byAction := filter(filterArea(recs, area), func(r Record) bool {
		return r.Action == action
	})

	if rec := lastOf(filter(byAction, func(r Record) bool {
		rng, ok := resolver.LevelRange(r.Area, level, money.Normalize(r.Currency))
		return ok && rng.Contains(r.Amount)
	})); rec != nil {
		return rec, nil
	}

	if rec := lastOf(filter(byAction, func(r Record) bool {
		return r.Level == level
	})); rec != nil {
		return rec, nil
	}

	return lastOf(byAction), nil
}

// Clear destroys the backing store. Clearing an absent store is a no-op.
func (s *Store) Clear() error {
	if err := s.backend.Clear(); err != nil {
		return err
	}
	s.log.Info().Msg("request store cleared")
	return nil
}

// normalizeMemo lower-cases, strips commas and trims, so the UI's rendered
// memo text and the scenario's expected string compare loosely.
func normalizeMemo(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), ",", ""))
}

// memoMatches applies bidirectional containment: either normalized string
// containing the other counts as a match. Deliberately permissive; see the
// tiered lookups for how exact criteria are preferred first.
func memoMatches(query, memo string) bool {
	q, m := normalizeMemo(query), normalizeMemo(memo)
	return strings.Contains(m, q) || strings.Contains(q, m)
}

func filter(recs []Record, keep func(Record) bool) []Record {
	var out []Record
	for _, r := range recs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func filterArea(recs []Record, area string) []Record {
	if area == "" {
		return recs
	}
	return filter(recs, func(r Record) bool {
		return strings.EqualFold(r.Area, area)
	})
}

func filterMemo(recs []Record, memo string) []Record {
	return filter(recs, func(r Record) bool {
		return memoMatches(memo, r.Memo)
	})
}

func lastOf(recs []Record) *Record {
	if len(recs) == 0 {
		return nil
	}
	rec := recs[len(recs)-1]
	return &rec
}
