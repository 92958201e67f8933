package correlation

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/approval"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewMemoryBackend(), zerolog.Nop())
}

func record(correlative, memo string, opts ...func(*Record)) Record {
	rec := Record{
		Correlative: correlative,
		Incident:    "633287",
		Area:        "VIDA",
		Memo:        memo,
		Amount:      money.FromFloat(800),
		Currency:    "Dolares",
		CreatedAt:   time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		User:        "recaudador1",
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

func withAction(a Action) func(*Record) { return func(r *Record) { r.Action = a } }
func withLevel(l int) func(*Record) { return func(r *Record) { r.Level = l } }
func withAmount(v float64, cur string) func(*Record) {
	return func(r *Record) {
		r.Amount = money.FromFloat(v)
		r.Currency = cur
	}
}
func withArea(area string) func(*Record) { return func(r *Record) { r.Area = area } }

func TestInsertAndByCorrelative_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	rec := record("2025-VIDA-0441", "PAGO DE SOBREVIVENCIA",
		withAction(ActionApprove), withLevel(1))
	require.NoError(t, store.Insert(rec))

	got, err := store.ByCorrelative("2025-VIDA-0441")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestByCorrelative_FirstMatchWins(t *testing.T) {
	store := newTestStore(t)

	first := record("2025-VIDA-0441", "PAGO DE SOBREVIVENCIA", withAction(ActionReject))
	second := record("2025-VIDA-0441", "PAGO DE SOBREVIVENCIA", withAction(ActionApprove))
	require.NoError(t, store.Insert(first))
	require.NoError(t, store.Insert(second))

	got, err := store.ByCorrelative("2025-VIDA-0441")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ActionReject, got.Action)
}

func TestByCorrelative_NotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ByCorrelative("2025-VIDA-9999")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLatestByArea(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Insert(record("2025-VIDA-0441", "PAGO DE SOBREVIVENCIA")))
	require.NoError(t, store.Insert(record("2025-RRHH-0100", "PLANILLA AGOSTO", withArea("RRHH"))))
	require.NoError(t, store.Insert(record("2025-VIDA-0442", "RESCATE POLIZA")))

	got, err := store.LatestByArea("VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)

	// Area filter is case-insensitive.
	got, err = store.LatestByArea("rrhh")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-RRHH-0100", got.Correlative)

	// Unfiltered: absolute latest.
	got, err = store.LatestByArea("")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)
}

func TestLatestByArea_EmptyStore(t *testing.T) {
	store := newTestStore(t)

	got, err := store.LatestByArea("VIDA")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestByMemo_BidirectionalContainment(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Insert(record("2025-VIDA-0441", "PAGO DE SOBREVIVENCIA, RESCATE")))

	// Query contained in stored memo.
	got, err := store.ByMemo("SOBREVIVENCIA", "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0441", got.Correlative)

	// Stored memo contained in query, commas and case ignored.
	got, err = store.ByMemo("pago de sobrevivencia rescate adicional", "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0441", got.Correlative)

	// Unrelated memo misses.
	got, err = store.ByMemo("MULTAS SUNAT", "VIDA")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestByMemo_MostRecentWins(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Insert(record("2025-VIDA-0441", "RESCATE POLIZA")))
	require.NoError(t, store.Insert(record("2025-VIDA-0442", "RESCATE POLIZA")))

	got, err := store.ByMemo("rescate", "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)
}

func TestByMemoActionLevel_TierOrdering(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Insert(record("2025-VIDA-0441", "RESCATE POLIZA",
		withAction(ActionApprove), withLevel(1))))
	require.NoError(t, store.Insert(record("2025-VIDA-0442", "RESCATE POLIZA",
		withAction(ActionApprove), withLevel(2))))

	// Tier 1: exact action+level.
	got, err := store.ByMemoActionLevel("rescate", ActionApprove, 2, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)

	got, err = store.ByMemoActionLevel("rescate", ActionApprove, 1, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0441", got.Correlative)

	// Tier 2: no record tagged level 3, action match still resolves (most
	// recent among the action matches).
	got, err = store.ByMemoActionLevel("rescate", ActionApprove, 3, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)

	// Tier 3: no record with that action, memo alone resolves.
	got, err = store.ByMemoActionLevel("rescate", ActionReject, 1, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)

	// All tiers empty: nil, nil.
	got, err = store.ByMemoActionLevel("MULTAS", ActionReject, 1, "VIDA")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestByMemoActionLevel_ExactTierPreferredOverLoose(t *testing.T) {
	store := newTestStore(t)

	// The later record matches only tier 2 for the query below; the earlier
	// one is an exact tier-1 match and must win despite being older.
	require.NoError(t, store.Insert(record("2025-VIDA-0441", "RESCATE POLIZA",
		withAction(ActionApprove), withLevel(2))))
	require.NoError(t, store.Insert(record("2025-VIDA-0442", "RESCATE POLIZA",
		withAction(ActionApprove), withLevel(1))))

	got, err := store.ByMemoActionLevel("rescate", ActionApprove, 2, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0441", got.Correlative)
}

func TestByMemoAmountLevel_TierOrdering(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Insert(record("2025-VIDA-0441", "RESCATE POLIZA",
		withAmount(25000, "Soles"), withLevel(1))))
	require.NoError(t, store.Insert(record("2025-VIDA-0442", "RESCATE POLIZA",
		withAmount(25000, "Soles"), withLevel(2))))
	require.NoError(t, store.Insert(record("2025-VIDA-0443", "RESCATE POLIZA",
		withAmount(900, "Dolares"), withLevel(1))))

	// Tier 1: memo+amount+currency+level.
	got, err := store.ByMemoAmountLevel("rescate", money.FromFloat(25000), "Soles", 2, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)

	// Currency comparison ignores case.
	got, err = store.ByMemoAmountLevel("rescate", money.FromFloat(25000), "soles", 1, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0441", got.Correlative)

	// Tier 2: amount matches but no such level tag; most recent amount match.
	got, err = store.ByMemoAmountLevel("rescate", money.FromFloat(25000), "Soles", 3, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)

	// Tier 3: amount matches nothing; most recent memo match.
	got, err = store.ByMemoAmountLevel("rescate", money.FromFloat(111), "Soles", 1, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0443", got.Correlative)
}

func rangeResolver(t *testing.T) *approval.Resolver {
	t.Helper()

	table, err := approval.NewTable(map[string][]approval.ApproverDefinition{
		"VIDA": {
			{Level: 1, Ranges: map[money.Currency]approval.Range{
				money.CurrencySoles: {Min: 0, Max: money.FromFloat(10000)},
			}},
			{Level: 2, Ranges: map[money.Currency]approval.Range{
				money.CurrencySoles: {Min: money.FromFloat(10001), Max: money.FromFloat(50000)},
			}},
		},
	})
	require.NoError(t, err)
	return approval.NewResolver(table, zerolog.Nop())
}

func TestByActionLevelInRange(t *testing.T) {
	store := newTestStore(t)
	resolver := rangeResolver(t)

	// Tagged level 1 but its amount actually belongs to level 2's range.
	require.NoError(t, store.Insert(record("2025-VIDA-0441", "RESCATE POLIZA",
		withAction(ActionApprove), withLevel(1), withAmount(25000, "Soles"))))
	// Amount genuinely in level 1's range.
	require.NoError(t, store.Insert(record("2025-VIDA-0442", "MULTAS SUNAT",
		withAction(ActionApprove), withLevel(1), withAmount(5000, "Soles"))))

	// Range check trusts the amount, not the stored tag: asking for level 2
	// finds the first record even though it is tagged level 1.
	got, err := store.ByActionLevelInRange(ActionApprove, 2, resolver, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0441", got.Correlative)

	got, err = store.ByActionLevelInRange(ActionApprove, 1, resolver, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0442", got.Correlative)
}

func TestByActionLevelInRange_Fallbacks(t *testing.T) {
	store := newTestStore(t)
	resolver := rangeResolver(t)

	// Amount outside every configured range, tagged level 3.
	require.NoError(t, store.Insert(record("2025-VIDA-0441", "RESCATE POLIZA",
		withAction(ActionObserve), withLevel(3), withAmount(999999, "Soles"))))

	// No range hit for level 3; stored tag fallback resolves it.
	got, err := store.ByActionLevelInRange(ActionObserve, 3, resolver, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0441", got.Correlative)

	// Neither range nor tag for level 2; action-only fallback resolves it.
	got, err = store.ByActionLevelInRange(ActionObserve, 2, resolver, "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0441", got.Correlative)

	// No record with the action at all.
	got, err = store.ByActionLevelInRange(ActionReject, 1, resolver, "VIDA")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear_DestructiveAndIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Insert(record("2025-VIDA-0441", "PAGO DE SOBREVIVENCIA")))
	require.NoError(t, store.Clear())

	got, err := store.LatestByArea("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.ByMemo("SOBREVIVENCIA", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing again must not fail.
	require.NoError(t, store.Clear())
}

func TestMemoMatches(t *testing.T) {
	assert.True(t, memoMatches("SOBREVIVENCIA", "PAGO DE SOBREVIVENCIA, RESCATE"))
	assert.True(t, memoMatches("PAGO DE SOBREVIVENCIA, RESCATE", "SOBREVIVENCIA"))
	assert.True(t, memoMatches("pago de sobrevivencia", "PAGO DE SOBREVIVENCIA"))
	assert.True(t, memoMatches("  RESCATE, POLIZA  ", "rescate poliza"))
	assert.False(t, memoMatches("MULTAS", "PAGO DE SOBREVIVENCIA"))
}
