package correlation

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()

	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "solicitudes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	return NewStore(backend, zerolog.Nop())
}

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	rec := Record{
		Correlative: "2025-SINIESTROS-0012",
		Incident:    "700112",
		Area:        "SINIESTROS",
		Memo:        "INDEMNIZACION ROBO",
		Amount:      money.FromFloat(12500.50),
		Currency:    "Soles",
		CreatedAt:   time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		User:        "recaudador2",
		Action:      ActionReject,
		Level:       2,
	}
	require.NoError(t, store.Insert(rec))

	got, err := store.ByCorrelative("2025-SINIESTROS-0012")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestSQLiteBackend_InsertionOrderAndDuplicates(t *testing.T) {
	store := newSQLiteStore(t)

	// Same correlative twice, tagged for different scenarios.
	require.NoError(t, store.Insert(Record{
		Correlative: "2025-VIDA-0441", Incident: "1", Area: "VIDA",
		Memo: "RESCATE POLIZA", Amount: money.FromFloat(100), Currency: "Soles",
		CreatedAt: time.Now().UTC().Truncate(time.Second), User: "u",
		Action: ActionReject, Level: 1,
	}))
	require.NoError(t, store.Insert(Record{
		Correlative: "2025-VIDA-0441", Incident: "1", Area: "VIDA",
		Memo: "RESCATE POLIZA", Amount: money.FromFloat(100), Currency: "Soles",
		CreatedAt: time.Now().UTC().Truncate(time.Second), User: "u",
		Action: ActionApprove, Level: 1,
	}))

	// First in insertion order.
	got, err := store.ByCorrelative("2025-VIDA-0441")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ActionReject, got.Action)

	// Most recent by memo.
	got, err = store.ByMemo("rescate", "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ActionApprove, got.Action)
}

func TestSQLiteBackend_ClearIdempotent(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Insert(Record{Correlative: "2025-VIDA-0441", Area: "VIDA",
		CreatedAt: time.Now().UTC()}))
	require.NoError(t, store.Clear())

	got, err := store.LatestByArea("")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Clear())
}

func TestNewSQLiteBackend_EmptyDSN(t *testing.T) {
	_, err := NewSQLiteBackend("  ")
	assert.Error(t, err)
}
