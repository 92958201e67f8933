package correlation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

func newFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solicitudes-creadas.json")
	return NewStore(NewFileBackend(path), zerolog.Nop()), path
}

func TestFileBackend_RoundTrip(t *testing.T) {
	store, _ := newFileStore(t)

	rec := Record{
		Correlative: "2025-VIDA-0441",
		Incident:    "633287",
		Area:        "VIDA",
		Memo:        "PAGO DE SOBREVIVENCIA",
		Amount:      money.FromFloat(800),
		Currency:    "Dolares",
		CreatedAt:   time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		User:        "recaudador1",
		Action:      ActionApprove,
		Level:       1,
	}
	require.NoError(t, store.Insert(rec))

	got, err := store.ByCorrelative("2025-VIDA-0441")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestFileBackend_PreservesInsertionOrder(t *testing.T) {
	store, _ := newFileStore(t)

	for _, correlative := range []string{"2025-VIDA-0481", "2025-VIDA-0482", "2025-VIDA-0483"} {
		require.NoError(t, store.Insert(Record{
			Correlative: correlative,
			Incident:    "1",
			Area:        "VIDA",
			Memo:        "RESCATE POLIZA",
			Amount:      money.FromFloat(100),
			Currency:    "Soles",
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
			User:        "recaudador1",
		}))
	}

	got, err := store.ByMemo("rescate", "VIDA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-VIDA-0483", got.Correlative)

	first, err := store.ByCorrelative("2025-VIDA-0481")
	require.NoError(t, err)
	require.NotNil(t, first)
}

func TestFileBackend_MissingFileIsEmptyStore(t *testing.T) {
	store, _ := newFileStore(t)

	got, err := store.LatestByArea("VIDA")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileBackend_ClearRemovesFile(t *testing.T) {
	store, path := newFileStore(t)

	require.NoError(t, store.Insert(Record{Correlative: "2025-VIDA-0441", Area: "VIDA"}))
	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Idempotent.
	require.NoError(t, store.Clear())
}

func TestFileBackend_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solicitudes-creadas.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	backend := NewFileBackend(path)
	_, err := backend.ReadAll()
	assert.Error(t, err)
}

func TestFileBackend_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "solicitudes-creadas.json")
	store := NewStore(NewFileBackend(path), zerolog.Nop())

	require.NoError(t, store.Insert(Record{Correlative: "2025-VIDA-0441", Area: "VIDA"}))

	got, err := store.ByCorrelative("2025-VIDA-0441")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
