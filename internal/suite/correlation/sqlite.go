package correlation

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS solicitudes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  correlativo TEXT NOT NULL,
  incidente TEXT NOT NULL,
  area TEXT NOT NULL,
  memo TEXT NOT NULL,
  monto_cents INTEGER NOT NULL,
  moneda TEXT NOT NULL,
  created_at_unix INTEGER NOT NULL,
  usuario TEXT NOT NULL,
  accion TEXT NOT NULL DEFAULT '',
  nivel INTEGER NOT NULL DEFAULT 0
);`

// SQLiteBackend stores records in an embedded sqlite database. Insertion
// order is preserved through the autoincrement rowid; ReadAll never reorders
// or deduplicates. Same single-writer discipline as the file backend.
type SQLiteBackend struct {
	dsn string

	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteBackend(dsn string) (*SQLiteBackend, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("missing sqlite dsn")
	}

	b := &SQLiteBackend{dsn: dsn}
	if err := b.open(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) open() error {
	db, err := sql.Open("sqlite", b.dsn)
	if err != nil {
		return fmt.Errorf("open request store db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return fmt.Errorf("init request store schema: %w", err)
	}
	b.db = db
	return nil
}

func (b *SQLiteBackend) ensureOpen() error {
	if b.db != nil {
		return nil
	}
	return b.open()
}

func (b *SQLiteBackend) ReadAll() ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := b.db.Query(`
SELECT correlativo, incidente, area, memo, monto_cents, moneda, created_at_unix, usuario, accion, nivel
FROM solicitudes
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("read request store: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var (
			rec           Record
			montoCents    int64
			createdAtUnix int64
			accion        string
		)
		if err := rows.Scan(
			&rec.Correlative, &rec.Incident, &rec.Area, &rec.Memo,
			&montoCents, &rec.Currency, &createdAtUnix, &rec.User,
			&accion, &rec.Level,
		); err != nil {
			return nil, fmt.Errorf("scan request record: %w", err)
		}
		rec.Amount = money.Amount(montoCents)
		rec.CreatedAt = time.Unix(createdAtUnix, 0).UTC()
		rec.Action = Action(accion)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read request store: %w", err)
	}

	return recs, nil
}

func (b *SQLiteBackend) Append(rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureOpen(); err != nil {
		return err
	}

	_, err := b.db.Exec(`
INSERT INTO solicitudes (correlativo, incidente, area, memo, monto_cents, moneda, created_at_unix, usuario, accion, nivel)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Correlative, rec.Incident, rec.Area, rec.Memo,
		int64(rec.Amount), rec.Currency, rec.CreatedAt.Unix(), rec.User,
		string(rec.Action), rec.Level,
	)
	if err != nil {
		return fmt.Errorf("write request store: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureOpen(); err != nil {
		return err
	}

	if _, err := b.db.Exec(`DELETE FROM solicitudes`); err != nil {
		return fmt.Errorf("clear request store: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
