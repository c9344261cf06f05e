// Package sqlite contains the embedded SQLite implementation of the event repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/wazxo/EmercengyAPP/internal/errs"
	"github.com/wazxo/EmercengyAPP/internal/migrate"
)

// DefaultDSN is used when Open receives an empty DSN.
const DefaultDSN = "file:events.db"

// EventRepo implements repository.EventRepository on an embedded SQLite file.
type EventRepo struct{ db *sql.DB }

// Open opens (creating if needed) the database file, switches it to WAL and
// applies the schema. Any failure is reported as errs.ErrStorageUnavailable.
//
// Accepted forms: "events.db", "file:events.db", "file:/abs/path.db?_pragma=...".
func Open(ctx context.Context, dsn string) (*EventRepo, error) {
	db, err := sql.Open("sqlite3", normalizeDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w: %w", errs.ErrStorageUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w: %w", errs.ErrStorageUnavailable, err)
	}
	if err := migrate.Up(ctx, db, migrate.SQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w: %w", errs.ErrStorageUnavailable, err)
	}
	return &EventRepo{db: db}, nil
}

// Close closes the underlying database handle.
func (r *EventRepo) Close() error { return r.db.Close() }

// normalizeDSN turns a bare path into a file: URI and adds the WAL and
// busy-timeout pragmas unless the caller already set them.
func normalizeDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = DefaultDSN
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	var pragmas []string
	if !strings.Contains(dsn, "journal_mode") {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		pragmas = append(pragmas, "_pragma=busy_timeout(5000)")
	}
	if len(pragmas) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}
