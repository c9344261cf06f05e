// Package storage picks an event repository backend from a DSN.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/wazxo/EmercengyAPP/internal/errs"
	"github.com/wazxo/EmercengyAPP/internal/repository"
	"github.com/wazxo/EmercengyAPP/internal/repository/postgres"
	"github.com/wazxo/EmercengyAPP/internal/repository/sqlite"
)

// Backend names the store behind a DSN.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Parse returns the backend for dsn and the DSN to hand to it.
//
//	""                     -> sqlite, default file
//	"events.db"            -> sqlite
//	"file:events.db?..."   -> sqlite
//	"sqlite:events.db"     -> sqlite, prefix stripped
//	"postgres://..."       -> postgres
//	"postgresql://..."     -> postgres
func Parse(dsn string) (Backend, string, error) {
	dsn = strings.TrimSpace(dsn)
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres, dsn, nil
	case strings.HasPrefix(lower, "sqlite:"):
		return BackendSQLite, strings.TrimPrefix(dsn[len("sqlite:"):], "//"), nil
	case strings.HasPrefix(lower, "file:"):
		return BackendSQLite, dsn, nil
	case strings.Contains(dsn, "://"):
		return "", "", fmt.Errorf("unsupported dsn %q: %w", dsn, errs.ErrStorageUnavailable)
	default:
		return BackendSQLite, dsn, nil
	}
}

// Open opens and migrates the store named by dsn.
func Open(ctx context.Context, dsn string) (repository.EventRepository, error) {
	backend, target, err := Parse(dsn)
	if err != nil {
		return nil, err
	}
	if backend == BackendPostgres {
		return postgres.Open(ctx, target)
	}
	return sqlite.Open(ctx, target)
}
