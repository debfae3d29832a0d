// Package sqlite provides a SQLite-backed catalog storage implementation.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
	"github.com/linagora/Argus-du-Libre/internal/catalog/storage/sqlite/migrations"
	sqlitemigrate "github.com/linagora/Argus-du-Libre/internal/platform/storage/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const fallbackLocale = "en-US"

// Store persists catalog state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

// Open opens a SQLite catalog store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

type translationRow struct {
	ownerID int64
	locale  string
	name    string
}

// resolveNames picks one display name per owner. The requested locale wins,
// then the fallback locale, then the lexicographically first locale.
func resolveNames(rows []translationRow, locale string) map[int64]string {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ownerID != rows[j].ownerID {
			return rows[i].ownerID < rows[j].ownerID
		}
		return rows[i].locale < rows[j].locale
	})
	rank := func(candidate string) int {
		switch candidate {
		case locale:
			return 0
		case fallbackLocale:
			return 1
		default:
			return 2
		}
	}
	names := make(map[int64]string, len(rows))
	best := make(map[int64]int, len(rows))
	for _, row := range rows {
		r := rank(row.locale)
		current, ok := best[row.ownerID]
		if !ok || r < current {
			best[row.ownerID] = r
			names[row.ownerID] = row.name
		}
	}
	return names
}

var _ storage.Store = (*Store)(nil)
