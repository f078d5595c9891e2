// Package sqlite is the embedded store driver, backed by modernc.org/sqlite.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/sqldb"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect is the sqlite flavour of the shared SQL store.
var Dialect = sqldb.Dialect{
	Name:     "sqlite",
	MapError: mapError,
}

// NewStore opens the database at path. Every connection runs with foreign
// keys on, WAL journaling and a busy timeout, and transactions take the
// write lock up front (BEGIN IMMEDIATE) so concurrent writers queue instead
// of failing on upgrade.
//
// ":memory:" opens a private in-memory database limited to one connection.
func NewStore(path string) (*sqldb.Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	return sqldb.New(db, Dialect, applyMigrations), nil
}

func dsn(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Set("_txlock", "immediate")
	if path != ":memory:" {
		params.Add("_pragma", "journal_mode(WAL)")
		params.Add("_pragma", "synchronous(NORMAL)")
	}

	prefix := "file:"
	if strings.HasPrefix(path, "file:") {
		prefix = ""
	}
	return prefix + path + "?" + params.Encode()
}

func mapError(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		switch code {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
		switch code & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %v", store.ErrConflict, err)
		}
		return err
	}

	// Some paths surface only the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	case strings.Contains(msg, "database is locked"):
		return fmt.Errorf("%w: %v", store.ErrConflict, err)
	}
	return err
}
