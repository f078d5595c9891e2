// Package postgres is the server store driver, using pgx through
// database/sql and goose migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/postgres/migrations"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/sqldb"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Dialect is the postgres flavour of the shared SQL store. Transactions run
// at READ COMMITTED; stock and project rows are guarded by version CAS.
var Dialect = sqldb.Dialect{
	Name:      "postgres",
	Numbered:  true,
	MapError:  mapError,
	TxOptions: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
}

// NewStore connects to the database at url and verifies the connection.
func NewStore(ctx context.Context, url string) (*sqldb.Store, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return sqldb.New(db, Dialect, applyMigrations), nil
}

func applyMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(context.Background(), db, ".")
}

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", store.ErrAlreadyExists, pgErr.ConstraintName)
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return fmt.Errorf("%w: %s", store.ErrConflict, pgErr.Message)
	default:
		return fmt.Errorf("postgres %s: %s", pgErr.Code, pgErr.Message)
	}
}
