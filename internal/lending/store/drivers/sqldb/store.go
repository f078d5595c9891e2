package sqldb

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
)

// MigrateFunc applies the driver's schema migrations to db.
type MigrateFunc func(db *sql.DB) error

type Store struct {
	db      *sql.DB
	q       *Queries
	d       Dialect
	migrate MigrateFunc
}

var _ store.Store = (*Store)(nil)

// New wraps an open database. The caller hands ownership of db to the Store.
func New(db *sql.DB, d Dialect, migrate MigrateFunc) *Store {
	return &Store{db: db, q: newQueries(db, d), d: d, migrate: migrate}
}

// DB exposes the underlying pool for driver-level setup and tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) ApplyMigrations() error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(s.db)
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, s.d.TxOptions)
	if err != nil {
		return nil, s.d.mapErr(err)
	}
	return &txStore{tx: tx, q: newQueries(tx, s.d)}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users               { return &usersRepo{q: s.q} }
func (s *Store) HardwareSets() store.HardwareSets { return &hardwareRepo{q: s.q} }
func (s *Store) Projects() store.Projects         { return &projectsRepo{q: s.q} }
func (s *Store) Members() store.Members           { return &membersRepo{q: s.q} }
func (s *Store) Holdings() store.Holdings         { return &holdingsRepo{q: s.q} }
func (s *Store) Usage() store.Usage               { return &usageRepo{q: s.q} }

type txStore struct {
	tx *sql.Tx
	q  *Queries
}

func (t *txStore) Commit() error { return t.q.d.mapErr(t.tx.Commit()) }

func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op: the outer Store owns the pool.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error { return sql.ErrTxDone }

// Migrations run against the pool before any transaction is opened.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users               { return &usersRepo{q: t.q} }
func (t *txStore) HardwareSets() store.HardwareSets { return &hardwareRepo{q: t.q} }
func (t *txStore) Projects() store.Projects         { return &projectsRepo{q: t.q} }
func (t *txStore) Members() store.Members           { return &membersRepo{q: t.q} }
func (t *txStore) Holdings() store.Holdings         { return &holdingsRepo{q: t.q} }
func (t *txStore) Usage() store.Usage               { return &usageRepo{q: t.q} }
