package sqldb

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs dialect-rebound statements against a DBTX.
type Queries struct {
	db DBTX
	d  Dialect
}

func newQueries(db DBTX, d Dialect) *Queries {
	return &Queries{db: db, d: d}
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := q.db.ExecContext(ctx, q.d.rebind(query), args...)
	return res, q.d.mapErr(err)
}

// execAffected runs query and returns the number of rows it touched.
func (q *Queries) execAffected(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return n, q.d.mapErr(err)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := q.db.QueryContext(ctx, q.d.rebind(query), args...)
	return rows, q.d.mapErr(err)
}

// queryRow scans a single row into dest, mapping sql.ErrNoRows.
func (q *Queries) queryRow(ctx context.Context, query string, args []any, dest ...any) error {
	return q.d.mapErr(q.db.QueryRowContext(ctx, q.d.rebind(query), args...).Scan(dest...))
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
