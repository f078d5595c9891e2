// Package sqldb implements store.Store on database/sql. The sqlite and
// postgres drivers configure it with a Dialect and their own migrations.
package sqldb

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
)

// Dialect captures the differences between the supported databases.
type Dialect struct {
	Name string

	// Numbered placeholders ($1, $2, ...) instead of ?.
	Numbered bool

	// MapError translates driver errors into store sentinels. It returns err
	// unchanged when there is nothing to translate.
	MapError func(err error) error

	// TxOptions used for every read/write transaction.
	TxOptions *sql.TxOptions
}

// rebind rewrites ? placeholders for dialects that number them. Queries in
// this package never contain ? inside string literals.
func (d Dialect) rebind(query string) string {
	if !d.Numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if d.MapError != nil {
		return d.MapError(err)
	}
	return err
}
