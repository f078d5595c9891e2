package sqldb

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
)

type hardwareRepo struct {
	q *Queries
}

func (r *hardwareRepo) CreateHardwareSet(ctx context.Context, h domain.HardwareSet) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	_, err := r.q.exec(ctx, `
		INSERT INTO hardware_sets (name, capacity, available, version, created_at)
		VALUES (?, ?, ?, 0, ?)`,
		h.Name, h.Capacity, h.Available, toMillis(h.CreatedAt),
	)
	return err
}

func (r *hardwareRepo) GetHardwareSet(ctx context.Context, name string) (domain.HardwareSet, error) {
	var (
		h       domain.HardwareSet
		created int64
	)
	err := r.q.queryRow(ctx,
		`SELECT name, capacity, available, version, created_at FROM hardware_sets WHERE name = ?`,
		[]any{name},
		&h.Name, &h.Capacity, &h.Available, &h.Version, &created,
	)
	if err != nil {
		return domain.HardwareSet{}, err
	}
	h.CreatedAt = fromMillis(created)
	return h, nil
}

func (r *hardwareRepo) ListHardwareSets(ctx context.Context) ([]domain.HardwareSet, error) {
	rows, err := r.q.query(ctx,
		`SELECT name, capacity, available, version, created_at FROM hardware_sets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HardwareSet
	for rows.Next() {
		var (
			h       domain.HardwareSet
			created int64
		)
		if err := rows.Scan(&h.Name, &h.Capacity, &h.Available, &h.Version, &created); err != nil {
			return nil, r.q.d.mapErr(err)
		}
		h.CreatedAt = fromMillis(created)
		out = append(out, h)
	}
	return out, r.q.d.mapErr(rows.Err())
}

func (r *hardwareRepo) UpdateAvailable(ctx context.Context, name string, available int, expectVersion int64) error {
	n, err := r.q.execAffected(ctx, `
		UPDATE hardware_sets SET available = ?, version = version + 1
		WHERE name = ? AND version = ?`,
		available, name, expectVersion,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}
