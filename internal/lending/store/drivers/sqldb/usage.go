package sqldb

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
)

type usageRepo struct {
	q *Queries
}

// Records of deleted projects keep the project id they were written with.
const usageColumns = `u.id, u.project_ref, COALESCE(p.project_id, u.project_id), u.hw_set, u.username, u.action, u.qty, u.created_at`

func (r *usageRepo) AppendUsage(ctx context.Context, rec domain.UsageRecord) error {
	_, err := r.q.exec(ctx, `
		INSERT INTO usage_records (id, project_ref, project_id, hw_set, username, action, qty, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ProjectRef, rec.ProjectID, rec.HWSetName, rec.Username, string(rec.Action), rec.Qty, toMillis(rec.Timestamp),
	)
	return err
}

func (r *usageRepo) ListUsage(ctx context.Context, ref string, limit int) ([]domain.UsageRecord, error) {
	return r.list(ctx, `
		SELECT `+usageColumns+` FROM usage_records u
		LEFT JOIN projects p ON p.id = u.project_ref
		WHERE u.project_ref = ?
		ORDER BY u.id DESC
		LIMIT ?`, ref, limit)
}

func (r *usageRepo) ListUnarchived(ctx context.Context, limit int) ([]domain.UsageRecord, error) {
	return r.list(ctx, `
		SELECT `+usageColumns+` FROM usage_records u
		LEFT JOIN projects p ON p.id = u.project_ref
		WHERE u.archived_at IS NULL
		ORDER BY u.id
		LIMIT ?`, limit)
}

func (r *usageRepo) MarkArchived(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, toMillis(at))
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	_, err := r.q.exec(ctx,
		`UPDATE usage_records SET archived_at = ? WHERE archived_at IS NULL AND id IN (`+placeholders+`)`,
		args...)
	return err
}

func (r *usageRepo) list(ctx context.Context, query string, args ...any) ([]domain.UsageRecord, error) {
	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.UsageRecord{}
	for rows.Next() {
		var (
			rec    domain.UsageRecord
			action string
			ts     int64
		)
		if err := rows.Scan(&rec.ID, &rec.ProjectRef, &rec.ProjectID, &rec.HWSetName,
			&rec.Username, &action, &rec.Qty, &ts); err != nil {
			return nil, r.q.d.mapErr(err)
		}
		rec.Action = domain.UsageAction(action)
		rec.Timestamp = fromMillis(ts)
		out = append(out, rec)
	}
	return out, r.q.d.mapErr(rows.Err())
}
