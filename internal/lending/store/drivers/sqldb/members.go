package sqldb

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
)

type membersRepo struct {
	q *Queries
}

func (r *membersRepo) AddMember(ctx context.Context, ref, username string) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO project_members (project_ref, username, joined_at) VALUES (?, ?, ?)`,
		ref, username, toMillis(time.Now()))
	return err
}

func (r *membersRepo) RemoveMember(ctx context.Context, ref, username string) error {
	n, err := r.q.execAffected(ctx,
		`DELETE FROM project_members WHERE project_ref = ? AND username = ?`, ref, username)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *membersRepo) RemoveUserFromAll(ctx context.Context, username string) error {
	_, err := r.q.exec(ctx, `DELETE FROM project_members WHERE username = ?`, username)
	return err
}

type holdingsRepo struct {
	q *Queries
}

func (r *holdingsRepo) SetHolding(ctx context.Context, ref, set string, qty int) error {
	if qty <= 0 {
		_, err := r.q.exec(ctx,
			`DELETE FROM project_holdings WHERE project_ref = ? AND hw_set = ?`, ref, set)
		return err
	}
	_, err := r.q.exec(ctx, `
		INSERT INTO project_holdings (project_ref, hw_set, qty) VALUES (?, ?, ?)
		ON CONFLICT (project_ref, hw_set) DO UPDATE SET qty = excluded.qty`,
		ref, set, qty)
	return err
}
