package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
)

type projectsRepo struct {
	q *Queries
}

const projectColumns = `p.id, p.project_id, p.name, p.description, p.owner, p.version, p.created_at`

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := r.q.exec(ctx, `
		INSERT INTO projects (id, project_id, name, description, owner, version, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		p.ID, p.ProjectID, p.Name, p.Description, p.Owner, toMillis(p.CreatedAt),
	)
	return err
}

func (r *projectsRepo) GetProject(ctx context.Context, projectID string) (domain.Project, error) {
	var (
		p       domain.Project
		created int64
	)
	err := r.q.queryRow(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.project_id = ?`,
		[]any{projectID},
		&p.ID, &p.ProjectID, &p.Name, &p.Description, &p.Owner, &p.Version, &created,
	)
	if err != nil {
		return domain.Project{}, err
	}
	p.CreatedAt = fromMillis(created)

	if err := r.loadRelations(ctx, &p); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func (r *projectsRepo) ListProjectsForUser(ctx context.Context, username string) ([]domain.Project, error) {
	return r.list(ctx, `
		SELECT `+projectColumns+` FROM projects p
		JOIN project_members m ON m.project_ref = p.id
		WHERE m.username = ?
		ORDER BY p.project_id`, username)
}

func (r *projectsRepo) ListAll(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects p ORDER BY p.project_id`)
}

func (r *projectsRepo) ListProjectsOwnedBy(ctx context.Context, username string) ([]domain.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.owner = ? ORDER BY p.project_id`, username)
}

func (r *projectsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var out []domain.Project
	for rows.Next() {
		var (
			p       domain.Project
			created int64
		)
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Name, &p.Description, &p.Owner, &p.Version, &created); err != nil {
			_ = rows.Close()
			return nil, r.q.d.mapErr(err)
		}
		p.CreatedAt = fromMillis(created)
		out = append(out, p)
	}
	// Release the connection before the follow-up queries; a transaction
	// holds only one.
	if err := closeRows(rows); err != nil {
		return nil, r.q.d.mapErr(err)
	}

	for i := range out {
		if err := r.loadRelations(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *projectsRepo) loadRelations(ctx context.Context, p *domain.Project) error {
	members, err := r.q.query(ctx,
		`SELECT username FROM project_members WHERE project_ref = ? ORDER BY username`, p.ID)
	if err != nil {
		return err
	}
	p.Members = []string{}
	for members.Next() {
		var u string
		if err := members.Scan(&u); err != nil {
			_ = members.Close()
			return r.q.d.mapErr(err)
		}
		p.Members = append(p.Members, u)
	}
	if err := closeRows(members); err != nil {
		return r.q.d.mapErr(err)
	}

	holdings, err := r.q.query(ctx,
		`SELECT hw_set, qty FROM project_holdings WHERE project_ref = ? ORDER BY hw_set`, p.ID)
	if err != nil {
		return err
	}
	p.Holdings = map[string]int{}
	for holdings.Next() {
		var (
			set string
			qty int
		)
		if err := holdings.Scan(&set, &qty); err != nil {
			_ = holdings.Close()
			return r.q.d.mapErr(err)
		}
		p.Holdings[set] = qty
	}
	return r.q.d.mapErr(closeRows(holdings))
}

func closeRows(rows *sql.Rows) error {
	err := rows.Err()
	if cerr := rows.Close(); err == nil {
		err = cerr
	}
	return err
}

func (r *projectsRepo) updateOne(ctx context.Context, query string, args ...any) error {
	n, err := r.q.execAffected(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *projectsRepo) UpdateProjectID(ctx context.Context, ref, newProjectID string) error {
	return r.updateOne(ctx,
		`UPDATE projects SET project_id = ?, version = version + 1 WHERE id = ?`, newProjectID, ref)
}

func (r *projectsRepo) UpdateName(ctx context.Context, ref, name string) error {
	return r.updateOne(ctx,
		`UPDATE projects SET name = ?, version = version + 1 WHERE id = ?`, name, ref)
}

func (r *projectsRepo) UpdateDescription(ctx context.Context, ref, description string) error {
	return r.updateOne(ctx,
		`UPDATE projects SET description = ?, version = version + 1 WHERE id = ?`, description, ref)
}

func (r *projectsRepo) BumpVersion(ctx context.Context, ref string, expectVersion int64) error {
	n, err := r.q.execAffected(ctx,
		`UPDATE projects SET version = version + 1 WHERE id = ? AND version = ?`, ref, expectVersion)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *projectsRepo) DeleteProject(ctx context.Context, ref string) error {
	// Children are removed explicitly so the result does not depend on the
	// connection having foreign key enforcement switched on. Usage records
	// are kept.
	for _, q := range []string{
		`DELETE FROM project_holdings WHERE project_ref = ?`,
		`DELETE FROM project_members WHERE project_ref = ?`,
	} {
		if _, err := r.q.exec(ctx, q, ref); err != nil {
			return err
		}
	}
	return r.updateOne(ctx, `DELETE FROM projects WHERE id = ?`, ref)
}
