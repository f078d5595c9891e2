package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
)

type usersRepo struct {
	q *Queries
}

const userColumns = `username, email, password_hash, role, reset_token_hash,
	reset_token_expiry, mfa_secret, mfa_enabled, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	_, err := r.q.exec(ctx, `
		INSERT INTO users (username, email, password_hash, role, mfa_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, FALSE, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, string(u.Role), toMillis(u.CreatedAt), toMillis(now),
	)
	return err
}

func (r *usersRepo) GetUser(ctx context.Context, username string) (domain.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *usersRepo) GetUserByResetToken(ctx context.Context, tokenHash string) (domain.User, error) {
	if tokenHash == "" {
		return domain.User{}, store.ErrNotFound
	}
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token_hash = ?`, tokenHash)
}

func (r *usersRepo) scanOne(ctx context.Context, query string, args ...any) (domain.User, error) {
	var (
		u           domain.User
		role        string
		resetHash   sql.NullString
		resetExpiry sql.NullInt64
		mfaSecret   sql.NullString
		created     int64
		updated     int64
	)
	err := r.q.queryRow(ctx, query, args,
		&u.Username, &u.Email, &u.PasswordHash, &role, &resetHash,
		&resetExpiry, &mfaSecret, &u.MFAEnabled, &created, &updated,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.Role = domain.Role(role)
	u.ResetTokenHash = resetHash.String
	if resetExpiry.Valid {
		t := fromMillis(resetExpiry.Int64)
		u.ResetTokenExpiry = &t
	}
	u.MFASecret = mfaSecret.String
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return u, nil
}

// updateOne runs an UPDATE that must touch exactly one user row.
func (r *usersRepo) updateOne(ctx context.Context, query string, args ...any) error {
	n, err := r.q.execAffected(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	return r.updateOne(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE username = ?`,
		hash, toMillis(time.Now()), username)
}

func (r *usersRepo) SetResetToken(ctx context.Context, username, tokenHash string, expiry time.Time) error {
	return r.updateOne(ctx,
		`UPDATE users SET reset_token_hash = ?, reset_token_expiry = ?, updated_at = ? WHERE username = ?`,
		tokenHash, toMillis(expiry), toMillis(time.Now()), username)
}

func (r *usersRepo) ClearResetToken(ctx context.Context, username, tokenHash string) error {
	if tokenHash == "" {
		return store.ErrNotFound
	}
	return r.updateOne(ctx, `
		UPDATE users SET reset_token_hash = NULL, reset_token_expiry = NULL, updated_at = ?
		WHERE username = ? AND reset_token_hash = ?`,
		toMillis(time.Now()), username, tokenHash)
}

func (r *usersRepo) PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.q.execAffected(ctx, `
		UPDATE users SET reset_token_hash = NULL, reset_token_expiry = NULL
		WHERE reset_token_expiry IS NOT NULL AND reset_token_expiry < ?`,
		toMillis(now))
}

func (r *usersRepo) SetMFASecret(ctx context.Context, username, secret string) error {
	return r.updateOne(ctx,
		`UPDATE users SET mfa_secret = ?, mfa_enabled = FALSE, updated_at = ? WHERE username = ?`,
		nullString(secret), toMillis(time.Now()), username)
}

func (r *usersRepo) EnableMFA(ctx context.Context, username string) error {
	return r.updateOne(ctx,
		`UPDATE users SET mfa_enabled = TRUE, updated_at = ? WHERE username = ? AND mfa_secret IS NOT NULL`,
		toMillis(time.Now()), username)
}

func (r *usersRepo) DisableMFA(ctx context.Context, username string) error {
	return r.updateOne(ctx,
		`UPDATE users SET mfa_enabled = FALSE, mfa_secret = NULL, updated_at = ? WHERE username = ?`,
		toMillis(time.Now()), username)
}

func (r *usersRepo) DeleteUser(ctx context.Context, username string) error {
	return r.updateOne(ctx, `DELETE FROM users WHERE username = ?`, username)
}
