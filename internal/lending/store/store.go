package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports a lost optimistic-concurrency race or a
	// busy/serialization failure. The whole transaction should be retried.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories are reached through methods so that work
// inside a transaction always goes through the Tx-scoped store.
type Store interface {
	Users() Users
	HardwareSets() HardwareSets
	Projects() Projects
	Members() Members
	Holdings() Holdings
	Usage() Usage

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error
	GetUser(ctx context.Context, username string) (domain.User, error)

	// GetUserByResetToken looks a user up by reset token fingerprint. Expiry
	// is checked by the caller.
	GetUserByResetToken(ctx context.Context, tokenHash string) (domain.User, error)

	UpdatePasswordHash(ctx context.Context, username, hash string) error
	SetResetToken(ctx context.Context, username, tokenHash string, expiry time.Time) error

	// ClearResetToken clears the reset token of username only if it still
	// has this fingerprint, otherwise ErrNotFound. A token can therefore be
	// consumed once.
	ClearResetToken(ctx context.Context, username, tokenHash string) error


	// PurgeExpiredResetTokens clears reset tokens that expired before now.
	PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)

	SetMFASecret(ctx context.Context, username, secret string) error
	EnableMFA(ctx context.Context, username string) error
	DisableMFA(ctx context.Context, username string) error

	DeleteUser(ctx context.Context, username string) error
}

type HardwareSets interface {
	// CreateHardwareSet returns ErrAlreadyExists when the name is taken.
	CreateHardwareSet(ctx context.Context, h domain.HardwareSet) error
	GetHardwareSet(ctx context.Context, name string) (domain.HardwareSet, error)

	// ListHardwareSets returns every set ordered by name.
	ListHardwareSets(ctx context.Context) ([]domain.HardwareSet, error)

	// UpdateAvailable sets available and bumps the version, provided the
	// row is still at expectVersion. A stale version yields ErrConflict.
	UpdateAvailable(ctx context.Context, name string, available int, expectVersion int64) error
}

type Projects interface {
	// CreateProject inserts the project row only. ErrAlreadyExists when the
	// public project id is taken.
	CreateProject(ctx context.Context, p domain.Project) error

	// GetProject loads a project by public id with members and holdings.
	GetProject(ctx context.Context, projectID string) (domain.Project, error)

	// ListProjectsForUser returns every project username belongs to, ordered
	// by public id.
	ListProjectsForUser(ctx context.Context, username string) ([]domain.Project, error)

	// ListAll returns every project with members and holdings, ordered by
	// public id.
	ListAll(ctx context.Context) ([]domain.Project, error)

	// ListProjectsOwnedBy returns the projects owned by username.
	ListProjectsOwnedBy(ctx context.Context, username string) ([]domain.Project, error)

	// UpdateProjectID changes the public id. ErrAlreadyExists when taken.
	UpdateProjectID(ctx context.Context, ref, newProjectID string) error
	UpdateName(ctx context.Context, ref, name string) error
	UpdateDescription(ctx context.Context, ref, description string) error

	// BumpVersion increments the version if it still equals expectVersion,
	// otherwise ErrConflict.
	BumpVersion(ctx context.Context, ref string, expectVersion int64) error

	// DeleteProject removes the project with its members and holdings.
	// Usage records are kept.
	DeleteProject(ctx context.Context, ref string) error
}

type Members interface {
	// AddMember returns ErrAlreadyExists when already a member.
	AddMember(ctx context.Context, ref, username string) error

	// RemoveMember returns ErrNotFound when username is not a member.
	RemoveMember(ctx context.Context, ref, username string) error

	// RemoveUserFromAll drops every membership of username.
	RemoveUserFromAll(ctx context.Context, username string) error
}

type Holdings interface {
	// SetHolding stores qty units of set for the project; zero deletes the row.
	SetHolding(ctx context.Context, ref, set string, qty int) error
}

type Usage interface {
	AppendUsage(ctx context.Context, r domain.UsageRecord) error

	// ListUsage returns up to limit records for the project, newest first.
	// Records survive the deletion of their project.
	ListUsage(ctx context.Context, ref string, limit int) ([]domain.UsageRecord, error)

	// ListUnarchived returns up to limit records not yet marked archived,
	// oldest first. Records committed late with an older id are still
	// returned on a later call.
	ListUnarchived(ctx context.Context, limit int) ([]domain.UsageRecord, error)

	// MarkArchived stamps the given records as archived.
	MarkArchived(ctx context.Context, ids []string, at time.Time) error
}
