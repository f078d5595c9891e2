package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/cryptox"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

// DefaultResetTokenTTL is how long a password reset token stays valid.
const DefaultResetTokenTTL = time.Hour

// Notifier delivers password reset tokens to their owner.
type Notifier interface {
	SendPasswordReset(ctx context.Context, user domain.User, token string, expiresAt time.Time) error
}

// LogNotifier writes reset tokens to the request logger. Development only.
type LogNotifier struct{}

func (LogNotifier) SendPasswordReset(ctx context.Context, user domain.User, token string, expiresAt time.Time) error {
	slogx.FromContext(ctx).Info("password reset token issued",
		"username", user.Username,
		"email", user.Email,
		"token", token,
		"expires_at", expiresAt,
	)
	return nil
}

// AccountService owns the account lifecycle.
type AccountService struct {
	Store         store.Store
	Notifier      Notifier
	ResetTokenTTL time.Duration
	MaxTxAttempts int
}

// dummyHash is compared against when the username is unknown so a failed
// sign-in costs the same either way.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("hwlend-dummy-password")
	if err != nil {
		return ""
	}
	return h
})

// Register creates a regular user account.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	return s.CreateUser(ctx, username, email, password, domain.RoleUser)
}

// CreateUser creates an account with the given role.
func (s *AccountService) CreateUser(ctx context.Context, username, email, password string, role domain.Role) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || !role.Valid() {
		return domain.User{}, ErrInvalidRequest
	}
	if err := cryptox.ValidatePassword(password); err != nil {
		return domain.User{}, ErrInvalidRequest
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, internal(err)
	}

	now := time.Now().UTC()
	u := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateName
		}
		return domain.User{}, internal(err)
	}

	slogx.FromContext(ctx).Info("account created", "username", username, "role", role)
	return u, nil
}

// GetUser returns the account for username.
func (s *AccountService) GetUser(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, internal(err)
	}
	return u, nil
}

// Authenticate checks the password and, when MFA is enabled, the TOTP code.
func (s *AccountService) Authenticate(ctx context.Context, username, password, totpCode string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		_ = cryptox.VerifyPassword(password, dummyHash())
		log.Warn("sign-in failed", "username", username, "reason", "unknown user")
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, internal(err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash unusable", "username", username, "err", err)
		}
		log.Warn("sign-in failed", "username", username, "reason", "bad password")
		return domain.User{}, ErrInvalidCredentials
	}

	if u.MFAEnabled {
		if totpCode == "" {
			return domain.User{}, ErrMFARequired
		}
		if !totp.Validate(totpCode, u.MFASecret) {
			log.Warn("sign-in failed", "username", username, "reason", "bad totp code")
			return domain.User{}, ErrInvalidTOTPCode
		}
	}

	return u, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *AccountService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if err := cryptox.ValidatePassword(newPassword); err != nil {
		return ErrInvalidRequest
	}
	u, err := s.GetUser(ctx, username)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(oldPassword, u.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return internal(err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, username, hash); err != nil {
		return internal(err)
	}

	slogx.FromContext(ctx).Info("password changed", "username", username)
	return nil
}

// RequestPasswordReset mints a reset token and hands it to the Notifier.
// Only the token fingerprint is stored. Unknown usernames succeed silently.
func (s *AccountService) RequestPasswordReset(ctx context.Context, username string) error {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("password reset requested for unknown user", "username", username)
		return nil
	}
	if err != nil {
		return internal(err)
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return internal(err)
	}
	ttl := s.ResetTokenTTL
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	expiry := time.Now().Add(ttl).UTC()

	if err := s.Store.Users().SetResetToken(ctx, username, cryptox.FingerprintToken(token), expiry); err != nil {
		return internal(err)
	}

	notifier := s.Notifier
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if err := notifier.SendPasswordReset(ctx, u, token, expiry); err != nil {
		return internal(err)
	}
	return nil
}

// ResetPassword sets a new password using a reset token. The token is
// single use.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}
	if err := cryptox.ValidatePassword(newPassword); err != nil {
		return ErrInvalidRequest
	}

	fingerprint := cryptox.FingerprintToken(token)
	// Looked up once before hashing so unknown tokens stay cheap, and again
	// inside the transaction where the token is consumed.
	if _, err := validResetToken(ctx, s.Store, fingerprint); err != nil {
		if isDomainError(err) {
			return err
		}
		return internal(err)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return internal(err)
	}

	var username string
	err = runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		u, err := validResetToken(ctx, tx, fingerprint)
		if err != nil {
			return err
		}
		// Only the request that clears this exact fingerprint wins.
		err = tx.Users().ClearResetToken(ctx, u.Username, fingerprint)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		username = u.Username
		return tx.Users().UpdatePasswordHash(ctx, u.Username, hash)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset", "username", username)
	return nil
}

// validResetToken returns the user holding an unexpired token with this
// fingerprint, or ErrInvalidResetToken. Store errors are returned as is.
func validResetToken(ctx context.Context, st store.Store, fingerprint string) (domain.User, error) {
	u, err := st.Users().GetUserByResetToken(ctx, fingerprint)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidResetToken
	}
	if err != nil {
		return domain.User{}, err
	}
	if u.ResetTokenExpiry == nil || time.Now().After(*u.ResetTokenExpiry) {
		return domain.User{}, ErrInvalidResetToken
	}
	return u, nil
}

// DeleteAccount removes the account after checking its password. Owned
// projects are deleted with their holdings returned, other memberships are
// dropped, then the user is removed. Everything happens in one transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, username, password string) error {
	u, err := s.GetUser(ctx, username)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	var deleted int
	err = runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		deleted = 0
		owned, err := tx.Projects().ListProjectsOwnedBy(ctx, username)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, o := range owned {
			p, err := tx.Projects().GetProject(ctx, o.ProjectID)
			if err != nil {
				return err
			}
			if err := deleteProject(ctx, tx, p, username, now); err != nil {
				return err
			}
			deleted++
		}

		if err := tx.Members().RemoveUserFromAll(ctx, username); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, username)
	})
	if err != nil {
		// Partial cascades are never applied, so every failure here is internal.
		if !errors.Is(err, ErrInternal) {
			err = internal(err)
		}
		slogx.FromContext(ctx).Error("account deletion failed", "username", username, "err", err)
		return err
	}

	slogx.FromContext(ctx).Info("account deleted", "username", username, "projects_deleted", deleted)
	return nil
}
