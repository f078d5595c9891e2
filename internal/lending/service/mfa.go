package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// MFAEnrollment is returned when a TOTP secret is generated.
type MFAEnrollment struct {
	Secret  string
	URL     string // otpauth:// URL for QR codes
	Issuer  string
	Account string
}

type MFAService struct {
	Store  store.Store
	Issuer string // shown in authenticator apps, e.g. "hwlend"
}

// Enroll generates a TOTP secret for username. MFA is not enabled until the
// first code is confirmed. Enrolling again replaces an unconfirmed secret.
func (s *MFAService) Enroll(ctx context.Context, username string) (MFAEnrollment, error) {
	u, err := s.getUser(ctx, username)
	if err != nil {
		return MFAEnrollment{}, err
	}
	if u.MFAEnabled {
		return MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return MFAEnrollment{}, internal(err)
	}

	if err := s.Store.Users().SetMFASecret(ctx, username, key.Secret()); err != nil {
		return MFAEnrollment{}, internal(err)
	}

	return MFAEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: username,
	}, nil
}

// Confirm enables MFA once code matches the enrolled secret.
func (s *MFAService) Confirm(ctx context.Context, username, code string) error {
	u, err := s.getUser(ctx, username)
	if err != nil {
		return err
	}
	if u.MFAEnabled {
		return ErrMFAAlreadyEnabled
	}
	if u.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if !totp.Validate(code, u.MFASecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().EnableMFA(ctx, username); err != nil {
		return internal(err)
	}

	slogx.FromContext(ctx).Info("mfa enabled", "username", username)
	return nil
}

// Disable turns MFA off. A current code is required.
func (s *MFAService) Disable(ctx context.Context, username, code string) error {
	u, err := s.getUser(ctx, username)
	if err != nil {
		return err
	}
	if !u.MFAEnabled {
		return ErrMFANotEnabled
	}
	if !totp.Validate(code, u.MFASecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().DisableMFA(ctx, username); err != nil {
		return internal(err)
	}

	slogx.FromContext(ctx).Info("mfa disabled", "username", username)
	return nil
}

func (s *MFAService) getUser(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, internal(err)
	}
	return u, nil
}
