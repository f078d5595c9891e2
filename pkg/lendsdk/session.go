package lendsdk

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"
)

// Session is a signed-in user. There is no refresh flow: once the token
// expires every call returns ErrSessionExpired.
type Session struct {
	client   *Client
	username string

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	scopes      []string
}

func newSession(c *Client, username string, resp SessionResponse) *Session {
	return &Session{
		client:      c,
		username:    username,
		accessToken: resp.AccessToken,
		expiresAt:   resp.ExpiresAt,
		scopes:      strings.Fields(resp.Scope),
	}
}

// NewSessionFromToken wraps an access token obtained elsewhere.
func (c *Client) NewSessionFromToken(username, accessToken string, expiresAt time.Time, scopes []string) *Session {
	return &Session{
		client:      c,
		username:    username,
		accessToken: accessToken,
		expiresAt:   expiresAt,
		scopes:      slices.Clone(scopes),
	}
}

func (s *Session) Username() string { return s.username }

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// HasScope reports whether the session was granted scope.
func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.scopes, scope)
}

func (s *Session) token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// do sends an authenticated request and decodes the response.
func (s *Session) do(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	resp, err := s.client.doRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}

// ChangePassword replaces the account password.
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return s.do(ctx, http.MethodPost, "/v1/accounts/password", ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil, http.StatusOK)
}

// DeleteAccount deletes the account, its owned projects and memberships. The
// session is unusable afterwards.
func (s *Session) DeleteAccount(ctx context.Context, password string) error {
	if err := s.do(ctx, http.MethodDelete, "/v1/accounts/me", DeleteAccountRequest{Password: password}, nil, http.StatusOK); err != nil {
		return err
	}
	s.mu.Lock()
	s.accessToken = ""
	s.expiresAt = time.Unix(0, 0)
	s.mu.Unlock()
	return nil
}

// EnrollTOTP starts MFA enrollment.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.do(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmTOTP enables MFA with the first code from the authenticator.
func (s *Session) ConfirmTOTP(ctx context.Context, code string) error {
	return s.do(ctx, http.MethodPost, "/v1/mfa/totp/confirm", TOTPCodeRequest{Code: code}, nil, http.StatusOK)
}

// DisableTOTP turns MFA off.
func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	return s.do(ctx, http.MethodDelete, "/v1/mfa/totp", TOTPCodeRequest{Code: code}, nil, http.StatusOK)
}

func projectPath(projectID string, rest ...string) string {
	p := "/v1/projects/" + url.PathEscape(projectID)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func hardwarePath(name string) string {
	return "/v1/hardware/" + url.PathEscape(name)
}
