package lendsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to a hwlend server. It performs the public operations and
// creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accounts", "", req)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login signs in and returns a Session. totpCode is only needed when MFA is
// enabled; otherwise pass "".
func (c *Client) Login(ctx context.Context, username, password, totpCode string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/sessions", "", LoginRequest{
		Username: username,
		Password: password,
		TOTPCode: totpCode,
	})
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, username, out), nil
}

// RequestPasswordReset asks the server to send a reset token. It succeeds
// whether or not the account exists.
func (c *Client) RequestPasswordReset(ctx context.Context, username string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accounts/password-reset", "", PasswordResetRequest{Username: username})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusAccepted)
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accounts/password-reset/confirm", "", PasswordResetConfirmRequest{
		Token:       token,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetJWKS fetches the keys that verify access tokens.
func (c *Client) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", "", nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}
