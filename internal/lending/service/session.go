package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/pkg/jwtx"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
	"github.com/google/uuid"
)

const (
	ScopeInventoryRead  = "inventory:read"
	ScopeInventoryWrite = "inventory:write"
	ScopeHardwareAdmin  = "hardware:admin"
)

// Session is a signed access token handed to a client.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	Scopes      []string
}

// SessionService signs access tokens for authenticated users.
type SessionService struct {
	Signer   jwtx.Signer
	Issuer   string
	Audience []string
	TTL      time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// ScopesFor returns the scopes granted to u.
func ScopesFor(u domain.User) []string {
	scopes := []string{ScopeInventoryRead, ScopeInventoryWrite}
	if u.IsAdmin() {
		scopes = append(scopes, ScopeHardwareAdmin)
	}
	return scopes
}

// Issue signs a new access token for u.
func (s *SessionService) Issue(ctx context.Context, u domain.User) (Session, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	scopes := ScopesFor(u)
	claims := jwtx.NewAccessClaims(u.Username, uuid.NewString(), scopes, string(u.Role), ttl, s.Issuer, s.Audience, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, internal(err)
	}

	slogx.FromContext(ctx).Info("session issued", "username", u.Username, "sid", claims.SID)
	return Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		Scopes:      scopes,
	}, nil
}
