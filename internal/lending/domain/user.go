package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type User struct {
	Username     string // unique, immutable
	Email        string
	PasswordHash string // Argon2id PHC string
	Role         Role

	// Password reset state. Only the token fingerprint is stored.
	ResetTokenHash   string
	ResetTokenExpiry *time.Time

	MFASecret  string // base32 TOTP secret, set on enrollment
	MFAEnabled bool   // true once the secret has been confirmed

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
