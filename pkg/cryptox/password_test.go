package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// In-memory pepper keeps test runs independent of the filesystem
	SetPepperPath("")
	os.Exit(m.Run())
}

func TestHashPassword_PHCFormat(t *testing.T) {
	for _, pw := range []string{"password123", "P@ssw0rd!#$%^&*()", strings.Repeat("a", 100), "пароль🔒密码", "   spaces   "} {
		hash, err := HashPassword(pw)
		require.NoError(t, err)

		parts := strings.Split(hash, "$")
		require.Len(t, parts, 6)
		require.Equal(t, "argon2id", parts[1])
		require.Equal(t, "v=19", parts[2])
		require.Equal(t, "m=19456,t=2,p=1", parts[3])
		require.NotEmpty(t, parts[4], "salt")
		require.NotEmpty(t, parts[5], "hash")

		require.NoError(t, VerifyPassword(pw, hash))
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPassword("samepassword")
	require.NoError(t, err)
	hash2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2)
	require.NoError(t, VerifyPassword("samepassword", hash1))
	require.NoError(t, VerifyPassword("samepassword", hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{"wrong-password", "Correct-Password", "correct-password ", "", "correct-passwor", strings.Repeat("x", 10000)} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrPasswordMismatch, "input %q", wrong)
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("test-password", tt.hash), ErrInvalidHash)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	require.ErrorIs(t, ValidatePassword(""), ErrPasswordTooShort)
	require.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	require.ErrorIs(t, ValidatePassword("пароль7"), ErrPasswordTooShort)
	require.NoError(t, ValidatePassword("eightchr"))
	require.NoError(t, ValidatePassword("пароль123"))
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		pw, err := GeneratePassword()
		require.NoError(t, err)
		require.Len(t, pw, 16)
		require.NoError(t, ValidatePassword(pw))

		for _, c := range pw {
			ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			require.True(t, ok, "unexpected character %q", c)
		}

		require.False(t, seen[pw], "duplicate password generated")
		seen[pw] = true
	}
}

func TestPepper_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets", "pepper")
	SetPepperPath(path)
	t.Cleanup(func() { SetPepperPath("") })

	hash, err := HashPassword("persisted-pepper")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(data), GetPepper())

	// A reload from the same file keeps existing hashes verifiable
	require.NoError(t, ReloadPepper())
	require.NoError(t, VerifyPassword("persisted-pepper", hash))
}
