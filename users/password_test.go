package users_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-module-portal/users"
	"github.com/stretchr/testify/require"
)

const (
	legacyPassword = "secret-pass"
	legacyPBKDF2   = "pbkdf2:sha256:1000$NaClSalt1234$876bc50a430c7efb28a38ce8bfe23149b44f21c20d2a03eac5c9d08c3c924bf1"
	legacyScrypt   = "scrypt:1024:8:1$NaClSalt1234$628262fbe7a99e1ec82a1f9dc2cd7c8fbafeefad40cfaeda467d024dfea3837c61a5c013c5ddb5570586f54d1d098d8c7d2936a2b51058b27894890cddd5a632"
)

func TestHashPassword(t *testing.T) {
	hash, err := users.HashPassword("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	require.True(t, users.CheckPasswordHash("correct horse", hash))
	require.False(t, users.CheckPasswordHash("wrong horse", hash))
	require.False(t, users.CheckPasswordHash("", hash))
}

func TestHashPasswordSalts(t *testing.T) {
	a, err := users.HashPassword("same")
	require.NoError(t, err)
	b, err := users.HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestCheckLegacyHashes(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{name: "pbkdf2 match", hash: legacyPBKDF2, password: legacyPassword, want: true},
		{name: "pbkdf2 mismatch", hash: legacyPBKDF2, password: "secret-pasS", want: false},
		{name: "scrypt match", hash: legacyScrypt, password: legacyPassword, want: true},
		{name: "scrypt mismatch", hash: legacyScrypt, password: "other", want: false},
		{name: "unknown digest", hash: "pbkdf2:md4:1000$salt$abcd", password: legacyPassword, want: false},
		{name: "missing fields", hash: "pbkdf2:sha256:1000$onlysalt", password: legacyPassword, want: false},
		{name: "bad hex", hash: "pbkdf2:sha256:1000$salt$zz", password: legacyPassword, want: false},
		{name: "bad iterations", hash: "pbkdf2:sha256:x$salt$abcd", password: legacyPassword, want: false},
		{name: "bad scrypt params", hash: "scrypt:1024:8$salt$abcd", password: legacyPassword, want: false},
		{name: "plain text is never accepted", hash: legacyPassword, password: legacyPassword, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, users.CheckPasswordHash(tt.password, tt.hash))
		})
	}
}
