package users_test

import (
	"testing"

	"github.com/jrsteele09/go-module-portal/users"
	"github.com/stretchr/testify/require"
)

func TestParseModuleSet(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   []string
	}{
		{name: "empty string is the empty set", stored: "", want: []string{}},
		{name: "single", stored: "clients", want: []string{"clients"}},
		{name: "pair", stored: "clients,pos", want: []string{"clients", "pos"}},
		{name: "duplicates collapse", stored: "pos,pos", want: []string{"pos"}},
		{name: "whitespace is kept", stored: "clients, pos", want: []string{" pos", "clients"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := users.ParseModuleSet(tt.stored)
			require.NotNil(t, set)
			require.Equal(t, tt.want, set.Slice())
		})
	}
}

func TestModuleSetRoundTrip(t *testing.T) {
	sets := []users.ModuleSet{
		users.NewModuleSet(),
		users.NewModuleSet("clients"),
		users.NewModuleSet("shipments", "clients", "pos"),
		users.NewModuleSet("documents", "material_receipts", "pis", "quotations"),
	}

	for _, set := range sets {
		parsed := users.ParseModuleSet(set.String())
		require.True(t, set.Equal(parsed), "%v -> %q -> %v", set.Slice(), set.String(), parsed.Slice())
	}
	require.Equal(t, "", users.NewModuleSet().String())
}

func TestModuleSetStringIsOrderIndependent(t *testing.T) {
	a := users.NewModuleSet("pos", "clients")
	b := users.NewModuleSet("clients", "pos", "clients")
	require.Equal(t, a.String(), b.String())
	require.Equal(t, "clients,pos", a.String())
}

func TestModuleSetClone(t *testing.T) {
	var nilSet users.ModuleSet
	clone := nilSet.Clone()
	require.NotNil(t, clone)
	require.Empty(t, clone)

	orig := users.NewModuleSet("clients")
	clone = orig.Clone()
	clone["pos"] = struct{}{}
	require.False(t, orig.Contains("pos"))
}

func TestRoleType(t *testing.T) {
	require.True(t, users.RoleAdmin.IsValid())
	require.True(t, users.RoleStandard.IsValid())
	require.False(t, users.RoleType("superuser").IsValid())
	require.False(t, users.RoleType("").IsValid())

	require.True(t, (&users.User{Role: users.RoleAdmin}).IsAdmin())
	require.False(t, (&users.User{Role: users.RoleStandard}).IsAdmin())
}
