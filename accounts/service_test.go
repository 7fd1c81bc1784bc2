package accounts_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/go-module-portal/accounts"
	"github.com/jrsteele09/go-module-portal/auth"
	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/sessions"
	"github.com/jrsteele09/go-module-portal/users"
	fakeuserrepo "github.com/jrsteele09/go-module-portal/users/repofake"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	repo    *fakeuserrepo.FakeUserRepo
	service *accounts.Service
	admin   *sessions.Session
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	repo := fakeuserrepo.NewFakeUserRepo()
	service, err := accounts.NewService(repo)
	require.NoError(t, err)

	hash, err := users.HashPassword("root-pass")
	require.NoError(t, err)
	id, err := repo.Insert(context.Background(), &users.User{Username: "root", PasswordHash: hash, Role: users.RoleAdmin, Modules: users.NewModuleSet()})
	require.NoError(t, err)

	return &testFixture{
		repo:    repo,
		service: service,
		admin:   &sessions.Session{ID: "s1", UserID: id, Username: "root", Role: users.RoleAdmin, Modules: users.NewModuleSet()},
	}
}

func TestCreate(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, f.admin, accounts.AccountInput{
		Username: "bob",
		Password: "pw",
		Role:     users.RoleStandard,
		Modules:  []string{"shipments", "documents"},
	})
	require.NoError(t, err)

	bob, err := f.repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, id, bob.ID)
	require.Equal(t, users.RoleStandard, bob.Role)
	require.Equal(t, "documents,shipments", bob.Modules.String())
	require.True(t, users.CheckPasswordHash("pw", bob.PasswordHash))

	// Login with the new account yields the chosen modules
	as, err := auth.NewAuthenticationService(f.repo)
	require.NoError(t, err)
	s, err := as.Login(ctx, "bob", "pw")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"documents", "shipments"}, s.Modules.Slice()); diff != "" {
		t.Errorf("session modules mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_FiltersUnknownModules(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.admin, accounts.AccountInput{
		Username: "carol",
		Password: "pw",
		Role:     users.RoleStandard,
		Modules:  []string{"clients", "payroll", "clients", ""},
	})
	require.NoError(t, err)

	carol, err := f.repo.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	require.Equal(t, "clients", carol.Modules.String())
}

func TestCreate_Validation(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   accounts.AccountInput
		message string
	}{
		{
			name:    "empty password",
			input:   accounts.AccountInput{Username: "dave", Password: "", Role: users.RoleStandard},
			message: accounts.PasswordRequiredMsg,
		},
		{
			name:    "empty username",
			input:   accounts.AccountInput{Username: "", Password: "pw", Role: users.RoleStandard},
			message: accounts.UsernameRequiredMsg,
		},
		{
			name:    "bad role",
			input:   accounts.AccountInput{Username: "dave", Password: "pw", Role: "superuser"},
			message: accounts.InvalidRoleMsg,
		},
		{
			name:    "duplicate username",
			input:   accounts.AccountInput{Username: "root", Password: "pw", Role: users.RoleStandard},
			message: accounts.UsernameTakenMsg,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := f.repo.Count(ctx)
			require.NoError(t, err)

			_, err = f.service.Create(ctx, f.admin, tt.input)
			require.ErrorIs(t, err, apperrors.ErrValidation)

			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.message, ve.Message)

			after, err := f.repo.Count(ctx)
			require.NoError(t, err)
			require.Equal(t, before, after, "no record is inserted")
		})
	}
}

func TestUpdate_EmptyPasswordKeepsHash(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, f.admin, accounts.AccountInput{Username: "erin", Password: "first", Role: users.RoleStandard, Modules: []string{"clients"}})
	require.NoError(t, err)
	before, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)

	err = f.service.Update(ctx, f.admin, id, accounts.AccountInput{Username: "erin2", Role: users.RoleAdmin, Modules: []string{"pis"}})
	require.NoError(t, err)

	after, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, before.PasswordHash, after.PasswordHash)
	require.Equal(t, "erin2", after.Username)
	require.Equal(t, users.RoleAdmin, after.Role)
	require.Equal(t, "pis", after.Modules.String())
}

func TestUpdate_NewPasswordReplacesHash(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, f.admin, accounts.AccountInput{Username: "frank", Password: "first", Role: users.RoleStandard})
	require.NoError(t, err)

	err = f.service.Update(ctx, f.admin, id, accounts.AccountInput{Username: "frank", Password: "second", Role: users.RoleStandard})
	require.NoError(t, err)

	frank, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.False(t, users.CheckPasswordHash("first", frank.PasswordHash))
	require.True(t, users.CheckPasswordHash("second", frank.PasswordHash))
	require.Empty(t, frank.Modules)
}

func TestUpdate_Errors(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, f.admin, accounts.AccountInput{Username: "gina", Password: "pw", Role: users.RoleStandard})
	require.NoError(t, err)

	err = f.service.Update(ctx, f.admin, 999, accounts.AccountInput{Username: "x", Role: users.RoleStandard})
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	err = f.service.Update(ctx, f.admin, id, accounts.AccountInput{Username: "root", Role: users.RoleStandard})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	// Keeping one's own username is not a conflict
	err = f.service.Update(ctx, f.admin, id, accounts.AccountInput{Username: "gina", Role: users.RoleStandard})
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, f.admin, accounts.AccountInput{Username: "hank", Password: "pw", Role: users.RoleStandard})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, f.admin, id))
	_, err = f.repo.GetByID(ctx, id)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Deleting again still succeeds
	require.NoError(t, f.service.Delete(ctx, f.admin, id))
	require.NoError(t, f.service.Delete(ctx, f.admin, 12345))
}

func TestDelete_Self(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	err := f.service.Delete(ctx, f.admin, f.admin.UserID)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, accounts.DeleteSelfMsg, ve.Message)

	_, err = f.repo.GetByID(ctx, f.admin.UserID)
	require.NoError(t, err, "record is untouched")
}

func TestNonAdminIsDenied(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	standard := &sessions.Session{ID: "s2", UserID: 50, Role: users.RoleStandard, Modules: users.NewModuleSet("clients")}

	for name, actor := range map[string]*sessions.Session{"standard": standard, "anonymous": nil} {
		t.Run(name, func(t *testing.T) {
			_, err := f.service.List(ctx, actor)
			require.ErrorIs(t, err, apperrors.ErrAccessDenied)

			_, err = f.service.Get(ctx, actor, f.admin.UserID)
			require.ErrorIs(t, err, apperrors.ErrAccessDenied)

			_, err = f.service.Create(ctx, actor, accounts.AccountInput{Username: "x", Password: "pw", Role: users.RoleAdmin})
			require.ErrorIs(t, err, apperrors.ErrAccessDenied)

			err = f.service.Update(ctx, actor, f.admin.UserID, accounts.AccountInput{Username: "x", Role: users.RoleStandard})
			require.ErrorIs(t, err, apperrors.ErrAccessDenied)

			err = f.service.Delete(ctx, actor, f.admin.UserID)
			require.ErrorIs(t, err, apperrors.ErrAccessDenied)
		})
	}

	count, err := f.repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestList(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	for _, name := range []string{"ivy", "jack"} {
		_, err := f.service.Create(ctx, f.admin, accounts.AccountInput{Username: name, Password: "pw", Role: users.RoleStandard})
		require.NoError(t, err)
	}

	list, err := f.service.List(ctx, f.admin)
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, u := range list {
		names = append(names, u.Username)
	}
	require.Equal(t, []string{"root", "ivy", "jack"}, names)
}
