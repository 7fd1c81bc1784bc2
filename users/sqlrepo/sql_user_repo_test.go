package sqlrepo_test

import (
	"context"
	"testing"

	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/internal/storage"
	"github.com/jrsteele09/go-module-portal/internal/utils"
	"github.com/jrsteele09/go-module-portal/users"
	"github.com/jrsteele09/go-module-portal/users/sqlrepo"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, name string) *sqlrepo.UserRepo {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlrepo.New(db)
}

func TestUserRepo_CRUD(t *testing.T) {
	repo := newRepo(t, "sqlrepo_crud")
	ctx := context.Background()

	id, err := repo.Insert(ctx, &users.User{
		Username:     "alice",
		PasswordHash: "hash-1",
		Role:         users.RoleStandard,
		Modules:      users.NewModuleSet("pos", "clients"),
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)
	require.Equal(t, "hash-1", byName.PasswordHash)
	require.Equal(t, users.RoleStandard, byName.Role)
	require.True(t, users.NewModuleSet("clients", "pos").Equal(byName.Modules))

	// Update without a hash keeps the stored one
	err = repo.Update(ctx, id, users.UserUpdate{
		Username: "alice2",
		Role:     users.RoleAdmin,
		Modules:  users.NewModuleSet(),
	})
	require.NoError(t, err)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice2", byID.Username)
	require.Equal(t, users.RoleAdmin, byID.Role)
	require.Equal(t, "hash-1", byID.PasswordHash)
	require.NotNil(t, byID.Modules)
	require.Empty(t, byID.Modules)

	// Update with a hash replaces it
	require.NoError(t, repo.Update(ctx, id, users.UserUpdate{
		Username:     "alice2",
		Role:         users.RoleAdmin,
		Modules:      users.NewModuleSet("documents"),
		PasswordHash: utils.Ptr("hash-2"),
	}))
	byID, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "hash-2", byID.PasswordHash)
	require.True(t, byID.Modules.Contains("documents"))

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Deleting again is a no-op
	require.NoError(t, repo.Delete(ctx, id))
}

func TestUserRepo_NotFound(t *testing.T) {
	repo := newRepo(t, "sqlrepo_notfound")
	ctx := context.Background()

	_, err := repo.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = repo.GetByID(ctx, 42)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepo_ListOrderAndKeysNotReused(t *testing.T) {
	repo := newRepo(t, "sqlrepo_list")
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"carol", "alice", "bob"} {
		id, err := repo.Insert(ctx, &users.User{Username: name, PasswordHash: "h", Role: users.RoleStandard, Modules: users.NewModuleSet()})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, u := range list {
		require.Equal(t, ids[i], u.ID)
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// A deleted key is not handed out again
	require.NoError(t, repo.Delete(ctx, ids[2]))
	id, err := repo.Insert(ctx, &users.User{Username: "dave", PasswordHash: "h", Role: users.RoleStandard, Modules: users.NewModuleSet()})
	require.NoError(t, err)
	require.Greater(t, id, ids[2])
}

func TestUserRepo_DuplicateUsername(t *testing.T) {
	repo := newRepo(t, "sqlrepo_dup")
	ctx := context.Background()

	_, err := repo.Insert(ctx, &users.User{Username: "alice", PasswordHash: "h", Role: users.RoleStandard})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, &users.User{Username: "alice", PasswordHash: "h", Role: users.RoleStandard})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserRepo_CaseSensitiveLookup(t *testing.T) {
	repo := newRepo(t, "sqlrepo_case")
	ctx := context.Background()

	_, err := repo.Insert(ctx, &users.User{Username: "Alice", PasswordHash: "h", Role: users.RoleStandard})
	require.NoError(t, err)

	_, err = repo.GetByUsername(ctx, "alice")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
