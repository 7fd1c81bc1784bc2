package fakeuserrepo

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users       map[int64]*users.User
	usernameIds map[string]int64 // username to user id
	lastID      int64
	lock        sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:       make(map[int64]*users.User),
		usernameIds: make(map[string]int64),
	}
}

func (ur *FakeUserRepo) Insert(_ context.Context, user *users.User) (int64, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.usernameIds[user.Username]; ok {
		return 0, apperrors.NewValidation("username", "Username already exists.")
	}
	ur.lastID++
	stored := copyUser(user)
	stored.ID = ur.lastID
	ur.users[stored.ID] = stored
	ur.usernameIds[stored.Username] = stored.ID
	return stored.ID, nil
}

func (ur *FakeUserRepo) Update(_ context.Context, id int64, update users.UserUpdate) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return nil
	}
	if otherID, taken := ur.usernameIds[update.Username]; taken && otherID != id {
		return apperrors.NewValidation("username", "Username already exists.")
	}
	delete(ur.usernameIds, user.Username)
	user.Username = update.Username
	user.Role = update.Role
	user.Modules = update.Modules.Clone()
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	ur.usernameIds[user.Username] = id
	return nil
}

func (ur *FakeUserRepo) Delete(_ context.Context, id int64) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return nil
	}
	delete(ur.usernameIds, user.Username)
	delete(ur.users, id)
	return nil
}

func (ur *FakeUserRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernameIds[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyUser(ur.users[id]), nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (ur *FakeUserRepo) List(_ context.Context) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0, len(ur.users))
	for _, v := range ur.users {
		userList = append(userList, copyUser(v))
	}

	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})
	return userList, nil
}

func (ur *FakeUserRepo) Count(_ context.Context) (int, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return len(ur.users), nil
}

func copyUser(u *users.User) *users.User {
	c := *u
	c.Modules = u.Modules.Clone()
	return &c
}
