package users

import "context"

// UserUpdate carries the fields an admin edit overwrites. A nil PasswordHash
// leaves the stored hash untouched.
type UserUpdate struct {
	Username     string
	Role         RoleType
	Modules      ModuleSet
	PasswordHash *string
}

// UserRepo is the credential store. Lookups that find nothing return
// errors.ErrUserNotFound from internal/errors.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Insert(ctx context.Context, user *User) (int64, error)
	Update(ctx context.Context, id int64, update UserUpdate) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*User, error)
	Count(ctx context.Context) (int, error)
}
