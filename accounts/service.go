// Package accounts implements the admin screens' user management.
package accounts

import (
	"context"

	"github.com/jrsteele09/go-module-portal/auth"
	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/internal/utils"
	"github.com/jrsteele09/go-module-portal/modules"
	"github.com/jrsteele09/go-module-portal/sessions"
	"github.com/jrsteele09/go-module-portal/users"
	"github.com/pkg/errors"
)

// Validation messages shown on the admin screens
const (
	UsernameRequiredMsg = "Username is required."
	PasswordRequiredMsg = "Password is required."
	InvalidRoleMsg      = "Role must be admin or standard."
	UsernameTakenMsg    = "Username already exists."
	DeleteSelfMsg       = "You cannot delete your own account."
)

// AccountInput is the submitted create/edit form.
type AccountInput struct {
	Username string
	Password string
	Role     users.RoleType
	Modules  []string
}

// Service performs account CRUD on behalf of an admin session.
type Service struct {
	users users.UserRepo
}

func NewService(userRepo users.UserRepo) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[accounts.NewService] Users repo is required")
	}
	return &Service{users: userRepo}, nil
}

func (s *Service) List(ctx context.Context, actor *sessions.Session) ([]*users.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	list, err := s.users.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[accounts.List] List")
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, actor *sessions.Session, id int64) (*users.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "[accounts.Get] GetByID %d", id)
	}
	return user, nil
}

// Create inserts a new account and returns its key.
func (s *Service) Create(ctx context.Context, actor *sessions.Session, in AccountInput) (int64, error) {
	if err := requireAdmin(actor); err != nil {
		return 0, err
	}
	if err := validate(in); err != nil {
		return 0, err
	}
	if in.Password == "" {
		return 0, apperrors.NewValidation("password", PasswordRequiredMsg)
	}
	if err := s.checkUsernameFree(ctx, in.Username, 0); err != nil {
		return 0, err
	}

	hash, err := users.HashPassword(in.Password)
	if err != nil {
		return 0, errors.Wrap(err, "[accounts.Create] HashPassword")
	}

	id, err := s.users.Insert(ctx, &users.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Modules:      knownModules(in.Modules),
	})
	if err != nil {
		return 0, passValidation(err, "[accounts.Create] Insert")
	}
	return id, nil
}

// Update overwrites username, role and modules of an existing account. The
// password hash only changes when a new password is supplied.
func (s *Service) Update(ctx context.Context, actor *sessions.Session, id int64, in AccountInput) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return errors.Wrapf(err, "[accounts.Update] GetByID %d", id)
	}
	if err := validate(in); err != nil {
		return err
	}
	if err := s.checkUsernameFree(ctx, in.Username, id); err != nil {
		return err
	}

	update := users.UserUpdate{
		Username: in.Username,
		Role:     in.Role,
		Modules:  knownModules(in.Modules),
	}
	if in.Password != "" {
		hash, err := users.HashPassword(in.Password)
		if err != nil {
			return errors.Wrap(err, "[accounts.Update] HashPassword")
		}
		update.PasswordHash = utils.Ptr(hash)
	}

	if err := s.users.Update(ctx, id, update); err != nil {
		return passValidation(err, "[accounts.Update] Update")
	}
	return nil
}

// Delete removes an account. Deleting a key that no longer exists succeeds.
func (s *Service) Delete(ctx context.Context, actor *sessions.Session, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if id == actor.UserID {
		return apperrors.NewValidation("", DeleteSelfMsg)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "[accounts.Delete] Delete %d", id)
	}
	return nil
}

func (s *Service) checkUsernameFree(ctx context.Context, username string, self int64) error {
	existing, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		return nil
	case err != nil:
		return errors.Wrap(err, "[accounts] GetByUsername")
	case existing.ID != self:
		return apperrors.NewValidation("username", UsernameTakenMsg)
	}
	return nil
}

func requireAdmin(actor *sessions.Session) error {
	if d := auth.Evaluate(actor, auth.RequireAdmin()); !d.Allowed {
		return d.Reason
	}
	return nil
}

func validate(in AccountInput) error {
	if in.Username == "" {
		return apperrors.NewValidation("username", UsernameRequiredMsg)
	}
	if !in.Role.IsValid() {
		return apperrors.NewValidation("role", InvalidRoleMsg)
	}
	return nil
}

// knownModules drops identifiers that are not in the module table.
func knownModules(ids []string) users.ModuleSet {
	set := users.NewModuleSet()
	for _, id := range ids {
		if modules.IsKnown(id) {
			set[id] = struct{}{}
		}
	}
	return set
}

// passValidation keeps store-level validation errors unwrapped so their
// message reaches the form unchanged.
func passValidation(err error, msg string) error {
	if errors.Is(err, apperrors.ErrValidation) {
		return err
	}
	return errors.Wrap(err, msg)
}
