package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/sessions"
	"github.com/jrsteele09/go-module-portal/users"
	"github.com/pkg/errors"
)

const defaultSessionMaxAge = 12 * time.Hour

// AuthenticationService checks credentials and materializes sessions.
type AuthenticationService struct {
	users         users.UserRepo   // Credential store
	sessionMaxAge time.Duration    // Lifetime of a new session
	nowTime       func() time.Time // nowTime function (injectable for testing)
	newSessionID  func() string
}

// AuthenticationServiceOption defines a function type to modify the AuthenticationService instance.
type AuthenticationServiceOption func(*AuthenticationService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthenticationServiceOption {
	return func(as *AuthenticationService) {
		as.nowTime = nowFunc
	}
}

func WithSessionMaxAge(d time.Duration) AuthenticationServiceOption {
	return func(as *AuthenticationService) {
		if d > 0 {
			as.sessionMaxAge = d
		}
	}
}

func NewAuthenticationService(userRepo users.UserRepo, options ...AuthenticationServiceOption) (*AuthenticationService, error) {
	if userRepo == nil {
		return nil, errors.New("[NewAuthenticationService] Users repo is required")
	}

	as := &AuthenticationService{
		users:         userRepo,
		sessionMaxAge: defaultSessionMaxAge,
		nowTime:       time.Now,
		newSessionID:  func() string { return uuid.New().String() },
	}
	for _, opt := range options {
		opt(as)
	}
	return as, nil
}

// Login verifies the credentials and returns a fresh session snapshot of the
// user. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials.
func (as *AuthenticationService) Login(ctx context.Context, username, password string) (*sessions.Session, error) {
	user, err := as.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Spend the same hashing time as a real check
			users.CheckPasswordHash(password, dummyHash())
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "[AuthenticationService.Login] GetByUsername")
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := as.nowTime()
	return &sessions.Session{
		ID:        as.newSessionID(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Modules:   user.Modules.Clone(),
		CreatedAt: now,
		ExpiresAt: now.Add(as.sessionMaxAge),
	}, nil
}

var (
	dummyHashOnce  sync.Once
	dummyHashValue string
)

func dummyHash() string {
	dummyHashOnce.Do(func() {
		dummyHashValue, _ = users.HashPassword(uuid.New().String())
	})
	return dummyHashValue
}
