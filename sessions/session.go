package sessions

import (
	"time"

	"github.com/jrsteele09/go-module-portal/users"
)

// Session is the authenticated identity of one browser context. Role and
// Modules are a snapshot taken at login and are not re-read from storage, so
// changes to the user record apply from the next login.
type Session struct {
	ID        string          `json:"id"`         // Random key, carried in the signed session cookie
	UserID    int64           `json:"user_id"`    // users.user_id
	Username  string          `json:"username"`   // Display handle
	Role      users.RoleType  `json:"role"`       // Copied verbatim from the record
	Modules   users.ModuleSet `json:"modules"`    // Parsed from the stored delimited string
	CreatedAt time.Time       `json:"created_at"` // Login time
	ExpiresAt time.Time       `json:"expires_at"` // Server-side expiry
}

func (s *Session) IsAdmin() bool {
	return s.Role == users.RoleAdmin
}

func (s *Session) HasModule(id string) bool {
	return s.Modules.Contains(id)
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
