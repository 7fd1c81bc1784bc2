// Package loginsession stores the server-side half of a login: the session
// snapshot keyed by its random ID.
package loginsession

import (
	"github.com/jrsteele09/go-module-portal/sessions"
)

// Repo persists sessions. Get reports errors.ErrSessionNotFound for unknown
// IDs and errors.ErrSessionExpired (after removing the entry) for expired ones.
type Repo interface {
	Upsert(session sessions.Session) error
	Get(sessionID string) (sessions.Session, error)
	Delete(sessionID string) error
}
