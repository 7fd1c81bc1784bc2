package loginsession

import (
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/sessions"
)

var _ Repo = (*InMemoryLoginSessionRepo)(nil)

// InMemoryLoginSessionRepo is an in-memory implementation of Repo
type InMemoryLoginSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]sessions.Session // sessionID -> Session
	nowTime  func() time.Time
}

// NewInMemoryLoginSessionRepo creates a new in-memory login session repository
func NewInMemoryLoginSessionRepo() *InMemoryLoginSessionRepo {
	return &InMemoryLoginSessionRepo{
		sessions: make(map[string]sessions.Session),
		nowTime:  time.Now,
	}
}

// Upsert creates or replaces a login session
func (r *InMemoryLoginSessionRepo) Upsert(session sessions.Session) error {
	if session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Keep our own copy of the module set
	session.Modules = session.Modules.Clone()
	r.sessions[session.ID] = session
	return nil
}

// Get retrieves a login session by ID
func (r *InMemoryLoginSessionRepo) Get(sessionID string) (sessions.Session, error) {
	if sessionID == "" {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}

	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}

	if session.Expired(r.nowTime()) {
		_ = r.Delete(sessionID)
		return sessions.Session{}, apperrors.ErrSessionExpired
	}

	session.Modules = session.Modules.Clone()
	return session, nil
}

// Delete removes a login session
func (r *InMemoryLoginSessionRepo) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID) // Already doesn't exist, no error
	return nil
}
