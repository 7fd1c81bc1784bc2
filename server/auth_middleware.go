package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-module-portal/auth"
	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/sessions"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the *sessions.Session of a logged in request
const ContextKeySession ContextKey = "session"

// SessionFromContext returns the session loaded by LoadSession, or nil.
func SessionFromContext(ctx context.Context) *sessions.Session {
	session, _ := ctx.Value(ContextKeySession).(*sessions.Session)
	return session
}

// LoadSession resolves the session cookie into the request context. A
// missing, forged or expired cookie leaves the request anonymous.
func (s *Server) LoadSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := s.sessionIDFromRequest(r)
		if sessionID == "" {
			next(w, r)
			return
		}

		session, err := s.loginSessions.Get(sessionID)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrSessionNotFound) && !apperrors.Is(err, apperrors.ErrSessionExpired) {
				log.Err(err).Msg("Failed to load login session")
			}
			s.SetLoginSessionCookie(w, r, "", -1)
			next(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, &session)
		next(w, r.WithContext(ctx))
	}
}

// Require gates a route on the authorization decision for req. Denied
// requests get the decision's flash message and redirect.
func (s *Server) Require(req auth.Requirement) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			decision := auth.Evaluate(SessionFromContext(r.Context()), req)
			s.metrics.authorizationDecision(req, decision)

			if decision.Allowed {
				next(w, r)
				return
			}

			if decision.Message != "" {
				s.flash(w, r, FlashDanger, decision.Message)
			}
			redirectSuccess(w, r, redirectPath(decision.Redirect))
		}
	}
}

func redirectPath(target auth.RedirectTarget) string {
	if target == auth.TargetDashboard {
		return RouteDashboard
	}
	return RouteLogin
}
