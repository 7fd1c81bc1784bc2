package server

import (
	"net/http"

	"github.com/jrsteele09/go-module-portal/auth"
	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

const loggedOutMsg = "You have been logged out."

// LoginPageHandler displays the login page (GET / and GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, "login.html", http.StatusOK, PageData{Title: "Login"})
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		username := r.FormValue("username")
		password := r.FormValue("password")

		session, err := s.auth.Login(r.Context(), username, password)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
				s.metrics.loginAttempt(outcomeFailure)
				s.renderLoginError(w, r, username)
				return
			}
			s.metrics.loginAttempt(outcomeError)
			log.Err(err).Msg("Login failed")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		// Whatever session this browser had before is gone
		if previous := s.sessionIDFromRequest(r); previous != "" {
			if err := s.loginSessions.Delete(previous); err != nil {
				log.Err(err).Msg("Failed to delete previous login session")
			}
		}

		if err := s.loginSessions.Upsert(*session); err != nil {
			s.metrics.loginAttempt(outcomeError)
			log.Err(err).Msg("Failed to store login session")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
		signed, err := s.signSessionID(session)
		if err != nil {
			s.metrics.loginAttempt(outcomeError)
			log.Err(err).Msg("Failed to sign login session")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		s.SetLoginSessionCookie(w, r, signed, 0)
		s.metrics.loginAttempt(outcomeSuccess)
		log.Info().Int64("user_id", session.UserID).Str("username", session.Username).Msg("User logged in")
		redirectSuccess(w, r, RouteDashboard)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session := SessionFromContext(r.Context()); session != nil {
			if err := s.loginSessions.Delete(session.ID); err != nil {
				log.Err(err).Msg("Failed to delete login session")
			}
		}
		s.SetLoginSessionCookie(w, r, "", -1) // Delete cookie
		s.flash(w, r, FlashSuccess, loggedOutMsg)
		redirectSuccess(w, r, RouteLogin)
	}
}

// renderLoginError re-renders the login form with the generic credential
// failure message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, username string) {
	s.render(w, r, "login.html", http.StatusOK, PageData{
		Title:    "Login",
		Username: username,
		Flashes:  []FlashMessage{{Category: FlashDanger, Message: auth.InvalidCredentialsMsg}},
	})
}
