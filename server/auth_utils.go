package server

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-module-portal/sessions"
	"github.com/pkg/errors"
)

const (
	// loggedInSessionID is the name of the cookie carrying the signed session ID
	loggedInSessionID = "portal_session"
	// flashCookieName carries pending flash messages to the next page
	flashCookieName = "portal_flash"
)

// sessionClaims is the payload of the session cookie. The session itself
// stays on the server; the cookie only names it.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *Server) signSessionID(session *sessions.Session) (string, error) {
	claims := sessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing session cookie")
	}
	return signed, nil
}

// sessionIDFromRequest returns the session ID named by a validly signed
// session cookie, or "" when there is none.
func (s *Server) sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(loggedInSessionID)
	if err != nil || cookie.Value == "" {
		return ""
	}
	var claims sessionClaims
	if err := s.parseSigned(cookie.Value, &claims); err != nil {
		return ""
	}
	return claims.SessionID
}

func (s *Server) parseSigned(value string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err
}

func (s *Server) SetLoginSessionCookie(w http.ResponseWriter, r *http.Request, value string, maxAge int) {
	s.setCookie(w, r, loggedInSessionID, value, maxAge)
}

// setCookie writes a browser-session cookie; a negative maxAge deletes it.
func (s *Server) setCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.env == "PROD" || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}
	http.SetCookie(w, cookie)
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
