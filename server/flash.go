package server

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Flash categories, used as CSS classes by the templates
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// FlashMessage is a one-shot message shown on the next rendered page.
type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type flashClaims struct {
	Messages []FlashMessage `json:"messages"`
	jwt.RegisteredClaims
}

// flash queues a message for the next rendered page. Messages already
// waiting in the request are kept.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, category, message string) {
	messages := append(s.pendingFlashes(r), FlashMessage{Category: category, Message: message})

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{Messages: messages}).SignedString(s.secretKey)
	if err != nil {
		log.Err(err).Msg("Failed to sign flash cookie")
		return
	}
	s.setCookie(w, r, flashCookieName, signed, 0)
}

// popFlashes returns the queued messages and clears them.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	messages := s.pendingFlashes(r)
	if _, err := r.Cookie(flashCookieName); err == nil {
		s.setCookie(w, r, flashCookieName, "", -1)
	}
	return messages
}

func (s *Server) pendingFlashes(r *http.Request) []FlashMessage {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	var claims flashClaims
	if err := s.parseSigned(cookie.Value, &claims); err != nil {
		log.Debug().Err(err).Msg("ignoring invalid flash cookie")
		return nil
	}
	return claims.Messages
}
