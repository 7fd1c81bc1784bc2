package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-module-portal/accounts"
	"github.com/jrsteele09/go-module-portal/auth"
	"github.com/jrsteele09/go-module-portal/internal/config"
	"github.com/jrsteele09/go-module-portal/server/loginsession"
	"github.com/jrsteele09/go-module-portal/users"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env           string // Environment (e.g., "DEV", "PROD")
	mux           *http.ServeMux
	routes        []string
	config        config.Config
	users         users.UserRepo
	auth          *auth.AuthenticationService
	accounts      *accounts.Service
	loginSessions loginsession.Repo
	secretKey     []byte
	metrics       *portalMetrics
	pages         map[string]*template.Template
}

func New(config config.Config, userRepo users.UserRepo, loginSessionRepo loginsession.Repo) (*Server, error) {
	if userRepo == nil || loginSessionRepo == nil {
		return nil, fmt.Errorf("[Server New] user repo and login session repo are required")
	}

	authService, err := auth.NewAuthenticationService(userRepo, auth.WithSessionMaxAge(config.GetMaxSessionAge()))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create authentication service: %w", err)
	}
	accountService, err := accounts.NewService(userRepo)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create account service: %w", err)
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:           config.GetEnv(),
		mux:           http.NewServeMux(),
		config:        config,
		users:         userRepo,
		auth:          authService,
		accounts:      accountService,
		loginSessions: loginSessionRepo,
		secretKey:     secretKey(config.GetSecretKey()),
		metrics:       newPortalMetrics(),
		pages:         pages,
	}

	// Bootstrap: make sure somebody can log in
	if _, err := s.InitialiseSystem(context.Background()); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colouredMethod(method), path)
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// secretKey returns the configured signing key, or a random one that only
// lives as long as the process.
func secretKey(configured string) []byte {
	if configured != "" {
		return []byte(configured)
	}
	log.Warn().Msg("SECRET_KEY is not set, generating a random key: sessions will not survive a restart")
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
