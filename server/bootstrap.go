package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/jrsteele09/go-module-portal/users"
	"github.com/rs/zerolog/log"
)

// InitialiseSystem creates the first admin account when the user table is
// empty. Returns the generated password when one had to be made up.
func (s *Server) InitialiseSystem(ctx context.Context) (generatedPassword string, err error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		log.Debug().Int("users", count).Msg("Bootstrap: System already configured")
		return "", nil
	}

	username := s.config.GetAdminUsername()
	password := s.config.GetAdminPassword()
	if password == "" {
		// Generate a secure random password
		passwordBytes := make([]byte, 16)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		password = base64.URLEncoding.EncodeToString(passwordBytes)
		generatedPassword = password
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.users.Insert(ctx, &users.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         users.RoleAdmin,
		Modules:      users.NewModuleSet(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create admin: %w", err)
	}

	event := log.Info().Int64("user_id", id).Str("username", username)
	if generatedPassword != "" {
		event = event.Str("password", generatedPassword)
	}
	event.Msg("Bootstrap: created admin account")
	if generatedPassword != "" {
		log.Warn().Msg("SAVE THIS PASSWORD - it will not be displayed again!")
	}

	return generatedPassword, nil
}
