package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	secretKeyVar     = "SECRET_KEY"
	sessionMaxAgeVar = "SESSION_MAX_AGE"
	adminUsernameVar = "ADMIN_USERNAME"
	adminPasswordVar = "ADMIN_PASSWORD"

	defaultSessionMaxAge = 12 * time.Hour
)

type Security struct {
	file FileValues
}

var _ SecurityConfig = Security{}

// GetSecretKey returns the HMAC key used to sign session and flash cookies
func (s Security) GetSecretKey() string {
	return lookup(secretKeyVar, s.file.SecretKey, "")
}

func (s Security) GetMaxSessionAge() time.Duration {
	value := lookup(sessionMaxAgeVar, s.file.SessionMaxAge, "")
	if value == "" {
		return defaultSessionMaxAge
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn().Str("value", value).Msg("invalid session max age, using default")
		return defaultSessionMaxAge
	}
	return d
}

// GetAdminUsername is the account created when the users table is empty
func (s Security) GetAdminUsername() string {
	return lookup(adminUsernameVar, s.file.AdminUsername, "admin")
}

// GetAdminPassword is the bootstrap admin password, empty means generate one
func (s Security) GetAdminPassword() string {
	return lookup(adminPasswordVar, s.file.AdminPassword, "")
}
