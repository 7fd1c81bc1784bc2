package config

import "time"

type Config interface {
	EnvConfig
	StorageConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetLogFile() string
	GetMetricsEnabled() bool
}

type StorageConfig interface {
	GetDatabaseDriver() string
	GetDatabaseURL() string
	GetSessionStorePath() string
}

type SecurityConfig interface {
	GetSecretKey() string
	GetMaxSessionAge() time.Duration
	GetAdminUsername() string
	GetAdminPassword() string
}

type mainConfig struct {
	EnvVars
	Storage
	Security
}

// New returns a Config backed by environment variables and defaults only.
func New() Config {
	return newConfig(FileValues{})
}

// Load returns a Config that falls back to the YAML file at path for
// anything not set in the environment. An empty path behaves like New.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}
	values, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return newConfig(values), nil
}

func newConfig(values FileValues) Config {
	return mainConfig{
		EnvVars:  EnvVars{file: values},
		Storage:  Storage{file: values},
		Security: Security{file: values},
	}
}
