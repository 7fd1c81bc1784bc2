package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileValues mirrors the settings that may be placed in the YAML config file.
type FileValues struct {
	Port           string `yaml:"port"`
	AppName        string `yaml:"app_name"`
	Env            string `yaml:"env"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
	MetricsEnabled *bool  `yaml:"metrics_enabled"`

	DatabaseDriver string `yaml:"db_driver"`
	DatabaseURL    string `yaml:"database_url"`
	SessionDB      string `yaml:"session_db"`

	SecretKey     string `yaml:"secret_key"`
	SessionMaxAge string `yaml:"session_max_age"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

func readFile(path string) (FileValues, error) {
	var values FileValues
	body, err := os.ReadFile(path)
	if err != nil {
		return values, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(body, &values); err != nil {
		return values, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return values, nil
}
