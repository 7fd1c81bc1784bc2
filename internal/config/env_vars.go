package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelVar    = "LOG_LEVEL"
	logFileVar     = "LOG_FILE"
	metricsVar     = "METRICS_ENABLED"
	configFileVar  = "CONFIG_FILE"
	defaultAppName = "Module Portal"
)

type EnvVars struct {
	file FileValues
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := lookup(portEnvVar, e.file.Port, "8080")
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return lookup(appNameVar, e.file.AppName, defaultAppName)
}

func (e EnvVars) GetEnv() string {
	return lookup(envVar, e.file.Env, "DEV")
}

func (e EnvVars) GetLogLevel() string {
	return lookup(logLevelVar, e.file.LogLevel, "info")
}

// GetLogFile returns the path of the rotating log file, empty means stdout
func (e EnvVars) GetLogFile() string {
	return lookup(logFileVar, e.file.LogFile, "")
}

func (e EnvVars) GetMetricsEnabled() bool {
	fileValue := ""
	if e.file.MetricsEnabled != nil {
		fileValue = strconv.FormatBool(*e.file.MetricsEnabled)
	}
	enabled, err := strconv.ParseBool(lookup(metricsVar, fileValue, "false"))
	if err != nil {
		return false
	}
	return enabled
}

// ConfigFilePath returns the YAML config file named by CONFIG_FILE, if any
func ConfigFilePath() string {
	return GetEnv(configFileVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// lookup resolves a setting: environment first, then the config file, then the default.
func lookup(envVar, fileValue, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}
