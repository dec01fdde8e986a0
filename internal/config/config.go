// Package config loads grocer-admin configuration from the environment, with
// an optional env file in the user's config directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	AppName     = "grocer-admin"
	EnvFileName = "config.env"
)

// Environment variables.
const (
	EnvBaseURL  = "GROCER_API_BASE_URL"
	EnvTokenKey = "GROCER_TOKEN_KEY"
	EnvDBPath   = "GROCER_DB_PATH"
)

// requiredEnvVars lists the environment variables that must be set for the
// app to run. The API base URL has a built-in default and is not required.
var requiredEnvVars = []string{EnvTokenKey}

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// CheckRequired checks if all required environment variables are set.
// Returns the names of any missing variables.
func CheckRequired() []string {
	var missing []string
	for _, v := range requiredEnvVars {
		if os.Getenv(v) == "" {
			missing = append(missing, v)
		}
	}
	return missing
}

// BaseURL returns the API base URL override, "" when unset.
func BaseURL() string {
	return os.Getenv(EnvBaseURL)
}

// TokenKey returns the passphrase protecting the stored session token.
func TokenKey() string {
	return os.Getenv(EnvTokenKey)
}

// DBPath returns the session database path, defaulting to the user's config
// directory and falling back to the working directory.
func DBPath() string {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p
	}
	configBase, err := os.UserConfigDir()
	if err != nil {
		return "sessions.db"
	}
	dir := filepath.Join(configBase, AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "sessions.db"
	}
	return filepath.Join(dir, "sessions.db")
}
