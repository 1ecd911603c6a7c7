package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/barbchat/internal/errors"
)

// APIKeyEnv is the environment variable holding the upstream secret
const APIKeyEnv = "ANTHROPIC_API_KEY"

// Environment variables that override config file values
const (
	EnvPort        = "PORT"
	EnvMode        = "ENV"
	EnvRelayURL    = "BARBCHAT_RELAY_URL"
	EnvUpstreamURL = "BARBCHAT_UPSTREAM_URL"
	EnvStaticDir   = "BARBCHAT_STATIC_DIR"
)

// LoadEnvFile loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// ApplyEnv overrides cfg with any environment variables that are set
func ApplyEnv(cfg *Config) {
	cfg.Port = getEnv(EnvPort, cfg.Port)
	cfg.Env = getEnv(EnvMode, cfg.Env)
	cfg.RelayURL = strings.TrimRight(getEnv(EnvRelayURL, cfg.RelayURL), "/")
	cfg.UpstreamURL = getEnv(EnvUpstreamURL, cfg.UpstreamURL)
	cfg.StaticDir = getEnv(EnvStaticDir, cfg.StaticDir)
}

// LoadAPIKey returns the upstream API key.
// A missing key is a ConfigError; the relay must not start without it.
func LoadAPIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if key == "" {
		return "", apierrors.NewConfigError(APIKeyEnv, "")
	}
	return key, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
