// Package config handles configuration and API key loading for barbchat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diogo/barbchat/internal/models"
)

// MarkdownConfig configures markdown rendering of one-shot replies
type MarkdownConfig struct {
	Enabled     bool   `json:"enabled"`      // Render finished replies as markdown on a TTY
	Style       string `json:"style"`        // "dark", "light", "notty" or path to JSON theme
	EnableEmoji bool   `json:"enable_emoji"` // Convert :emoji: to unicode
}

// Config represents the user configuration
type Config struct {
	// Client side
	RelayURL  string `json:"relay_url"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	// ViewportWidth caps the chat viewport width in terminal cells.
	ViewportWidth   int            `json:"viewport_width"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`

	// Relay side
	Port        string `json:"port"`
	UpstreamURL string `json:"upstream_url,omitempty"`
	StaticDir   string `json:"static_dir,omitempty"`
	// UpstreamTimeout is in seconds; 0 disables the timeout so long replies can stream.
	UpstreamTimeout int    `json:"upstream_timeout"`
	Env             string `json:"env"`

	// Verbose enables debug logging. The chat TUI writes its log to the config directory.
	Verbose bool `json:"verbose"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Enabled:     false,
		Style:       "dark",
		EnableEmoji: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		RelayURL:        models.DefaultRelayURL,
		Model:           models.DefaultModel,
		MaxTokens:       models.DefaultMaxTokens,
		ViewportWidth:   100,
		TUITheme:        "tokyonight",
		CopyToClipboard: false,
		Markdown:        DefaultMarkdownConfig(),
		Port:            "3000",
		UpstreamURL:     models.EndpointMessages,
		UpstreamTimeout: 0,
		Env:             "development",
		Verbose:         false,
	}
}

// IsDevelopment returns true if running in development mode
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".barbchat")
	return configDir, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the path to the chat client's log file
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "barbchat.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnv(&cfg)
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = DefaultConfig()
		ApplyEnv(&cfg)
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
