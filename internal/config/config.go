// Package config loads rezdesk configuration from an optional TOML file with
// environment-variable overrides. Missing credentials are reported as a
// typed error so the UI can show a configuration screen instead of crashing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingCredentials marks an absent or empty backend URL or access key.
var ErrMissingCredentials = errors.New("backend credentials missing")

// Config is everything the application needs at startup.
type Config struct {
	BackendURL string
	BackendKey string
	Table      string
	PollEvery  time.Duration
	LogDir     string
}

const (
	defaultConfigPath  = "~/.config/rezdesk/config.toml"
	defaultTable       = "bookings"
	defaultPollSeconds = 30
	defaultLogDir      = "~/.local/state/rezdesk"
)

// Load reads the config file at path (default ~/.config/rezdesk/config.toml;
// a missing file is fine) and applies environment overrides. REZDESK_* names
// win, with the backend's conventional SUPABASE_* names as a fallback.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(resolved)
	v.SetConfigType("toml")
	v.SetDefault("table", defaultTable)
	v.SetDefault("poll_seconds", defaultPollSeconds)
	v.SetDefault("log_dir", defaultLogDir)

	v.SetEnvPrefix("REZDESK")
	v.AutomaticEnv()
	_ = v.BindEnv("backend_url", "REZDESK_BACKEND_URL", "SUPABASE_URL")
	_ = v.BindEnv("backend_key", "REZDESK_BACKEND_KEY", "SUPABASE_ANON_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		BackendURL: strings.TrimSpace(v.GetString("backend_url")),
		BackendKey: strings.TrimSpace(v.GetString("backend_key")),
		Table:      strings.TrimSpace(v.GetString("table")),
		PollEvery:  time.Duration(v.GetInt("poll_seconds")) * time.Second,
		LogDir:     strings.TrimSpace(v.GetString("log_dir")),
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = defaultPollSeconds * time.Second
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
	cfg.LogDir = mustExpand(cfg.LogDir)

	return cfg, nil
}

// Validate reports missing credentials. Callers degrade to the configuration
// error screen rather than exiting.
func (c Config) Validate() error {
	if c.BackendURL == "" || c.BackendKey == "" {
		return ErrMissingCredentials
	}
	return nil
}

// LogPath returns the application log file path.
func (c Config) LogPath() string {
	return filepath.Join(c.LogDir, "rezdesk.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
