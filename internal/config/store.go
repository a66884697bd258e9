package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"

	"github.com/muurk/proxy-cli/internal/logging"
)

const (
	appName    = "proxy-cli"
	configFile = "config.json"

	// PathEnvVar overrides the config file location.
	PathEnvVar = "PROXYCLI_CONFIG"
)

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/proxy-cli or $HOME/.config/proxy-cli
//   - macOS: $HOME/.config/proxy-cli (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\proxy-cli
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the configuration file, honouring
// PROXYCLI_CONFIG.
func GetConfigPath() (string, error) {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Store reads and writes a single config file.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns a store for the default config path.
func DefaultStore() (*Store, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return NewStore(path), nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file. It never fails: when the file is missing or
// cannot be read or parsed, the defaults are returned and written back.
func (s *Store) Load() ProxyConfig {
	cfg, err := s.read()
	if err == nil {
		return cfg
	}

	if errors.Is(err, fs.ErrNotExist) {
		logging.Info("Config file not found, writing defaults", zap.String("path", s.path))
	} else {
		logging.Warn("Config file unusable, falling back to defaults",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}

	cfg = Default()
	if err := s.Save(cfg); err != nil {
		logging.Warn("Failed to write default config", zap.Error(err))
	}
	return cfg
}

func (s *Store) read() (ProxyConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ProxyConfig{}, newIOError(s.path, err)
	}

	var cfg ProxyConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return ProxyConfig{}, newParseError(s.path, err)
	}

	return cfg.normalize(), nil
}

// Save writes cfg to disk, replacing the previous file atomically.
func (s *Store) Save(cfg ProxyConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return newIOError(s.path, fmt.Errorf("failed to create config directory: %w", err))
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return newIOError(s.path, fmt.Errorf("failed to marshal config: %w", err))
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		return newIOError(s.path, err)
	}

	logging.Debug("Config saved",
		zap.String("path", s.path),
		zap.Bool("enabled", cfg.Enabled),
		zap.Uint16("port", cfg.PortValue()),
	)
	return nil
}
