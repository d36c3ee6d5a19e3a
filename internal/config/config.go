// Package config provides configuration management for disklink.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// ConfigDir is the directory under ~/.config holding disklink files.
const ConfigDir = "disklink"

// DefaultBaseURL is the Disk API root. The resources endpoint hangs off it.
const DefaultBaseURL = "https://cloud-api.yandex.net/v1/disk"

// Config is the configuration for one client session.
//
// INI format (~/.config/disklink/config):
//
//	[disk]
//	base_url = https://cloud-api.yandex.net/v1/disk
//	token = <oauth-token>
//
//	[disklink.downloads]
//	directory = downloads
type Config struct {
	// Disk connection settings
	BaseURL string `ini:"base_url"`
	Token   string `ini:"token"`

	// DownloadDir is the local mirror root for downloaded content.
	DownloadDir string `ini:"directory"`
}

// Validation errors
var (
	ErrMissingBaseURL = errors.New("base_url is required")
	ErrMissingToken   = errors.New("token is required")
)

// DefaultConfigPath returns the default path for the config file
// (~/.config/disklink/config).
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", ConfigDir, "config"), nil
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		DownloadDir: "downloads",
	}
}

// Load reads configuration from an INI file. A missing file yields the
// defaults with no error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	diskSection := iniFile.Section("disk")
	cfg.BaseURL = diskSection.Key("base_url").MustString(cfg.BaseURL)
	cfg.Token = diskSection.Key("token").String()

	dlSection := iniFile.Section("disklink.downloads")
	cfg.DownloadDir = dlSection.Key("directory").MustString(cfg.DownloadDir)

	return cfg, nil
}

// Save writes configuration to an INI file, creating parent directories as
// needed. The token is stored in the file, so the write is atomic and the
// result is chmod 0600.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()

	diskSection, err := iniFile.NewSection("disk")
	if err != nil {
		return fmt.Errorf("failed to create disk section: %w", err)
	}
	diskSection.Key("base_url").SetValue(cfg.BaseURL)
	diskSection.Key("token").SetValue(cfg.Token)

	dlSection, err := iniFile.NewSection("disklink.downloads")
	if err != nil {
		return fmt.Errorf("failed to create downloads section: %w", err)
	}
	dlSection.Key("directory").SetValue(cfg.DownloadDir)

	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set config permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks that the configuration can open an API session.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return ErrMissingToken
	}
	return nil
}
