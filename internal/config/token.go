package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvToken is the environment variable consulted last for the OAuth token.
const EnvToken = "DISK_TOKEN"

// ResolveToken returns the OAuth token by checking sources in priority order.
//
// Priority (highest to lowest):
//  1. Provided token parameter (e.g. from --token flag)
//  2. Explicit token file (e.g. from --token-file flag)
//  3. Config file value
//  4. Default token file (~/.config/disklink/token)
//  5. DISK_TOKEN environment variable
//
// Returns empty string if no token is found in any source.
func ResolveToken(token, tokenFile string, cfg *Config) string {
	if token != "" {
		return token
	}

	if tokenFile != "" {
		if t, err := ReadTokenFile(tokenFile); err == nil && t != "" {
			return t
		}
	}

	if cfg != nil && cfg.Token != "" {
		return cfg.Token
	}

	if path := DefaultTokenPath(); path != "" {
		if t, err := ReadTokenFile(path); err == nil && t != "" {
			return t
		}
	}

	return os.Getenv(EnvToken)
}

// ResolveTokenSource returns the token and a description of where it came
// from, for --verbose diagnostics. Source is one of "flag", "token-file",
// "config", "default-token-file", "environment", or "" when not found.
func ResolveTokenSource(token, tokenFile string, cfg *Config) (string, string) {
	if token != "" {
		return token, "flag"
	}
	if tokenFile != "" {
		if t, err := ReadTokenFile(tokenFile); err == nil && t != "" {
			return t, "token-file"
		}
	}
	if cfg != nil && cfg.Token != "" {
		return cfg.Token, "config"
	}
	if path := DefaultTokenPath(); path != "" {
		if t, err := ReadTokenFile(path); err == nil && t != "" {
			return t, "default-token-file"
		}
	}
	if t := os.Getenv(EnvToken); t != "" {
		return t, "environment"
	}
	return "", ""
}

// DefaultTokenPath returns ~/.config/disklink/token, or "" when the home
// directory cannot be determined.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", ConfigDir, "token")
}

// ReadTokenFile reads a token from a file, trimming surrounding whitespace.
func ReadTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
