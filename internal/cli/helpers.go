package cli

import (
	"fmt"

	"github.com/disklink/disklink/internal/api"
	"github.com/disklink/disklink/internal/config"
	"github.com/disklink/disklink/internal/disk"
	"github.com/disklink/disklink/internal/transfer"
)

// loadConfig reads the configuration file, applying flag overrides.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}
	return cfg, nil
}

// newClient is the standard way CLI commands obtain an API client: load
// config, resolve the token through the full source chain, validate.
func newClient() (*api.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	resolved := config.ResolveToken(token, tokenFile, cfg)
	if resolved == "" {
		return nil, nil, fmt.Errorf("no OAuth token: set %s, use --token, or run 'disklink config init'", config.EnvToken)
	}
	cfg.Token = resolved

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return api.NewClient(cfg, resolved), cfg, nil
}

// newSession builds the full stack a command needs: client, resolver,
// session and transfer engine.
func newSession() (*disk.Session, *transfer.Engine, error) {
	client, cfg, err := newClient()
	if err != nil {
		return nil, nil, err
	}

	resolver := transfer.NewResolver(client, localRoot)
	session := disk.NewSession(client, resolver, "", GetLogger())
	engine := transfer.NewEngine(client, resolver, cfg.DownloadDir, GetLogger())
	return session, engine, nil
}
