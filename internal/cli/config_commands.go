// Package cli configuration commands.
package cli

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/disklink/disklink/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage disklink configuration",
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create the configuration file",
		Long: `Prompt for the OAuth token and API base URL and write the
configuration file. The token is stored with owner-only permissions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			tok, err := promptToken()
			if err != nil {
				return fmt.Errorf("configuration cancelled: %w", err)
			}
			cfg.Token = tok

			urlPrompt := promptui.Prompt{
				Label:   "API base URL",
				Default: cfg.BaseURL,
			}
			baseURL, err := urlPrompt.Run()
			if err != nil {
				return fmt.Errorf("configuration cancelled: %w", err)
			}
			cfg.BaseURL = baseURL

			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Printf("Configuration written to %s\n", path)
			return nil
		},
	}
	return cmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			resolved, source := config.ResolveTokenSource(token, tokenFile, cfg)
			status := "not set"
			if resolved != "" {
				status = "set (from " + source + ")"
			}

			fmt.Printf("API base URL: %s\n", cfg.BaseURL)
			fmt.Printf("Download dir: %s\n", cfg.DownloadDir)
			fmt.Printf("OAuth token:  %s\n", status)
			return nil
		},
	}
	return cmd
}
