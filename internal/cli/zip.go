// Package cli archive commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/disklink/disklink/internal/progress"
)

// newZipCmd creates the 'zip' command.
func newZipCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "zip <remote-path>",
		Short: "Download a remote object and archive it",
		Long: `Download a remote file or folder and pack it into <name>.zip.

A sidecar <name>.zip_info.json is written next to the archive recording
the object's remote name, size and path.

Examples:
  disklink zip /docs/report.pdf
  disklink zip /photos/summer --out ~/archives`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := GetContext()
			session, engine, err := newSession()
			if err != nil {
				return err
			}
			if err := session.Reload(ctx); err != nil {
				return fmt.Errorf("failed to load catalogue: %w", err)
			}

			snap := session.Snapshot()
			path := normalizeRemote(args[0])

			if f := snap.FindFile(path); f != nil {
				archive, err := engine.ZipFile(ctx, f, outDir, progress.NewCLIProgress())
				if err != nil {
					return err
				}
				fmt.Printf("Archive written: %s\n", archive)
				return nil
			}
			if d := snap.FindFolder(path); d != nil {
				archive, err := engine.ZipFolder(ctx, d, snap, outDir)
				if err != nil {
					return err
				}
				fmt.Printf("Archive written: %s\n", archive)
				return nil
			}
			return fmt.Errorf("no remote file or folder at %s", args[0])
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "Directory for the archive and its sidecar")
	return cmd
}
