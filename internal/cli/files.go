// Package cli file operation commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/disklink/disklink/internal/progress"
	"github.com/disklink/disklink/internal/util/sizefmt"
)

// newFilesCmd creates the 'files' command group.
func newFilesCmd() *cobra.Command {
	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "File operations (upload, download, list, delete)",
		Long:  `Commands for managing files on the remote disk.`,
	}

	filesCmd.AddCommand(newFilesUploadCmd())
	filesCmd.AddCommand(newFilesDownloadCmd())
	filesCmd.AddCommand(newFilesListCmd())
	filesCmd.AddCommand(newFilesDeleteCmd())

	return filesCmd
}

// newFilesUploadCmd creates the 'files upload' command.
func newFilesUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <name> [name...]",
		Short: "Upload local files or folders",
		Long: `Upload local objects to the remote disk.

Each argument is a path or a bare name searched for under the working
root (--root). A file goes to the remote mirror of its parent directory;
a directory is mirrored remotely with its immediate child files. Archive
names ending in .zip are matched against catalogued names to pick their
target folder.

Examples:
  # Upload a single file
  disklink files upload data.tar.gz

  # Upload every file directly inside a local directory
  disklink files upload backups/

  # Bare name, located anywhere under the working root
  disklink files upload report.zip --root ~/work`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := GetContext()
			session, engine, err := newSession()
			if err != nil {
				return err
			}

			if err := session.Reload(ctx); err != nil {
				return fmt.Errorf("failed to load catalogue: %w", err)
			}

			for _, name := range args {
				if err := engine.UploadObject(ctx, name, session.Snapshot(), progress.NewCLIProgress()); err != nil {
					return err
				}
			}

			// Uploads change remote topology.
			return session.Reload(ctx)
		},
	}
	return cmd
}

// newFilesDownloadCmd creates the 'files download' command.
func newFilesDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <remote-path> [remote-path...]",
		Short: "Download remote files or folders",
		Long: `Download remote objects into the local downloads mirror.

A file is streamed with a progress bar; a folder is mirrored locally
with one bar per contained file.

Examples:
  disklink files download /docs/report.pdf
  disklink files download /photos/summer`,
		Args: cobra.MinimumNArgs(1),
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

			for _, arg := range args {
				path := normalizeRemote(arg)
				if f := snap.FindFile(path); f != nil {
					if _, err := engine.DownloadFile(ctx, f, progress.NewCLIProgress()); err != nil {
						return err
					}
					continue
				}
				if d := snap.FindFolder(path); d != nil {
					if err := engine.DownloadFolder(ctx, d, snap); err != nil {
						return err
					}
					continue
				}
				return fmt.Errorf("no remote file or folder at %s", arg)
			}
			return nil
		},
	}
	return cmd
}

// newFilesListCmd creates the 'files list' command.
func newFilesListCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued remote files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := GetContext()
			session, _, err := newSession()
			if err != nil {
				return err
			}
			if err := session.Reload(ctx); err != nil {
				return fmt.Errorf("failed to load catalogue: %w", err)
			}

			snap := session.Snapshot()
			for i := range snap.Files {
				f := &snap.Files[i]
				if prefix != "" && !strings.HasPrefix(normalizeRemote(f.Path), normalizeRemote(prefix)) {
					continue
				}
				fmt.Printf("%-12s %s\n", sizefmt.Format(f.Size), f.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list files whose remote path starts with this prefix")
	return cmd
}

// newFilesDeleteCmd creates the 'files delete' command.
func newFilesDeleteCmd() *cobra.Command {
	var permanent bool
	var trash bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <remote-path> [remote-path...]",
		Short: "Delete remote objects",
		Long: `Delete remote files or folders, waiting until the service confirms
each one is gone.

Objects go to the trash unless --permanent is given. Without --trash or
--permanent the mode is asked for interactively. A multi-object delete
runs sequentially and stops at the first failure; earlier deletions are
not rolled back.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if permanent && trash {
				return fmt.Errorf("--permanent and --trash are mutually exclusive")
			}

			ctx := GetContext()
			session, _, err := newSession()
			if err != nil {
				return err
			}

			mode := permanent
			if !permanent && !trash {
				mode, err = promptPermanence()
				if err != nil {
					return err
				}
			}

			if !yes {
				ok, err := confirmDelete(args, mode)
				if err != nil || !ok {
					return err
				}
			}

			paths := make([]string, len(args))
			for i, a := range args {
				paths[i] = normalizeRemote(a)
			}
			return session.Delete(ctx, paths, mode)
		},
	}

	cmd.Flags().BoolVar(&permanent, "permanent", false, "Delete permanently instead of moving to trash")
	cmd.Flags().BoolVar(&trash, "trash", false, "Move to trash without asking")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// normalizeRemote strips the service path scheme and guarantees a leading
// slash so users can paste either form.
func normalizeRemote(p string) string {
	p = strings.TrimPrefix(p, "disk:")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
