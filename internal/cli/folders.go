// Package cli folder operation commands.
package cli

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/disklink/disklink/internal/util/sizefmt"
)

// newFoldersCmd creates the 'folders' command group.
func newFoldersCmd() *cobra.Command {
	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "Folder operations (create, list, delete)",
		Long:  `Commands for managing folders on the remote disk.`,
	}

	foldersCmd.AddCommand(newFoldersCreateCmd())
	foldersCmd.AddCommand(newFoldersListCmd())
	foldersCmd.AddCommand(newFoldersDeleteCmd())

	return foldersCmd
}

// newFoldersCreateCmd creates the 'folders create' command.
func newFoldersCreateCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a remote folder",
		Long: `Create a folder on the remote disk, ancestors included.

Without --path the parent folder is picked interactively from the
catalogue. Creating a folder that already exists is reported, not an
error.

Examples:
  disklink folders create reports --path /work
  disklink folders create summer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := GetContext()
			session, _, err := newSession()
			if err != nil {
				return err
			}

			if parent == "" {
				// Interactive fallback needs the catalogue.
				if err := session.Reload(ctx); err != nil {
					return fmt.Errorf("failed to load catalogue: %w", err)
				}
				parent, err = promptParentFolder(session.Snapshot())
				if err != nil {
					return err
				}
			}

			target := path.Join(normalizeRemote(parent), args[0])
			return session.CreateFolder(ctx, target)
		},
	}

	cmd.Flags().StringVar(&parent, "path", "", "Parent remote folder (interactive picker when omitted)")
	return cmd
}

// newFoldersListCmd creates the 'folders list' command.
func newFoldersListCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued remote folders with aggregated sizes",
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
			for i := range snap.Folders {
				d := &snap.Folders[i]
				if prefix != "" && !strings.HasPrefix(normalizeRemote(d.Path), normalizeRemote(prefix)) {
					continue
				}
				fmt.Printf("%-12s %s\n", sizefmt.Format(d.Size), d.Path)
			}
			fmt.Printf("\nTotal: %s in %d files, %d folders\n",
				sizefmt.Format(snap.TotalSize), len(snap.Files), len(snap.Folders))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list folders whose remote path starts with this prefix")
	return cmd
}

// newFoldersDeleteCmd creates the 'folders delete' command. Folder and
// file deletion share the same semantics on the remote side.
func newFoldersDeleteCmd() *cobra.Command {
	cmd := newFilesDeleteCmd()
	cmd.Short = "Delete remote folders"
	return cmd
}
