// Package cli size report commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/disklink/disklink/internal/catalog"
	"github.com/disklink/disklink/internal/constants"
	"github.com/disklink/disklink/internal/util/sizefmt"
)

// newReportsCmd creates the 'reports' command group.
func newReportsCmd() *cobra.Command {
	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "Size reports over the remote catalogue",
	}

	reportsCmd.AddCommand(newReportsBiggestCmd())
	reportsCmd.AddCommand(newReportsTopCmd())

	return reportsCmd
}

// newReportsBiggestCmd creates the 'reports biggest' command.
func newReportsBiggestCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "biggest",
		Short: "Show the biggest file and folder",
		Long: `Walk the remote catalogue and report its single biggest file and
biggest folder. Both are also written as JSON sidecars
(` + catalog.BiggestFileReport + `, ` + catalog.BiggestFolderReport + `) into --out.`,
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
			if f := snap.BiggestFile(); f != nil {
				fmt.Printf("Biggest file:   %-12s %s\n", sizefmt.Format(f.Size), f.Path)
			} else {
				fmt.Println("Biggest file:   (no files)")
			}
			if d := snap.BiggestFolder(); d != nil {
				fmt.Printf("Biggest folder: %-12s %s\n", sizefmt.Format(d.Size), d.Path)
			} else {
				fmt.Println("Biggest folder: (no folders)")
			}

			return snap.WriteBiggestReports(outDir)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "Directory for the JSON report files")
	return cmd
}

// newReportsTopCmd creates the 'reports top' command.
func newReportsTopCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:       "top [files|folders]",
		Aliases:   []string{"top10"},
		Short:     "Show the largest entries by size",
		Long:      `List the largest catalogued files or folders, size descending.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"files", "folders"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "files"
			if len(args) == 1 {
				kind = args[0]
			}

			ctx := GetContext()
			session, _, err := newSession()
			if err != nil {
				return err
			}
			if err := session.Reload(ctx); err != nil {
				return fmt.Errorf("failed to load catalogue: %w", err)
			}

			snap := session.Snapshot()
			switch kind {
			case "files":
				for i, f := range snap.TopFiles(count) {
					fmt.Printf("%2d. %s, %s\n", i+1, f.Name, sizefmt.Format(f.Size))
				}
			case "folders":
				for i, d := range snap.TopFolders(count) {
					fmt.Printf("%2d. %s, %s\n", i+1, d.Name, sizefmt.Format(d.Size))
				}
			default:
				return fmt.Errorf("unknown kind %q, expected files or folders", kind)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", constants.TopEntries, "Number of entries to show")
	return cmd
}
