// Package cli photo import commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/disklink/disklink/internal/transfer"
)

// photoManifestEntry is one record of the import manifest format.
type photoManifestEntry struct {
	URL       string `json:"url"`
	Likes     int    `json:"likes"`
	Timestamp int64  `json:"timestamp"`
}

// newPhotosCmd creates the 'photos' command group.
func newPhotosCmd() *cobra.Command {
	photosCmd := &cobra.Command{
		Use:   "photos",
		Short: "Import external photos by URL",
	}

	photosCmd.AddCommand(newPhotosImportCmd())
	return photosCmd
}

// newPhotosImportCmd creates the 'photos import' command.
func newPhotosImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <album> <manifest.json>",
		Short: "Server-side import of photos from a JSON manifest",
		Long: `Import external images into the remote photos/<album> folder.

The manifest is a JSON array of {"url", "likes", "timestamp"} records.
Each image is fetched by the service itself (no local download) and
stored as <likes>_<date>.jpg, the date taken from the record's unix
timestamp.

Example manifest:
  [{"url": "https://example.com/img.jpg", "likes": 42, "timestamp": 1589760000}]`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			album, manifestPath := args[0], args[1]

			data, err := os.ReadFile(manifestPath)
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}
			var entries []photoManifestEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("malformed manifest %s: %w", manifestPath, err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("manifest %s contains no entries", manifestPath)
			}

			photos := make([]transfer.Photo, len(entries))
			for i, e := range entries {
				photos[i] = transfer.Photo{URL: e.URL, Likes: e.Likes, Timestamp: e.Timestamp}
			}

			ctx := GetContext()
			session, engine, err := newSession()
			if err != nil {
				return err
			}

			if err := engine.ImportPhotos(ctx, album, photos); err != nil {
				return err
			}
			fmt.Printf("Requested import of %d photo(s) into album %q\n", len(photos), album)

			// Imports change remote topology.
			return session.Reload(ctx)
		},
	}
	return cmd
}
