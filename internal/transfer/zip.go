package transfer

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disklink/disklink/internal/catalog"
	"github.com/disklink/disklink/internal/progress"
)

// ZipInfo is the sidecar written next to every archive.
type ZipInfo struct {
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
}

// ZipFile downloads one remote file and archives it as <base>.zip in
// destDir, where base is the entry's name with its extension stripped.
// A <base>.zip_info.json sidecar records the entry's remote name, size
// and path. Returns the archive path.
func (e *Engine) ZipFile(ctx context.Context, file *catalog.File, destDir string, rep progress.Reporter) (string, error) {
	localPath, err := e.DownloadFile(ctx, file, rep)
	if err != nil {
		return "", err
	}

	archive := filepath.Join(destDir, archiveBase(file.Name)+".zip")
	if err := writeZip(archive, map[string]string{file.Name: localPath}); err != nil {
		return "", err
	}

	info := ZipInfo{FileName: file.Name, Size: file.Size, Path: file.Path}
	if err := writeZipInfo(archive, info); err != nil {
		return "", err
	}

	e.log.Info().Str("archive", archive).Msg("archive written")
	return archive, nil
}

// ZipFolder downloads a remote folder's whole subtree and archives it as
// <name>.zip in destDir, sidecar included. Entry names inside the archive
// are the remote paths relative to the folder.
func (e *Engine) ZipFolder(ctx context.Context, folder *catalog.Folder, snap *catalog.Snapshot, destDir string) (string, error) {
	if err := e.DownloadFolder(ctx, folder, snap); err != nil {
		return "", err
	}

	prefix := folder.Path + "/"
	entries := map[string]string{}
	for i := range snap.Files {
		f := &snap.Files[i]
		if len(f.Path) > len(prefix) && f.Path[:len(prefix)] == prefix {
			entries[f.Path[len(prefix):]] = e.LocalMirrorPath(f.Path)
		}
	}

	archive := filepath.Join(destDir, archiveBase(folder.Name)+".zip")
	if err := writeZip(archive, entries); err != nil {
		return "", err
	}

	info := ZipInfo{FileName: folder.Name, Size: folder.Size, Path: folder.Path}
	if err := writeZipInfo(archive, info); err != nil {
		return "", err
	}

	e.log.Info().Str("archive", archive).Int("entries", len(entries)).Msg("archive written")
	return archive, nil
}

// archiveBase strips the last extension from an entry name, so zipping
// "a.txt" yields "a.zip". Folder names usually carry no extension and
// pass through unchanged.
func archiveBase(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// writeZip creates a zip archive at dest containing the given entries,
// keyed by archive-internal name, valued by local source path.
func writeZip(dest string, entries map[string]string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	w := zip.NewWriter(out)
	for _, name := range names {
		src := entries[name]
		f, err := os.Open(src)
		if err != nil {
			w.Close()
			return fmt.Errorf("failed to open %s: %w", src, err)
		}

		entry, err := w.Create(name)
		if err == nil {
			_, err = io.Copy(entry, f)
		}
		f.Close()
		if err != nil {
			w.Close()
			return fmt.Errorf("failed to archive %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", dest, err)
	}
	return out.Close()
}

// writeZipInfo writes the sidecar "<archive>_info.json" next to archive.
func writeZipInfo(archive string, info ZipInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode archive sidecar: %w", err)
	}

	sidecar := archive + "_info.json"
	if err := os.WriteFile(sidecar, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sidecar, err)
	}
	return nil
}
