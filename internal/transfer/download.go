package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disklink/disklink/internal/catalog"
	"github.com/disklink/disklink/internal/constants"
	"github.com/disklink/disklink/internal/progress"
)

// LocalMirrorPath returns where a remote path lands on the local side:
// under the download root, mirroring the remote structure.
func (e *Engine) LocalMirrorPath(remotePath string) string {
	rel := strings.TrimPrefix(trimDiskPrefix(remotePath), "/")
	return filepath.Join(e.downloadDir, filepath.FromSlash(rel))
}

// DownloadFile streams one remote file to its local mirror path in fixed
// size chunks, reporting each chunk to rep. Returns the local path.
func (e *Engine) DownloadFile(ctx context.Context, file *catalog.File, rep progress.Reporter) (string, error) {
	localPath := e.LocalMirrorPath(file.Path)

	rep.Start(file.Size, "Downloading "+file.Name)
	if err := e.streamFile(ctx, file, localPath, func(n int64, total int64) {
		rep.Update(total)
	}); err != nil {
		rep.Error(err)
		return "", err
	}
	rep.Finish()

	e.log.Info().Str("path", file.Path).Str("local", localPath).Msg("downloaded")
	return localPath, nil
}

// DownloadFolder mirrors a remote folder locally: every catalogued file
// under it is streamed down, each with its own progress bar. A local
// directory that already exists is reported and reused, not an error.
func (e *Engine) DownloadFolder(ctx context.Context, folder *catalog.Folder, snap *catalog.Snapshot) error {
	localRoot := e.LocalMirrorPath(folder.Path)
	if _, err := os.Stat(localRoot); err == nil {
		e.log.Info().Str("local", localRoot).Msg("local directory already exists, reusing")
	}
	if err := os.MkdirAll(localRoot, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", localRoot, err)
	}

	prefix := folder.Path + "/"
	var files []*catalog.File
	for i := range snap.Files {
		if strings.HasPrefix(snap.Files[i].Path, prefix) {
			files = append(files, &snap.Files[i])
		}
	}
	for i := range snap.Folders {
		if strings.HasPrefix(snap.Folders[i].Path, prefix) {
			dir := e.LocalMirrorPath(snap.Folders[i].Path)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
	}

	ui := progress.NewTransferUI(len(files))

	// Log lines go through the UI writer while bars are on screen, so
	// they print above the bars instead of tearing them.
	prevOut := e.log.Output()
	e.log.SetOutput(ui.Writer())
	defer func() {
		ui.Wait()
		e.log.SetOutput(prevOut)
	}()

	for i, f := range files {
		bar := ui.AddFileBar(i+1, f.Path, e.LocalMirrorPath(f.Path), f.Size)
		err := e.streamFile(ctx, f, e.LocalMirrorPath(f.Path), func(n int64, total int64) {
			bar.Advance(n)
		})
		bar.Complete(err)
		if err != nil {
			return err
		}
	}

	e.log.Info().Str("path", folder.Path).Int("files", ui.Completed()).Msg("folder downloaded")
	return nil
}

// streamFile does the actual chunked copy for one file. The advance
// callback receives the chunk size and the running total after each
// written chunk.
func (e *Engine) streamFile(ctx context.Context, file *catalog.File, localPath string, advance func(n, total int64)) error {
	link := file.Link
	if link == "" {
		res, err := e.client.Metadata(ctx, trimDiskPrefix(file.Path))
		if err != nil {
			return err
		}
		link = res.File
	}

	body, _, err := e.client.Download(ctx, link)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(localPath), err)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer out.Close()

	buf := make([]byte, constants.TransferChunkSize)
	var total int64
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return fmt.Errorf("failed to write %s: %w", localPath, werr)
			}
			total += int64(n)
			advance(int64(n), total)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("download of %s interrupted: %w", file.Path, rerr)
		}
	}

	return out.Close()
}
