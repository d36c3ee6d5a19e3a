package transfer

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/disklink/disklink/internal/api"
	"github.com/disklink/disklink/internal/catalog"
	"github.com/disklink/disklink/internal/constants"
	"github.com/disklink/disklink/internal/logging"
	"github.com/disklink/disklink/internal/progress"
)

// Engine performs uploads and downloads. Every transfer funnels through
// the service's two-step protocol: request a transfer URL, then stream
// the bytes.
type Engine struct {
	client      *api.Client
	resolver    *Resolver
	downloadDir string // local mirror root for downloads
	log         *logging.Logger
}

// NewEngine creates a transfer engine. Downloads land under downloadDir,
// mirroring the remote path structure.
func NewEngine(client *api.Client, resolver *Resolver, downloadDir string, log *logging.Logger) *Engine {
	if downloadDir == "" {
		downloadDir = constants.DownloadsDirName
	}
	return &Engine{client: client, resolver: resolver, downloadDir: downloadDir, log: log}
}

// Photo describes one external image to import by URL.
type Photo struct {
	URL       string
	Likes     int
	Timestamp int64 // unix epoch seconds
}

// UploadFile uploads one local file into the given remote folder with
// live progress. A path that already has uploaded content is skipped and
// logged, not failed.
func (e *Engine) UploadFile(ctx context.Context, localPath, remoteFolder string, rep progress.Reporter) error {
	name := filepath.Base(localPath)
	target := path.Join(trimDiskPrefix(remoteFolder), name)

	href, err := e.client.UploadURL(ctx, target)
	if err != nil {
		if api.IsUploadCollision(err) {
			e.log.Info().Str("path", target).Msg("already uploaded, skipping")
			return nil
		}
		return err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	rep.Start(info.Size(), "Uploading "+name)
	reader := progress.NewProgressReader(f, info.Size(), rep)
	if err := e.client.Upload(ctx, href, reader, info.Size()); err != nil {
		rep.Error(err)
		return err
	}
	rep.Finish()

	e.log.Info().Str("path", target).Int64("size", info.Size()).Msg("uploaded")
	return nil
}

// UploadObject resolves a bare name or path to a local object and uploads
// it: a file via the two-step protocol, a directory via UploadDir.
func (e *Engine) UploadObject(ctx context.Context, name string, snap *catalog.Snapshot, rep progress.Reporter) error {
	localPath, info, err := e.resolver.Locate(name)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return e.UploadDir(ctx, localPath, snap, rep)
	}

	folder, err := e.resolver.TargetFolder(localPath, false, snap)
	if err != nil {
		return err
	}
	if _, err := e.resolver.EnsureFolder(ctx, folder); err != nil {
		return err
	}
	return e.UploadFile(ctx, localPath, folder, rep)
}

// UploadDir mirrors a local directory remotely and uploads every
// immediate child file. Subdirectories are not descended into. Paths
// that already have content are skipped.
func (e *Engine) UploadDir(ctx context.Context, localDir string, snap *catalog.Snapshot, rep progress.Reporter) error {
	folder, err := e.resolver.TargetFolder(localDir, true, snap)
	if err != nil {
		return err
	}
	if _, err := e.resolver.EnsureFolder(ctx, folder); err != nil {
		return err
	}

	entries, err := os.ReadDir(localDir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", localDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := e.UploadFile(ctx, filepath.Join(localDir, entry.Name()), folder, rep); err != nil {
			return err
		}
	}
	return nil
}

// ImportPhotos issues one server-side fetch per photo into the album's
// remote folder. Each file is named "<likes>_<date>.jpg" with the date
// taken from the photo's timestamp in local time, truncated to the day.
func (e *Engine) ImportPhotos(ctx context.Context, album string, photos []Photo) error {
	folder := path.Join("/", constants.PhotosFolderName, album)
	if _, err := e.resolver.EnsureFolder(ctx, folder); err != nil {
		return err
	}

	for _, p := range photos {
		date := time.Unix(p.Timestamp, 0).Format("2006-01-02")
		name := fmt.Sprintf("%d_%s.jpg", p.Likes, date)

		if err := e.client.FetchURL(ctx, path.Join(folder, name), p.URL); err != nil {
			return fmt.Errorf("failed to import %s: %w", name, err)
		}
		e.log.Info().Str("name", name).Str("album", album).Msg("photo import requested")
	}
	return nil
}
