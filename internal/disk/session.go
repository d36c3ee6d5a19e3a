// Package disk manages the client session's view of the remote storage:
// the current catalogue snapshot and the lifecycle operations (create,
// delete, reload) that invalidate it.
package disk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disklink/disklink/internal/api"
	"github.com/disklink/disklink/internal/catalog"
	"github.com/disklink/disklink/internal/constants"
	internalhttp "github.com/disklink/disklink/internal/http"
	"github.com/disklink/disklink/internal/logging"
	"github.com/disklink/disklink/internal/transfer"
)

var errStillExists = errors.New("resource still exists")

// Session holds one authenticated connection to the service plus the
// last catalogue snapshot. Snapshots are immutable: every mutating
// operation triggers a re-walk that swaps in a fresh one.
type Session struct {
	client   *api.Client
	walker   *catalog.Walker
	resolver *transfer.Resolver
	log      *logging.Logger
	root     string

	snap *catalog.Snapshot
}

// NewSession creates a session walking from root (the disk root when
// empty). The catalogue starts empty; call Reload before reading it.
func NewSession(client *api.Client, resolver *transfer.Resolver, root string, log *logging.Logger) *Session {
	if root == "" {
		root = constants.RootPath
	}
	return &Session{
		client:   client,
		walker:   catalog.NewWalker(client),
		resolver: resolver,
		log:      log,
		root:     root,
		snap:     &catalog.Snapshot{Root: root},
	}
}

// Snapshot returns the current catalogue snapshot. It is stale after any
// mutating operation until the next Reload.
func (s *Session) Snapshot() *catalog.Snapshot {
	return s.snap
}

// Reload re-walks the remote tree and swaps in a fresh snapshot.
func (s *Session) Reload(ctx context.Context) error {
	started := time.Now()
	snap, err := s.walker.Walk(ctx, s.root)
	if err != nil {
		return err
	}
	s.snap = snap

	s.log.Debug().
		Int("files", len(snap.Files)).
		Int("folders", len(snap.Folders)).
		Dur("took", time.Since(started)).
		Msg("catalogue reloaded")
	return nil
}

// CreateFolder creates the remote folder at path, ancestors included.
// Creating an existing folder is reported, not an error. The catalogue
// is reloaded when anything was created.
func (s *Session) CreateFolder(ctx context.Context, path string) error {
	created, err := s.resolver.EnsureFolder(ctx, path)
	if err != nil {
		return err
	}
	if !created {
		s.log.Info().Str("path", path).Msg("folder already exists")
		return nil
	}

	s.log.Info().Str("path", path).Msg("folder created")
	return s.Reload(ctx)
}

// Delete removes the given remote paths sequentially, each followed by a
// bounded existence poll that only returns once the service reports the
// path gone. The batch aborts on the first failure without rolling back
// earlier deletions. The catalogue is reloaded afterwards either way.
func (s *Session) Delete(ctx context.Context, paths []string, permanent bool) error {
	var failed error
	for _, p := range paths {
		if err := s.deleteOne(ctx, p, permanent); err != nil {
			failed = fmt.Errorf("delete of %s failed: %w", p, err)
			break
		}
		s.log.Info().Str("path", p).Bool("permanent", permanent).Msg("deleted")
	}

	if err := s.Reload(ctx); err != nil && failed == nil {
		return err
	}
	return failed
}

func (s *Session) deleteOne(ctx context.Context, path string, permanent bool) error {
	if err := s.client.Delete(ctx, path, permanent); err != nil {
		return err
	}

	// The service deletes asynchronously. Poll until the path is gone so
	// callers observe no race window after Delete returns.
	cfg := internalhttp.Config{
		MaxAttempts:  constants.DeletePollMaxAttempts,
		InitialDelay: constants.DeletePollInitialDelay,
		MaxDelay:     constants.DeletePollMaxDelay,
	}
	return internalhttp.ExecuteWithRetry(ctx, cfg, func() error {
		exists, err := s.client.Exists(ctx, path)
		if err != nil {
			return internalhttp.Permanent{Err: err}
		}
		if exists {
			return errStillExists
		}
		return nil
	})
}

// Exists checks whether the remote path currently exists, bypassing the
// snapshot.
func (s *Session) Exists(ctx context.Context, path string) (bool, error) {
	return s.client.Exists(ctx, path)
}
