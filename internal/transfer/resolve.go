// Package transfer implements the upload and download engine: resolving
// local objects to remote paths, ensuring remote folders exist, and
// streaming content with progress reporting.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disklink/disklink/internal/api"
	"github.com/disklink/disklink/internal/catalog"
)

// ErrNotFoundLocally indicates the named object does not exist anywhere
// under the local working root.
var ErrNotFoundLocally = errors.New("object not found locally")

// Resolver maps local filesystem objects to remote paths and ensures
// their remote parent folders exist.
type Resolver struct {
	client *api.Client
	root   string // local working root
}

// NewResolver creates a resolver rooted at the given local directory.
func NewResolver(client *api.Client, localRoot string) *Resolver {
	return &Resolver{client: client, root: localRoot}
}

// Locate finds the first object named name under the local root and
// returns its absolute path. A bare name or a relative path both work;
// an absolute path is checked directly.
func (r *Resolver) Locate(name string) (string, fs.FileInfo, error) {
	if filepath.IsAbs(name) {
		info, err := os.Stat(name)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s", ErrNotFoundLocally, name)
		}
		return name, info, nil
	}

	if info, err := os.Stat(filepath.Join(r.root, name)); err == nil {
		return filepath.Join(r.root, name), info, nil
	}

	// Directories are matched before files.
	var found string
	base := filepath.Base(name)
	for _, wantDir := range []bool{true, false} {
		err := filepath.WalkDir(r.root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p != r.root && d.Name() == base && d.IsDir() == wantDir {
				found = p
				return fs.SkipAll
			}
			return nil
		})
		if err == nil && found != "" {
			break
		}
	}
	if found == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrNotFoundLocally, name)
	}

	info, err := os.Stat(found)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrNotFoundLocally, name)
	}
	return found, info, nil
}

// RemotePath maps an absolute local path to its remote counterpart: the
// path relative to the local root, slash-separated, rooted at "/".
func (r *Resolver) RemotePath(localPath string) (string, error) {
	rel, err := filepath.Rel(r.root, localPath)
	if err != nil {
		return "", fmt.Errorf("path %s is outside the working root: %w", localPath, err)
	}
	if rel == "." {
		return "/", nil
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %s is outside the working root", localPath)
	}
	return "/" + filepath.ToSlash(rel), nil
}

// TargetFolder decides which remote folder an upload of localPath should
// land in. Directories map to their own mirrored path; files go to their
// parent's mirror. Names ending in .zip consult the catalogue first: an
// existing file or folder with the same base name pins the target to that
// entry's parent. First match wins, files before folders.
func (r *Resolver) TargetFolder(localPath string, isDir bool, snap *catalog.Snapshot) (string, error) {
	if isDir {
		return r.RemotePath(localPath)
	}

	name := filepath.Base(localPath)
	if strings.HasSuffix(name, ".zip") && snap != nil {
		base := strings.TrimSuffix(name, ".zip")
		if parent := snap.MatchBaseName(base); parent != "" {
			return trimDiskPrefix(parent), nil
		}
	}

	return r.RemotePath(filepath.Dir(localPath))
}

// EnsureFolder creates the remote folder at remotePath when it is missing,
// creating ancestors segment by segment. Returns true when at least one
// folder was created. An existing folder is a no-op. Any create failure
// is surfaced verbatim and aborts the operation.
func (r *Resolver) EnsureFolder(ctx context.Context, remotePath string) (bool, error) {
	remotePath = trimDiskPrefix(remotePath)
	if remotePath == "" || remotePath == "/" {
		return false, nil
	}

	created := false
	segments := strings.Split(strings.Trim(remotePath, "/"), "/")
	for i := range segments {
		prefix := "/" + path.Join(segments[:i+1]...)

		exists, err := r.client.Exists(ctx, prefix)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := r.client.CreateFolder(ctx, prefix); err != nil {
			// Lost a race against a concurrent create; the folder is there.
			if errors.Is(err, api.ErrAlreadyExists) {
				continue
			}
			return created, err
		}
		created = true
	}
	return created, nil
}

// trimDiskPrefix strips the service's "disk:" path scheme so catalogue
// paths can be fed back into API requests.
func trimDiskPrefix(p string) string {
	return strings.TrimPrefix(p, "disk:")
}
