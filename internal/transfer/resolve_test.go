package transfer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disklink/disklink/internal/catalog"
)

func TestLocate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "deep.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("y"), 0644))

	r := NewResolver(nil, root)

	path, info, err := r.Locate("top.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "top.txt"), path)
	assert.False(t, info.IsDir())

	// A bare name is found anywhere under the root.
	path, _, err = r.Locate("deep.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b", "deep.txt"), path)

	path, info, err = r.Locate("b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b"), path)
	assert.True(t, info.IsDir())

	_, _, err = r.Locate("missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFoundLocally)
}

func TestRemotePath(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(nil, root)

	got, err := r.RemotePath(filepath.Join(root, "a", "b", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c.txt", got)

	got, err = r.RemotePath(root)
	require.NoError(t, err)
	assert.Equal(t, "/", got)

	_, err = r.RemotePath(filepath.Dir(root))
	assert.Error(t, err)
}

func TestTargetFolder_ZipHeuristic(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(nil, root)

	snap := &catalog.Snapshot{
		Files: []catalog.File{
			{Name: "report.tar.gz", Path: "disk:/backups/report.tar.gz"},
		},
		Folders: []catalog.Folder{
			{Name: "report", Path: "disk:/archive/report"},
			{Name: "media", Path: "disk:/library/media"},
		},
	}

	// A catalogued file with the same base name wins over the folder.
	got, err := r.TargetFolder(filepath.Join(root, "report.zip"), false, snap)
	require.NoError(t, err)
	assert.Equal(t, "/backups", got)

	got, err = r.TargetFolder(filepath.Join(root, "media.zip"), false, snap)
	require.NoError(t, err)
	assert.Equal(t, "/library", got)

	// No catalogue match falls back to the mirrored parent path.
	got, err = r.TargetFolder(filepath.Join(root, "other.zip"), false, snap)
	require.NoError(t, err)
	assert.Equal(t, "/", got)

	// Non-zip names never consult the catalogue.
	got, err = r.TargetFolder(filepath.Join(root, "sub", "report.txt"), false, snap)
	require.NoError(t, err)
	assert.Equal(t, "/sub", got)
}

func TestEnsureFolder_SegmentBySegment(t *testing.T) {
	d := newFakeDisk(t)
	r := NewResolver(d.client(), t.TempDir())
	ctx := context.Background()

	created, err := r.EnsureFolder(ctx, "/a/b/c")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, d.dirs["/a"])
	assert.True(t, d.dirs["/a/b"])
	assert.True(t, d.dirs["/a/b/c"])
	assert.Equal(t, 3, d.creates)

	// Second call is a no-op.
	created, err = r.EnsureFolder(ctx, "/a/b/c")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, d.creates)

	// The root never needs creating.
	created, err = r.EnsureFolder(ctx, "/")
	require.NoError(t, err)
	assert.False(t, created)
}
