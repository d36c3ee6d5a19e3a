package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Root: "/",
		Files: []File{
			{Name: "a.txt", Path: "disk:/a.txt", Size: 10},
			{Name: "b.txt", Path: "disk:/docs/b.txt", Size: 300},
			{Name: "c.txt", Path: "disk:/docs/c.txt", Size: 300},
			{Name: "d.bin", Path: "disk:/d.bin", Size: 40},
		},
		Folders: []Folder{
			{Name: "img", Path: "disk:/docs/img", Size: 120},
			{Name: "docs", Path: "disk:/docs", Size: 720},
		},
		TotalSize: 650,
	}
}

func TestBiggest(t *testing.T) {
	snap := sampleSnapshot()

	f := snap.BiggestFile()
	require.NotNil(t, f)
	// Ties resolve to the first file seen during the walk.
	assert.Equal(t, "b.txt", f.Name)

	d := snap.BiggestFolder()
	require.NotNil(t, d)
	assert.Equal(t, "docs", d.Name)
}

func TestTopFiles_StableDescending(t *testing.T) {
	snap := sampleSnapshot()

	top := snap.TopFiles(3)
	require.Len(t, top, 3)
	assert.Equal(t, "b.txt", top[0].Name)
	assert.Equal(t, "c.txt", top[1].Name)
	assert.Equal(t, "d.bin", top[2].Name)

	// Asking for more than exists returns everything.
	assert.Len(t, snap.TopFiles(100), 4)

	// The snapshot itself is untouched.
	assert.Equal(t, "a.txt", snap.Files[0].Name)
}

func TestTopFolders(t *testing.T) {
	top := sampleSnapshot().TopFolders(1)
	require.Len(t, top, 1)
	assert.Equal(t, "docs", top[0].Name)
}

func TestFind(t *testing.T) {
	snap := sampleSnapshot()

	require.NotNil(t, snap.FindFile("disk:/docs/b.txt"))
	assert.Nil(t, snap.FindFile("disk:/nope"))

	require.NotNil(t, snap.FindFolder("disk:/docs"))
	assert.Nil(t, snap.FindFolder("disk:/docs/b.txt"))
}

func TestMatchBaseName(t *testing.T) {
	snap := &Snapshot{
		Files: []File{
			{Name: "report.tar.gz", Path: "disk:/backups/report.tar.gz"},
		},
		Folders: []Folder{
			{Name: "report", Path: "disk:/archive/report"},
			{Name: "photos", Path: "disk:/media/photos"},
		},
	}

	// A file match wins over a folder with the same base name.
	assert.Equal(t, "disk:/backups", snap.MatchBaseName("report"))
	assert.Equal(t, "disk:/media", snap.MatchBaseName("photos"))
	assert.Equal(t, "", snap.MatchBaseName("missing"))
}

func TestMatchBaseName_RepeatedSegment(t *testing.T) {
	snap := &Snapshot{
		Folders: []Folder{
			{Name: "report", Path: "disk:/report/2024/report"},
		},
	}

	// The name's first occurrence in the path decides the parent.
	assert.Equal(t, "disk:", snap.MatchBaseName("report"))
}

func TestWriteBiggestReports(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, sampleSnapshot().WriteBiggestReports(dir))

	data, err := os.ReadFile(filepath.Join(dir, BiggestFileReport))
	require.NoError(t, err)
	var report map[string]int64
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, map[string]int64{"b.txt": 300}, report)

	data, err = os.ReadFile(filepath.Join(dir, BiggestFolderReport))
	require.NoError(t, err)
	report = nil // json.Unmarshal merges into a non-nil map, keeping stale keys
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, map[string]int64{"docs": 720}, report)
}

func TestWriteBiggestReports_EmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	snap := &Snapshot{Root: "/"}
	require.NoError(t, snap.WriteBiggestReports(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
