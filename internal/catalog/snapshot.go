package catalog

import (
	"sort"
	"strings"
)

// Snapshot is one immutable catalogue: every remote file and folder as of
// a single walk. Mutating operations never patch a snapshot; they trigger
// a re-walk that produces a new one.
type Snapshot struct {
	Root      string
	Files     []File
	Folders   []Folder
	TotalSize int64
}

// BiggestFile returns the largest file, or nil for an empty catalogue.
func (s *Snapshot) BiggestFile() *File {
	var best *File
	for i := range s.Files {
		if best == nil || s.Files[i].Size > best.Size {
			best = &s.Files[i]
		}
	}
	return best
}

// BiggestFolder returns the largest folder, or nil for an empty catalogue.
func (s *Snapshot) BiggestFolder() *Folder {
	var best *Folder
	for i := range s.Folders {
		if best == nil || s.Folders[i].Size > best.Size {
			best = &s.Folders[i]
		}
	}
	return best
}

// TopFiles returns up to n files sorted by size descending. Ties keep
// their first-appearance order from the walk.
func (s *Snapshot) TopFiles(n int) []File {
	top := make([]File, len(s.Files))
	copy(top, s.Files)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Size > top[j].Size
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// TopFolders returns up to n folders sorted by size descending, stable.
func (s *Snapshot) TopFolders(n int) []Folder {
	top := make([]Folder, len(s.Folders))
	copy(top, s.Folders)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Size > top[j].Size
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// FindFile returns the file at the exact remote path. The service's
// "disk:" path scheme is ignored on both sides.
func (s *Snapshot) FindFile(path string) *File {
	want := canonical(path)
	for i := range s.Files {
		if canonical(s.Files[i].Path) == want {
			return &s.Files[i]
		}
	}
	return nil
}

// FindFolder returns the folder at the exact remote path.
func (s *Snapshot) FindFolder(path string) *Folder {
	want := canonical(path)
	for i := range s.Folders {
		if canonical(s.Folders[i].Path) == want {
			return &s.Folders[i]
		}
	}
	return nil
}

func canonical(p string) string {
	return strings.TrimPrefix(p, "disk:")
}

// MatchBaseName finds the first entry whose name equals base once its
// extension is stripped, checking files first, then folders. It returns
// the parent remote path of the match, or "" when nothing matches. This
// is the heuristic used to pick an upload target for archive names; first
// match wins, files before folders.
func (s *Snapshot) MatchBaseName(base string) string {
	for i := range s.Files {
		f := &s.Files[i]
		if stripExt(f.Name) == base {
			return parentPath(f.Path, f.Name)
		}
	}
	for i := range s.Folders {
		d := &s.Folders[i]
		if stripExt(d.Name) == base {
			return parentPath(d.Path, d.Name)
		}
	}
	return ""
}

func stripExt(name string) string {
	if idx := strings.Index(name, "."); idx >= 0 {
		return name[:idx]
	}
	return name
}

// parentPath cuts at the first occurrence of the name, so a repeated
// segment resolves to the outermost parent.
func parentPath(path, name string) string {
	if cut := strings.Index(path, "/"+name); cut >= 0 {
		return path[:cut]
	}
	return path
}
