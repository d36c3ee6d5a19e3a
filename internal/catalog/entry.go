// Package catalog rebuilds the remote filesystem's state in memory: a
// recursive walk over the resources API produces an immutable snapshot of
// every file and folder with folder sizes aggregated bottom-up.
package catalog

import (
	"github.com/disklink/disklink/internal/models"
)

// File mirrors one remote file's metadata at the time of the last walk.
type File struct {
	Name            string
	Path            string
	ResourceID      string
	Revision        int64
	Size            int64
	Created         string
	Modified        string
	Link            string // time-limited download URL
	MimeType        string
	MediaType       string
	SHA256          string
	MD5             string
	AntivirusStatus string
}

// Folder mirrors one remote folder. Size is derived: the recursive sum of
// contained file sizes as of the walk that produced it. It goes stale the
// moment any remote mutation happens and stays stale until the next walk.
type Folder struct {
	Name       string
	Path       string
	ResourceID string
	Revision   int64
	Size       int64
	Created    string
	Modified   string
}

func newFile(res *models.Resource) File {
	return File{
		Name:            res.Name,
		Path:            res.Path,
		ResourceID:      res.ResourceID,
		Revision:        res.Revision,
		Size:            res.Size,
		Created:         res.Created,
		Modified:        res.Modified,
		Link:            res.File,
		MimeType:        res.MimeType,
		MediaType:       res.MediaType,
		SHA256:          res.SHA256,
		MD5:             res.MD5,
		AntivirusStatus: res.AntivirusStatus,
	}
}

func newFolder(res *models.Resource, size int64) Folder {
	return Folder{
		Name:       res.Name,
		Path:       res.Path,
		ResourceID: res.ResourceID,
		Revision:   res.Revision,
		Size:       size,
		Created:    res.Created,
		Modified:   res.Modified,
	}
}
