// Package models defines wire types for the Disk resources API.
package models

// Resource types as reported by the API.
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// Resource represents one remote object's metadata as returned by
// GET /resources?path=P. Directories carry the listing in Embedded.
type Resource struct {
	Path            string    `json:"path"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	ResourceID      string    `json:"resource_id"`
	Revision        int64     `json:"revision"`
	Size            int64     `json:"size"`
	Created         string    `json:"created"`
	Modified        string    `json:"modified"`
	File            string    `json:"file,omitempty"` // time-limited download URL, files only
	MimeType        string    `json:"mime_type,omitempty"`
	MediaType       string    `json:"media_type,omitempty"`
	SHA256          string    `json:"sha256,omitempty"`
	MD5             string    `json:"md5,omitempty"`
	AntivirusStatus string    `json:"antivirus_status,omitempty"`
	Exif            *Exif     `json:"exif,omitempty"`
	Embedded        *Embedded `json:"_embedded,omitempty"`
}

// IsDir reports whether the resource is a directory.
func (r *Resource) IsDir() bool {
	return r.Type == TypeDir
}

// Embedded is the paginated listing nested inside a directory resource.
type Embedded struct {
	Path   string     `json:"path"`
	Sort   string     `json:"sort"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Total  int        `json:"total"`
	Items  []Resource `json:"items"`
}

// Exif carries photo metadata for media files.
type Exif struct {
	DateTime string `json:"date_time,omitempty"`
}

// Link is the response to operations that hand back a URL: the upload-URL
// request (GET /resources/upload) and async operations (PUT, DELETE).
// An upload-URL response that lacks Href means the path already has content.
type Link struct {
	Href      string `json:"href"`
	Method    string `json:"method"`
	Templated bool   `json:"templated"`
}

// APIError is the JSON error body the Disk API attaches to non-2xx responses.
type APIError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
	Error       string `json:"error"`
}
