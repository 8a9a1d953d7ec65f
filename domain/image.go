package domain

import (
	"fmt"
	"mime/multipart"
	"net/url"
)

const (
	// PostsImageDir is the prefix below the media base directory under
	// which post illustrations are stored.
	PostsImageDir = "posts"
	// MaxUploadSize determines the maximum filesize of an image to be uploaded.
	MaxUploadSize int64 = 5 << 20 // 5 Megabyte
)

// Image represents an image file to be uploaded. Images are only stored as
// files in the filesystem and have no dedicated table in the database; a
// post references its illustration through the relative path in its Image
// column. File contains the actual file data coming from a multipart form.
// StoredPath is filled in by the ImageService once the file has been
// validated and written, and is what gets persisted on the post.
type Image struct {
	File        multipart.File `json:"-"`
	Filename    string         `json:"-"`
	Extension   string         `json:"-"`
	ContentType string         `json:"-"`
	StoredPath  string         `json:"stored_path"`
}

// ImageService is a set of methods to work with stored image files.
type ImageService interface {
	Create(image *Image) error
	Delete(relativePath string) error
}

// MediaURL returns the public URL for a stored image path.
func MediaURL(relativePath string) string {
	if relativePath == "" {
		return ""
	}
	temp := url.URL{
		Path: fmt.Sprintf("/media/%s", relativePath),
	}
	return temp.String()
}
