package filestorage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidPath is returned for keys or URLs that would escape the storage root.
var ErrInvalidPath = errors.New("invalid file path")

// FileStorage stores opaque objects under a slash separated key and hands
// back the URL clients use to fetch them.
type FileStorage interface {
	// Save writes body under key and returns its public URL.
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the object behind a URL returned by Save. Missing objects are not an error.
	Delete(ctx context.Context, fileURL string) error
}
