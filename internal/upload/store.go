// Package upload is the document upload gateway: it accepts binary
// driver documents, keys them as <folder>/<timestamp>-<sanitized-name>,
// and hands back stable public URLs. Blobs live independently of driver
// records; a crash between upload and record insert leaves an orphaned
// blob, which is accepted and not garbage-collected.
package upload

import "context"

// Folders are the only accepted document categories.
const (
	FolderIDPhotos     = "id-photos"
	FolderPlatePhotos  = "plate-photos"
	FolderSelfiePhotos = "selfie-photos"
)

// ValidFolder reports whether folder is one of the known categories.
func ValidFolder(folder string) bool {
	switch folder {
	case FolderIDPhotos, FolderPlatePhotos, FolderSelfiePhotos:
		return true
	}
	return false
}

// BlobStore persists binary objects under opaque keys. Implementations
// return sentinel.ErrNotFound for missing keys.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (data []byte, contentType string, err error)
}
