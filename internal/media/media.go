// Package media accepts uploaded images and hands back stable retrieval
// URLs. Cloudinary backs it when configured; a local-disk store served
// under /uploads/ is the fallback.
package media

import (
	"context"
	"mime/multipart"
)

// Store persists one uploaded file and returns a URL it can be fetched at.
type Store interface {
	Save(ctx context.Context, header *multipart.FileHeader) (string, error)
}
