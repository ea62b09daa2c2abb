package ports

import (
	"context"
)

// DocumentPayload is the renderer-agnostic tree describing a quote document.
type DocumentPayload map[string]any

// PdfRenderer turns a payload into a PDF.
type PdfRenderer interface {
	Render(ctx context.Context, payload DocumentPayload) ([]byte, error)
}

// ObjectStore stores rendered documents.
type ObjectStore interface {
	// Upload stores data under path and returns the URL it can be fetched from.
	Upload(ctx context.Context, data []byte, path, contentType string) (string, error)

	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// PathFromURL maps a URL returned by Upload back to its storage path.
	PathFromURL(url string) (string, bool)
}
