// Package storage keeps the bytes of uploaded identity documents so the
// dashboard can show a preview while OCR runs. Every stored preview is
// addressed by a handle that can be revoked once it is replaced.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned for unknown, expired or revoked handles
var ErrNotFound = errors.New("preview not found")

// Handle references a stored preview
type Handle struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StoredAt    time.Time `json:"stored_at"`
}

// IsZero reports whether h references nothing
func (h Handle) IsZero() bool {
	return h.ID == ""
}

// Object is a stored preview together with its content
type Object struct {
	Handle
	Data []byte
}

// PreviewStore holds previews until they are revoked or expire
type PreviewStore interface {
	Put(ctx context.Context, filename, contentType string, data []byte) (Handle, error)
	Get(ctx context.Context, id string) (*Object, error)
	Revoke(ctx context.Context, id string) error
}
