package blobstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`.
var ErrNotFound = errors.New("blob not found")

// ErrStorageFull is returned when a store with a fixed capacity cannot
// accept the payload.
var ErrStorageFull = errors.New("blob storage full")

// Metadata is the canonical metadata of a stored blob.
type Metadata struct {
	Key         string            `json:"key"`
	ContentType string            `json:"contentType"`
	Size        int64             `json:"size"`
	CreatedAt   time.Time         `json:"createdAt"`
	Checksum    string            `json:"checksum,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// Clone creates a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	clone := m
	if m.Tags != nil {
		clone.Tags = make(map[string]string, len(m.Tags))
		for k, v := range m.Tags {
			clone.Tags[k] = v
		}
	}
	return clone
}

// Stats summarizes a blob store.
type Stats struct {
	// Count is the number of stored blobs.
	Count int
	// TotalSize is the sum of stored payload sizes in bytes.
	TotalSize int64
	// AvailableSize is the remaining capacity in bytes, or 0 when the
	// backend does not expose a ceiling.
	AvailableSize int64
}

// Store is the abstraction for blob byte storage.
type Store interface {
	// StoreBlob writes the payload under key, overwriting any previous blob,
	// and returns the resulting canonical metadata.
	StoreBlob(ctx context.Context, key string, data []byte, contentType string, tags map[string]string) (Metadata, error)

	// GetBlob returns the metadata and payload of a blob, or ErrNotFound.
	GetBlob(ctx context.Context, key string) (Metadata, []byte, error)

	// DeleteBlob removes a blob and reports whether one was removed.
	DeleteBlob(ctx context.Context, key string) (bool, error)

	// UpdateMetadata merges the given tags into the blob's canonical tags.
	UpdateMetadata(ctx context.Context, key string, tags map[string]string) error

	// Stats returns store-wide usage numbers.
	Stats(ctx context.Context) (Stats, error)
}
