package blobstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/s2"
)

// DefaultCapacity is the capacity of a MemoryStore when none is configured.
const DefaultCapacity = 1 << 30 // 1 GiB

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithCapacity configures the byte capacity used for the stats accounting and
// write admission.
func WithCapacity(n int64) MemoryOption {
	return func(m *MemoryStore) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithCompression enables s2 compression of resident payload bytes. The
// reported Size and Checksum always refer to the uncompressed payload.
func WithCompression() MemoryOption {
	return func(m *MemoryStore) {
		m.compress = true
	}
}

type memoryEntry struct {
	meta Metadata
	data []byte // compressed when the store compresses
}

// MemoryStore is an in-memory Store implementation.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu       sync.RWMutex
	blobs    map[string]memoryEntry
	total    int64
	capacity int64
	compress bool
}

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore(optFns ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		blobs:    make(map[string]memoryEntry),
		capacity: DefaultCapacity,
	}
	for _, fn := range optFns {
		fn(m)
	}
	return m
}

// StoreBlob writes the payload under key, overwriting any previous blob.
func (m *MemoryStore) StoreBlob(_ context.Context, key string, data []byte, contentType string, tags map[string]string) (Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := int64(len(data))
	projected := m.total + size
	if prev, ok := m.blobs[key]; ok {
		projected -= prev.meta.Size
	}
	if projected > m.capacity {
		return Metadata{}, fmt.Errorf("%w: %d of %d bytes used", ErrStorageFull, m.total, m.capacity)
	}

	meta := Metadata{
		Key:         key,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now(),
		Checksum:    fmt.Sprintf("xxh64:%016x", xxhash.Sum64(data)),
		Tags:        cloneTags(tags),
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	if m.compress {
		stored = s2.Encode(nil, data)
	}

	if prev, ok := m.blobs[key]; ok {
		m.total -= prev.meta.Size
	}
	m.blobs[key] = memoryEntry{meta: meta, data: stored}
	m.total += size

	return meta.Clone(), nil
}

// GetBlob returns the metadata and payload of a blob, or ErrNotFound.
func (m *MemoryStore) GetBlob(_ context.Context, key string) (Metadata, []byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.blobs[key]
	if !ok {
		return Metadata{}, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if m.compress {
		data, err := s2.Decode(nil, entry.data)
		if err != nil {
			return Metadata{}, nil, fmt.Errorf("decompress blob %q: %w", key, err)
		}
		return entry.meta.Clone(), data, nil
	}

	// Return a copy to prevent external mutation.
	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return entry.meta.Clone(), data, nil
}

// DeleteBlob removes a blob and reports whether one was removed.
func (m *MemoryStore) DeleteBlob(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.blobs[key]
	if !ok {
		return false, nil
	}
	delete(m.blobs, key)
	m.total -= entry.meta.Size
	return true, nil
}

// UpdateMetadata merges the given tags into the blob's canonical tags.
func (m *MemoryStore) UpdateMetadata(_ context.Context, key string, tags map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.blobs[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if entry.meta.Tags == nil {
		entry.meta.Tags = make(map[string]string, len(tags))
	}
	for k, v := range tags {
		entry.meta.Tags[k] = v
	}
	m.blobs[key] = entry
	return nil
}

// Stats returns store-wide usage numbers.
func (m *MemoryStore) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	available := m.capacity - m.total
	if available < 0 {
		available = 0
	}
	return Stats{
		Count:         len(m.blobs),
		TotalSize:     m.total,
		AvailableSize: available,
	}, nil
}

func cloneTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}
	clone := make(map[string]string, len(tags))
	for k, v := range tags {
		clone[k] = v
	}
	return clone
}
