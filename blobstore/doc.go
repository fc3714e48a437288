// Package blobstore defines the storage contract for opaque binary blobs.
//
// The blob store is authoritative for binary payload and canonical metadata
// (content type, size, checksum, tags); the indexing layer above it only
// maintains a searchable projection. Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory store with xxhash checksums and optional
//     payload compression
//   - minio.Store: MinIO and S3-compatible object storage
//
// # Custom Implementations
//
// Implement the Store interface to support custom backends:
//
//	type Store interface {
//	    StoreBlob(ctx, key, data, contentType, tags) (Metadata, error)
//	    GetBlob(ctx, key) (Metadata, []byte, error)
//	    DeleteBlob(ctx, key) (bool, error)
//	    UpdateMetadata(ctx, key, tags) error
//	    Stats(ctx) (Stats, error)
//	}
package blobstore
