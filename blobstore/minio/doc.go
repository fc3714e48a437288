// Package minio provides a blobstore.Store backed by MinIO or any
// S3-compatible object storage.
//
// Canonical tags are kept as object tags so they survive round-trips through
// other S3 tooling. AvailableSize is reported as 0 since object storage does
// not expose a capacity ceiling.
package minio
