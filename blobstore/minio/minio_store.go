package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/tags"

	"github.com/hupe1980/tablekv/blobstore"
)

// Store implements blobstore.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO blob store.
// bucket is the bucket name; rootPrefix is prepended to all keys
// (e.g. "blobs/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) objectKey(key string) string {
	return path.Join(s.prefix, key)
}

// StoreBlob writes the payload under key, overwriting any previous object.
func (s *Store) StoreBlob(ctx context.Context, key string, data []byte, contentType string, blobTags map[string]string) (blobstore.Metadata, error) {
	info, err := s.client.PutObject(ctx, s.bucket, s.objectKey(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserTags:    blobTags,
	})
	if err != nil {
		return blobstore.Metadata{}, fmt.Errorf("put object %q: %w", key, err)
	}

	return blobstore.Metadata{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   info.LastModified,
		Checksum:    info.ETag,
		Tags:        blobTags,
	}, nil
}

// GetBlob returns the metadata and payload of an object, or
// blobstore.ErrNotFound.
func (s *Store) GetBlob(ctx context.Context, key string) (blobstore.Metadata, []byte, error) {
	objKey := s.objectKey(key)

	info, err := s.client.StatObject(ctx, s.bucket, objKey, minio.StatObjectOptions{})
	if err != nil {
		return blobstore.Metadata{}, nil, translateError(key, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objKey, minio.GetObjectOptions{})
	if err != nil {
		return blobstore.Metadata{}, nil, translateError(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return blobstore.Metadata{}, nil, fmt.Errorf("read object %q: %w", key, err)
	}

	meta := blobstore.Metadata{
		Key:         key,
		ContentType: info.ContentType,
		Size:        info.Size,
		CreatedAt:   info.LastModified,
		Checksum:    info.ETag,
	}
	if objTags, err := s.client.GetObjectTagging(ctx, s.bucket, objKey, minio.GetObjectTaggingOptions{}); err == nil {
		meta.Tags = objTags.ToMap()
	}
	return meta, data, nil
}

// DeleteBlob removes an object and reports whether one was removed.
func (s *Store) DeleteBlob(ctx context.Context, key string) (bool, error) {
	objKey := s.objectKey(key)

	if _, err := s.client.StatObject(ctx, s.bucket, objKey, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat object %q: %w", key, err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objKey, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("remove object %q: %w", key, err)
	}
	return true, nil
}

// UpdateMetadata merges the given tags into the object's tags.
func (s *Store) UpdateMetadata(ctx context.Context, key string, blobTags map[string]string) error {
	objKey := s.objectKey(key)

	existing := map[string]string{}
	if objTags, err := s.client.GetObjectTagging(ctx, s.bucket, objKey, minio.GetObjectTaggingOptions{}); err == nil {
		existing = objTags.ToMap()
	} else if isNotFound(err) {
		return translateError(key, err)
	}
	for k, v := range blobTags {
		existing[k] = v
	}

	merged, err := tags.NewTags(existing, true)
	if err != nil {
		return fmt.Errorf("build tags for %q: %w", key, err)
	}
	if err := s.client.PutObjectTagging(ctx, s.bucket, objKey, merged, minio.PutObjectTaggingOptions{}); err != nil {
		return translateError(key, err)
	}
	return nil
}

// Stats walks the bucket prefix and accumulates object counts and sizes.
func (s *Store) Stats(ctx context.Context) (blobstore.Stats, error) {
	var stats blobstore.Stats
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return blobstore.Stats{}, fmt.Errorf("list objects: %w", obj.Err)
		}
		stats.Count++
		stats.TotalSize += obj.Size
	}
	return stats, nil
}

func isNotFound(err error) bool {
	errResp := minio.ToErrorResponse(err)
	return errResp.Code == "NoSuchKey" || errResp.Code == "NotFound"
}

func translateError(key string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", blobstore.ErrNotFound, key)
	}
	return err
}
