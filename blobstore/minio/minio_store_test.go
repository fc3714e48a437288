package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tablekv/blobstore"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-tablekv"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	meta, err := store.StoreBlob(ctx, "doc1", data, "text/plain", map[string]string{"team": "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), meta.Size)

	gotMeta, gotData, err := store.GetBlob(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, data, gotData)
	assert.Equal(t, "text/plain", gotMeta.ContentType)
	assert.Equal(t, "x", gotMeta.Tags["team"])

	require.NoError(t, store.UpdateMetadata(ctx, "doc1", map[string]string{"extra": "1"}))
	gotMeta, _, err = store.GetBlob(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, "x", gotMeta.Tags["team"])
	assert.Equal(t, "1", gotMeta.Tags["extra"])

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Count, 1)

	removed, err := store.DeleteBlob(ctx, "doc1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.DeleteBlob(ctx, "doc1")
	require.NoError(t, err)
	assert.False(t, removed)

	_, _, err = store.GetBlob(ctx, "doc1")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
