package tablekv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tablekv/blobindex"
	"github.com/hupe1980/tablekv/field"
)

func TestOpenBootstrapsTables(t *testing.T) {
	db, err := Open()
	require.NoError(t, err)

	names := db.Tables().ListTables()
	assert.Equal(t, []string{"users", "files", "sessions", "audit", blobindex.TableName}, names)
}

func TestOpenCustomBootstrap(t *testing.T) {
	db, err := Open(WithBootstrapTables([]BootstrapTable{
		{Name: "events", Families: []string{"payload"}},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"events", blobindex.TableName}, db.Tables().ListTables())
}

func TestOpenDuplicateBootstrapFails(t *testing.T) {
	_, err := Open(WithBootstrapTables([]BootstrapTable{
		{Name: "dup", Families: []string{"f"}},
		{Name: "dup", Families: []string{"f"}},
	}))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestBlobLifecycle(t *testing.T) {
	ctx := context.Background()
	db, err := Open()
	require.NoError(t, err)

	data := []byte("document body")
	im, err := db.StoreBlob(ctx, "doc1", data, "text/plain",
		map[string]string{"team": "x"},
		map[string]any{"rating": 5, "tags_list": []string{"a", "b"}},
	)
	require.NoError(t, err)
	assert.Equal(t, field.Int(5), im.Fields["rating"])

	blob := db.GetBlob(ctx, "doc1")
	require.NotNil(t, blob)
	assert.Equal(t, data, blob.Data)
	assert.Equal(t, "x", blob.Tags["team"])
	assert.Equal(t, field.Int(5), blob.Fields["rating"])
	assert.Equal(t, field.Strings([]string{"a", "b"}), blob.Fields["tags_list"])

	assert.True(t, db.DeleteBlob(ctx, "doc1"))
	assert.Nil(t, db.GetBlob(ctx, "doc1"))
	assert.False(t, db.DeleteBlob(ctx, "doc1"))
}

func TestSearchBlobs(t *testing.T) {
	ctx := context.Background()
	db, err := Open()
	require.NoError(t, err)

	for key, rating := range map[string]int{"a": 2, "b": 4, "c": 6} {
		_, err := db.StoreBlob(ctx, key, []byte("x"), "text/plain", nil, map[string]any{"rating": rating})
		require.NoError(t, err)
	}

	results := db.SearchBlobs(ctx, blobindex.Query{"rating": map[string]any{"$gt": 3}}, 0)
	keys := make([]string, len(results))
	for i, r := range results {
		keys[i] = r.Key
	}
	assert.Equal(t, []string{"b", "c"}, keys)
}

func TestSearchBlobsLenientOnFailure(t *testing.T) {
	ctx := context.Background()
	db, err := Open()
	require.NoError(t, err)

	db.Tables().DeleteTable(blobindex.TableName)

	results := db.SearchBlobs(ctx, blobindex.Query{"rating": 1}, 0)
	assert.Empty(t, results, "search degrades to empty results, never raises")
}

func TestUpdateBlobMetadata(t *testing.T) {
	ctx := context.Background()
	db, err := Open()
	require.NoError(t, err)

	_, err = db.StoreBlob(ctx, "doc1", []byte("x"), "text/plain", nil, map[string]any{"rating": 5})
	require.NoError(t, err)

	im := db.UpdateBlobMetadata(ctx, "doc1", nil, map[string]any{"newField": "v"})
	require.NotNil(t, im)
	assert.Equal(t, field.Int(5), im.Fields["rating"], "untouched fields preserved")
	assert.Equal(t, field.String("v"), im.Fields["newField"])

	assert.Nil(t, db.UpdateBlobMetadata(ctx, "missing", nil, map[string]any{"a": 1}))
}

func TestStatsLenient(t *testing.T) {
	ctx := context.Background()
	db, err := Open()
	require.NoError(t, err)

	_, err = db.StoreBlob(ctx, "doc1", []byte("1234"), "text/plain", nil, nil)
	require.NoError(t, err)

	stats := db.Stats(ctx)
	assert.Equal(t, 1, stats.Blobs.Count)
	assert.Equal(t, 1, stats.IndexedRows)
}

func TestErrorTranslation(t *testing.T) {
	ctx := context.Background()
	db, err := Open(WithMaxRowsPerTable(1))
	require.NoError(t, err)

	_, err = db.StoreBlob(ctx, "a", []byte("x"), "text/plain", nil, nil)
	require.NoError(t, err)

	// The second blob hits the index table's row ceiling; the blob itself
	// still stores and the facade stays lenient.
	im, err := db.StoreBlob(ctx, "b", []byte("x"), "text/plain", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, im)
	assert.Nil(t, db.GetBlob(ctx, "b").Fields, "second blob is unindexed")
}
