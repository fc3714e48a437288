package blobindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tablekv/blobstore"
	"github.com/hupe1980/tablekv/field"
	"github.com/hupe1980/tablekv/table"
)

func TestProjectionRoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 5, 20, 10, 30, 0, 0, time.UTC)
	in := &IndexedMetadata{
		Metadata: blobstore.Metadata{
			Key:         "doc1",
			ContentType: "text/plain",
			Size:        42,
			CreatedAt:   createdAt,
			Checksum:    "xxh64:abc",
			Tags:        map[string]string{"team": "x"},
		},
		Fields: field.Fields{
			"rating":    field.Int(5),
			"tags_list": field.Strings([]string{"a", "b"}),
		},
	}

	row := projectRow(in)
	assert.Equal(t, "doc1", row.Key)
	assert.Contains(t, row.Columns, "metadata:contentType")
	assert.Contains(t, row.Columns, "metadata:tag_team")
	assert.Contains(t, row.Columns, "index:rating")
	assert.Contains(t, row.Columns, "index:tags_list")

	out := reconstruct(row)
	assert.Equal(t, "doc1", out.Key)
	assert.Equal(t, "text/plain", out.ContentType)
	assert.Equal(t, int64(42), out.Size)
	assert.True(t, out.CreatedAt.Equal(createdAt))
	assert.Equal(t, "xxh64:abc", out.Checksum)
	assert.Equal(t, map[string]string{"team": "x"}, out.Tags)
	assert.Equal(t, field.Int(5), out.Fields["rating"], "number preserved")
	assert.Equal(t, field.Strings([]string{"a", "b"}), out.Fields["tags_list"], "structured round-trip")
}

func TestProjectionKeywordsDenormalization(t *testing.T) {
	in := &IndexedMetadata{
		Metadata: blobstore.Metadata{Key: "doc1", ContentType: "text/plain"},
		Fields: field.Fields{
			"keywords": field.Strings([]string{"go", "storage", "index"}),
		},
	}

	row := projectRow(in)
	cell, ok := row.Columns[colKeywords]
	require.True(t, ok)
	assert.Equal(t, field.String("go,storage,index"), cell.Value)

	// A non-sequence keywords field gets no denormalized column.
	in.Fields["keywords"] = field.String("single")
	row = projectRow(in)
	assert.NotContains(t, row.Columns, colKeywords)
}

func TestProjectionChecksumDefault(t *testing.T) {
	in := &IndexedMetadata{Metadata: blobstore.Metadata{Key: "doc1", ContentType: "text/plain"}}
	row := projectRow(in)

	cell, ok := row.Columns[colChecksum]
	require.True(t, ok, "checksum column is always written")
	assert.Equal(t, field.String(""), cell.Value)
}

func TestReconstructDefaults(t *testing.T) {
	before := time.Now()
	out := reconstruct(table.NewRow("bare"))

	assert.Equal(t, defaultContentType, out.ContentType)
	assert.Equal(t, int64(0), out.Size)
	assert.False(t, out.CreatedAt.Before(before), "absent createdAt defaults to now")
	assert.Empty(t, out.Tags)
	assert.Empty(t, out.Fields)
}

func TestReconstructCoercesLegacyText(t *testing.T) {
	// A row written by an older deployment that stored everything as text.
	row := table.NewRow("legacy").
		Set("metadata:contentType", field.String("application/json")).
		Set("metadata:size", field.String("128")).
		Set("metadata:createdAt", field.String("1716201000000")).
		Set("index:rating", field.String("5")).
		Set("index:tags_list", field.String(`["a","b"]`)).
		Set("index:broken", field.String("{not json}"))

	out := reconstruct(row)
	assert.Equal(t, int64(128), out.Size, "size is numeric-coerced")
	assert.True(t, out.CreatedAt.Equal(time.UnixMilli(1716201000000)))
	// Plain text stays text; only structured shapes are re-hydrated.
	assert.Equal(t, field.String("5"), out.Fields["rating"])
	assert.Equal(t, field.Strings([]string{"a", "b"}), out.Fields["tags_list"])
	assert.Equal(t, field.String("{not json}"), out.Fields["broken"], "parse failure degrades to text")
}
