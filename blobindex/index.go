package blobindex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/tablekv/blobstore"
	"github.com/hupe1980/tablekv/field"
	"github.com/hupe1980/tablekv/table"
)

const (
	// TableName is the well-known index table.
	TableName = "blob_index"

	// MaxKeyLen is the maximum accepted blob key length.
	MaxKeyLen = 256

	// DefaultSearchLimit caps search results when the caller does not supply
	// a limit.
	DefaultSearchLimit = 100
)

// Families is the column-family set of the index table.
var Families = []string{"metadata", "index", "content"}

var (
	// ErrKeyTooLong is returned when a blob key exceeds MaxKeyLen.
	ErrKeyTooLong = errors.New("blob key too long")

	// ErrNoIndexEntry is returned when an operation requires an existing
	// index row and none is present.
	ErrNoIndexEntry = errors.New("no index entry for key")
)

// IndexedMetadata composes a blob's canonical metadata with the indexed
// fields used purely for search. It is never stored directly; it is
// decomposed into table columns and reconstructed by reading them back.
type IndexedMetadata struct {
	blobstore.Metadata
	Fields field.Fields
}

// Blob is an indexed blob together with its payload.
type Blob struct {
	IndexedMetadata
	Data []byte
}

type options struct {
	logger      *slog.Logger
	searchLimit int
}

// Option configures an Index.
type Option func(*options)

// WithLogger configures the structured logger. If nil is passed, logging is
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSearchLimit configures the default search result cap.
func WithSearchLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.searchLimit = n
		}
	}
}

// Index projects blob metadata into the table store and evaluates structured
// queries over it.
type Index struct {
	tables      *table.Store
	blobs       blobstore.Store
	logger      *slog.Logger
	searchLimit int
}

// New creates the index layer over the given stores, creating the index
// table if it does not exist yet.
func New(tables *table.Store, blobs blobstore.Store, optFns ...Option) (*Index, error) {
	o := options{
		logger:      slog.New(slog.DiscardHandler),
		searchLimit: DefaultSearchLimit,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if err := tables.CreateTable(TableName, Families); err != nil && !errors.Is(err, table.ErrTableExists) {
		return nil, fmt.Errorf("ensure index table: %w", err)
	}

	return &Index{
		tables:      tables,
		blobs:       blobs,
		logger:      o.logger,
		searchLimit: o.searchLimit,
	}, nil
}

// Store writes the blob payload through the blob store, projects the
// combined metadata into the index table and returns the combined structure.
// This is a full-replace projection: indexed fields absent from this call do
// not survive from earlier writes.
//
// The blob write is authoritative: when only the indexing step fails, the
// returned metadata is still valid alongside the error.
func (ix *Index) Store(ctx context.Context, key string, data []byte, contentType string, tags map[string]string, fields field.Fields) (*IndexedMetadata, error) {
	if len(key) > MaxKeyLen {
		return nil, fmt.Errorf("%w: %d > %d", ErrKeyTooLong, len(key), MaxKeyLen)
	}

	meta, err := ix.blobs.StoreBlob(ctx, key, data, contentType, tags)
	if err != nil {
		return nil, fmt.Errorf("store blob %q: %w", key, err)
	}

	im := &IndexedMetadata{Metadata: meta, Fields: fields.Clone()}
	if err := ix.tables.UpsertRow(TableName, projectRow(im)); err != nil {
		ix.logger.Warn("blob stored but indexing failed", "key", key, "error", err)
		return im, fmt.Errorf("index blob %q: %w", key, err)
	}

	ix.logger.Debug("blob indexed", "key", key, "fields", len(fields), "tags", len(tags))
	return im, nil
}

// Get fetches the blob and enriches it with the reconstructed index row.
// When the index row is absent or unreadable, the blob's own canonical
// metadata is returned with the error kept alongside for the caller to
// inspect; the payload is always valid on a nil-or-enrichment error.
func (ix *Index) Get(ctx context.Context, key string) (*Blob, error) {
	meta, data, err := ix.blobs.GetBlob(ctx, key)
	if err != nil {
		return nil, err
	}

	blob := &Blob{IndexedMetadata: IndexedMetadata{Metadata: meta}, Data: data}

	row, err := ix.tables.GetRow(TableName, key)
	if err != nil {
		ix.logger.Debug("index row fetch failed, returning canonical metadata", "key", key, "error", err)
		return blob, nil
	}
	if row == nil {
		return blob, nil
	}

	im := reconstruct(row)
	im.Key = key
	blob.IndexedMetadata = im
	return blob, nil
}

// Delete removes the index row first, then the physical blob. The returned
// bool is the physical deletion result. This is a best-effort two-step
// delete: there is no atomicity or rollback across the two stores, and the
// index-first ordering is the documented contract.
func (ix *Index) Delete(ctx context.Context, key string) (bool, error) {
	if _, err := ix.tables.DeleteRow(TableName, key); err != nil {
		return false, fmt.Errorf("delete index row %q: %w", key, err)
	}

	removed, err := ix.blobs.DeleteBlob(ctx, key)
	if err != nil {
		return false, fmt.Errorf("delete blob %q: %w", key, err)
	}

	ix.logger.Debug("blob deleted", "key", key, "removed", removed)
	return removed, nil
}

// Update merges tags and indexed fields into an existing index entry and
// re-projects it. Unlike Store, fields are merged shallowly: new keys are
// added, matching keys overwritten, untouched keys preserved. Tags, when
// given, are also pushed through to the blob store's canonical metadata.
// It fails with ErrNoIndexEntry if the key has no index row.
func (ix *Index) Update(ctx context.Context, key string, tags map[string]string, fields field.Fields) (*IndexedMetadata, error) {
	row, err := ix.tables.GetRow(TableName, key)
	if err != nil {
		return nil, fmt.Errorf("read index row %q: %w", key, err)
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoIndexEntry, key)
	}

	im := reconstruct(row)
	im.Key = key

	if len(tags) > 0 {
		if err := ix.blobs.UpdateMetadata(ctx, key, tags); err != nil {
			return nil, fmt.Errorf("update blob metadata %q: %w", key, err)
		}
		if im.Tags == nil {
			im.Tags = make(map[string]string, len(tags))
		}
		for k, v := range tags {
			im.Tags[k] = v
		}
	}
	if len(fields) > 0 {
		im.Fields = im.Fields.Merge(fields)
	}

	if err := ix.tables.UpsertRow(TableName, projectRow(&im)); err != nil {
		return nil, fmt.Errorf("reindex blob %q: %w", key, err)
	}

	ix.logger.Debug("index entry updated", "key", key)
	return &im, nil
}

// Stats combines the blob store's usage numbers with the index row count.
// Index-table stats failure degrades to zero indexed rows rather than
// failing the call.
func (ix *Index) Stats(ctx context.Context) (CombinedStats, error) {
	blobStats, err := ix.blobs.Stats(ctx)
	if err != nil {
		return CombinedStats{}, fmt.Errorf("blob stats: %w", err)
	}

	combined := CombinedStats{Blobs: blobStats}
	tableStats, err := ix.tables.TableStats(TableName)
	if err != nil {
		ix.logger.Debug("index table stats unavailable", "error", err)
		return combined, nil
	}
	combined.IndexedRows = tableStats.RowCount
	return combined, nil
}

// CombinedStats joins blob store usage with the index row count.
type CombinedStats struct {
	Blobs       blobstore.Stats
	IndexedRows int
}
