package tablekv

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/tablekv/blobindex"
	"github.com/hupe1980/tablekv/blobstore"
	"github.com/hupe1980/tablekv/field"
	"github.com/hupe1980/tablekv/table"
)

// DB is the embedding facade over the table store and the blob index.
//
// Its blob methods apply the documented lenient policy: internal index
// failures degrade to safe defaults (empty results, nil, false, zero stats)
// instead of propagating, so the blob store stays usable when the index does
// not. Use Index() or Tables() for the explicit-error API.
type DB struct {
	tables *table.Store
	blobs  blobstore.Store
	index  *blobindex.Index
	logger *Logger
}

// Open constructs the store, pre-creates the bootstrap tables and wires the
// blob index over the configured blob store.
func Open(optFns ...Option) (*DB, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.blobStore == nil {
		o.blobStore = blobstore.NewMemoryStore()
	}

	tables := table.NewStore(
		table.WithMaxRows(o.maxRows),
		table.WithCodec(o.codec),
		table.WithLogger(o.logger.Logger),
	)
	for _, bt := range o.bootstrap {
		if err := tables.CreateTable(bt.Name, bt.Families); err != nil {
			return nil, translateError(fmt.Errorf("bootstrap table %q: %w", bt.Name, err))
		}
	}

	var indexOpts []blobindex.Option
	indexOpts = append(indexOpts, blobindex.WithLogger(o.logger.Logger))
	if o.searchLimit > 0 {
		indexOpts = append(indexOpts, blobindex.WithSearchLimit(o.searchLimit))
	}
	index, err := blobindex.New(tables, o.blobStore, indexOpts...)
	if err != nil {
		return nil, translateError(err)
	}

	return &DB{
		tables: tables,
		blobs:  o.blobStore,
		index:  index,
		logger: o.logger,
	}, nil
}

// Tables returns the underlying table store.
func (db *DB) Tables() *table.Store { return db.tables }

// Index returns the blob index layer with its explicit-error API.
func (db *DB) Index() *blobindex.Index { return db.index }

// StoreBlob stores the payload and indexes it under the given tags and
// fields. The blob write is authoritative: when only the indexing step
// fails, the call still succeeds and the failure is logged.
func (db *DB) StoreBlob(ctx context.Context, key string, data []byte, contentType string, tags map[string]string, fields map[string]any) (*blobindex.IndexedMetadata, error) {
	typed, err := field.FieldsFromAny(fields)
	if err != nil {
		return nil, fmt.Errorf("indexed fields: %w", err)
	}

	im, err := db.index.Store(ctx, key, data, contentType, tags, typed)
	if err != nil {
		if im != nil {
			// Blob stored, only indexing failed.
			db.logger.Warn("blob stored without index entry", "key", key, "error", err)
			return im, nil
		}
		return nil, translateError(err)
	}
	return im, nil
}

// GetBlob returns the blob with its indexed metadata, or nil when absent.
func (db *DB) GetBlob(ctx context.Context, key string) *blobindex.Blob {
	blob, err := db.index.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			db.logger.Warn("blob fetch failed", "key", key, "error", err)
		}
		return nil
	}
	return blob
}

// SearchBlobs evaluates the query against the index and returns matching
// blob metadata. Internal query failure yields an empty result, never an
// error. limit <= 0 means the configured default.
func (db *DB) SearchBlobs(ctx context.Context, query blobindex.Query, limit int) []*blobindex.IndexedMetadata {
	results, err := db.index.Search(ctx, query, blobindex.SearchOptions{Limit: limit})
	if err != nil {
		db.logger.Warn("blob search failed", "error", err)
		return nil
	}
	return results
}

// DeleteBlob removes the index entry and the physical blob, reporting
// whether the physical deletion succeeded. Any failure reports false rather
// than partial success.
func (db *DB) DeleteBlob(ctx context.Context, key string) bool {
	removed, err := db.index.Delete(ctx, key)
	if err != nil {
		db.logger.Warn("blob delete failed", "key", key, "error", err)
		return false
	}
	return removed
}

// UpdateBlobMetadata merges tags and indexed fields into an existing index
// entry. It returns nil on any internal failure, including a missing index
// entry.
func (db *DB) UpdateBlobMetadata(ctx context.Context, key string, tags map[string]string, fields map[string]any) *blobindex.IndexedMetadata {
	typed, err := field.FieldsFromAny(fields)
	if err != nil {
		db.logger.Warn("blob metadata update failed", "key", key, "error", err)
		return nil
	}

	im, err := db.index.Update(ctx, key, tags, typed)
	if err != nil {
		if !errors.Is(err, blobindex.ErrNoIndexEntry) {
			db.logger.Warn("blob metadata update failed", "key", key, "error", err)
		}
		return nil
	}
	return im
}

// Stats combines blob store usage with the index row count, degrading to
// zeros on failure.
func (db *DB) Stats(ctx context.Context) blobindex.CombinedStats {
	stats, err := db.index.Stats(ctx)
	if err != nil {
		db.logger.Warn("stats unavailable", "error", err)
		return blobindex.CombinedStats{}
	}
	return stats
}
