package tablekv

import (
	"github.com/hupe1980/tablekv/blobstore"
	"github.com/hupe1980/tablekv/codec"
	"github.com/hupe1980/tablekv/table"
)

// BootstrapTable names a table pre-created at Open time along with its
// column-family set.
type BootstrapTable struct {
	Name     string
	Families []string
}

// DefaultBootstrapTables are the application tables pre-created by Open.
// The blob index table is created separately by the index layer itself.
func DefaultBootstrapTables() []BootstrapTable {
	return []BootstrapTable{
		{Name: "users", Families: []string{"auth", "profile"}},
		{Name: "files", Families: []string{"metadata", "chunks"}},
		{Name: "sessions", Families: []string{"data"}},
		{Name: "audit", Families: []string{"events"}},
	}
}

type options struct {
	logger      *Logger
	codec       codec.Codec
	maxRows     int
	blobStore   blobstore.Store
	bootstrap   []BootstrapTable
	searchLimit int
}

// Option configures Open behavior.
type Option func(*options)

// WithLogger configures the structured logger. If nil is passed, logging is
// discarded.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCodec configures the codec used for cell-value serialization in the
// stats estimate. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMaxRowsPerTable configures the per-table row-count ceiling.
func WithMaxRowsPerTable(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRows = n
		}
	}
}

// WithBlobStore configures the blob byte-storage backend. The default is an
// in-memory store.
func WithBlobStore(s blobstore.Store) Option {
	return func(o *options) {
		if s != nil {
			o.blobStore = s
		}
	}
}

// WithBootstrapTables overrides the application tables pre-created by Open.
// Pass an empty slice to create none.
func WithBootstrapTables(tables []BootstrapTable) Option {
	return func(o *options) {
		o.bootstrap = tables
	}
}

// WithSearchLimit configures the default blob search result cap.
func WithSearchLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.searchLimit = n
		}
	}
}

func defaultOptions() options {
	return options{
		logger:      NoopLogger(),
		codec:       codec.Default,
		maxRows:     table.DefaultMaxRows,
		bootstrap:   DefaultBootstrapTables(),
		searchLimit: 0, // index default
	}
}
