// Package tablekv provides an embedded columnar key-value store with a
// secondary blob index.
//
// The table store owns named tables of multi-column-family rows keyed by
// string, with range/prefix queries, column projection and per-table capacity
// enforcement. On top of it, the blob index tags opaque binary blobs with
// searchable typed fields and keeps the projection consistent with the blob
// store's canonical metadata.
//
// # Quick Start
//
//	db, err := tablekv.Open(
//	    tablekv.WithBlobStore(blobstore.NewMemoryStore()),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	ctx := context.Background()
//	db.StoreBlob(ctx, "doc1", data, "text/plain",
//	    map[string]string{"team": "x"},
//	    map[string]any{"rating": 5, "keywords": []string{"go", "kv"}},
//	)
//
//	results := db.SearchBlobs(ctx, blobindex.Query{
//	    "rating": map[string]any{"$gt": 3},
//	}, 0)
//
// Search queries map field names to either a scalar (exact equality) or an
// operator object with any subset of $gt, $lt, $eq, $ne and $in.
//
// # Error Policy
//
// The facade prioritizes blob-store availability over index consistency:
// search returns no results rather than raising on internal query failure,
// reads fall back to un-enriched canonical metadata, and stats degrade to
// zeros. Callers that need to distinguish failure from absence can use the
// explicit-error API via Index() and Tables().
//
// # Tables
//
// Open pre-creates a small set of application tables (see
// DefaultBootstrapTables); the direct table API is available via Tables():
//
//	tables := db.Tables()
//	tables.CreateTable("events", []string{"payload", "meta"})
//	tables.UpsertRow("events", table.NewRow("e1").Set("payload:body", field.String("...")))
package tablekv
