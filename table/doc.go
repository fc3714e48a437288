// Package table implements an in-memory columnar key-value store with
// multi-column-family rows.
//
// A Store owns named tables. Each table declares a fixed set of column
// families at creation time; every column key written to the table must carry
// a `family:qualifier` key whose family prefix belongs to that set. Rows are
// keyed by string and replaced wholesale on upsert (last-write-wins, no
// merge). Range and prefix queries iterate rows in sorted key order and can
// project results down to selected families or exact columns.
//
// Tables enforce a row-count ceiling: upserting a new row key into a full
// table fails, while updating an existing key always succeeds.
//
// All operations are guarded by a single mutual-exclusion domain per store so
// the capacity and column-family invariants hold atomically with each write.
// Rows returned to callers are deep copies; the store never aliases its
// internal state.
package table
