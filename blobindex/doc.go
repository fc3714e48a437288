// Package blobindex maintains a searchable projection of blob metadata on
// top of the table store.
//
// Each indexed blob owns one row in a well-known table, keyed by the blob
// key, with three column families:
//
//   - metadata: canonical blob metadata (contentType, size, createdAt,
//     checksum) plus one tag_<name> column per tag
//   - index: one column per user-supplied indexed field, stored as a typed
//     value
//   - content: denormalized search helpers (currently only keywords)
//
// The index never bypasses the table store, and the table store knows
// nothing about these column-naming conventions. The blob store stays
// authoritative for payload and canonical metadata; the index is a
// best-effort projection with no cross-store atomicity.
//
// Methods return explicit errors so callers can tell "no index data
// available" apart from "query ran and found nothing". The lenient
// degrade-to-default policy lives in the tablekv facade, applied
// deliberately.
package blobindex
