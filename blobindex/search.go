package blobindex

import (
	"context"
	"fmt"

	"github.com/hupe1980/tablekv/field"
	"github.com/hupe1980/tablekv/table"
)

// Query is the outward wire shape of a search: a mapping from field name to
// either a scalar (exact equality) or an operator object holding any subset
// of $gt, $lt, $eq, $ne and $in. All predicates of an operator object must
// pass, and all query entries must match (AND).
type Query map[string]any

// SearchOptions controls search execution.
type SearchOptions struct {
	// Limit caps the number of returned results. Zero means the index's
	// default. The limit applies after predicate filtering, so matching rows
	// are never crowded out by non-matching scan candidates.
	Limit int
}

// ParseQuery translates the wire query shape into a filter set.
func ParseQuery(q Query) (*field.FilterSet, error) {
	fs := &field.FilterSet{}
	for name, cond := range q {
		ops, ok := cond.(map[string]any)
		if !ok {
			// Plain scalar means exact equality.
			v, err := field.FromAny(cond)
			if err != nil {
				return nil, fmt.Errorf("query field %q: %w", name, err)
			}
			fs.Filters = append(fs.Filters, field.Eq(name, v))
			continue
		}

		for op, operand := range ops {
			v, err := field.FromAny(operand)
			if err != nil {
				return nil, fmt.Errorf("query field %q %s: %w", name, op, err)
			}
			switch op {
			case "$eq":
				fs.Filters = append(fs.Filters, field.Eq(name, v))
			case "$ne":
				fs.Filters = append(fs.Filters, field.Ne(name, v))
			case "$gt":
				fs.Filters = append(fs.Filters, field.Gt(name, v))
			case "$lt":
				fs.Filters = append(fs.Filters, field.Lt(name, v))
			case "$in":
				if v.Kind != field.KindArray {
					return nil, fmt.Errorf("query field %q: $in requires a list", name)
				}
				fs.Filters = append(fs.Filters, field.Filter{Key: name, Operator: field.OpIn, Value: v})
			default:
				return nil, fmt.Errorf("query field %q: unsupported operator %q", name, op)
			}
		}
	}
	return fs, nil
}

// Search scans the index table and evaluates the query predicates against
// the stored index columns of every row. A row missing a queried column is
// excluded regardless of operator. Results carry the reconstructed metadata
// in scan (sorted row key) order.
func (ix *Index) Search(_ context.Context, query Query, opts SearchOptions) ([]*IndexedMetadata, error) {
	fs, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = ix.searchLimit
	}

	// The scan itself is uncapped; the result limit applies only after
	// filtering.
	rows, err := ix.tables.Query(TableName, table.Query{})
	if err != nil {
		return nil, fmt.Errorf("scan index table: %w", err)
	}

	var results []*IndexedMetadata
	for _, row := range rows {
		if !fs.Matches(indexFields(row)) {
			continue
		}
		im := reconstruct(row)
		results = append(results, &im)
		if len(results) >= limit {
			break
		}
	}

	ix.logger.Debug("search completed", "predicates", len(fs.Filters), "scanned", len(rows), "results", len(results))
	return results, nil
}
