package table

import (
	"fmt"
	"slices"
	"strings"
)

// Query selects rows by key range and optionally projects their columns.
//
// All bounds are optional. StartKey and EndKey are both inclusive. When
// ColumnFamilies or Columns is set, a column survives projection if its
// family prefix is listed in ColumnFamilies or its exact key is listed in
// Columns; a row whose projection is empty is dropped from the result
// entirely.
type Query struct {
	Prefix         string
	StartKey       string
	EndKey         string
	Limit          int // 0 means unbounded
	ColumnFamilies []string
	Columns        []string
}

func (q *Query) projects() bool {
	return len(q.ColumnFamilies) > 0 || len(q.Columns) > 0
}

func (q *Query) matchesKey(key string) bool {
	if q.Prefix != "" && !strings.HasPrefix(key, q.Prefix) {
		return false
	}
	if q.StartKey != "" && key < q.StartKey {
		return false
	}
	if q.EndKey != "" && key > q.EndKey {
		return false
	}
	return true
}

// project returns a copy of the row reduced to the selected columns, or nil
// if no column survives.
func (q *Query) project(row *Row) *Row {
	projected := NewRow(row.Key)
	projected.Timestamp = row.Timestamp
	for col, cell := range row.Columns {
		if slices.Contains(q.ColumnFamilies, Family(col)) || slices.Contains(q.Columns, col) {
			projected.Columns[col] = Cell{Value: cell.Value.Clone(), Timestamp: cell.Timestamp}
		}
	}
	if len(projected.Columns) == 0 {
		return nil
	}
	return projected
}

// Query evaluates q against the table and returns the matching rows, eagerly
// materialized in sorted row-key order. It fails with ErrTableNotFound if the
// table is absent.
func (s *Store) Query(tableName string, q Query) ([]*Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tableName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	keys := make([]string, 0, len(t.rows))
	for key := range t.rows {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var results []*Row
	for _, key := range keys {
		if !q.matchesKey(key) {
			continue
		}

		row := t.rows[key]
		if q.projects() {
			projected := q.project(row)
			if projected == nil {
				continue
			}
			results = append(results, projected)
		} else {
			results = append(results, row.Clone())
		}

		if q.Limit > 0 && len(results) >= q.Limit {
			break
		}
	}
	return results, nil
}
