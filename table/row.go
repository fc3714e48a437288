package table

import (
	"strings"
	"time"

	"github.com/hupe1980/tablekv/field"
)

// Cell is the stored value and write timestamp at one row/column
// intersection. No version history is retained; each write overwrites the
// previous cell for that exact column key.
type Cell struct {
	Value     field.Value
	Timestamp time.Time
}

// Row is a keyed mapping from `family:qualifier` column keys to cells, plus a
// row-level last-write timestamp.
type Row struct {
	Key       string
	Columns   map[string]Cell
	Timestamp time.Time
}

// NewRow creates an empty row with the given key.
func NewRow(key string) *Row {
	return &Row{Key: key, Columns: make(map[string]Cell)}
}

// Set stores a value under the column key, stamped with the current time.
// It returns the row for chaining.
func (r *Row) Set(column string, v field.Value) *Row {
	r.Columns[column] = Cell{Value: v, Timestamp: time.Now()}
	return r
}

// SetCell stores a fully specified cell under the column key.
func (r *Row) SetCell(column string, c Cell) *Row {
	r.Columns[column] = c
	return r
}

// Clone creates a deep copy of the row.
func (r *Row) Clone() *Row {
	if r == nil {
		return nil
	}
	clone := &Row{
		Key:       r.Key,
		Columns:   make(map[string]Cell, len(r.Columns)),
		Timestamp: r.Timestamp,
	}
	for col, cell := range r.Columns {
		clone.Columns[col] = Cell{Value: cell.Value.Clone(), Timestamp: cell.Timestamp}
	}
	return clone
}

// Family returns the column-family prefix of a column key: the text before
// the first ':'. A key without a separator is its own family.
func Family(column string) string {
	if fam, _, ok := strings.Cut(column, ":"); ok {
		return fam
	}
	return column
}
