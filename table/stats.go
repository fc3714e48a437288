package table

import "fmt"

// Stats summarizes a table for capacity-planning display.
type Stats struct {
	RowCount       int
	EstimatedBytes int64
}

// Per-cell timestamp overhead in the size estimate.
const timestampOverhead = 8

// TableStats returns the row count and an estimated byte size of the table.
//
// The estimate charges 2 bytes per character of each row key, and per cell
// 2 bytes per character of the column key, 2 bytes per character of the
// serialized cell value, plus a flat timestamp overhead. It is an
// approximation for display, not an exact accounting.
func (s *Store) TableStats(tableName string) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tableName]
	if !ok {
		return Stats{}, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	stats := Stats{RowCount: len(t.rows)}
	for key, row := range t.rows {
		stats.EstimatedBytes += 2 * int64(len(key))
		for col, cell := range row.Columns {
			serialized, err := s.codec.Marshal(cell.Value)
			if err != nil {
				return Stats{}, fmt.Errorf("serialize cell %q of row %q: %w", col, key, err)
			}
			stats.EstimatedBytes += 2*int64(len(col)) + 2*int64(len(serialized)) + timestampOverhead
		}
	}
	return stats, nil
}
