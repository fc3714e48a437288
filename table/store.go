package table

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/tablekv/codec"
)

// DefaultMaxRows is the per-table row-count ceiling used when none is
// configured.
const DefaultMaxRows = 10000

type options struct {
	maxRows int
	codec   codec.Codec
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithMaxRows configures the per-table row-count ceiling.
func WithMaxRows(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRows = n
		}
	}
}

// WithCodec configures the codec used for the stats size estimate.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures the structured logger. If nil is passed, logging is
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// table is the internal per-table state. Access is guarded by the owning
// store's lock.
type table struct {
	name      string
	families  []string
	familySet map[string]struct{}
	rows      map[string]*Row
}

func (t *table) hasFamily(name string) bool {
	_, ok := t.familySet[name]
	return ok
}

// Store owns named tables and all their row data for the process lifetime.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	tables  map[string]*table
	order   []string // table names in creation order
	maxRows int
	codec   codec.Codec
	logger  *slog.Logger
}

// NewStore creates an empty store.
func NewStore(optFns ...Option) *Store {
	o := options{
		maxRows: DefaultMaxRows,
		codec:   codec.Default,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&o)
	}

	return &Store{
		tables:  make(map[string]*table),
		maxRows: o.maxRows,
		codec:   o.codec,
		logger:  o.logger,
	}
}

// CreateTable creates an empty table owning exactly the given column-family
// set. It fails with ErrTableExists if the name is taken.
func (s *Store) CreateTable(name string, columnFamilies []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[name]; ok {
		return fmt.Errorf("%w: %s", ErrTableExists, name)
	}

	families := slices.Clone(columnFamilies)
	familySet := make(map[string]struct{}, len(families))
	for _, fam := range families {
		familySet[fam] = struct{}{}
	}

	s.tables[name] = &table{
		name:      name,
		families:  families,
		familySet: familySet,
		rows:      make(map[string]*Row),
	}
	s.order = append(s.order, name)

	s.logger.Debug("table created", "table", name, "families", families)
	return nil
}

// DeleteTable removes the table and all its rows. It reports whether a table
// was actually removed and is an idempotent no-op otherwise.
func (s *Store) DeleteTable(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[name]; !ok {
		return false
	}
	delete(s.tables, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })

	s.logger.Debug("table deleted", "table", name)
	return true
}

// ListTables returns all table names in creation order.
func (s *Store) ListTables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Families returns the declared column-family set of a table, in declaration
// order. It fails with ErrTableNotFound if the table is absent.
func (s *Store) Families(tableName string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tableName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}
	return slices.Clone(t.families), nil
}

// UpsertRow stores the row keyed by its row key, fully replacing any previous
// row. The entire incoming column set is validated against the table's family
// set before any mutation (all-or-nothing). A zero row or cell timestamp is
// stamped with the current time.
func (s *Store) UpsertRow(tableName string, row *Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[tableName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	// Validate-then-commit: every column is checked before anything is
	// written.
	for col := range row.Columns {
		if !t.hasFamily(Family(col)) {
			return fmt.Errorf("%w: column %q in table %q", ErrInvalidColumnFamily, col, tableName)
		}
	}

	if _, exists := t.rows[row.Key]; !exists && len(t.rows) >= s.maxRows {
		return fmt.Errorf("%w: table %q at %d rows", ErrCapacityExceeded, tableName, s.maxRows)
	}

	stored := row.Clone()
	now := time.Now()
	if stored.Timestamp.IsZero() {
		stored.Timestamp = now
	}
	for col, cell := range stored.Columns {
		if cell.Timestamp.IsZero() {
			cell.Timestamp = now
			stored.Columns[col] = cell
		}
	}
	t.rows[stored.Key] = stored

	s.logger.Debug("row upserted", "table", tableName, "key", row.Key, "columns", len(row.Columns))
	return nil
}

// GetRow returns a copy of the row, or nil if no row has that key. It fails
// only with ErrTableNotFound on the table itself.
func (s *Store) GetRow(tableName, rowKey string) (*Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tableName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}
	return t.rows[rowKey].Clone(), nil
}

// DeleteRow removes the row and reports whether one was removed. It fails
// only with ErrTableNotFound on the table itself.
func (s *Store) DeleteRow(tableName, rowKey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[tableName]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}
	if _, ok := t.rows[rowKey]; !ok {
		return false, nil
	}
	delete(t.rows, rowKey)

	s.logger.Debug("row deleted", "table", tableName, "key", rowKey)
	return true, nil
}

// BatchUpsert applies UpsertRow sequentially over the given rows. There is no
// atomicity across the batch: a failure partway through leaves prior entries
// committed. It returns the number of rows applied and the first error
// encountered.
func (s *Store) BatchUpsert(tableName string, rows []*Row) (int, error) {
	for i, row := range rows {
		if err := s.UpsertRow(tableName, row); err != nil {
			return i, fmt.Errorf("batch upsert row %d (%q): %w", i, row.Key, err)
		}
	}
	return len(rows), nil
}

// BatchGet applies GetRow sequentially over the given keys. The result is
// aligned with keys; absent rows yield nil entries.
func (s *Store) BatchGet(tableName string, rowKeys []string) ([]*Row, error) {
	rows := make([]*Row, len(rowKeys))
	for i, key := range rowKeys {
		row, err := s.GetRow(tableName, key)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}
