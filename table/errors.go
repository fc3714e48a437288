package table

import "errors"

var (
	// ErrTableNotFound is returned when the named table does not exist.
	ErrTableNotFound = errors.New("table not found")

	// ErrTableExists is returned when creating a table whose name is taken.
	ErrTableExists = errors.New("table already exists")

	// ErrCapacityExceeded is returned when upserting a new row key into a
	// table that already holds its maximum row count. Updates to existing
	// keys are never rejected for capacity.
	ErrCapacityExceeded = errors.New("table capacity exceeded")

	// ErrInvalidColumnFamily is returned when a row carries a column whose
	// family prefix is not declared for the table. The row is rejected as a
	// whole; no column of it is persisted.
	ErrInvalidColumnFamily = errors.New("invalid column family")
)
