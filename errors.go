package tablekv

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tablekv/blobindex"
	"github.com/hupe1980/tablekv/blobstore"
	"github.com/hupe1980/tablekv/table"
)

var (
	// ErrNotFound unifies "table absent", "blob absent" and "index entry
	// absent" at the public surface.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating a table whose name is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrCapacityExceeded is returned when a table row ceiling or blob
	// storage capacity is hit.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidColumnFamily is returned when a row carries an undeclared
	// column family.
	ErrInvalidColumnFamily = errors.New("invalid column family")

	// ErrKeyTooLong is returned when a blob key exceeds the maximum length.
	ErrKeyTooLong = errors.New("key too long")
)

// translateError maps internal sentinels to the public error contract.
// The original error stays reachable via errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, table.ErrTableNotFound),
		errors.Is(err, blobstore.ErrNotFound),
		errors.Is(err, blobindex.ErrNoIndexEntry):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, table.ErrTableExists):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, table.ErrCapacityExceeded),
		errors.Is(err, blobstore.ErrStorageFull):
		return fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	case errors.Is(err, table.ErrInvalidColumnFamily):
		return fmt.Errorf("%w: %w", ErrInvalidColumnFamily, err)
	case errors.Is(err, blobindex.ErrKeyTooLong):
		return fmt.Errorf("%w: %w", ErrKeyTooLong, err)
	default:
		return err
	}
}
