package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Sentinel errors for database operations. Check with errors.Is.
var (
	// ErrEntryExists indicates a unique index rejected the write, typically
	// a duplicate external_id during import.
	ErrEntryExists = errors.New("entry already exists")

	// ErrTransactionConflict indicates concurrent operations touched the
	// same records. Callers should retry or skip.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("entry not found")
)

// wrapQueryError maps known SurrealDB query errors onto sentinel errors.
// Unrecognized errors pass through unchanged.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}

	var queryErr *surrealdb.QueryError
	if errors.As(err, &queryErr) {
		msg := queryErr.Message
		if strings.Contains(msg, "already exists") || strings.Contains(msg, "already contains") {
			return fmt.Errorf("%w: %s", ErrEntryExists, msg)
		}
		if strings.Contains(msg, "Transaction conflict") {
			return fmt.Errorf("%w: %s", ErrTransactionConflict, msg)
		}
	}

	return err
}
