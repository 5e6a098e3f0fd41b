package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// connection or query failure, the store could not be reached or answered with an error
	ErrStoreUnavailable = errors.New("store unavailable")
	// the store was reachable but refused the write
	ErrPersistence = errors.New("persistence error")
)

// Classify maps a raw driver error onto one of the store error kinds.
// nil stays nil and errors that already carry a kind are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrPersistence) {
		return err
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		// class 23: integrity constraint violation
		if strings.HasPrefix(pgErr.Code, "23") {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}

	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// IsForeignKeyViolation reports whether err is a postgres foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
