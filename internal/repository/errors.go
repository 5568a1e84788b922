package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// DuplicateError reports a unique-constraint violation. Field names the
// offending column when the driver exposes it.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "duplicate record"
	}
	return "duplicate value for " + e.Field
}

const pgUniqueViolation = "23505"

// modernc.org/sqlite extended result codes for constraint violations.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// translate maps driver errors to the repository error set. Postgres reports
// unique violations via pgconn with the constraint name; the modernc sqlite
// driver reports them as *sqlite.Error with the column in the message text.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &DuplicateError{Field: fieldFromConstraint(pgErr.ConstraintName)}
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case sqliteConstraintPrimaryKey, sqliteConstraintUnique:
			return &DuplicateError{Field: fieldFromConstraint(sqErr.Error())}
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateError{Field: fieldFromConstraint(err.Error())}
	}

	return err
}

func fieldFromConstraint(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "email"):
		return "email"
	case strings.Contains(s, "username"):
		return "username"
	}
	return ""
}
