package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeCheckViolation       = "23514"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

func pgCode(err error) (string, string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}

// IsUniqueViolation checks if the error is a PostgreSQL unique violation error.
func IsUniqueViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == CodeUniqueViolation
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	code, constraint, ok := pgCode(err)
	return ok && code == CodeUniqueViolation && constraint == constraintName
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == CodeForeignKeyViolation
}

// IsCheckViolation checks if the error is a PostgreSQL CHECK constraint violation.
func IsCheckViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == CodeCheckViolation
}

// IsRetryable reports whether a transaction that failed with err may succeed if run again.
func IsRetryable(err error) bool {
	code, _, ok := pgCode(err)
	return ok && (code == CodeSerializationFailure || code == CodeDeadlockDetected)
}
