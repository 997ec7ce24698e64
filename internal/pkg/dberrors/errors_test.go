package dberrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/yigit/hostelcare/internal/pkg/dberrors"
)

func TestClassifiesPgErrors(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_allocations_active_student"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}
	deadlock := &pgconn.PgError{Code: "40P01"}
	serialization := &pgconn.PgError{Code: "40001"}

	assert.True(t, dberrors.IsUniqueViolation(unique))
	assert.True(t, dberrors.IsDuplicateConstraintError(unique, "uq_allocations_active_student"))
	assert.False(t, dberrors.IsDuplicateConstraintError(unique, "students_email_key"))
	assert.True(t, dberrors.IsForeignKeyViolation(fk))
	assert.True(t, dberrors.IsCheckViolation(check))
	assert.True(t, dberrors.IsRetryable(deadlock))
	assert.True(t, dberrors.IsRetryable(serialization))
	assert.False(t, dberrors.IsRetryable(unique))
}

func TestPlainErrorsAreNotPgErrors(t *testing.T) {
	err := errors.New("boom")

	assert.False(t, dberrors.IsUniqueViolation(err))
	assert.False(t, dberrors.IsForeignKeyViolation(err))
	assert.False(t, dberrors.IsRetryable(err))
}
