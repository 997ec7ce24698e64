package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/yigit/hostelcare/internal/pkg/dberrors"
)

func TestRetryTransientRetriesSerializationFailures(t *testing.T) {
	calls := 0
	err := retryTransient(context.Background(), 3, zerolog.Nop(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("update rooms: %w", &pgconn.PgError{Code: dberrors.CodeSerializationFailure})
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryTransientGivesUp(t *testing.T) {
	calls := 0
	err := retryTransient(context.Background(), 2, zerolog.Nop(), func(ctx context.Context) error {
		calls++
		return &pgconn.PgError{Code: dberrors.CodeDeadlockDetected}
	})

	assert.True(t, dberrors.IsRetryable(err))
	assert.Equal(t, 3, calls)
}

func TestRetryTransientReturnsOtherErrorsImmediately(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := retryTransient(context.Background(), 5, zerolog.Nop(), func(ctx context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRetryTransientStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retryTransient(ctx, 5, zerolog.Nop(), func(ctx context.Context) error {
		return &pgconn.PgError{Code: dberrors.CodeSerializationFailure}
	})

	assert.ErrorIs(t, err, context.Canceled)
}
