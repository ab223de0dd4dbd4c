package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/Filipelaw45/gowallet/internal/domain"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// Retrier implements usecase.Retrier with exponential backoff. Only
// storage-level conflicts are retried; business-rule errors propagate on
// the first attempt.
type Retrier struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a new PostgreSQL retrier with default settings.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return &Retrier{
		maxAttempts:     3,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     1 * time.Second,
		logger:          logger,
	}
}

// Retry executes an operation, waiting with doubling intervals between
// conflicting attempts. An operation that still conflicts on the final
// attempt fails with domain.ErrRetriesExhausted wrapping the conflict.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0

	attempts := 0

	return backoff.Retry(func() error {
		attempts++

		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		if attempts >= r.maxAttempts {
			return backoff.Permanent(fmt.Errorf("%w: %w", domain.ErrRetriesExhausted, err))
		}

		r.logger.Warn().
			Err(err).
			Int("attempt", attempts).
			Msg("retryable database conflict, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
