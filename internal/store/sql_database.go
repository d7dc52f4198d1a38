package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/migrations"
	"github.com/sethvargo/go-retry"
)

// Transient driver failures (deadlocks, busy sqlite) are retried this many
// times with exponential backoff starting at retryBaseDelay.
const (
	retryAttempts  = 2
	retryBaseDelay = 50 * time.Millisecond
)

// ErrorClassificator maps driver errors onto the store's error taxonomy.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}

// DB wraps a *sql.DB with the dialect-aware query builder and per-call
// timeout shared by all repositories.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	queryTimeout       time.Duration
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, queryTimeout time.Duration, classificator ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == migrations.DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		queryTimeout:       queryTimeout,
		errorClassificator: classificator,
		logger:             log,
	}
}

// Migrate applies the embedded schema migrations for the connection dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// withTimeout bounds a single store call by the configured query timeout.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

func (db *DB) isUniqueViolation(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.IsUniqueViolation(err)
}

func (db *DB) isRetryable(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable
}

// withRetry runs op, repeating it while the driver reports a transient
// failure. Every attempt gets its own query timeout. Only idempotent
// statements may go through here: an INSERT whose commit outcome is unknown
// must not be replayed.
func (db *DB) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := db.withTimeout(ctx)
		defer cancel()

		err := op(attemptCtx)
		if err != nil && db.isRetryable(err) {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "*DB.withRetry").Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
