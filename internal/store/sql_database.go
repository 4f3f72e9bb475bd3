package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-keeper/internal/config"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/migrations"
	"github.com/sethvargo/go-retry"
)

// Database driver names accepted by [NewConnect]. An empty driver in the
// configuration selects PostgreSQL.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// maxRetries bounds how many extra attempts [DB.withRetry] makes after a
// retryable failure.
const maxRetries = 3

// DB wraps the raw connection together with the driver-specific error
// classifier. All repositories embed it.
type DB struct {
	*sql.DB
	driverName         string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens a database connection for the configured driver.
// Returns [ErrUnknownDriver] for a driver name the store cannot open.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "", DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

// Migrate applies all embedded schema migrations for the connected dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driverName)
}

// withRetry runs op, retrying it with a short Fibonacci backoff when the
// driver error is classified as transient (connection loss, deadlock,
// serialization failure). Non-retryable errors are returned immediately;
// a cancelled context stops the backoff.
func (db *DB) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewFibonacci(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}

		if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
			return retry.RetryableError(err)
		}

		return err
	})
}
