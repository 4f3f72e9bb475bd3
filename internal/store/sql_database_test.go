package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-cred-keeper/internal/config"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestNewConnect_UnknownDriver(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{Driver: "oracle", DSN: "oracle://x"}, logger.Nop())
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestWithRetry_NonRetryableFailsOnce(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	attempts := 0
	err := db.withRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("terminal failure")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt for a non-retryable error, got %d", attempts)
	}
}

func TestWithRetry_RetryableIsRetried(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	attempts := 0
	err := db.withRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &pgconn.PgError{Code: pgerrcode.ConnectionFailure}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetry_ExhaustionReturnsDriverError(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	driverErr := &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
	attempts := 0
	err := db.withRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		return driverErr
	})

	if attempts != maxRetries+1 {
		t.Fatalf("expected %d attempts, got %d", maxRetries+1, attempts)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.DeadlockDetected {
		t.Fatalf("expected the driver error to surface after exhaustion, got %v", err)
	}
}

func TestWithRetry_ThroughRepositoryQuery(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer conn.Close()

	l := logger.Nop()
	repo := &userRepository{
		DB: &DB{
			DB:                 conn,
			driverName:         DriverPostgres,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
	}

	// first attempt hits a transient connection error, second succeeds
	mock.ExpectQuery("SELECT user_id").
		WithArgs("operator").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})

	rows := sqlmock.
		NewRows([]string{"user_id", "login", "auth_hash", "created_at"}).
		AddRow(1, "operator", "hash", time.Now())

	mock.ExpectQuery("SELECT user_id").
		WithArgs("operator").
		WillReturnRows(rows)

	found, err := repo.FindUserByLogin(context.Background(), "operator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", found.UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
