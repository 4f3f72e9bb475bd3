package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/models"
	"github.com/jackc/pgerrcode"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		DB: &DB{
			DB:                 db,
			driverName:         DriverPostgres,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Login:    "operator",
		AuthHash: "hash",
	}

	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"user_id", "login", "auth_hash", "created_at"}).
		AddRow(1, user.Login, user.AuthHash, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Login, user.AuthHash).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Login != user.Login {
		t.Errorf("expected login %s, got %s", user.Login, created.Login)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Login: "operator"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Login: "operator"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Login: "operator"}

	rows := sqlmock.
		NewRows([]string{"user_id"}). // intentionally wrong shape → scan error
		AddRow(1)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	_, err := repo.CreateUser(ctx, user)
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestFindUserByLogin_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"user_id", "login", "auth_hash", "created_at"}).
		AddRow(1, "operator", "hash", now)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("operator").
		WillReturnRows(rows)

	found, err := repo.FindUserByLogin(ctx, "operator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Login != "operator" {
		t.Errorf("expected login operator, got %s", found.Login)
	}
	if found.AuthHash != "hash" {
		t.Errorf("expected auth hash to round-trip, got %s", found.AuthHash)
	}
}

func TestFindUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("operator").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByLogin(ctx, "operator")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByLogin_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("operator").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByLogin(ctx, "operator")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}
