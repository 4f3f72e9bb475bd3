package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/models"
)

type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("UserRepository created")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts a new operator account and returns it with the
// server-assigned id and creation timestamp filled in. A duplicate login is
// mapped to [ErrLoginAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	err := r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, createUser, user.Login, user.AuthHash).
			Scan(&user.UserID, &user.Login, &user.AuthHash, &user.CreatedAt)
	})
	if err != nil {
		if r.DB.errorClassificator.IsUniqueViolation(err) {
			log.Warn().
				Str("func", "userRepository.CreateUser").
				Str("login", user.Login).
				Msg("login already exists")
			return models.User{}, ErrLoginAlreadyExists
		}

		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("login", user.Login).
			Msg("failed to create user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByLogin returns the account stored for the login.
// Returns [ErrNoUserWasFound] if no such account exists.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	err := r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, findUserByLogin, login).
			Scan(&foundUser.UserID, &foundUser.Login, &foundUser.AuthHash, &foundUser.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "userRepository.FindUserByLogin").
			Str("login", login).
			Msg("user not found")
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.FindUserByLogin").
			Str("login", login).
			Msg("failed to find user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}
