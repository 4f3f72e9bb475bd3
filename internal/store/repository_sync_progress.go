package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/models"
)

// syncProgressRepository is the SQL-backed implementation of
// [SyncProgressStore] over the "sync_progress" table.
type syncProgressRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncProgressRepository constructs a [SyncProgressStore] backed by the
// provided database connection and logger.
func NewSyncProgressRepository(db *DB, logger *logger.Logger) SyncProgressStore {
	return &syncProgressRepository{
		DB:     db,
		logger: logger,
	}
}

// encodeCursor serialises the opaque cursor for storage; an empty cursor is
// stored as NULL.
func encodeCursor(cursor models.Cursor) any {
	if cursor.IsZero() {
		return nil
	}
	return string(cursor)
}

// GetProgress implements [SyncProgressStore]. With createIfMissing set, a
// fresh record is inserted first with ON CONFLICT DO NOTHING, so concurrent
// callers racing on the same id all fall through to the same select.
func (r *syncProgressRepository) GetProgress(ctx context.Context, syncID string, createIfMissing bool) (models.SyncProgress, models.RecordMeta, error) {
	log := logger.FromContext(ctx)

	if createIfMissing {
		err := r.DB.withRetry(ctx, func(ctx context.Context) error {
			_, execErr := r.DB.ExecContext(ctx, insertSyncProgressIfAbsent, syncID)
			return execErr
		})
		if err != nil {
			log.Err(err).
				Str("func", "syncProgressRepository.GetProgress").
				Str("sync_id", syncID).
				Msg("failed to lazily create sync progress record")
			return models.SyncProgress{}, models.RecordMeta{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	var (
		progress models.SyncProgress
		cursor   sql.NullString
		meta     models.RecordMeta
	)
	err := r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, getSyncProgress, syncID).Scan(
			&progress.ID,
			&progress.Sequence,
			&cursor,
			&meta.CreatedAt,
			&meta.UpdatedAt,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "syncProgressRepository.GetProgress").
			Str("sync_id", syncID).
			Msg("record not found")
		return models.SyncProgress{}, models.RecordMeta{}, ErrProgressNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncProgressRepository.GetProgress").
			Str("sync_id", syncID).
			Msg("failed to execute query for getting sync progress")
		return models.SyncProgress{}, models.RecordMeta{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if cursor.Valid && cursor.String != "" {
		progress.Cursor = models.Cursor(cursor.String)
	}

	return progress, meta, nil
}

// UpdateProgress implements [SyncProgressStore]. Identical optimistic gate to
// [referenceRepository.UpdateReference]: the row is replaced only when the
// stored sequence equals progress.Sequence-1.
func (r *syncProgressRepository) UpdateProgress(ctx context.Context, progress models.SyncProgress) error {
	log := logger.FromContext(ctx)

	var updatedID string
	err := r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, updateSyncProgress,
			progress.ID,
			progress.Sequence,
			encodeCursor(progress.Cursor),
			time.Now().UTC(),
			progress.Sequence-1,
		).Scan(&updatedID)
	})
	if err == nil {
		log.Info().
			Str("func", "syncProgressRepository.UpdateProgress").
			Str("sync_id", updatedID).
			Int64("sequence", progress.Sequence).
			Msg("successfully updated sync progress")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "syncProgressRepository.UpdateProgress").
			Str("sync_id", progress.ID).
			Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// Gate missed: probe the row to tell not-found from sequence conflict.
	var currentDBSequence int64
	probeErr := r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, probeSyncProgressSequence, progress.ID).Scan(&currentDBSequence)
	})
	if errors.Is(probeErr, sql.ErrNoRows) {
		log.Warn().
			Str("func", "syncProgressRepository.UpdateProgress").
			Str("sync_id", progress.ID).
			Msg("record not found")
		return ErrProgressNotFound
	}
	if probeErr != nil {
		log.Err(probeErr).
			Str("func", "syncProgressRepository.UpdateProgress").
			Str("sync_id", progress.ID).
			Msg("failed to execute probe query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, probeErr)
	}

	log.Warn().
		Str("func", "syncProgressRepository.UpdateProgress").
		Str("sync_id", progress.ID).
		Int64("db_sequence", currentDBSequence).
		Int64("provided_sequence", progress.Sequence).
		Msg("optimistic lock failed: sequence mismatch")
	return fmt.Errorf("failed to update sync progress: %w", ErrSequenceConflict)
}
