package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/models"
)

// referenceRepository is the SQL-backed implementation of [ReferenceStore].
// It executes all reference operations against the "credential_references"
// table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (credential_id, sequence, etc.).
type referenceRepository struct {
	*DB
	logger *logger.Logger
}

// NewReferenceRepository constructs a [ReferenceStore] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewReferenceRepository(db *DB, logger *logger.Logger) ReferenceStore {
	return &referenceRepository{
		DB:     db,
		logger: logger,
	}
}

// referenceRow mirrors one credential_references row. Nullable columns are
// scanned through sql.NullString and folded into the model afterwards.
type referenceRow struct {
	credentialID   string
	sequence       int64
	indexAllocator sql.NullString
	extra          sql.NullString
	createdAt      time.Time
	updatedAt      time.Time
}

// toReference converts the scanned row into the domain model, decoding the
// JSON extra-field column when present.
func (row referenceRow) toReference() (models.CredentialReference, error) {
	ref := models.CredentialReference{
		CredentialID:   row.credentialID,
		Sequence:       row.sequence,
		IndexAllocator: row.indexAllocator.String,
	}

	if row.extra.Valid && row.extra.String != "" {
		if err := json.Unmarshal([]byte(row.extra.String), &ref.Extra); err != nil {
			return models.CredentialReference{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return ref, nil
}

// toMeta extracts the record metadata from the scanned row.
func (row referenceRow) toMeta() models.RecordMeta {
	return models.RecordMeta{CreatedAt: row.createdAt, UpdatedAt: row.updatedAt}
}

// encodeExtra serialises the caller-defined extra fields for storage.
// A nil map is stored as NULL.
func encodeExtra(extra map[string]any) (any, error) {
	if len(extra) == 0 {
		return nil, nil
	}

	raw, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return string(raw), nil
}

// nullableString maps the empty string to NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// GetReference implements [ReferenceStore]. Returns [ErrReferenceNotFound]
// when no record exists for the credential id.
func (r *referenceRepository) GetReference(ctx context.Context, credentialID string) (models.CredentialReference, models.RecordMeta, error) {
	log := logger.FromContext(ctx)

	var row referenceRow
	err := r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, getReference, credentialID).Scan(
			&row.credentialID,
			&row.sequence,
			&row.indexAllocator,
			&row.extra,
			&row.createdAt,
			&row.updatedAt,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "referenceRepository.GetReference").
			Str("credential_id", credentialID).
			Msg("record not found")
		return models.CredentialReference{}, models.RecordMeta{}, ErrReferenceNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "referenceRepository.GetReference").
			Str("credential_id", credentialID).
			Msg("failed to execute query for getting credential reference")
		return models.CredentialReference{}, models.RecordMeta{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	ref, err := row.toReference()
	if err != nil {
		log.Err(err).
			Str("func", "referenceRepository.GetReference").
			Str("credential_id", credentialID).
			Msg("failed to decode extra fields")
		return models.CredentialReference{}, models.RecordMeta{}, err
	}

	return ref, row.toMeta(), nil
}

// ListReferences implements [ReferenceStore]. The query is built dynamically
// from the filter via [buildSelectReferencesQuery].
func (r *referenceRepository) ListReferences(ctx context.Context, filter models.ReferenceFilter) ([]models.CredentialReference, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectReferencesQuery(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "referenceRepository.ListReferences").
			Int("credential_ids_count", len(filter.CredentialIDs)).
			Msg("failed to execute query for listing credential references")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.CredentialReference, 0, 50)

	for rows.Next() {
		var row referenceRow

		scanErr := rows.Scan(
			&row.credentialID,
			&row.sequence,
			&row.indexAllocator,
			&row.extra,
			&row.createdAt,
			&row.updatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "referenceRepository.ListReferences").
				Msg("failed to scan credential reference row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		ref, convErr := row.toReference()
		if convErr != nil {
			log.Err(convErr).
				Str("func", "referenceRepository.ListReferences").
				Str("credential_id", row.credentialID).
				Msg("failed to decode extra fields")
			return nil, convErr
		}

		results = append(results, ref)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "referenceRepository.ListReferences").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// InsertReference implements [ReferenceStore]. Duplicate credential ids are
// mapped to [ErrReferenceAlreadyExists] via the driver error classifier.
func (r *referenceRepository) InsertReference(ctx context.Context, ref models.CredentialReference) (models.RecordMeta, error) {
	log := logger.FromContext(ctx)

	extra, err := encodeExtra(ref.Extra)
	if err != nil {
		log.Err(err).
			Str("func", "referenceRepository.InsertReference").
			Str("credential_id", ref.CredentialID).
			Msg("failed to encode extra fields")
		return models.RecordMeta{}, err
	}

	log.Debug().
		Str("func", "referenceRepository.InsertReference").
		Str("credential_id", ref.CredentialID).
		Msg("inserting credential reference record")

	var meta models.RecordMeta
	err = r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, insertReference,
			ref.CredentialID,
			ref.Sequence,
			nullableString(ref.IndexAllocator),
			extra,
		).Scan(&meta.CreatedAt, &meta.UpdatedAt)
	})
	if err != nil {
		if r.DB.errorClassificator.IsUniqueViolation(err) {
			log.Warn().
				Str("func", "referenceRepository.InsertReference").
				Str("credential_id", ref.CredentialID).
				Msg("credential reference already exists")
			return models.RecordMeta{}, ErrReferenceAlreadyExists
		}

		log.Err(err).
			Str("func", "referenceRepository.InsertReference").
			Str("credential_id", ref.CredentialID).
			Msg("failed to insert credential reference")
		return models.RecordMeta{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return meta, nil
}

// UpdateReference implements [ReferenceStore]. The UPDATE is gated on the
// stored sequence equalling ref.Sequence-1; when the gate misses, a probe
// select distinguishes a missing record ([ErrReferenceNotFound]) from a
// concurrent writer ([ErrSequenceConflict]).
func (r *referenceRepository) UpdateReference(ctx context.Context, ref models.CredentialReference) error {
	log := logger.FromContext(ctx)

	extra, err := encodeExtra(ref.Extra)
	if err != nil {
		log.Err(err).
			Str("func", "referenceRepository.UpdateReference").
			Str("credential_id", ref.CredentialID).
			Msg("failed to encode extra fields")
		return err
	}

	var updatedID string
	err = r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, updateReference,
			ref.CredentialID,
			ref.Sequence,
			nullableString(ref.IndexAllocator),
			extra,
			time.Now().UTC(),
			ref.Sequence-1,
		).Scan(&updatedID)
	})
	if err == nil {
		log.Info().
			Str("func", "referenceRepository.UpdateReference").
			Str("credential_id", updatedID).
			Int64("sequence", ref.Sequence).
			Msg("successfully updated credential reference")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "referenceRepository.UpdateReference").
			Str("credential_id", ref.CredentialID).
			Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// Gate missed: probe the row to tell not-found from sequence conflict.
	var currentDBSequence int64
	probeErr := r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, probeReferenceSequence, ref.CredentialID).Scan(&currentDBSequence)
	})
	if errors.Is(probeErr, sql.ErrNoRows) {
		log.Warn().
			Str("func", "referenceRepository.UpdateReference").
			Str("credential_id", ref.CredentialID).
			Msg("record not found")
		return ErrReferenceNotFound
	}
	if probeErr != nil {
		log.Err(probeErr).
			Str("func", "referenceRepository.UpdateReference").
			Str("credential_id", ref.CredentialID).
			Msg("failed to execute probe query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, probeErr)
	}

	log.Warn().
		Str("func", "referenceRepository.UpdateReference").
		Str("credential_id", ref.CredentialID).
		Int64("db_sequence", currentDBSequence).
		Int64("provided_sequence", ref.Sequence).
		Msg("optimistic lock failed: sequence mismatch")
	return fmt.Errorf("failed to update credential reference: %w", ErrSequenceConflict)
}
