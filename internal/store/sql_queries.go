package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/models"
	"github.com/Masterminds/squirrel"
)

// Query constants use $N placeholders, which both the pgx stdlib driver and
// go-sqlite3 accept, so a single query set serves both dialects. Timestamps
// that the database cannot default portably are passed in from Go.
const (
	createUser = `INSERT INTO users (login, auth_hash)
    VALUES ($1, $2)
    RETURNING user_id, login, auth_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, auth_hash, created_at
    FROM users
    WHERE login = $1;`

	getReference = `SELECT credential_id, sequence, index_allocator, extra, created_at, updated_at
		FROM credential_references
		WHERE credential_id = $1;`

	insertReference = `INSERT INTO credential_references (credential_id, sequence, index_allocator, extra)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at;`

	// The WHERE clause carries the optimistic gate: the row is replaced only
	// when the stored sequence equals the submitted sequence minus one.
	updateReference = `UPDATE credential_references
		SET sequence = $2, index_allocator = $3, extra = $4, updated_at = $5
		WHERE credential_id = $1 AND sequence = $6
		RETURNING credential_id;`

	probeReferenceSequence = `SELECT sequence
		FROM credential_references
		WHERE credential_id = $1;`

	getSyncProgress = `SELECT id, sequence, cursor, created_at, updated_at
		FROM sync_progress
		WHERE id = $1;`

	insertSyncProgressIfAbsent = `INSERT INTO sync_progress (id, sequence, cursor)
		VALUES ($1, 0, NULL)
		ON CONFLICT (id) DO NOTHING;`

	updateSyncProgress = `UPDATE sync_progress
		SET sequence = $2, cursor = $3, updated_at = $4
		WHERE id = $1 AND sequence = $5
		RETURNING id;`

	probeSyncProgressSequence = `SELECT sequence
		FROM sync_progress
		WHERE id = $1;`
)

// buildSelectReferencesQuery dynamically builds the reference listing query
// from the optional filter fields.
func buildSelectReferencesQuery(ctx context.Context, filter models.ReferenceFilter) (string, []any, error) {
	log := logger.FromContext(ctx)

	qb := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select("credential_id", "sequence", "index_allocator", "extra", "created_at", "updated_at").
		From(models.CredentialReference{}.TableName()).
		OrderBy("credential_id")

	if len(filter.CredentialIDs) > 0 {
		qb = qb.Where(squirrel.Eq{"credential_id": filter.CredentialIDs})
	}
	if !filter.UpdatedAfter.IsZero() {
		qb = qb.Where(squirrel.GtOrEq{"updated_at": filter.UpdatedAfter})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(filter.Limit)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "buildSelectReferencesQuery").
			Int("credential_ids_count", len(filter.CredentialIDs)).
			Msg("failed to build select query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
