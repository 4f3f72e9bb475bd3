package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-cred-keeper/models"
)

// ReferenceStore persists credential reference records with optimistic
// concurrency. A record is created once via Insert (sequence 0) and mutated
// only through sequence-gated updates; records are never deleted here.
type ReferenceStore interface {
	// GetReference returns the reference for credentialID together with its
	// record metadata. Returns [ErrReferenceNotFound] if no record exists.
	GetReference(ctx context.Context, credentialID string) (models.CredentialReference, models.RecordMeta, error)

	// ListReferences returns references matching the filter, ordered by
	// credential id. An empty filter selects everything.
	ListReferences(ctx context.Context, filter models.ReferenceFilter) ([]models.CredentialReference, error)

	// InsertReference creates a new record. The caller supplies the full
	// reference; its sequence should be 0. Returns [ErrReferenceAlreadyExists]
	// if a record with the same credential id is present.
	InsertReference(ctx context.Context, ref models.CredentialReference) (models.RecordMeta, error)

	// UpdateReference replaces the stored record with ref. The write succeeds
	// only when the stored sequence equals ref.Sequence-1; otherwise
	// [ErrSequenceConflict] is returned and the stored record is unchanged.
	// Returns [ErrReferenceNotFound] if no record exists.
	UpdateReference(ctx context.Context, ref models.CredentialReference) error
}

// SyncProgressStore persists per-synchronization cursor state under the same
// optimistic-concurrency discipline as [ReferenceStore].
type SyncProgressStore interface {
	// GetProgress returns the progress record for syncID. When createIfMissing
	// is true a fresh record (sequence 0, empty cursor) is created lazily if
	// none exists; the create is race safe, concurrent callers all observe the
	// same record. When createIfMissing is false and no record exists,
	// [ErrProgressNotFound] is returned.
	GetProgress(ctx context.Context, syncID string, createIfMissing bool) (models.SyncProgress, models.RecordMeta, error)

	// UpdateProgress replaces the stored record with progress. The write
	// succeeds only when the stored sequence equals progress.Sequence-1;
	// otherwise [ErrSequenceConflict] is returned.
	UpdateProgress(ctx context.Context, progress models.SyncProgress) error
}

// UserRepository persists operator accounts for the HTTP API.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// ErrorClassificator inspects driver-level errors so that repository code
// stays dialect agnostic.
type ErrorClassificator interface {
	// Classify reports whether a failed operation is worth retrying.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a duplicate-key violation.
	IsUniqueViolation(err error) bool
}
