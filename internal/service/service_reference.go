package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/store"
	"github.com/MKhiriev/go-cred-keeper/internal/validators"
	"github.com/MKhiriev/go-cred-keeper/models"
)

// referenceService is the concrete implementation of ReferenceService. All
// mutation beyond the initial insert flows through the synchronization
// engine; this service covers registration and read access.
type referenceService struct {
	// referenceStore is the data-access layer for reference records.
	referenceStore store.ReferenceStore

	// validator rejects malformed references before they reach the store.
	validator validators.Validator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewReferenceService constructs a ReferenceService over the given store.
func NewReferenceService(referenceStore store.ReferenceStore, logger *logger.Logger) ReferenceService {
	return &referenceService{
		referenceStore: referenceStore,
		validator:      validators.NewStatusUpdateValidator(),
		logger:         logger,
	}
}

// CreateReference registers a credential reference. A new record always
// enters the store at sequence 0; callers wanting to mutate an existing
// record go through the synchronization engine instead.
func (s *referenceService) CreateReference(ctx context.Context, ref models.CredentialReference) (models.ReferenceResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, ref, validators.FieldCredentialID, validators.FieldSequenceForInsert); err != nil {
		log.Err(err).Str("credential_id", ref.CredentialID).Msg("credential reference rejected")
		return models.ReferenceResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	meta, err := s.referenceStore.InsertReference(ctx, ref)
	if err != nil {
		log.Err(err).Str("credential_id", ref.CredentialID).Msg("credential reference creation ended with error")
		return models.ReferenceResponse{}, fmt.Errorf("credential reference creation ended with error: %w", err)
	}

	return models.ReferenceResponse{Reference: ref, Meta: meta}, nil
}

// GetReference returns the reference record for credentialID together with
// its storage metadata.
func (s *referenceService) GetReference(ctx context.Context, credentialID string) (models.ReferenceResponse, error) {
	log := logger.FromContext(ctx)

	if credentialID == "" {
		return models.ReferenceResponse{}, ErrInvalidDataProvided
	}

	ref, meta, err := s.referenceStore.GetReference(ctx, credentialID)
	if err != nil {
		log.Err(err).Str("credential_id", credentialID).Msg("credential reference lookup ended with error")
		return models.ReferenceResponse{}, fmt.Errorf("credential reference lookup ended with error: %w", err)
	}

	return models.ReferenceResponse{Reference: ref, Meta: meta}, nil
}

// ListReferences returns the reference records matching filter, ordered by
// credential id.
func (s *referenceService) ListReferences(ctx context.Context, filter models.ReferenceFilter) ([]models.CredentialReference, error) {
	log := logger.FromContext(ctx)

	references, err := s.referenceStore.ListReferences(ctx, filter)
	if err != nil {
		log.Err(err).Msg("credential reference listing ended with error")
		return nil, fmt.Errorf("credential reference listing ended with error: %w", err)
	}

	return references, nil
}
