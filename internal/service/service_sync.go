package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-keeper/internal/engine"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/status"
	"github.com/MKhiriev/go-cred-keeper/internal/store"
	"github.com/MKhiriev/go-cred-keeper/internal/validators"
	"github.com/MKhiriev/go-cred-keeper/models"
)

// syncService is the concrete implementation of SyncService: a thin
// orchestration layer turning API requests into engine passes. The pushed
// page already carries its own cursor, so the engine consumes it through a
// static page source instead of pulling from a feed.
type syncService struct {
	// synchronizer runs the actual passes.
	synchronizer engine.Synchronizer

	// progressStore answers read-only progress lookups; writes belong to the
	// engine alone.
	progressStore store.SyncProgressStore

	// validator rejects malformed requests before they reach the engine.
	validator validators.Validator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewSyncService constructs a SyncService over the given engine and progress
// store.
func NewSyncService(synchronizer engine.Synchronizer, progressStore store.SyncProgressStore, logger *logger.Logger) SyncService {
	return &syncService{
		synchronizer:  synchronizer,
		progressStore: progressStore,
		validator:     validators.NewStatusUpdateValidator(),
		logger:        logger,
	}
}

// RunSync applies the page pushed in request as one engine pass for syncID.
// The request cursor names the position after the page and becomes the
// stored cursor only if every update of the page applies successfully.
func (s *syncService) RunSync(ctx context.Context, syncID string, request models.SyncRunRequest) (models.SyncRunResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("sync_id", syncID).Msg("sync run request rejected")
		return models.SyncRunResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	result, err := s.synchronizer.Synchronize(ctx, syncID, engine.StaticPage(request.Updates, request.Cursor), engine.Options{
		Concurrency:              request.Concurrency,
		IgnoreCredentialNotFound: request.IgnoreCredentialNotFound,
	})
	if err != nil {
		log.Err(err).Str("sync_id", syncID).Msg("synchronization pass ended with error")
		return models.SyncRunResponse{}, fmt.Errorf("synchronization pass ended with error: %w", err)
	}

	return models.SyncRunResponse{UpdateCount: result.UpdateCount, HasMore: result.HasMore}, nil
}

// GetProgress returns the stored progress record for syncID. Unknown sync
// identities surface store.ErrProgressNotFound; a record is never created on
// the read path.
func (s *syncService) GetProgress(ctx context.Context, syncID string) (models.SyncProgress, error) {
	log := logger.FromContext(ctx)

	if syncID == "" {
		return models.SyncProgress{}, ErrInvalidDataProvided
	}

	progress, _, err := s.progressStore.GetProgress(ctx, syncID, false)
	if err != nil {
		log.Err(err).Str("sync_id", syncID).Msg("progress lookup ended with error")
		return models.SyncProgress{}, fmt.Errorf("progress lookup ended with error: %w", err)
	}

	return progress, nil
}

// ExpandStatus expands one compact status entry into its full form. The
// operation is pure: no store or remote call is involved.
func (s *syncService) ExpandStatus(ctx context.Context, request models.ExpandStatusRequest) (map[string]any, error) {
	expanded, err := status.ExpandCredentialStatus(request.CredentialStatus, request.StatusPurpose, request.ListLength)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("status entry expansion rejected")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return expanded, nil
}
