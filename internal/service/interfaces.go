package service

import (
	"context"

	"github.com/MKhiriev/go-cred-keeper/models"
)

// AuthService manages operator accounts of the coordinator API and the JWT
// tokens that authenticate them.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService translates API calls into synchronization engine passes and
// exposes the stored progress records.
type SyncService interface {
	// RunSync applies the page pushed in request as one engine pass under
	// the named sync identity.
	RunSync(ctx context.Context, syncID string, request models.SyncRunRequest) (models.SyncRunResponse, error)

	// GetProgress returns the stored progress record for syncID without
	// creating one.
	GetProgress(ctx context.Context, syncID string) (models.SyncProgress, error)

	// ExpandStatus expands one compact status entry into its full form.
	ExpandStatus(ctx context.Context, request models.ExpandStatusRequest) (map[string]any, error)
}

// ReferenceService manages local credential reference records.
type ReferenceService interface {
	CreateReference(ctx context.Context, ref models.CredentialReference) (models.ReferenceResponse, error)
	GetReference(ctx context.Context, credentialID string) (models.ReferenceResponse, error)
	ListReferences(ctx context.Context, filter models.ReferenceFilter) ([]models.CredentialReference, error)
}

// AppInfoService exposes build information about the running application.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
