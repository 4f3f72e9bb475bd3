package service

import (
	"github.com/MKhiriev/go-cred-keeper/internal/config"
	"github.com/MKhiriev/go-cred-keeper/internal/engine"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/store"
)

// Services aggregates every service consumed by the transport handlers.
type Services struct {
	AuthService      AuthService
	SyncService      SyncService
	ReferenceService ReferenceService
	AppInfoService   AppInfoService
}

// NewServices wires the service layer over the repositories and the
// synchronization engine.
func NewServices(storages *store.Storages, synchronizer engine.Synchronizer, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:      NewAuthService(storages.Users, cfg.Auth, logger),
		SyncService:      NewSyncService(synchronizer, storages.SyncProgress, logger),
		ReferenceService: NewReferenceService(storages.References, logger),
		AppInfoService:   appInfoService,
	}, nil
}
