package service

import (
	"context"

	"github.com/MKhiriev/go-cred-keeper/internal/config"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
)

// appInfoService serves static build information about the running
// coordinator.
type appInfoService struct {
	appVersion string
	logger     *logger.Logger
}

// NewAppInfoService constructs an AppInfoService from the application
// config. The version string is mandatory: a coordinator that cannot report
// its own version is misconfigured.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{appVersion: cfg.Version, logger: logger}, nil
}

// GetAppVersion returns the configured application version.
func (a *appInfoService) GetAppVersion(_ context.Context) string {
	return a.appVersion
}
