package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN or an unknown driver name).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidEngineConfigs indicates invalid engine settings
	// (for example, a negative concurrency bound).
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
	// ErrInvalidSecurityConfigs indicates invalid security settings
	// (for example, a sign key id that names no registry key).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
)
