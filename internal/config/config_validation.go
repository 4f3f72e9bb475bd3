// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// supportedDrivers lists the database drivers the store layer can open.
var supportedDrivers = map[string]struct{}{
	"":        {}, // empty selects the pgx default
	"pgx":     {},
	"sqlite3": {},
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if _, ok := supportedDrivers[cfg.Storage.DB.Driver]; !ok {
		return ErrInvalidStorageConfigs
	}

	if cfg.Engine.Concurrency < 0 || cfg.Engine.PageLimit < 0 || cfg.Engine.RatePerSecond < 0 {
		return ErrInvalidEngineConfigs
	}

	if cfg.Security.InvocationSignKeyID != "" {
		if _, ok := cfg.Security.Keys[cfg.Security.InvocationSignKeyID]; !ok {
			return ErrInvalidSecurityConfigs
		}
	}

	return nil
}
