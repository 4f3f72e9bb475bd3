package store

import "github.com/MKhiriev/go-cred-keeper/internal/logger"

// Storages aggregates every repository backed by the shared [*DB] connection.
type Storages struct {
	References   ReferenceStore
	SyncProgress SyncProgressStore
	Users        UserRepository
}

// NewStorages wires all repositories over one connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		References:   NewReferenceRepository(db, log),
		SyncProgress: NewSyncProgressRepository(db, log),
		Users:        NewUserRepository(db, log),
	}
}
