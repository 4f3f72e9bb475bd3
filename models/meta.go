// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RecordMeta describes storage-level attributes of a stored record that are
// maintained by the store itself, not by callers.
type RecordMeta struct {
	// CreatedAt is the timestamp of the original insert.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last accepted update. Equals
	// CreatedAt while the record is still at sequence 0.
	UpdatedAt time.Time `json:"updatedAt"`
}
