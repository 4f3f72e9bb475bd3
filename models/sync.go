package models

import "encoding/json"

// Cursor is the caller-opaque paging token stored with a sync progress
// record. The engine round-trips it byte for byte between the store and the
// page source; the only field it ever inspects is the hasMore flag.
type Cursor json.RawMessage

// MarshalJSON writes the raw token bytes unchanged. An empty cursor
// serialises as JSON null.
func (c Cursor) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

// UnmarshalJSON stores the raw token bytes unchanged.
func (c *Cursor) UnmarshalJSON(data []byte) error {
	*c = append((*c)[0:0], data...)
	return nil
}

// IsZero reports whether the cursor carries no token at all (a fresh sync
// progress record, or a stored JSON null).
func (c Cursor) IsZero() bool {
	return len(c) == 0 || string(c) == "null"
}

// HasMore peeks into the token for a boolean hasMore field. A missing field,
// an empty cursor or an undecodable token all report false.
func (c Cursor) HasMore() bool {
	if c.IsZero() {
		return false
	}

	var peek struct {
		HasMore bool `json:"hasMore"`
	}
	if err := json.Unmarshal(c, &peek); err != nil {
		return false
	}

	return peek.HasMore
}

// SyncProgress is the named resumable position of one synchronization view.
// Several independent views may page over the same reference data, each
// under its own ID.
type SyncProgress struct {
	// ID is the caller-chosen sync identity.
	ID string `json:"id"`

	// Sequence follows the same optimistic-concurrency discipline as
	// [CredentialReference.Sequence]: starts at 0, +1 per accepted update.
	Sequence int64 `json:"sequence"`

	// Cursor is the stored paging token. Only ever replaced after a fully
	// successful pass.
	Cursor Cursor `json:"cursor,omitempty"`
}

// TableName returns the name of the database table
// associated with the SyncProgress model.
func (s SyncProgress) TableName() string {
	return "sync_progress"
}
