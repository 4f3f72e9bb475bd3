package models

// SyncRunRequest is the request body for running one synchronization pass
// over a caller-pushed page of status updates.
//
// The pushed Cursor is the position after this page and must carry the
// hasMore flag; it becomes the stored cursor only if the whole page applies
// successfully.
type SyncRunRequest struct {
	Updates []StatusUpdate `json:"updates"`
	Cursor  Cursor         `json:"cursor,omitempty"`

	// Concurrency bounds in-flight change applications for this pass.
	// Zero means the engine default.
	Concurrency int `json:"concurrency,omitempty"`

	// IgnoreCredentialNotFound suppresses missing-credential failures for
	// this pass.
	IgnoreCredentialNotFound bool `json:"ignoreCredentialNotFound,omitempty"`
}

// SyncRunResponse reports the outcome of one synchronization pass.
type SyncRunResponse struct {
	UpdateCount int  `json:"updateCount"`
	HasMore     bool `json:"hasMore"`
}

// ExpandStatusRequest is the request body for the standalone status entry
// expansion endpoint.
type ExpandStatusRequest struct {
	CredentialStatus map[string]any `json:"credentialStatus"`
	StatusPurpose    string         `json:"statusPurpose,omitempty"`
	ListLength       int64          `json:"listLength,omitempty"`
}

// ReferenceResponse carries a credential reference together with its
// storage metadata.
type ReferenceResponse struct {
	Reference CredentialReference `json:"reference"`
	Meta      RecordMeta          `json:"meta"`
}

// ReferenceListResponse carries the result of a reference listing.
type ReferenceListResponse struct {
	References []CredentialReference `json:"references"`
	Length     int                   `json:"length"`
}
