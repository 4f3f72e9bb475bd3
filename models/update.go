package models

// StatusUpdate is one caller-supplied change descriptor: which credential to
// touch, which of its status entries to target, and the boolean status value
// to write.
//
// The target credential is named either directly via CredentialID or via an
// already resolved Reference (an optimization that spares the engine a store
// read). Exactly one of the two must be set.
type StatusUpdate struct {
	// CredentialID names the target credential directly.
	CredentialID string `json:"credentialId,omitempty"`

	// Reference is an already resolved local reference for the target
	// credential. Its CredentialID must be present.
	Reference *CredentialReference `json:"reference,omitempty"`

	// Status describes the status entry to locate and the value to set.
	Status StatusTarget `json:"status"`

	// IndexAllocator optionally names the allocator for the remote status
	// write. Must match a sticky allocator already recorded on the local
	// reference, if any.
	IndexAllocator string `json:"indexAllocator,omitempty"`

	// Expand optionally describes how to expand compact status entries
	// before matching.
	Expand *ExpandDirective `json:"expand,omitempty"`

	// ReferenceUpdate carries fields to shallow merge into the local
	// reference after the remote write. Nil means a remote-only change.
	ReferenceUpdate map[string]any `json:"referenceUpdate,omitempty"`

	// GetCredentialCapability authorizes fetching the credential document.
	GetCredentialCapability Capability `json:"getCredentialCapability"`

	// UpdateStatusCapability authorizes the remote status write.
	UpdateStatusCapability Capability `json:"updateStatusCapability"`
}

// TargetCredentialID resolves the credential identifier of the descriptor,
// whichever of the two target forms carries it.
func (u StatusUpdate) TargetCredentialID() string {
	if u.CredentialID != "" {
		return u.CredentialID
	}
	if u.Reference != nil {
		return u.Reference.CredentialID
	}
	return ""
}

// StatusTarget selects one status entry of a credential and the value to set
// on it.
type StatusTarget struct {
	// CredentialStatus lists the keys a candidate status entry must carry
	// with equal values to match. Minimally type and statusPurpose.
	CredentialStatus map[string]any `json:"credentialStatus"`

	// Value is the boolean status value to write. A pointer so that an
	// absent value is distinguishable from an explicit false.
	Value *bool `json:"value"`
}

// ExpandDirective describes the transformation of compact status entries
// into their full form prior to matching.
type ExpandDirective struct {
	// Type is the compact entry type the directive applies to.
	Type string `json:"type"`

	// Required controls how candidates of a different type are treated:
	// nil or true skips them, explicit false matches them unexpanded.
	Required *bool `json:"required,omitempty"`

	// Options optionally overrides expansion parameters.
	Options *ExpandOptions `json:"options,omitempty"`
}

// IsRequired reports the effective value of Required (default true).
func (d ExpandDirective) IsRequired() bool {
	return d.Required == nil || *d.Required
}

// ExpandOptions carries overrides for status entry expansion.
type ExpandOptions struct {
	// StatusPurpose overrides the default purpose ("revocation").
	StatusPurpose string `json:"statusPurpose,omitempty"`

	// ListLength overrides the default status list length (67108864).
	ListLength int64 `json:"listLength,omitempty"`
}
