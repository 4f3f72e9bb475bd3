package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// CredentialReference is the local record tracking one externally issued
// credential: its identifier, its optimistic-concurrency sequence and any
// auxiliary fields the caller attached to it.
//
// The record does not hold the credential document itself. The remote status
// service is the authority for credential content; this record only anchors
// the identifier locally so that status changes can be reconciled against it.
type CredentialReference struct {
	// CredentialID is the caller-defined identifier of the credential.
	// Globally unique and immutable after the record is created.
	CredentialID string

	// Sequence starts at 0 when the record is inserted and grows by exactly
	// one on every accepted update. Updates carrying any other value are
	// rejected with a sequence conflict.
	Sequence int64

	// IndexAllocator is an optional opaque allocator identifier. Once set it
	// is sticky: later updates must either omit it or carry the same value.
	IndexAllocator string

	// Extra carries all caller-defined fields of the reference that the
	// engine does not interpret. On update they are shallow merged: an
	// incoming key overwrites the stored key wholesale, nested values are
	// never merged recursively.
	Extra map[string]any
}

// referenceKeyCredentialID and friends are the JSON keys the reference
// record reserves for itself. Everything else round-trips through Extra.
const (
	referenceKeyCredentialID   = "credentialId"
	referenceKeySequence       = "sequence"
	referenceKeyIndexAllocator = "indexAllocator"
)

// MarshalJSON flattens the reference into a single JSON object: reserved
// keys first-class, Extra keys alongside them.
func (r CredentialReference) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Extra)+3)
	for k, v := range r.Extra {
		flat[k] = v
	}

	flat[referenceKeyCredentialID] = r.CredentialID
	flat[referenceKeySequence] = r.Sequence
	if r.IndexAllocator != "" {
		flat[referenceKeyIndexAllocator] = r.IndexAllocator
	}

	return json.Marshal(flat)
}

// UnmarshalJSON splits a flat JSON object back into reserved fields and Extra.
func (r *CredentialReference) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("error decoding credential reference: %w", err)
	}

	out := CredentialReference{}

	if v, ok := flat[referenceKeyCredentialID]; ok {
		id, ok := v.(string)
		if !ok {
			return fmt.Errorf("credential reference field %q must be a string", referenceKeyCredentialID)
		}
		out.CredentialID = id
		delete(flat, referenceKeyCredentialID)
	}

	if v, ok := flat[referenceKeySequence]; ok {
		seq, ok := v.(float64)
		if !ok {
			return fmt.Errorf("credential reference field %q must be a number", referenceKeySequence)
		}
		out.Sequence = int64(seq)
		delete(flat, referenceKeySequence)
	}

	if v, ok := flat[referenceKeyIndexAllocator]; ok {
		allocator, ok := v.(string)
		if !ok {
			return fmt.Errorf("credential reference field %q must be a string", referenceKeyIndexAllocator)
		}
		out.IndexAllocator = allocator
		delete(flat, referenceKeyIndexAllocator)
	}

	if len(flat) > 0 {
		out.Extra = flat
	}

	*r = out
	return nil
}

// Merge returns a copy of the reference with the given fields shallow merged
// over it. The credential identifier is kept as is, the sequence is advanced
// by one, and an incoming index allocator replaces an empty stored one.
// Reserved keys inside fields are recognised; everything else lands in Extra,
// overwriting stored keys wholesale.
//
// Merge never mutates the receiver.
func (r CredentialReference) Merge(fields map[string]any) CredentialReference {
	merged := CredentialReference{
		CredentialID:   r.CredentialID,
		Sequence:       r.Sequence + 1,
		IndexAllocator: r.IndexAllocator,
		Extra:          make(map[string]any, len(r.Extra)+len(fields)),
	}
	for k, v := range r.Extra {
		merged.Extra[k] = v
	}

	for k, v := range fields {
		switch k {
		case referenceKeyCredentialID, referenceKeySequence:
			// immutable / engine-owned, never taken from an update
		case referenceKeyIndexAllocator:
			if allocator, ok := v.(string); ok {
				merged.IndexAllocator = allocator
			}
		default:
			merged.Extra[k] = v
		}
	}

	if len(merged.Extra) == 0 {
		merged.Extra = nil
	}

	return merged
}

// TableName returns the name of the database table
// associated with the CredentialReference model.
func (r CredentialReference) TableName() string {
	return "credential_references"
}

// ReferenceFilter narrows a reference listing. Zero-valued fields are
// ignored, so an empty filter selects everything.
type ReferenceFilter struct {
	CredentialIDs []string  `json:"credentialIds,omitempty"`
	UpdatedAfter  time.Time `json:"updatedAfter,omitempty"`
	Limit         uint64    `json:"limit,omitempty"`
}
