// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package zcap provides the capability-invoking HTTP client used to talk to
// the remote status service.
//
// The primary abstraction is [Invoker]: a transport for authorization
// capabilities ([models.Capability]) that resolves each capability's
// invocation target, signs the invocation with a registry key, and maps
// remote HTTP status codes to the sentinel values defined in errors.go so
// that callers can use [errors.Is] for transport-agnostic error handling
// (e.g. [ErrNotFound] for 404, [ErrConflict] for 409).
package zcap

import (
	"context"

	"github.com/MKhiriev/go-cred-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/zcap_invoker_mock.go -package=mock

// Invoker performs HTTP operations authorized by capabilities.
type Invoker interface {
	// Read fetches the JSON document at url under the given capability.
	// An empty url falls back to the capability's own invocation target.
	// Returns the decoded document, or nil for an empty response body.
	Read(ctx context.Context, url string, capability models.Capability) (map[string]any, error)

	// Write posts payload to the capability's invocation target. Returns
	// the decoded response document, or nil for an empty response body.
	Write(ctx context.Context, capability models.Capability, payload any) (map[string]any, error)
}
