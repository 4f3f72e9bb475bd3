// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package engine implements the status synchronization engine: the component
// that pages through caller-supplied change batches, validates every
// descriptor, applies remote status updates through capability-authorized
// calls, updates local reference records under optimistic concurrency, and
// persists resumable progress.
//
// A pass is all-or-nothing with respect to its cursor: the stored cursor only
// ever reflects a page whose every change applied successfully. A failed or
// cancelled pass leaves the cursor untouched, so the next call re-attempts
// the same page (at-least-once semantics per change; remote status writes
// and local reference replacements are idempotent downstream).
package engine

import (
	"context"

	"github.com/MKhiriev/go-cred-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

// PageSource supplies pages of status updates from the external change feed.
// The engine treats the cursor as opaque and round-trips it byte for byte
// between the progress store and the source.
type PageSource interface {
	// NextPage returns up to limit updates positioned after cursor, together
	// with the cursor for the following page. The engine calls NextPage
	// exactly once per pass.
	NextPage(ctx context.Context, cursor models.Cursor, limit int) ([]models.StatusUpdate, models.Cursor, error)
}

// PageFunc adapts a plain function to the [PageSource] interface.
type PageFunc func(ctx context.Context, cursor models.Cursor, limit int) ([]models.StatusUpdate, models.Cursor, error)

// NextPage implements [PageSource].
func (f PageFunc) NextPage(ctx context.Context, cursor models.Cursor, limit int) ([]models.StatusUpdate, models.Cursor, error) {
	return f(ctx, cursor, limit)
}

// StaticPage builds a [PageSource] serving one pre-assembled page regardless
// of the incoming cursor. It backs the HTTP API, where the caller pushes the
// page in the request body instead of having the engine pull it.
func StaticPage(updates []models.StatusUpdate, cursor models.Cursor) PageSource {
	return PageFunc(func(ctx context.Context, _ models.Cursor, _ int) ([]models.StatusUpdate, models.Cursor, error) {
		return updates, cursor, nil
	})
}

// Synchronizer is the engine surface consumed by the service layer.
// [*Engine] is the production implementation.
type Synchronizer interface {
	// Synchronize runs one synchronization pass for the named sync identity.
	Synchronize(ctx context.Context, syncID string, source PageSource, opts Options) (Result, error)
}
