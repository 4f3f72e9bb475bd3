// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/status"
	"github.com/MKhiriev/go-cred-keeper/internal/zcap"
	"github.com/MKhiriev/go-cred-keeper/models"
)

// applyUpdate applies one status update end to end: resolve the remote
// credential and the local reference, reconcile the index allocator, locate
// the target status entry, invoke the remote write, then merge the optional
// reference update locally. Remote before local, so a failed remote write
// never leaves the local record ahead of the authority.
//
// Cancellation between steps short-circuits the unit and surfaces unwrapped.
func (e *Engine) applyUpdate(ctx context.Context, update models.StatusUpdate, opts Options) error {
	credentialID := update.TargetCredentialID()

	credential, found, ref, err := e.resolveTargets(ctx, update, opts)
	if err != nil {
		return e.failUnit(ctx, credentialID, "resolve", err)
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	if found {
		allocator, allocErr := reconcileAllocator(ref, update.IndexAllocator)
		if allocErr != nil {
			return e.failUnit(ctx, credentialID, "reconcile index allocator", allocErr)
		}

		entry, matchErr := status.Match(credential, update.Status.CredentialStatus, update.Expand)
		if matchErr != nil {
			return e.failUnit(ctx, credentialID, "match status entry", matchErr)
		}
		if err = ctx.Err(); err != nil {
			return err
		}

		payload := statusWritePayload(credentialID, entry, allocator, *update.Status.Value)
		if _, writeErr := e.invoker.Write(ctx, update.UpdateStatusCapability, payload); writeErr != nil {
			return e.failUnit(ctx, credentialID, "write remote status", writeErr)
		}
	}

	if update.ReferenceUpdate == nil {
		return nil
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	if updErr := e.references.UpdateReference(ctx, ref.Merge(update.ReferenceUpdate)); updErr != nil {
		return e.failUnit(ctx, credentialID, "update local reference", updErr)
	}

	return nil
}

type fetchResult struct {
	credential map[string]any
	err        error
}

// resolveTargets fetches the remote credential and resolves the local
// reference record in parallel. The get capability's own invocation target
// names the credential URL, so the read goes out with an empty explicit url.
// The local side reuses a caller-embedded reference when the update carries
// one, sparing a store read.
//
// A missing remote credential is reported as found=false instead of an error
// when the pass runs with IgnoreCredentialNotFound.
func (e *Engine) resolveTargets(ctx context.Context, update models.StatusUpdate, opts Options) (map[string]any, bool, models.CredentialReference, error) {
	fetched := make(chan fetchResult, 1)
	go func() {
		credential, err := e.invoker.Read(ctx, "", update.GetCredentialCapability)
		fetched <- fetchResult{credential: credential, err: err}
	}()

	var ref models.CredentialReference
	var refErr error
	if update.Reference != nil {
		ref = *update.Reference
	} else {
		ref, _, refErr = e.references.GetReference(ctx, update.TargetCredentialID())
	}

	remote := <-fetched

	found := true
	switch {
	case remote.err == nil:
	case isCancellation(remote.err):
		return nil, false, models.CredentialReference{}, remote.err
	case opts.IgnoreCredentialNotFound && errors.Is(remote.err, zcap.ErrNotFound):
		logger.FromContext(ctx).Debug().
			Str("func", "Engine.resolveTargets").
			Str("credential_id", update.TargetCredentialID()).
			Msg("remote credential not found, skipping status write")
		remote.credential, found = nil, false
	default:
		return nil, false, models.CredentialReference{}, fmt.Errorf("fetch credential: %w", remote.err)
	}

	if refErr != nil {
		if isCancellation(refErr) {
			return nil, false, models.CredentialReference{}, refErr
		}
		return nil, false, models.CredentialReference{}, fmt.Errorf("resolve reference: %w", refErr)
	}

	return remote.credential, found, ref, nil
}

// reconcileAllocator enforces allocator stickiness: once a reference records
// an allocator it wins, and an update naming a different one is rejected.
// With nothing recorded the update's value (possibly empty) is used and the
// remote service decides.
func reconcileAllocator(ref models.CredentialReference, requested string) (string, error) {
	if ref.IndexAllocator == "" {
		return requested, nil
	}
	if requested != "" && requested != ref.IndexAllocator {
		return "", fmt.Errorf("%w: reference has %q, update carries %q", ErrAllocatorConflict, ref.IndexAllocator, requested)
	}

	return ref.IndexAllocator, nil
}

// statusWritePayload shapes the remote write body: the credential id, the
// matched status entry exactly as it appears on the credential document, and
// the value to set. The allocator rides along only when one was resolved.
func statusWritePayload(credentialID string, entry map[string]any, allocator string, value bool) map[string]any {
	payload := map[string]any{
		"credentialId":     credentialID,
		"credentialStatus": entry,
		"status":           value,
	}
	if allocator != "" {
		payload["indexAllocator"] = allocator
	}

	return payload
}

// failUnit logs and wraps a unit failure with the credential it belongs to
// and the step that failed. Cancellation passes through unwrapped.
func (e *Engine) failUnit(ctx context.Context, credentialID, step string, err error) error {
	if isCancellation(err) {
		return err
	}

	logger.FromContext(ctx).Err(err).
		Str("func", "Engine.applyUpdate").
		Str("credential_id", credentialID).
		Str("step", step).
		Msg("status update failed")

	return fmt.Errorf("%s for credential %q: %w", step, credentialID, err)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
