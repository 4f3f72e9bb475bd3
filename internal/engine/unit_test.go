// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-cred-keeper/internal/status"
	"github.com/MKhiriev/go-cred-keeper/internal/store"
	"github.com/MKhiriev/go-cred-keeper/internal/zcap"
	"github.com/MKhiriev/go-cred-keeper/models"
)

// applyUpdate is exercised directly here: retry and admission behaviour are
// the pool's concern, so each expectation fires exactly once.

// ── index allocator reconciliation ───────────────────────────────────────────

func TestApplyUpdate_KeepsStickyAllocator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(testCredential("urn:cred:1"), nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1", IndexAllocator: "urn:allocator:lists-east"}, models.RecordMeta{}, nil)

	var payload map[string]any
	invoker.EXPECT().Write(gomock.Any(), update.UpdateStatusCapability, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Capability, body any) (map[string]any, error) {
			payload = body.(map[string]any)
			return nil, nil
		})

	require.NoError(t, e.applyUpdate(testContext(), update, Options{}))
	// the update named no allocator, the recorded one rides along anyway
	assert.Equal(t, "urn:allocator:lists-east", payload["indexAllocator"])
}

func TestApplyUpdate_AllocatorConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")
	update.IndexAllocator = "urn:allocator:lists-west"

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(testCredential("urn:cred:1"), nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1", IndexAllocator: "urn:allocator:lists-east"}, models.RecordMeta{}, nil)

	// no write may go out for a conflicted unit
	err := e.applyUpdate(testContext(), update, Options{})
	require.ErrorIs(t, err, ErrAllocatorConflict)
	assert.Contains(t, err.Error(), "urn:cred:1")
}

func TestApplyUpdate_AcceptsMatchingAllocator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")
	update.IndexAllocator = "urn:allocator:lists-east"

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(testCredential("urn:cred:1"), nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1", IndexAllocator: "urn:allocator:lists-east"}, models.RecordMeta{}, nil)
	invoker.EXPECT().Write(gomock.Any(), update.UpdateStatusCapability, gomock.Any()).Return(nil, nil)

	require.NoError(t, e.applyUpdate(testContext(), update, Options{}))
}

func TestReconcileAllocator(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		requested string
		want      string
		wantErr   bool
	}{
		{name: "nothing stored takes requested", requested: "urn:allocator:a", want: "urn:allocator:a"},
		{name: "nothing stored nothing requested", want: ""},
		{name: "stored wins when update omits it", stored: "urn:allocator:a", want: "urn:allocator:a"},
		{name: "equal values accepted", stored: "urn:allocator:a", requested: "urn:allocator:a", want: "urn:allocator:a"},
		{name: "different values conflict", stored: "urn:allocator:a", requested: "urn:allocator:b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reconcileAllocator(models.CredentialReference{IndexAllocator: tt.stored}, tt.requested)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrAllocatorConflict)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── missing remote credential ────────────────────────────────────────────────

func TestApplyUpdate_MissingCredentialFailsByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(nil, zcap.ErrNotFound)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1"}, models.RecordMeta{}, nil)

	err := e.applyUpdate(testContext(), update, Options{})
	require.ErrorIs(t, err, zcap.ErrNotFound)
}

func TestApplyUpdate_IgnoresMissingCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")
	update.ReferenceUpdate = map[string]any{"lastCheckedAt": "2026-08-23T10:00:00Z"}

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(nil, zcap.ErrNotFound)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1", Sequence: 3}, models.RecordMeta{}, nil)
	// the remote write is skipped, the local merge still happens
	references.EXPECT().UpdateReference(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ref models.CredentialReference) error {
		assert.Equal(t, int64(4), ref.Sequence)
		assert.Equal(t, "2026-08-23T10:00:00Z", ref.Extra["lastCheckedAt"])
		return nil
	})

	require.NoError(t, e.applyUpdate(testContext(), update, Options{IgnoreCredentialNotFound: true}))
}

func TestApplyUpdate_IgnoredCredentialWithoutReferenceUpdateIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(nil, zcap.ErrNotFound)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1"}, models.RecordMeta{}, nil)

	require.NoError(t, e.applyUpdate(testContext(), update, Options{IgnoreCredentialNotFound: true}))
}

// ── reference resolution ─────────────────────────────────────────────────────

func TestApplyUpdate_UnknownReferenceFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")

	// the credential fetch runs concurrently and still completes
	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(testCredential("urn:cred:1"), nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{}, models.RecordMeta{}, store.ErrReferenceNotFound)

	err := e.applyUpdate(testContext(), update, Options{})
	require.ErrorIs(t, err, store.ErrReferenceNotFound)
	assert.Contains(t, err.Error(), "urn:cred:1")
}

// ── status entry matching ────────────────────────────────────────────────────

func TestApplyUpdate_NoMatchingStatusEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")
	update.Status.CredentialStatus = map[string]any{
		"type":          "BitstringStatusListEntry",
		"statusPurpose": "suspension",
	}

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(testCredential("urn:cred:1"), nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1"}, models.RecordMeta{}, nil)

	err := e.applyUpdate(testContext(), update, Options{})
	require.ErrorIs(t, err, status.ErrNoMatchingStatus)
}

func TestApplyUpdate_AmbiguousStatusEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")
	credential := map[string]any{
		"id": "urn:cred:1",
		"credentialStatus": []any{
			map[string]any{"type": "BitstringStatusListEntry", "statusPurpose": "revocation", "statusListIndex": "1"},
			map[string]any{"type": "BitstringStatusListEntry", "statusPurpose": "revocation", "statusListIndex": "2"},
		},
	}

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(credential, nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1"}, models.RecordMeta{}, nil)

	err := e.applyUpdate(testContext(), update, Options{})
	require.ErrorIs(t, err, status.ErrAmbiguousStatus)
}

func TestApplyUpdate_ExpandsTerseEntryForMatching(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	terseEntry := map[string]any{
		"type":                   status.TerseStatusType,
		"terseStatusListBaseUrl": "https://status.example/status-lists",
		"terseStatusListIndex":   int64(67108865),
	}
	credential := map[string]any{
		"id":               "urn:cred:1",
		"credentialStatus": terseEntry,
	}

	update := testUpdate("urn:cred:1")
	// list 1, position 1 once the packed index is split against the default
	// list length
	update.Status.CredentialStatus = map[string]any{
		"statusPurpose":   "revocation",
		"statusListIndex": "1",
	}
	update.Expand = &models.ExpandDirective{Type: status.TerseStatusType}

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(credential, nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1"}, models.RecordMeta{}, nil)

	var payload map[string]any
	invoker.EXPECT().Write(gomock.Any(), update.UpdateStatusCapability, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Capability, body any) (map[string]any, error) {
			payload = body.(map[string]any)
			return nil, nil
		})

	require.NoError(t, e.applyUpdate(testContext(), update, Options{}))
	// matching ran against the expanded form, the write carries the raw entry
	assert.Equal(t, terseEntry, payload["credentialStatus"])
}

// ── write ordering ───────────────────────────────────────────────────────────

func TestApplyUpdate_FailedRemoteWriteSkipsLocalUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")
	update.ReferenceUpdate = map[string]any{"note": "should not land"}

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(testCredential("urn:cred:1"), nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1"}, models.RecordMeta{}, nil)
	invoker.EXPECT().Write(gomock.Any(), update.UpdateStatusCapability, gomock.Any()).Return(nil, zcap.ErrForbidden)

	err := e.applyUpdate(testContext(), update, Options{})
	require.ErrorIs(t, err, zcap.ErrForbidden)
}

func TestApplyUpdate_LocalUpdateFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, references, _, invoker := newTestEngine(t, ctrl)

	update := testUpdate("urn:cred:1")
	update.ReferenceUpdate = map[string]any{"note": "raced"}

	invoker.EXPECT().Read(gomock.Any(), "", update.GetCredentialCapability).Return(testCredential("urn:cred:1"), nil)
	references.EXPECT().GetReference(gomock.Any(), "urn:cred:1").
		Return(models.CredentialReference{CredentialID: "urn:cred:1"}, models.RecordMeta{}, nil)
	invoker.EXPECT().Write(gomock.Any(), update.UpdateStatusCapability, gomock.Any()).Return(nil, nil)
	references.EXPECT().UpdateReference(gomock.Any(), gomock.Any()).Return(store.ErrSequenceConflict)

	err := e.applyUpdate(testContext(), update, Options{})
	require.ErrorIs(t, err, store.ErrSequenceConflict)
	assert.Contains(t, err.Error(), "update local reference")
}

// ── payload shape ────────────────────────────────────────────────────────────

func TestStatusWritePayload(t *testing.T) {
	entry := map[string]any{"type": "BitstringStatusListEntry", "statusPurpose": "revocation"}

	withAllocator := statusWritePayload("urn:cred:1", entry, "urn:allocator:a", true)
	assert.Equal(t, map[string]any{
		"credentialId":     "urn:cred:1",
		"credentialStatus": entry,
		"status":           true,
		"indexAllocator":   "urn:allocator:a",
	}, withAllocator)

	withoutAllocator := statusWritePayload("urn:cred:1", entry, "", false)
	assert.Equal(t, map[string]any{
		"credentialId":     "urn:cred:1",
		"credentialStatus": entry,
		"status":           false,
	}, withoutAllocator)
}
