// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package zcap

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-cred-keeper/internal/config"
	"github.com/MKhiriev/go-cred-keeper/internal/keyring"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/mock"
	"github.com/MKhiriev/go-cred-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSignKeyID = "hmac-main"

func newTestKeys(t *testing.T) keyring.Keyring {
	t.Helper()

	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	keys, err := keyring.NewRegistry(map[string]string{testSignKeyID: secret})
	require.NoError(t, err)

	return keys
}

func newTestInvoker(t *testing.T, keys keyring.Keyring) Invoker {
	t.Helper()

	cfg := config.Security{InvocationSignKeyID: testSignKeyID}
	if keys == nil {
		cfg.InvocationSignKeyID = ""
	}

	inv, err := NewInvoker(cfg, 0, keys, logger.Nop())
	require.NoError(t, err)

	return inv
}

// ── Read ────────────────────────────────────────────────────────────────────

func TestRead_TargetFromRootCapability(t *testing.T) {
	keys := newTestKeys(t)

	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/credentials/cred-1", r.URL.Path)
		gotHeader = r.Header.Get(CapabilityInvocationHeader)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"urn:uuid:cred-1","credentialStatus":{"type":"BitstringStatusListEntry"}}`))
	}))
	defer srv.Close()

	target := srv.URL + "/credentials/cred-1"
	capability := models.NewRootCapability(target)

	inv := newTestInvoker(t, keys)
	got, err := inv.Read(context.Background(), "", capability)

	require.NoError(t, err)
	assert.Equal(t, "urn:uuid:cred-1", got["id"])

	// The header names the key and action and carries a verifiable
	// signature over "<action> <target>".
	assert.Contains(t, gotHeader, `keyId="hmac-main"`)
	assert.Contains(t, gotHeader, `action="read"`)
	wantSignature, err := keys.Sign(testSignKeyID, []byte("read "+target))
	require.NoError(t, err)
	assert.Contains(t, gotHeader, wantSignature)
}

func TestRead_ExplicitURLOverridesCapability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/explicit", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	capability := models.NewRootCapability(srv.URL + "/from-capability")

	inv := newTestInvoker(t, newTestKeys(t))
	got, err := inv.Read(context.Background(), srv.URL+"/explicit", capability)

	require.NoError(t, err)
	assert.Equal(t, true, got["ok"])
}

func TestRead_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	inv := newTestInvoker(t, newTestKeys(t))
	got, err := inv.Read(context.Background(), "", models.NewRootCapability(srv.URL+"/credentials/cred-1"))

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRead_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "internal server error", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("remote says no"))
			}))
			defer srv.Close()

			inv := newTestInvoker(t, newTestKeys(t))
			_, err := inv.Read(context.Background(), "", models.NewRootCapability(srv.URL+"/credentials/cred-1"))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRead_UnmappedStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	inv := newTestInvoker(t, newTestKeys(t))
	_, err := inv.Read(context.Background(), "", models.NewRootCapability(srv.URL+"/x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

// ── Write ───────────────────────────────────────────────────────────────────

func TestWrite_PostsPayloadToCapabilityTarget(t *testing.T) {
	keys := newTestKeys(t)

	var gotBody map[string]any
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/statuses/credentials/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotHeader = r.Header.Get(CapabilityInvocationHeader)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	target := srv.URL + "/statuses/credentials/status"
	capability := models.NewRootCapability(target)

	inv := newTestInvoker(t, keys)
	_, err := inv.Write(context.Background(), capability, map[string]any{
		"credentialId": "urn:uuid:cred-1",
		"status":       false,
	})

	require.NoError(t, err)
	assert.Equal(t, "urn:uuid:cred-1", gotBody["credentialId"])
	assert.Equal(t, false, gotBody["status"])

	assert.Contains(t, gotHeader, `action="write"`)
	assert.Contains(t, gotHeader, `capability="`+capability.Token+`"`)
	wantSignature, err := keys.Sign(testSignKeyID, []byte("write "+target))
	require.NoError(t, err)
	assert.Contains(t, gotHeader, wantSignature)
}

func TestWrite_ObjectCapability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statuses/object-target", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"accepted":true}`))
	}))
	defer srv.Close()

	capability := models.Capability{Object: map[string]any{
		"id":               "urn:zcap:delegated:abc",
		"invocationTarget": srv.URL + "/statuses/object-target",
	}}

	inv := newTestInvoker(t, newTestKeys(t))
	got, err := inv.Write(context.Background(), capability, map[string]any{"status": true})

	require.NoError(t, err)
	assert.Equal(t, true, got["accepted"])
}

func TestWrite_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("status already set"))
	}))
	defer srv.Close()

	inv := newTestInvoker(t, newTestKeys(t))
	_, err := inv.Write(context.Background(), models.NewRootCapability(srv.URL+"/statuses"), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

// ── Target resolution and signing edge cases ────────────────────────────────

func TestRead_CapabilityWithoutTarget(t *testing.T) {
	inv := newTestInvoker(t, newTestKeys(t))

	_, err := inv.Read(context.Background(), "", models.Capability{Token: "opaque-but-not-root"})
	require.ErrorIs(t, err, models.ErrNoInvocationTarget)

	_, err = inv.Read(context.Background(), "", models.Capability{})
	require.ErrorIs(t, err, models.ErrEmptyCapability)
}

func TestRead_RelativeTargetRejected(t *testing.T) {
	inv := newTestInvoker(t, newTestKeys(t))

	_, err := inv.Read(context.Background(), "", models.NewRootCapability("/relative/only"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must include host and scheme")
}

func TestInvoker_SigningFailureAbortsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mock.NewMockKeyring(ctrl)
	keys.EXPECT().Sign(testSignKeyID, gomock.Any()).
		Return("", errors.New("unknown key id")).Times(2)

	inv := newTestInvoker(t, keys)

	// Targets are never dialed: a connection attempt would surface as a
	// "read request"/"write request" error instead.
	_, err := inv.Read(context.Background(), "", models.NewRootCapability("http://remote.invalid/credentials/cred-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign capability invocation")

	_, err = inv.Write(context.Background(), models.NewRootCapability("http://remote.invalid/statuses"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign capability invocation")
}

func TestRead_SigningDisabledWithoutKeyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(CapabilityInvocationHeader))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	inv := newTestInvoker(t, nil) // empty sign key id, no registry

	_, err := inv.Read(context.Background(), "", models.NewRootCapability(srv.URL+"/credentials/cred-1"))
	require.NoError(t, err)
}

func TestNewInvoker_SignKeyWithoutRegistry(t *testing.T) {
	cfg := config.Security{InvocationSignKeyID: testSignKeyID}

	_, err := NewInvoker(cfg, 0, nil, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a key registry")
}
