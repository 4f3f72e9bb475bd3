package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapability_InvocationTarget_RootToken(t *testing.T) {
	capability := NewRootCapability("https://status.example/statuses/abc")

	target, err := capability.InvocationTarget()
	require.NoError(t, err)
	assert.Equal(t, "https://status.example/statuses/abc", target)
}

func TestCapability_InvocationTarget_EncodedToken(t *testing.T) {
	capability := Capability{
		Token: "urn:zcap:root:https%3A%2F%2Fstatus.example%2Fstatuses%2Fabc",
	}

	target, err := capability.InvocationTarget()
	require.NoError(t, err)
	assert.Equal(t, "https://status.example/statuses/abc", target)
}

func TestCapability_InvocationTarget_Object(t *testing.T) {
	capability := Capability{Object: map[string]any{
		"id":               "urn:uuid:5cf75bb5-4a48-45e7-8730-39b1d8e9c8b2",
		"invocationTarget": "https://status.example/credentials/status",
	}}

	target, err := capability.InvocationTarget()
	require.NoError(t, err)
	assert.Equal(t, "https://status.example/credentials/status", target)
}

func TestCapability_InvocationTarget_Errors(t *testing.T) {
	tests := []struct {
		name       string
		capability Capability
		wantErr    error
	}{
		{
			name:       "empty capability",
			capability: Capability{},
			wantErr:    ErrEmptyCapability,
		},
		{
			name:       "token without root prefix",
			capability: Capability{Token: "urn:other:abc"},
			wantErr:    ErrNoInvocationTarget,
		},
		{
			name:       "object without invocationTarget",
			capability: Capability{Object: map[string]any{"id": "urn:uuid:1"}},
			wantErr:    ErrNoInvocationTarget,
		},
		{
			name:       "prefix with empty target",
			capability: Capability{Token: RootCapabilityPrefix},
			wantErr:    ErrNoInvocationTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.capability.InvocationTarget()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCapability_UnmarshalJSON_String(t *testing.T) {
	var capability Capability
	require.NoError(t, json.Unmarshal([]byte(`"urn:zcap:root:https%3A%2F%2Fs.example"`), &capability))

	assert.Equal(t, "urn:zcap:root:https%3A%2F%2Fs.example", capability.Token)
	assert.Nil(t, capability.Object)
}

func TestCapability_UnmarshalJSON_Object(t *testing.T) {
	var capability Capability
	require.NoError(t, json.Unmarshal([]byte(`{"invocationTarget":"https://s.example"}`), &capability))

	assert.Empty(t, capability.Token)
	assert.Equal(t, "https://s.example", capability.Object["invocationTarget"])
}

func TestCapability_MarshalJSON_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		capability Capability
	}{
		{name: "token form", capability: NewRootCapability("https://s.example/a")},
		{name: "object form", capability: Capability{Object: map[string]any{"invocationTarget": "https://s.example/b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.capability)
			require.NoError(t, err)

			var decoded Capability
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.capability, decoded)
		})
	}
}

func TestNewRootCapability_RoundTripsTarget(t *testing.T) {
	capability := NewRootCapability("https://status.example/statuses/группа/1")

	target, err := capability.InvocationTarget()
	require.NoError(t, err)
	assert.Equal(t, "https://status.example/statuses/группа/1", target)
}
