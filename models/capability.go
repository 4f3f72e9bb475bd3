package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// RootCapabilityPrefix marks an opaque root capability token. The bytes after
// the prefix are the URL-encoded invocation target of the authorized
// operation.
const RootCapabilityPrefix = "urn:zcap:root:"

var (
	// ErrEmptyCapability is returned when a capability carries neither a
	// token string nor a delegation object.
	ErrEmptyCapability = errors.New("capability is empty")

	// ErrNoInvocationTarget is returned when a capability's invocation
	// target cannot be determined: a delegation object without an
	// invocationTarget field, or a token string without the root prefix.
	ErrNoInvocationTarget = errors.New("capability carries no invocation target")
)

// Capability authorizes exactly one HTTP operation against one target
// resource. On the wire it is either an opaque token string (a root
// capability, target recoverable from the token itself) or a JSON delegation
// object carrying an explicit invocationTarget.
type Capability struct {
	// Token is the opaque string form. Mutually exclusive with Object.
	Token string

	// Object is the delegation-object form. Mutually exclusive with Token.
	Object map[string]any
}

// NewRootCapability builds the opaque token form of a root capability for
// the given invocation target.
func NewRootCapability(invocationTarget string) Capability {
	return Capability{Token: RootCapabilityPrefix + url.PathEscape(invocationTarget)}
}

// IsZero reports whether the capability carries no value in either form.
func (c Capability) IsZero() bool {
	return c.Token == "" && len(c.Object) == 0
}

// InvocationTarget resolves the URL the capability authorizes an operation
// against.
//
// For the object form the invocationTarget field is returned as is. For the
// token form the target is recovered by stripping [RootCapabilityPrefix] and
// URL-decoding the remainder. Any other shape yields ErrNoInvocationTarget.
func (c Capability) InvocationTarget() (string, error) {
	if len(c.Object) > 0 {
		target, ok := c.Object["invocationTarget"].(string)
		if !ok || target == "" {
			return "", ErrNoInvocationTarget
		}
		return target, nil
	}

	if c.Token == "" {
		return "", ErrEmptyCapability
	}
	if !strings.HasPrefix(c.Token, RootCapabilityPrefix) {
		return "", ErrNoInvocationTarget
	}

	target, err := url.PathUnescape(strings.TrimPrefix(c.Token, RootCapabilityPrefix))
	if err != nil {
		return "", fmt.Errorf("error decoding capability invocation target: %w", err)
	}
	if target == "" {
		return "", ErrNoInvocationTarget
	}

	return target, nil
}

// MarshalJSON writes the token form as a JSON string and the object form as
// a JSON object. An empty capability serialises as null.
func (c Capability) MarshalJSON() ([]byte, error) {
	if c.Token != "" {
		return json.Marshal(c.Token)
	}
	if len(c.Object) > 0 {
		return json.Marshal(c.Object)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts either wire form.
func (c *Capability) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*c = Capability{}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var token string
		if err := json.Unmarshal(data, &token); err != nil {
			return fmt.Errorf("error decoding capability token: %w", err)
		}
		*c = Capability{Token: token}
		return nil
	}

	var object map[string]any
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("error decoding capability object: %w", err)
	}
	*c = Capability{Object: object}
	return nil
}
