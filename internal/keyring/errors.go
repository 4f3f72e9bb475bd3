package keyring

import "errors"

var (
	// ErrUnknownKey is returned when an operation names a key id that is not
	// present in the registry.
	ErrUnknownKey = errors.New("unknown key id")

	// ErrShortKeyMaterial is returned by [NewRegistry] when a decoded secret
	// is shorter than the 16-byte minimum.
	ErrShortKeyMaterial = errors.New("key material too short")

	// ErrBadSignature is returned by Verify when the supplied signature does
	// not match the message.
	ErrBadSignature = errors.New("signature mismatch")
)
