package keyring

//go:generate mockgen -source=interfaces.go -destination=../mock/keyring_mock.go -package=mock

// Keyring performs named-key cryptography over an immutable registry of
// secrets loaded at startup. Every operation derives a purpose-bound subkey
// from the named master secret, so sealing and signing never share key
// material even when they share a key id.
//
// Derivation scheme:
//
//	subkey = HKDF-SHA256(master, purpose)            (32 bytes)
//	sealed = base64(nonce ‖ AES-256-GCM ciphertext)
//	sig    = base64(HMAC-SHA256(subkey, message))
type Keyring interface {
	// Seal encrypts plaintext under the named key and returns a base64 blob
	// (nonce ‖ ciphertext) safe to persist or transmit.
	Seal(keyID string, plaintext []byte) (string, error)

	// Open reverses [Keyring.Seal]. Returns an error if the key id is
	// unknown, the blob is malformed, or the authentication tag does not
	// match.
	Open(keyID string, sealedB64 string) ([]byte, error)

	// Sign computes a detached base64 HMAC-SHA256 signature over message.
	Sign(keyID string, message []byte) (string, error)

	// Verify checks a signature produced by [Keyring.Sign]. Returns
	// [ErrBadSignature] when the signature does not match the message.
	Verify(keyID string, message []byte, signatureB64 string) error
}
