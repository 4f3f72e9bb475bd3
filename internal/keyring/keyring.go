// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Purpose labels for HKDF subkey derivation. Distinct labels guarantee that
// the sealing key and the signing key differ even for the same master secret.
const (
	sealPurpose = "aes-256-gcm"
	signPurpose = "hmac-sha256"
)

// minKeyLen is the smallest master secret the registry accepts, in bytes.
const minKeyLen = 16

// registry is the private implementation of [Keyring]. The key map is built
// once in [NewRegistry] and never mutated afterwards.
type registry struct {
	keys map[string][]byte
}

// NewRegistry decodes the base64 secrets from configuration and returns an
// immutable [Keyring] over them. Returns an error if any secret is not valid
// base64 or is shorter than 16 bytes.
func NewRegistry(secrets map[string]string) (Keyring, error) {
	keys := make(map[string][]byte, len(secrets))
	for id, encoded := range secrets {
		master, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode key %q: %w", id, err)
		}
		if len(master) < minKeyLen {
			return nil, fmt.Errorf("%w: %s", ErrShortKeyMaterial, id)
		}
		keys[id] = master
	}

	return &registry{keys: keys}, nil
}

// subKey derives a 256-bit purpose-bound key from the named master secret
// via HKDF-SHA256.
func (r *registry) subKey(keyID, purpose string) ([]byte, error) {
	master, ok := r.keys[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, keyID)
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}

	return key, nil
}

// Seal implements [Keyring]. It encrypts plaintext with the named key using
// AES-256-GCM. A random 12-byte nonce is prepended to the ciphertext so that
// [registry.Open] can locate it: blob = nonce ‖ ciphertext. The blob is
// returned Base64 (standard encoding) encoded.
func (r *registry) Seal(keyID string, plaintext []byte) (string, error) {
	key, err := r.subKey(keyID, sealPurpose)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(append(nonce, ciphertext...)), nil
}

// Open implements [Keyring]. It Base64-decodes sealedB64, splits out the
// nonce, and decrypts the ciphertext with the named key via AES-256-GCM.
// Returns an error if the blob is too short, the key is wrong, or the
// ciphertext is corrupted (authentication-tag mismatch).
func (r *registry) Open(keyID string, sealedB64 string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(sealedB64)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	key, err := r.subKey(keyID, sealPurpose)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open sealed data: %w", err)
	}

	return plaintext, nil
}

// Sign implements [Keyring]. It computes HMAC-SHA256 over message with the
// named key and returns the digest Base64 encoded.
func (r *registry) Sign(keyID string, message []byte) (string, error) {
	key, err := r.subKey(keyID, signPurpose)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify implements [Keyring]. It recomputes the HMAC over message and
// compares it with signatureB64 in constant time.
func (r *registry) Verify(keyID string, message []byte, signatureB64 string) error {
	want, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	key, err := r.subKey(keyID, signPurpose)
	if err != nil {
		return err
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	if !hmac.Equal(mac.Sum(nil), want) {
		return ErrBadSignature
	}

	return nil
}
