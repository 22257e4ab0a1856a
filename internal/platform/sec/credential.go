// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the cryptographic primitives of the account subsystem.
//
// # Architecture
//
// Security-sensitive code (password derivation, session token signing,
// external ID token verification) lives here, away from the account domain.
// Services receive these as immutable values built once at startup.
package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// # Key Derivation

// Supported digests for [KDFParams.Digest].
const (
	DigestSHA512 = "sha512"
	DigestSHA256 = "sha256"
)

// KDFParams configures password derivation. The zero value is not usable;
// start from [DefaultKDFParams].
type KDFParams struct {
	Iterations int
	SaltLength int
	KeyLength  int
	Digest     string
}

// DefaultKDFParams returns the parameters every stored credential was created with.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Iterations: 1000,
		SaltLength: 16,
		KeyLength:  64,
		Digest:     DigestSHA512,
	}
}

// Credential is the persisted salt/hash pair of an account, both hex encoded.
type Credential struct {
	Salt string
	Hash string
}

// IsZero reports whether no password has ever been set.
func (credential Credential) IsZero() bool {
	return credential.Salt == "" && credential.Hash == ""
}

// CredentialStore derives and verifies password hashes.
//
// # Concurrency
//
// A CredentialStore is immutable and safe for concurrent use.
type CredentialStore struct {
	params KDFParams
	digest func() hash.Hash
}

// NewCredentialStore validates params and returns a store bound to them.
func NewCredentialStore(params KDFParams) (*CredentialStore, error) {
	if params.Iterations <= 0 || params.SaltLength <= 0 || params.KeyLength <= 0 {
		return nil, fmt.Errorf("sec: kdf sizes must be positive: %+v", params)
	}

	var digest func() hash.Hash
	switch params.Digest {
	case DigestSHA512:
		digest = sha512.New
	case DigestSHA256:
		digest = sha256.New
	default:
		return nil, fmt.Errorf("sec: unsupported kdf digest %q", params.Digest)
	}

	return &CredentialStore{params: params, digest: digest}, nil
}

/*
SetPassword replaces the credential with a freshly salted hash of plaintext.

The salt is stored as hex text and that text, not the raw bytes, feeds the KDF.
Stored credentials depend on this encoding.

Returns:
  - error: only when the system random source fails
*/
func (store *CredentialStore) SetPassword(credential *Credential, plaintext string) error {
	salt := make([]byte, store.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	saltText := hex.EncodeToString(salt)
	credential.Salt = saltText
	credential.Hash = hex.EncodeToString(store.derive(plaintext, saltText))
	return nil
}

// ValidPassword reports whether candidate matches the credential. Malformed
// credentials never match.
func (store *CredentialStore) ValidPassword(credential Credential, candidate string) bool {
	if credential.Salt == "" || credential.Hash == "" {
		return false
	}
	if _, err := hex.DecodeString(credential.Salt); err != nil {
		return false
	}

	expected, err := hex.DecodeString(credential.Hash)
	if err != nil || len(expected) != store.params.KeyLength {
		return false
	}

	return subtle.ConstantTimeCompare(expected, store.derive(candidate, credential.Salt)) == 1
}

func (store *CredentialStore) derive(plaintext, saltText string) []byte {
	return pbkdf2.Key([]byte(plaintext), []byte(saltText), store.params.Iterations, store.params.KeyLength, store.digest)
}

// # Random Secrets

// GenerateSecureToken returns n random bytes as hex text.
func GenerateSecureToken(n int) (string, error) {
	buffer := make([]byte, n)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
