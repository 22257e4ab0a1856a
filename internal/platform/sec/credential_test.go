// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelhub/internal/platform/sec"
)

func newCredentialStore(t *testing.T) *sec.CredentialStore {
	t.Helper()
	store, err := sec.NewCredentialStore(sec.DefaultKDFParams())
	require.NoError(t, err)
	return store
}

/*
TestCredentialStore_RoundTrip checks that a set password verifies and others do not.
*/
func TestCredentialStore_RoundTrip(t *testing.T) {
	store := newCredentialStore(t)

	passwords := []string{"correct horse battery", "", "日本語のパスワード", "p@ss\x00word"}
	for _, password := range passwords {
		var credential sec.Credential
		require.NoError(t, store.SetPassword(&credential, password))

		assert.True(t, store.ValidPassword(credential, password))
		assert.False(t, store.ValidPassword(credential, password+"x"))
	}
}

/*
TestCredentialStore_Encoding pins the stored format: 32 hex chars of salt and
128 hex chars of hash with the default parameters.
*/
func TestCredentialStore_Encoding(t *testing.T) {
	store := newCredentialStore(t)

	var credential sec.Credential
	require.NoError(t, store.SetPassword(&credential, "moviebuff2026"))

	assert.Len(t, credential.Salt, 32)
	assert.Len(t, credential.Hash, 128)
	_, err := hex.DecodeString(credential.Hash)
	assert.NoError(t, err)
}

/*
TestCredentialStore_DistinctSalts verifies every set draws a fresh salt.
*/
func TestCredentialStore_DistinctSalts(t *testing.T) {
	store := newCredentialStore(t)

	var first, second sec.Credential
	require.NoError(t, store.SetPassword(&first, "same-password"))
	require.NoError(t, store.SetPassword(&second, "same-password"))

	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.Hash, second.Hash)
}

/*
TestCredentialStore_Malformed ensures broken credentials never match.
*/
func TestCredentialStore_Malformed(t *testing.T) {
	store := newCredentialStore(t)

	var valid sec.Credential
	require.NoError(t, store.SetPassword(&valid, "password123"))

	tests := []struct {
		name       string
		credential sec.Credential
	}{
		{"empty", sec.Credential{}},
		{"empty_hash", sec.Credential{Salt: valid.Salt}},
		{"non_hex_hash", sec.Credential{Salt: valid.Salt, Hash: "zz" + valid.Hash[2:]}},
		{"non_hex_salt", sec.Credential{Salt: "not-hex!", Hash: valid.Hash}},
		{"short_hash", sec.Credential{Salt: valid.Salt, Hash: valid.Hash[:64]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, store.ValidPassword(tt.credential, "password123"))
		})
	}
}

/*
TestNewCredentialStore_Params rejects unusable parameters.
*/
func TestNewCredentialStore_Params(t *testing.T) {
	sha256Params := sec.DefaultKDFParams()
	sha256Params.Digest = sec.DigestSHA256
	_, err := sec.NewCredentialStore(sha256Params)
	assert.NoError(t, err)

	badDigest := sec.DefaultKDFParams()
	badDigest.Digest = "md5"
	_, err = sec.NewCredentialStore(badDigest)
	assert.Error(t, err)

	zeroIterations := sec.DefaultKDFParams()
	zeroIterations.Iterations = 0
	_, err = sec.NewCredentialStore(zeroIterations)
	assert.Error(t, err)
}

/*
TestGenerateSecureToken returns hex of the requested entropy.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}
