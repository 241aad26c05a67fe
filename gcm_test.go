// gcm_test.go: Test cases for the AES-256-GCM scheme.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/aesbridge"
)

func TestEncryptGCMBin_RoundTrip(t *testing.T) {
	for name, plaintext := range testPlaintexts {
		t.Run(name, func(t *testing.T) {
			blob, err := aesbridge.EncryptGCMBin(plaintext, testPassphrase)
			require.NoError(t, err)
			assert.Len(t, blob, aesbridge.SaltSize+aesbridge.NonceSize+len(plaintext)+aesbridge.GCMTagSize)

			decrypted, err := aesbridge.DecryptGCMBin(blob, testPassphrase)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		})
	}
}

func TestEncryptGCM_TextRoundTrip(t *testing.T) {
	enc, err := aesbridge.EncryptGCM([]byte("sensitive data"), testPassphrase)
	require.NoError(t, err)

	dec, err := aesbridge.DecryptGCM(enc, testPassphrase)
	require.NoError(t, err)
	assert.Equal(t, "sensitive data", string(dec))

	// A trailing newline, as from a shell, is tolerated
	dec, err = aesbridge.DecryptGCM(enc+"\n", testPassphrase)
	require.NoError(t, err)
	assert.Equal(t, "sensitive data", string(dec))
}

func TestEncryptGCMBin_NonDeterministic(t *testing.T) {
	plaintext := []byte("same input")

	blob1, err := aesbridge.EncryptGCMBin(plaintext, testPassphrase)
	require.NoError(t, err)
	blob2, err := aesbridge.EncryptGCMBin(plaintext, testPassphrase)
	require.NoError(t, err)

	assert.NotEqual(t, blob1, blob2)
	assert.NotEqual(t, blob1[aesbridge.SaltSize:28], blob2[aesbridge.SaltSize:28], "nonce must be fresh")
}

func TestDecryptGCMBin_TamperDetection(t *testing.T) {
	blob, err := aesbridge.EncryptGCMBin([]byte("tamper-evident payload"), testPassphrase)
	require.NoError(t, err)

	regions := map[string]int{
		"Salt":       1,
		"Nonce":      aesbridge.SaltSize,
		"Ciphertext": 28,
		"Tag":        len(blob) - 1,
	}

	for name, pos := range regions {
		t.Run(name, func(t *testing.T) {
			tampered := bytes.Clone(blob)
			tampered[pos] ^= 0x80

			plaintext, err := aesbridge.DecryptGCMBin(tampered, testPassphrase)
			assert.ErrorIs(t, err, aesbridge.ErrAuthentication)
			assert.Nil(t, plaintext)
		})
	}
}

func TestDecryptGCMBin_Truncated(t *testing.T) {
	blob, err := aesbridge.EncryptGCMBin([]byte("payload"), testPassphrase)
	require.NoError(t, err)

	_, err = aesbridge.DecryptGCMBin(blob[:len(blob)-1], testPassphrase)
	assert.ErrorIs(t, err, aesbridge.ErrAuthentication)

	_, err = aesbridge.DecryptGCMBin(blob[:43], testPassphrase)
	assert.ErrorIs(t, err, aesbridge.ErrFormat)
}

func TestDecryptGCMBin_WrongPassphrase(t *testing.T) {
	blob, err := aesbridge.EncryptGCMBin([]byte("secret"), testPassphrase)
	require.NoError(t, err)

	_, err = aesbridge.DecryptGCMBin(blob, []byte("wrong passphrase"))
	assert.ErrorIs(t, err, aesbridge.ErrAuthentication)
}

func TestDecryptGCMBin_EmptyPlaintextBlob(t *testing.T) {
	blob, err := aesbridge.EncryptGCMBin(nil, testPassphrase)
	require.NoError(t, err)
	assert.Len(t, blob, 44, "empty plaintext leaves salt, nonce and tag")

	dec, err := aesbridge.DecryptGCMBin(blob, testPassphrase)
	require.NoError(t, err)
	assert.Empty(t, dec)
}
