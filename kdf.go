// kdf.go: Passphrase key derivation for the aesbridge schemes.
//
// Two fixed schedules are provided: PBKDF2-HMAC-SHA256 for the CBC and GCM
// schemes, and OpenSSL's EVP_BytesToKey (MD5, one round) for the legacy
// scheme. Neither is tunable; changing a constant here breaks every blob
// produced by the other implementations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"crypto/md5" // #nosec G501 -- required by the OpenSSL legacy format
	"crypto/sha256"
	"fmt"

	pbkdf2 "golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32

	// HMACKeySize is the size of the CBC scheme's HMAC-SHA256 key.
	HMACKeySize = 32

	// PBKDF2Iterations is the fixed iteration count of the PBKDF2 schedule.
	PBKDF2Iterations = 100_000

	// SaltSize is the salt length used by the CBC and GCM schemes.
	SaltSize = 16

	// LegacySaltSize is the salt length of the OpenSSL legacy format.
	LegacySaltSize = 8

	// LegacyIVSize is the IV length produced by the legacy schedule.
	LegacyIVSize = 16
)

// DeriveKeyPBKDF2 derives keyLen bytes from a passphrase with
// PBKDF2-HMAC-SHA256 and PBKDF2Iterations rounds.
//
// This is the schedule behind DeriveCBCKeys and DeriveGCMKey. It runs
// 100,000 HMAC iterations and is CPU bound; callers on latency sensitive
// goroutines should offload it.
//
// Parameters:
//   - passphrase: The passphrase (may be empty)
//   - salt: Exactly SaltSize bytes
//   - keyLen: The desired output length in bytes (must be positive)
//
// Returns:
//   - The derived bytes
//   - An error wrapping ErrDerivation for a wrong salt length, or
//     ErrInvalidLength for a non-positive keyLen
//
// Example:
//
//	salt, _ := aesbridge.RandomBytes(aesbridge.SaltSize)
//	key, err := aesbridge.DeriveKeyPBKDF2([]byte("passphrase"), salt, 32)
func DeriveKeyPBKDF2(passphrase, salt []byte, keyLen int) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, newError(ErrDerivation, ErrCodeDerivation, fmt.Sprintf("salt must be %d bytes (got %d)", SaltSize, len(salt)))
	}
	if keyLen <= 0 {
		return nil, newError(ErrInvalidLength, ErrCodeInvalidLength, "key length must be positive")
	}
	return pbkdf2.Key(passphrase, salt, PBKDF2Iterations, keyLen, sha256.New), nil
}

// DeriveCBCKeys derives the AES-256 and HMAC-SHA256 keys of the CBC scheme.
//
// A single 64-byte PBKDF2 output is split in two: bytes [0:32) are the AES
// key and bytes [32:64) the HMAC key. Both keys are bound to the same salt.
func DeriveCBCKeys(passphrase, salt []byte) (aesKey, hmacKey []byte, err error) {
	material, err := DeriveKeyPBKDF2(passphrase, salt, KeySize+HMACKeySize)
	if err != nil {
		return nil, nil, err
	}
	return material[:KeySize:KeySize], material[KeySize:], nil
}

// DeriveGCMKey derives the 32-byte AES-256-GCM key of the GCM scheme.
func DeriveGCMKey(passphrase, salt []byte) ([]byte, error) {
	return DeriveKeyPBKDF2(passphrase, salt, KeySize)
}

// DeriveLegacyKeyIV derives the AES-256 key and CBC IV of the legacy scheme
// using OpenSSL's EVP_BytesToKey with MD5 and a single iteration.
//
// The schedule chains digests until 48 bytes are available:
//
//	D_1 = MD5(passphrase || salt)
//	D_i = MD5(D_{i-1} || passphrase || salt)
//	key = (D_1 || D_2)[0:32], iv = D_3[0:16]
//
// It exists only to read and write blobs compatible with
// `openssl enc -aes-256-cbc -md md5`; it is not a modern KDF.
//
// Parameters:
//   - passphrase: The passphrase (may be empty)
//   - salt: Exactly LegacySaltSize bytes
//
// Returns:
//   - A 32-byte key and a 16-byte IV
//   - An error wrapping ErrDerivation for a wrong salt length
func DeriveLegacyKeyIV(passphrase, salt []byte) (key, iv []byte, err error) {
	if len(salt) != LegacySaltSize {
		return nil, nil, newError(ErrDerivation, ErrCodeDerivation, fmt.Sprintf("legacy salt must be %d bytes (got %d)", LegacySaltSize, len(salt)))
	}

	const need = KeySize + LegacyIVSize
	derived := make([]byte, 0, need+md5.Size)
	var prev []byte

	// Sum appends each digest in place; cap leaves room so derived never moves
	h := md5.New() // #nosec G401 -- EVP_BytesToKey is defined over MD5
	for len(derived) < need {
		h.Reset()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(derived[len(derived):])
		derived = derived[:len(derived)+md5.Size]
	}

	key = make([]byte, KeySize)
	iv = make([]byte, LegacyIVSize)
	copy(key, derived[:KeySize])
	copy(iv, derived[KeySize:need])
	Zeroize(derived[:cap(derived)])
	return key, iv, nil
}
