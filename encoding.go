// encoding.go: Base64 adapters, secure random bytes and zeroization.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Base64Encode encodes a blob as standard, padded base64.
//
// This is the encoding used by every text entry point (EncryptCBC, EncryptGCM,
// EncryptLegacy), and it matches what the other AesBridge implementations emit.
//
// Example:
//
//	blob, _ := aesbridge.EncryptGCMBin([]byte("data"), []byte("passphrase"))
//	fmt.Println(aesbridge.Base64Encode(blob))
func Base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Base64Decode decodes standard, padded base64.
//
// Leading and trailing whitespace is ignored so that values copied from a
// terminal or a file with a final newline decode cleanly.
//
// Returns:
//   - The decoded bytes
//   - An error wrapping ErrBase64Decode if s is not valid base64
func Base64Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, wrapError(ErrBase64Decode, err, ErrCodeBase64Decode, "failed to decode base64")
	}
	return b, nil
}

// RandomBytes returns n bytes from the system CSPRNG.
//
// Salts, IVs and nonces are all drawn through this function, fresh for every
// encryption call.
//
// Parameters:
//   - n: The number of bytes to generate (must be positive)
//
// Returns:
//   - A byte slice of length n
//   - An error wrapping ErrInvalidLength for n <= 0, or ErrRandom if the
//     CSPRNG fails
func RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, newError(ErrInvalidLength, ErrCodeInvalidLength, fmt.Sprintf("random length must be positive (got %d)", n))
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, wrapError(ErrRandom, err, ErrCodeRandom, "failed to read random bytes")
	}
	return b, nil
}

// Zeroize overwrites every byte of b with zero.
//
// Derived keys are passed through Zeroize as soon as a call is done with
// them. It is exported so callers can wipe passphrases the same way.
//
// Example:
//
//	pass := []byte("correct horse battery staple")
//	defer aesbridge.Zeroize(pass)
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
