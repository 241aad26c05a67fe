// gcm.go: AES-256-GCM authenticated encryption keyed by a passphrase.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

const (
	// NonceSize is the GCM nonce size in bytes.
	NonceSize = 12

	// GCMTagSize is the GCM authentication tag size in bytes.
	GCMTagSize = 16

	gcmHeaderSize = SaltSize + NonceSize
	gcmMinSize    = gcmHeaderSize + GCMTagSize
)

// newGCM builds an AES-256-GCM AEAD with a 12-byte nonce and 16-byte tag.
// Keys are per call, so unlike a long-lived key there is nothing to cache.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, wrapError(ErrCipherInit, err, ErrCodeCipherInit, "failed to create AES cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, wrapError(ErrCipherInit, err, ErrCodeCipherInit, "failed to create GCM cipher")
	}
	return gcm, nil
}

// EncryptGCMBin encrypts plaintext using AES-256-GCM with a key derived from
// passphrase.
//
// A fresh 16-byte salt and 12-byte nonce are drawn for every call, so the
// nonce never repeats under a derived key. The key is a 32-byte PBKDF2
// output (see DeriveGCMKey). No associated data is used.
//
// Output layout:
//
//	salt(16) || nonce(12) || ciphertext || tag(16)
//
// Parameters:
//   - plaintext: The data to encrypt (can be empty)
//   - passphrase: The passphrase (text or raw bytes)
//
// Returns:
//   - The binary blob
//   - An error if random generation or cipher setup fails
//
// Example:
//
//	blob, err := aesbridge.EncryptGCMBin([]byte("secret"), []byte("passphrase"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Empty plaintext is supported and yields a blob holding only salt, nonce and tag.
func EncryptGCMBin(plaintext, passphrase []byte) ([]byte, error) {
	salt, err := RandomBytes(SaltSize)
	if err != nil {
		return nil, err
	}
	nonce, err := RandomBytes(NonceSize)
	if err != nil {
		return nil, err
	}
	return encryptGCMWith(plaintext, passphrase, salt, nonce)
}

// encryptGCMWith is EncryptGCMBin with caller-chosen salt and nonce.
func encryptGCMWith(plaintext, passphrase, salt, nonce []byte) ([]byte, error) {
	key, err := DeriveGCMKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer Zeroize(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, gcmHeaderSize, gcmHeaderSize+len(plaintext)+gcm.Overhead())
	copy(out, salt)
	copy(out[SaltSize:], nonce)
	return gcm.Seal(out, nonce, plaintext, nil), nil // #nosec G407 -- nonce is generated from crypto/rand, not hardcoded
}

// DecryptGCMBin decrypts a blob produced by EncryptGCMBin.
//
// GCM verifies the tag as part of decryption; on any mismatch the whole
// operation fails and no plaintext is returned.
//
// Parameters:
//   - data: The binary blob
//   - passphrase: The passphrase used for encryption
//
// Returns:
//   - The plaintext
//   - An error wrapping ErrFormat if the blob is shorter than salt+nonce+tag,
//     or ErrAuthentication if the tag does not verify (wrong passphrase,
//     tampered data)
func DecryptGCMBin(data, passphrase []byte) ([]byte, error) {
	if len(data) < gcmMinSize {
		return nil, newError(ErrFormat, ErrCodeFormat, fmt.Sprintf("gcm blob too short: %d bytes, need at least %d", len(data), gcmMinSize))
	}
	salt := data[:SaltSize]
	nonce := data[SaltSize:gcmHeaderSize]
	sealed := data[gcmHeaderSize:]

	key, err := DeriveGCMKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer Zeroize(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(make([]byte, 0, len(sealed)-GCMTagSize), nonce, sealed, nil)
	if err != nil {
		return nil, wrapError(ErrAuthentication, err, ErrCodeAuth, "GCM decryption failed (wrong passphrase or tampered data)")
	}
	return plaintext, nil
}

// EncryptGCM is EncryptGCMBin with a base64 encoded result.
func EncryptGCM(plaintext, passphrase []byte) (string, error) {
	blob, err := EncryptGCMBin(plaintext, passphrase)
	if err != nil {
		return "", err
	}
	return Base64Encode(blob), nil
}

// DecryptGCM decodes a base64 blob and decrypts it with DecryptGCMBin.
func DecryptGCM(data string, passphrase []byte) ([]byte, error) {
	blob, err := Base64Decode(data)
	if err != nil {
		return nil, err
	}
	return DecryptGCMBin(blob, passphrase)
}
