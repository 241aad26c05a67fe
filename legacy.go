// legacy.go: OpenSSL "Salted__" compatible AES-256-CBC scheme.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"bytes"
	"crypto/aes"
	"fmt"
)

// LegacyMagic is the header that opens every OpenSSL salted blob.
const LegacyMagic = "Salted__"

const legacyHeaderSize = len(LegacyMagic) + LegacySaltSize

// EncryptLegacyBin encrypts plaintext in the format written by
// `openssl enc -aes-256-cbc -md md5`.
//
// A fresh 8-byte salt is drawn per call; key and IV both come from
// DeriveLegacyKeyIV. The format provides confidentiality only: there is no
// integrity tag. Prefer EncryptGCMBin or EncryptCBCBin unless a consumer
// requires this format.
//
// Output layout:
//
//	"Salted__" || salt(8) || ciphertext(PKCS#7 padded)
func EncryptLegacyBin(plaintext, passphrase []byte) ([]byte, error) {
	salt, err := RandomBytes(LegacySaltSize)
	if err != nil {
		return nil, err
	}
	return encryptLegacyWith(plaintext, passphrase, salt)
}

// encryptLegacyWith is EncryptLegacyBin with a caller-chosen salt.
func encryptLegacyWith(plaintext, passphrase, salt []byte) ([]byte, error) {
	key, iv, err := DeriveLegacyKeyIV(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer Zeroize(key)
	defer Zeroize(iv)

	out := make([]byte, legacyHeaderSize+paddedLen(len(plaintext)))
	copy(out, LegacyMagic)
	copy(out[len(LegacyMagic):], salt)
	if err := cbcSeal(out[legacyHeaderSize:], key, iv, plaintext); err != nil {
		return nil, err
	}
	return out, nil
}

// DecryptLegacyBin decrypts an OpenSSL salted blob.
//
// The header is checked before any key derivation. Because the format has
// no integrity tag, a wrong passphrase or tampered ciphertext is only caught
// when it happens to break the padding (ErrDecode); otherwise the result is
// silently wrong.
//
// Returns:
//   - The plaintext
//   - An error wrapping ErrFormat if the header is missing, the blob is
//     short, or the ciphertext is not block aligned; ErrDecode if the padding
//     is invalid
func DecryptLegacyBin(data, passphrase []byte) ([]byte, error) {
	if len(data) < legacyHeaderSize || !bytes.Equal(data[:len(LegacyMagic)], []byte(LegacyMagic)) {
		return nil, newError(ErrFormat, ErrCodeFormat, "invalid OpenSSL header")
	}
	salt := data[len(LegacyMagic):legacyHeaderSize]
	ciphertext := data[legacyHeaderSize:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, newError(ErrFormat, ErrCodeFormat, fmt.Sprintf("legacy ciphertext length %d is not a positive multiple of the block size", len(ciphertext)))
	}

	key, iv, err := DeriveLegacyKeyIV(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer Zeroize(key)
	defer Zeroize(iv)

	return cbcOpen(key, iv, ciphertext)
}

// EncryptLegacy is EncryptLegacyBin with a base64 encoded result, the same
// text `openssl enc -a -A` produces.
func EncryptLegacy(plaintext, passphrase []byte) (string, error) {
	blob, err := EncryptLegacyBin(plaintext, passphrase)
	if err != nil {
		return "", err
	}
	return Base64Encode(blob), nil
}

// DecryptLegacy decodes a base64 blob and decrypts it with DecryptLegacyBin.
func DecryptLegacy(data string, passphrase []byte) ([]byte, error) {
	blob, err := Base64Decode(data)
	if err != nil {
		return nil, err
	}
	return DecryptLegacyBin(blob, passphrase)
}
