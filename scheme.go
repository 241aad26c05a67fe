// scheme.go: Scheme selection for callers that pick the format at runtime.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"fmt"
	"strings"
)

// Scheme identifies one of the three aesbridge formats.
type Scheme int

const (
	// SchemeCBC is AES-256-CBC with an HMAC-SHA256 tag (EncryptCBCBin).
	SchemeCBC Scheme = iota + 1
	// SchemeGCM is AES-256-GCM (EncryptGCMBin).
	SchemeGCM
	// SchemeLegacy is the OpenSSL "Salted__" format (EncryptLegacyBin).
	SchemeLegacy
)

// Schemes returns every supported scheme, strongest first.
func Schemes() []Scheme {
	return []Scheme{SchemeGCM, SchemeCBC, SchemeLegacy}
}

// String returns the lower case scheme name used on the command line.
func (s Scheme) String() string {
	switch s {
	case SchemeCBC:
		return "cbc"
	case SchemeGCM:
		return "gcm"
	case SchemeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// ParseScheme maps "cbc", "gcm" or "legacy" (any case) to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cbc":
		return SchemeCBC, nil
	case "gcm":
		return SchemeGCM, nil
	case "legacy":
		return SchemeLegacy, nil
	default:
		return 0, newError(ErrUnknownScheme, ErrCodeUnknownScheme, fmt.Sprintf("unknown scheme %q (want cbc, gcm or legacy)", name))
	}
}

func (s Scheme) unknown() error {
	return newError(ErrUnknownScheme, ErrCodeUnknownScheme, fmt.Sprintf("unknown scheme value %d", int(s)))
}

// EncryptBin encrypts plaintext into the binary blob of scheme s.
//
// Example:
//
//	scheme, _ := aesbridge.ParseScheme("gcm")
//	blob, err := scheme.EncryptBin([]byte("secret"), []byte("passphrase"))
func (s Scheme) EncryptBin(plaintext, passphrase []byte) ([]byte, error) {
	switch s {
	case SchemeCBC:
		return EncryptCBCBin(plaintext, passphrase)
	case SchemeGCM:
		return EncryptGCMBin(plaintext, passphrase)
	case SchemeLegacy:
		return EncryptLegacyBin(plaintext, passphrase)
	default:
		return nil, s.unknown()
	}
}

// DecryptBin decrypts a binary blob of scheme s.
func (s Scheme) DecryptBin(data, passphrase []byte) ([]byte, error) {
	switch s {
	case SchemeCBC:
		return DecryptCBCBin(data, passphrase)
	case SchemeGCM:
		return DecryptGCMBin(data, passphrase)
	case SchemeLegacy:
		return DecryptLegacyBin(data, passphrase)
	default:
		return nil, s.unknown()
	}
}

// Encrypt encrypts plaintext and returns the base64 blob of scheme s.
func (s Scheme) Encrypt(plaintext, passphrase []byte) (string, error) {
	blob, err := s.EncryptBin(plaintext, passphrase)
	if err != nil {
		return "", err
	}
	return Base64Encode(blob), nil
}

// Decrypt decodes and decrypts a base64 blob of scheme s.
func (s Scheme) Decrypt(data string, passphrase []byte) ([]byte, error) {
	blob, err := Base64Decode(data)
	if err != nil {
		return nil, err
	}
	return s.DecryptBin(blob, passphrase)
}
