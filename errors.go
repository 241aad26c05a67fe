// errors.go: Error kinds shared by all aesbridge schemes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Public standard errors. Every error returned by this package wraps exactly
// one of them, so callers can branch with errors.Is().
var (
	// ErrFormat is returned when a blob is too short for its fixed fields,
	// has a misaligned ciphertext, or lacks the legacy "Salted__" header.
	// It is detected before any key derivation takes place.
	ErrFormat = errors.New("aesbridge: invalid format")

	// ErrAuthentication is returned when the HMAC tag of a CBC blob or the
	// GCM tag does not verify. No plaintext is ever returned with it.
	ErrAuthentication = errors.New("aesbridge: authentication failed")

	// ErrDecode is returned when PKCS#7 padding cannot be removed.
	ErrDecode = errors.New("aesbridge: decode error")

	// ErrDerivation is returned for degenerate key derivation input,
	// such as a salt of the wrong length.
	ErrDerivation = errors.New("aesbridge: key derivation error")

	// ErrBase64Decode is returned when a text blob is not valid base64.
	ErrBase64Decode = errors.New("aesbridge: base64 decode error")

	// ErrRandom is returned when the system CSPRNG fails.
	ErrRandom = errors.New("aesbridge: random generation error")

	// ErrCipherInit is returned when the AES or GCM primitive cannot be set up.
	ErrCipherInit = errors.New("aesbridge: cipher initialization error")

	// ErrUnknownScheme is returned for a scheme name or value that is not
	// one of cbc, gcm or legacy.
	ErrUnknownScheme = errors.New("aesbridge: unknown scheme")

	// ErrInvalidLength is returned when a non-positive length is requested.
	ErrInvalidLength = errors.New("aesbridge: invalid length")
)

// Error codes for rich error handling
const (
	ErrCodeFormat        = "AESBRIDGE_FORMAT"
	ErrCodeAuth          = "AESBRIDGE_AUTH"
	ErrCodeDecode        = "AESBRIDGE_DECODE"
	ErrCodeDerivation    = "AESBRIDGE_DERIVATION"
	ErrCodeBase64Decode  = "AESBRIDGE_BASE64_DECODE"
	ErrCodeRandom        = "AESBRIDGE_RANDOM"
	ErrCodeCipherInit    = "AESBRIDGE_CIPHER_INIT"
	ErrCodeUnknownScheme = "AESBRIDGE_UNKNOWN_SCHEME"
	ErrCodeInvalidLength = "AESBRIDGE_INVALID_LENGTH"
)

// newError joins a public sentinel with a coded go-errors value.
func newError(sentinel error, code goerrors.ErrorCode, msg string) error {
	richErr := goerrors.New(code, msg)
	return fmt.Errorf("%w: %w", sentinel, richErr)
}

// wrapError is newError for failures that carry an underlying cause.
func wrapError(sentinel, cause error, code goerrors.ErrorCode, msg string) error {
	richErr := goerrors.Wrap(cause, code, msg)
	return fmt.Errorf("%w: %w", sentinel, richErr)
}
