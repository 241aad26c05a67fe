// padding.go: PKCS#7 padding for the CBC based schemes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"crypto/aes"
	"crypto/subtle"
	"fmt"
)

// paddedLen returns the length of n bytes after PKCS#7 padding. A full block
// of padding is added when n is already block aligned.
func paddedLen(n int) int {
	return n + aes.BlockSize - n%aes.BlockSize
}

// pkcs7Pad writes src followed by its padding into dst, which must be
// exactly paddedLen(len(src)) bytes long.
func pkcs7Pad(dst, src []byte) {
	n := copy(dst, src)
	pad := byte(len(dst) - n)
	for i := n; i < len(dst); i++ {
		dst[i] = pad
	}
}

// pkcs7Unpad returns b without its padding. The pad bytes are compared in
// constant time.
func pkcs7Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 || len(b)%aes.BlockSize != 0 {
		return nil, newError(ErrDecode, ErrCodeDecode, fmt.Sprintf("invalid padded length %d", len(b)))
	}
	pad := int(b[len(b)-1])
	if pad == 0 || pad > aes.BlockSize {
		return nil, newError(ErrDecode, ErrCodeDecode, "invalid padding size")
	}

	good := 1
	for _, v := range b[len(b)-pad:] {
		good &= subtle.ConstantTimeByteEq(v, byte(pad))
	}
	if good != 1 {
		return nil, newError(ErrDecode, ErrCodeDecode, "invalid padding bytes")
	}
	return b[:len(b)-pad], nil
}
