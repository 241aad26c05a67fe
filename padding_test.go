// padding_test.go: Test cases for PKCS#7 padding.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPKCS7_RoundTrip(t *testing.T) {
	for n := 0; n <= 33; n++ {
		src := bytes.Repeat([]byte{'x'}, n)
		dst := make([]byte, paddedLen(n))
		pkcs7Pad(dst, src)

		require.Zero(t, len(dst)%16, "length %d", n)
		require.Greater(t, len(dst), n, "a full block is added on boundaries")
		pad := dst[len(dst)-1]
		assert.Equal(t, byte(len(dst)-n), pad)

		out, err := pkcs7Unpad(dst)
		require.NoError(t, err, "length %d", n)
		assert.Equal(t, src, out)
	}
}

func TestPKCS7Unpad_Invalid(t *testing.T) {
	block := func(tail ...byte) []byte {
		b := make([]byte, 16)
		copy(b[16-len(tail):], tail)
		return b
	}

	testCases := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"Misaligned", make([]byte, 15)},
		{"ZeroPad", block(0x00)},
		{"PadTooLarge", block(0x11)},
		{"InconsistentBytes", block(0x03, 0x02, 0x03)},
		{"FullBlockBroken", append([]byte{0x0f}, bytes.Repeat([]byte{0x10}, 15)...)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := pkcs7Unpad(tc.data)
			assert.ErrorIs(t, err, ErrDecode)
			assert.Nil(t, out)
		})
	}
}

func TestPKCS7Unpad_FullBlock(t *testing.T) {
	out, err := pkcs7Unpad(bytes.Repeat([]byte{0x10}, 16))
	require.NoError(t, err)
	assert.Empty(t, out)
}
