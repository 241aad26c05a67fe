// pool.go: Scratch buffer pooling for plaintext copies made by the CBC schemes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"sync"
)

// Pooled buffers never leave the package: every result handed to a caller is
// a fresh copy, and every buffer is zeroed before it goes back to its pool.
const (
	smallBufferSize = 512
	largeBufferSize = 4 * 1024
)

var (
	smallBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, smallBufferSize) // Short secrets, tokens and passwords pad into this
			return &buf
		},
	}

	largeBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, largeBufferSize)
			return &buf
		},
	}
)

// getBuffer returns a buffer of exactly size bytes. Sizes above
// largeBufferSize are allocated directly and are not recycled.
func getBuffer(size int) *[]byte {
	switch {
	case size <= smallBufferSize:
		buf := smallBufferPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		return buf
	case size <= largeBufferSize:
		buf := largeBufferPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		return buf
	default:
		buf := make([]byte, size)
		return &buf
	}
}

// clearBuffer zeroes the full capacity of buf, not only its current length,
// since earlier users may have written past it.
func clearBuffer(buf []byte) {
	full := buf[:cap(buf)]
	for i := range full {
		full[i] = 0
	}
}

// putBuffer wipes buf and returns it to the pool matching its capacity.
// Directly allocated buffers are wiped and dropped.
func putBuffer(buf *[]byte) {
	if buf == nil {
		return
	}

	size := cap(*buf)
	switch {
	case size == smallBufferSize:
		clearBuffer(*buf)
		smallBufferPool.Put(buf)
	case size == largeBufferSize:
		clearBuffer(*buf)
		largeBufferPool.Put(buf)
	default:
		// Large one-off plaintext copies are still wiped before the GC sees them
		clearBuffer(*buf)
	}
}
