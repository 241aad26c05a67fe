// cbc.go: AES-256-CBC + HMAC-SHA256 scheme keyed by a passphrase.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package aesbridge

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

const (
	// IVSize is the CBC initialization vector size in bytes.
	IVSize = aes.BlockSize

	// HMACTagSize is the size of the HMAC-SHA256 tag closing a CBC blob.
	HMACTagSize = sha256.Size

	cbcHeaderSize = SaltSize + IVSize
	cbcMinSize    = cbcHeaderSize + aes.BlockSize + HMACTagSize
)

// EncryptCBCBin encrypts plaintext with AES-256-CBC and authenticates it with
// HMAC-SHA256, both keyed from passphrase.
//
// A fresh 16-byte salt and 16-byte IV are drawn for every call. The AES and
// HMAC keys come from one 64-byte PBKDF2 derivation (see DeriveCBCKeys). The
// tag covers IV || ciphertext; the salt is not part of the MAC input, which
// keeps the output byte-compatible with the other AesBridge implementations.
//
// Output layout:
//
//	salt(16) || iv(16) || ciphertext(PKCS#7 padded) || hmac(32)
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
//	blob, err := aesbridge.EncryptCBCBin([]byte("secret"), []byte("passphrase"))
//	if err != nil {
//		log.Fatal(err)
//	}
func EncryptCBCBin(plaintext, passphrase []byte) ([]byte, error) {
	salt, err := RandomBytes(SaltSize)
	if err != nil {
		return nil, err
	}
	iv, err := RandomBytes(IVSize)
	if err != nil {
		return nil, err
	}
	return encryptCBCWith(plaintext, passphrase, salt, iv)
}

// encryptCBCWith is EncryptCBCBin with caller-chosen salt and IV.
func encryptCBCWith(plaintext, passphrase, salt, iv []byte) ([]byte, error) {
	aesKey, hmacKey, err := DeriveCBCKeys(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer Zeroize(aesKey)
	defer Zeroize(hmacKey)

	ctLen := paddedLen(len(plaintext))
	out := make([]byte, cbcHeaderSize+ctLen, cbcHeaderSize+ctLen+HMACTagSize)
	copy(out, salt)
	copy(out[SaltSize:], iv)

	ciphertext := out[cbcHeaderSize:]
	if err := cbcSeal(ciphertext, aesKey, iv, plaintext); err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, hmacKey)
	mac.Write(iv)
	mac.Write(ciphertext)
	return mac.Sum(out), nil
}

// DecryptCBCBin verifies and decrypts a blob produced by EncryptCBCBin.
//
// The HMAC tag is checked in constant time before any decryption is
// attempted, so a tampered blob never reaches the padding check.
//
// Parameters:
//   - data: The binary blob
//   - passphrase: The passphrase used for encryption
//
// Returns:
//   - The plaintext
//   - An error wrapping one of:
//   - ErrFormat: the blob is shorter than salt+IV+one block+tag, or the
//     ciphertext is not block aligned (checked before key derivation)
//   - ErrAuthentication: the tag does not match (wrong passphrase or tampering)
//   - ErrDecode: the padding is malformed despite a valid tag
func DecryptCBCBin(data, passphrase []byte) ([]byte, error) {
	if len(data) < cbcMinSize {
		return nil, newError(ErrFormat, ErrCodeFormat, fmt.Sprintf("cbc blob too short: %d bytes, need at least %d", len(data), cbcMinSize))
	}
	salt := data[:SaltSize]
	iv := data[SaltSize:cbcHeaderSize]
	ciphertext := data[cbcHeaderSize : len(data)-HMACTagSize]
	tag := data[len(data)-HMACTagSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, newError(ErrFormat, ErrCodeFormat, "cbc ciphertext is not a multiple of the block size")
	}

	aesKey, hmacKey, err := DeriveCBCKeys(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer Zeroize(aesKey)
	defer Zeroize(hmacKey)

	mac := hmac.New(sha256.New, hmacKey)
	mac.Write(iv)
	mac.Write(ciphertext)
	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, newError(ErrAuthentication, ErrCodeAuth, "HMAC verification failed")
	}

	return cbcOpen(aesKey, iv, ciphertext)
}

// EncryptCBC is EncryptCBCBin with a base64 encoded result.
//
// Example:
//
//	enc, _ := aesbridge.EncryptCBC([]byte("secret"), []byte("passphrase"))
//	dec, _ := aesbridge.DecryptCBC(enc, []byte("passphrase"))
//	fmt.Println(string(dec)) // Output: secret
func EncryptCBC(plaintext, passphrase []byte) (string, error) {
	blob, err := EncryptCBCBin(plaintext, passphrase)
	if err != nil {
		return "", err
	}
	return Base64Encode(blob), nil
}

// DecryptCBC decodes a base64 blob and decrypts it with DecryptCBCBin.
func DecryptCBC(data string, passphrase []byte) ([]byte, error) {
	blob, err := Base64Decode(data)
	if err != nil {
		return nil, err
	}
	return DecryptCBCBin(blob, passphrase)
}

// cbcSeal PKCS#7 pads plaintext and encrypts it into dst, which must be
// exactly paddedLen(len(plaintext)) bytes. The padded copy of the plaintext
// lives in a pooled buffer that is wiped on return.
func cbcSeal(dst, key, iv, plaintext []byte) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return wrapError(ErrCipherInit, err, ErrCodeCipherInit, "failed to create AES cipher")
	}

	padded := getBuffer(len(dst))
	defer putBuffer(padded)
	pkcs7Pad(*padded, plaintext)

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(dst, *padded)
	return nil
}

// cbcOpen decrypts a block aligned ciphertext and strips its padding. The
// intermediate plaintext is held in a pooled buffer; the returned slice is a
// fresh copy.
func cbcOpen(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, wrapError(ErrCipherInit, err, ErrCodeCipherInit, "failed to create AES cipher")
	}

	buf := getBuffer(len(ciphertext))
	defer putBuffer(buf)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(*buf, ciphertext)

	plaintext, err := pkcs7Unpad(*buf)
	if err != nil {
		return nil, err
	}

	result := make([]byte, len(plaintext))
	copy(result, plaintext)
	return result, nil
}
