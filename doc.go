// Package aesbridge provides passphrase based AES encryption in three
// interoperable binary formats.
//
// Every format is byte-compatible with the other AesBridge implementations,
// so a blob encrypted here can be decrypted by any of them (and vice versa):
//   - GCM: AES-256-GCM, key from PBKDF2-HMAC-SHA256 (100,000 iterations)
//   - CBC: AES-256-CBC with an HMAC-SHA256 tag, keys from the same PBKDF2 schedule
//   - Legacy: the OpenSSL "Salted__" format, key and IV from EVP_BytesToKey (MD5)
//
// Each format has a binary entry point (EncryptGCMBin, DecryptGCMBin, ...) and
// a text entry point (EncryptGCM, DecryptGCM, ...) that base64 encodes the
// same blob. Passphrases and plaintexts are plain byte slices; pass
// []byte(s) for text.
//
// # Quick Start
//
//	enc, err := aesbridge.EncryptGCM([]byte("sensitive data"), []byte("passphrase"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	plaintext, err := aesbridge.DecryptGCM(enc, []byte("passphrase"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(string(plaintext)) // Output: sensitive data
//
// # Choosing a Scheme at Runtime
//
//	scheme, err := aesbridge.ParseScheme("cbc")
//	if err != nil {
//		log.Fatal(err)
//	}
//	enc, err := scheme.Encrypt(data, passphrase)
//
// # Binary Layouts
//
//	CBC:    salt(16) || iv(16)    || ciphertext || hmac(32)
//	GCM:    salt(16) || nonce(12) || ciphertext || tag(16)
//	Legacy: "Salted__" || salt(8) || ciphertext
//
// Salts, IVs and nonces are drawn from crypto/rand on every call, so two
// encryptions of the same input never produce the same blob.
//
// # Errors
//
// All errors wrap one of the exported sentinels and carry a go-errors code:
//
//	_, err := aesbridge.DecryptCBC(enc, wrongPassphrase)
//	if errors.Is(err, aesbridge.ErrAuthentication) {
//		// wrong passphrase or tampered data
//	}
//
// ErrFormat is reported before any key derivation runs. The CBC tag is
// verified in constant time before decryption, and GCM fails closed, so
// neither ever returns partial plaintext. The legacy format has no integrity
// protection: use it only to exchange data with existing OpenSSL tooling.
//
// # Concurrency
//
// All functions are safe for concurrent use. Key derivation runs 100,000
// PBKDF2 iterations and is CPU bound; offload it from latency sensitive
// goroutines.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package aesbridge
