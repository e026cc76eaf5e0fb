// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

// Package cryptokit provides the cryptographic primitives shared by the rest
// of idkit: CSPRNG key/nonce generation, AES-256-GCM, base64 wire encoding,
// and the keccak256-to-field hash used throughout the protocol.
package cryptokit

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// NonceSize is the GCM nonce length in bytes.
	NonceSize = 12
)

// GenerateKey draws a fresh 32-byte AES-256 key from the platform CSPRNG.
func GenerateKey() ([]byte, error) {
	return randomBytes(KeySize)
}

// GenerateNonce draws a fresh 12-byte GCM nonce from the platform CSPRNG.
func GenerateNonce() ([]byte, error) {
	return randomBytes(NonceSize)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("cryptokit: generate random bytes: %w", err)
	}
	return b, nil
}
