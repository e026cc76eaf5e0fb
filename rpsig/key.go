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

// Package rpsig implements the relying party's signing key and the
// deterministic, recoverable signature it produces over an RP context.
package rpsig

import (
	"crypto/ecdsa"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrInvalidKey is returned when a signing key cannot be parsed.
var ErrInvalidKey = errors.New("rpsig: invalid signing key")

// SigningKey wraps a secp256k1 private key used to authenticate proof
// requests.
type SigningKey struct {
	priv *secp256k1.PrivateKey
}

// GenerateSigningKey draws a fresh random signing key.
func GenerateSigningKey() (*SigningKey, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &SigningKey{priv: priv}, nil
}

// NewSigningKeyFromBytes constructs a signing key from its raw 32-byte
// scalar representation.
func NewSigningKeyFromBytes(b []byte) (*SigningKey, error) {
	if len(b) != 32 {
		return nil, ErrInvalidKey
	}
	priv := secp256k1.PrivKeyFromBytes(b)
	return &SigningKey{priv: priv}, nil
}

// Bytes returns the raw 32-byte scalar.
func (k *SigningKey) Bytes() []byte {
	return k.priv.Serialize()
}

// ECDSA returns the standard-library ECDSA private key, for interop with
// packages (like go-ethereum's crypto) that expect it.
func (k *SigningKey) ECDSA() *ecdsa.PrivateKey {
	return k.priv.ToECDSA()
}

// PublicKeyUncompressed returns the 65-byte uncompressed public key point,
// the same form go-ethereum's Ecrecover returns on successful recovery.
func (k *SigningKey) PublicKeyUncompressed() []byte {
	return k.priv.PubKey().SerializeUncompressed()
}
