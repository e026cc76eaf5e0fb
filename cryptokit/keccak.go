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

package cryptokit

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// fieldModulus is the BabyJubJub base field prime (the BN254 scalar field
// order) used throughout the World ID protocol (the same prime
// circomlib/circom circuits use).
var fieldModulus, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10,
)

// Keccak256 returns the 32-byte Keccak-256 digest of data (the legacy
// Keccak variant, not NIST SHA3-256).
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// HashToField computes keccak256(data) mod p, right-shifts the result by 8
// bits so it comfortably fits the field, and renders it as 64 lowercase hex
// digits with a "0x" prefix. Empty input maps to the empty string -- NOT the
// hash of zero bytes -- to stay compatible with the legacy signal-hash slot.
func HashToField(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	digest := Keccak256(data)
	n := new(big.Int).SetBytes(digest)
	n.Mod(n, fieldModulus)
	n.Rsh(n, 8)
	return fmt.Sprintf("0x%064x", n)
}
