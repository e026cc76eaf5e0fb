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

// Package response normalizes the three wire shapes an authenticator may
// reply with -- a v4 multi-credential response, a v3 multi-credential
// response and a v1 legacy single-credential response -- into one uniform
// result, and recognizes the error envelope shape.
package response

// ProtocolVersion4 and ProtocolVersion3 are the two values Result.ProtocolVersion
// can take.
const (
	ProtocolVersion4 = "4.0"
	ProtocolVersion3 = "3.0"
)

// Item is one normalized credential response, regardless of which wire
// shape it arrived in.
type Item struct {
	Identifier     string
	Proof          string
	Nullifier      string
	MerkleRoot     string
	ProofTimestamp *uint64
	IssuerSchemaID string
}

// Result is the uniform, version-normalized outcome of a successful
// verification.
type Result struct {
	ProtocolVersion string
	SessionID       string
	Items           []Item
}

// AppError is returned when the decrypted payload was an error envelope
// rather than a proof response. Kind is carried verbatim from the
// authenticator.
type AppError struct {
	Kind string
}

func (e *AppError) Error() string {
	return "response: authenticator reported error: " + e.Kind
}
