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

// Package credential defines the closed enumeration of credential kinds the
// World App can attest to, and their stable mapping to issuer-schema IDs.
package credential

import "github.com/worldcoin/idkit-go/field"

// Kind is a credential kind the authenticator may hold a credential for.
type Kind string

const (
	Orb            Kind = "orb"
	Face           Kind = "face"
	SecureDocument Kind = "secure_document"
	Document       Kind = "document"
	Device         Kind = "device"
)

// schemaIDs maps each known kind to its stable integer issuer-schema ID.
var schemaIDs = map[Kind]uint64{
	Orb:            1,
	Face:           2,
	SecureDocument: 3,
	Document:       4,
	Device:         5,
}

var kindsBySchemaID = func() map[uint64]Kind {
	m := make(map[uint64]Kind, len(schemaIDs))
	for k, id := range schemaIDs {
		m[id] = k
	}
	return m
}()

// Valid reports whether k is a known credential kind.
func (k Kind) Valid() bool {
	_, ok := schemaIDs[k]
	return ok
}

// SchemaID returns the integer issuer-schema ID for a known kind.
func (k Kind) SchemaID() (uint64, bool) {
	id, ok := schemaIDs[k]
	return id, ok
}

// SchemaIDElement returns the issuer-schema ID rendered as a field element,
// as it appears on the wire in a proof_requests entry.
func (k Kind) SchemaIDElement() field.Element {
	id, _ := schemaIDs[k]
	return field.FromUint64(id)
}

// FromSchemaIDElement resolves a field element back to a known kind. Unknown
// IDs are preserved verbatim by the caller (the hex string round-trips) but
// do not resolve to a kind here -- ok is false.
func FromSchemaIDElement(e field.Element) (Kind, bool) {
	id, ok := schemaIDFromBytes(e.Bytes())
	if !ok {
		return "", false
	}
	k, ok := kindsBySchemaID[id]
	return k, ok
}

func schemaIDFromBytes(b []byte) (uint64, bool) {
	var v uint64
	for _, by := range b {
		if by == 0 && v == 0 {
			continue
		}
		if v > (1<<56)-1 {
			return 0, false // would overflow uint64 if shifted further
		}
		v = v<<8 | uint64(by)
	}
	return v, true
}
