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

// Package signal implements the RP-chosen signal bound into a credential's
// proof so the resulting nullifier is unique per (user, action, signal).
package signal

import (
	"encoding/hex"
	"strings"

	"github.com/worldcoin/idkit-go/cryptokit"
)

// Kind distinguishes the two signal representations.
type Kind int

const (
	// KindString is UTF-8 text.
	KindString Kind = iota
	// KindAbiEncoded is an opaque, already-encoded byte string.
	KindAbiEncoded
)

// Signal is a tagged union of a UTF-8 string or raw ABI-encoded bytes.
type Signal struct {
	kind Kind
	text string
	data []byte
}

// String builds a UTF-8 text signal.
func String(text string) Signal {
	return Signal{kind: KindString, text: text}
}

// AbiEncoded builds a signal carrying a raw, already-encoded byte payload.
func AbiEncoded(data []byte) Signal {
	return Signal{kind: KindAbiEncoded, data: append([]byte(nil), data...)}
}

// Kind reports which variant this signal is.
func (s Signal) Kind() Kind { return s.kind }

// Bytes returns the payload to be hashed or signed: the UTF-8 encoding of
// the text variant, or the raw bytes of the ABI-encoded variant.
func (s Signal) Bytes() []byte {
	if s.kind == KindAbiEncoded {
		return s.data
	}
	return []byte(s.text)
}

// WireString renders the wire form: a bare string for KindString, or
// "0x"-prefixed hex for KindAbiEncoded.
func (s Signal) WireString() string {
	if s.kind == KindAbiEncoded {
		return "0x" + hex.EncodeToString(s.data)
	}
	return s.text
}

// Equal reports whether two signals carry the same kind and payload.
func (s Signal) Equal(other Signal) bool {
	if s.kind != other.kind {
		return false
	}
	if s.kind == KindAbiEncoded {
		return string(s.data) == string(other.data)
	}
	return s.text == other.text
}

// Parse deserializes the wire form. A leading "0x" followed by valid hex is
// treated as KindAbiEncoded; everything else, including ambiguous short hex
// without a "0x" prefix, is KindString.
func Parse(raw string) Signal {
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		if decoded, err := hex.DecodeString(raw[2:]); err == nil {
			return AbiEncoded(decoded)
		}
	}
	return String(raw)
}

// MarshalJSON implements json.Marshaler using the wire string form.
func (s Signal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.WireString() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Signal) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	*s = Parse(raw)
	return nil
}

// Encode returns the legacy v3-compatible hex-prefixed hash-to-field of the
// signal's bytes. An absent signal (nil) encodes to the empty string.
func Encode(s *Signal) string {
	if s == nil {
		return ""
	}
	return cryptokit.HashToField(s.Bytes())
}
