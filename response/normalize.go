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

package response

import (
	"encoding/json"
	"fmt"

	"github.com/worldcoin/idkit-go/credential"
	"github.com/worldcoin/idkit-go/field"
	"github.com/worldcoin/idkit-go/internal/logger"
)

type errorEnvelope struct {
	ErrorCode string `json:"error_code"`
}

type v2Envelope struct {
	SessionID string            `json:"session_id"`
	Responses []json.RawMessage `json:"responses"`
}

type v4Item struct {
	ProtocolVersion string  `json:"protocol_version"`
	IssuerSchemaID  string  `json:"issuer_schema_id"`
	Proof           string  `json:"proof"`
	Nullifier       string  `json:"nullifier"`
	MerkleRoot      string  `json:"merkle_root"`
	ProofTimestamp  *uint64 `json:"proof_timestamp"`
}

type v3Item struct {
	ProtocolVersion   string `json:"protocol_version"`
	Proof             string `json:"proof"`
	MerkleRoot        string `json:"merkle_root"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
}

type v1Legacy struct {
	Proof             string `json:"proof"`
	MerkleRoot        string `json:"merkle_root"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
}

// Normalize decodes a decrypted response payload. On success it returns a
// *Result; if the payload was an error envelope it returns a nil *Result
// and a non-nil *AppError.
func Normalize(plaintext []byte) (*Result, *AppError, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(plaintext, &probe); err != nil {
		return nil, nil, fmt.Errorf("response: decoding payload: %w", err)
	}

	if raw, ok := probe["error_code"]; ok {
		var code string
		if err := json.Unmarshal(raw, &code); err != nil {
			return nil, nil, fmt.Errorf("response: decoding error envelope: %w", err)
		}
		return nil, &AppError{Kind: code}, nil
	}

	if _, ok := probe["responses"]; ok {
		result, err := normalizeV2(plaintext)
		return result, nil, err
	}

	var legacy v1Legacy
	if err := json.Unmarshal(plaintext, &legacy); err != nil {
		return nil, nil, fmt.Errorf("response: decoding legacy payload: %w", err)
	}
	return &Result{
		ProtocolVersion: ProtocolVersion3,
		Items: []Item{{
			Identifier: legacy.VerificationLevel,
			Proof:      legacy.Proof,
			Nullifier:  legacy.NullifierHash,
			MerkleRoot: legacy.MerkleRoot,
		}},
	}, nil, nil
}

func normalizeV2(plaintext []byte) (*Result, error) {
	var env v2Envelope
	if err := json.Unmarshal(plaintext, &env); err != nil {
		return nil, fmt.Errorf("response: decoding multi-credential payload: %w", err)
	}

	items := make([]Item, 0, len(env.Responses))
	hasV4 := false
	for _, raw := range env.Responses {
		var tag struct {
			ProtocolVersion string `json:"protocol_version"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return nil, fmt.Errorf("response: decoding response item: %w", err)
		}
		switch tag.ProtocolVersion {
		case ProtocolVersion4:
			var v v4Item
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("response: decoding v4 item: %w", err)
			}
			items = append(items, Item{
				Identifier:     resolveIdentifier(v.IssuerSchemaID),
				Proof:          v.Proof,
				Nullifier:      v.Nullifier,
				MerkleRoot:     v.MerkleRoot,
				ProofTimestamp: v.ProofTimestamp,
				IssuerSchemaID: v.IssuerSchemaID,
			})
			hasV4 = true
		case ProtocolVersion3:
			var v v3Item
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("response: decoding v3 item: %w", err)
			}
			items = append(items, Item{
				Identifier: v.VerificationLevel,
				Proof:      v.Proof,
				Nullifier:  v.NullifierHash,
				MerkleRoot: v.MerkleRoot,
			})
		default:
			return nil, fmt.Errorf("response: unrecognized protocol_version %q", tag.ProtocolVersion)
		}
	}

	version := ProtocolVersion3
	if hasV4 {
		version = ProtocolVersion4
	}
	return &Result{ProtocolVersion: version, SessionID: env.SessionID, Items: items}, nil
}

// resolveIdentifier maps an issuer-schema-id hex string to its credential
// kind, falling back to orb for malformed or unrecognized IDs. The fallback
// is deliberately preserved from the authenticator's existing behavior; it
// is ambiguous, so every fallback is logged at warning level.
func resolveIdentifier(issuerSchemaIDHex string) string {
	elem, err := field.Parse(issuerSchemaIDHex)
	if err != nil {
		logger.Warn("response: malformed issuer_schema_id, falling back to orb", logger.String("issuer_schema_id", issuerSchemaIDHex))
		return string(credential.Orb)
	}
	kind, ok := credential.FromSchemaIDElement(elem)
	if !ok {
		logger.Warn("response: unrecognized issuer_schema_id, falling back to orb", logger.String("issuer_schema_id", issuerSchemaIDHex))
		return string(credential.Orb)
	}
	return string(kind)
}
