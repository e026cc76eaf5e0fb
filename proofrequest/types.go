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

// Package proofrequest composes credential requests, a constraint tree and
// a signed RP context into the authenticated envelope the bridge relays to
// an authenticator.
package proofrequest

import "github.com/worldcoin/idkit-go/constraint"

// legacyVerificationLevelDeprecated is the sentinel value a request carries
// in its legacy verification_level slot when no legacy level applies. It is
// deliberately not a valid level so a v3-only client rejects the envelope
// instead of silently accepting it when a v4 flow is actually required.
const legacyVerificationLevelDeprecated = "deprecated"

// ProtocolVersion is the only proof-request wire version this library
// emits.
const ProtocolVersion = 1

// ProofRequest is the authenticated, version-1 proof request body.
type ProofRequest struct {
	ID            string                    `json:"id"`
	Version       int                       `json:"version"`
	CreatedAt     uint64                    `json:"created_at"`
	ExpiresAt     uint64                    `json:"expires_at"`
	RPID          string                    `json:"rp_id"`
	OPRFKeyID     string                    `json:"oprf_key_id"`
	Action        string                    `json:"action"`
	OPRFPublicKey string                    `json:"oprf_public_key"`
	Signature     string                    `json:"signature"`
	Nonce         string                    `json:"nonce"`
	Items         []constraint.ProtocolItem `json:"proof_requests"`
	Constraints   *constraint.Expr          `json:"constraints,omitempty"`
}

// Envelope is the full request handed to a bridge session for encryption
// and submission.
type Envelope struct {
	AppID             string       `json:"app_id"`
	Action            string       `json:"action"`
	ActionDescription string       `json:"action_description,omitempty"`
	Signal            string       `json:"signal"`
	VerificationLevel string       `json:"verification_level"`
	ProofRequest      ProofRequest `json:"proof_request"`
	AllowLegacyProofs bool         `json:"allow_legacy_proofs"`
}
