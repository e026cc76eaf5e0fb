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

package proofrequest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/worldcoin/idkit-go/constraint"
	"github.com/worldcoin/idkit-go/cryptokit"
	"github.com/worldcoin/idkit-go/field"
	"github.com/worldcoin/idkit-go/rpsig"
	"github.com/worldcoin/idkit-go/signal"
)

// ErrInvalidConfiguration is returned for caller-supplied configuration
// that cannot produce a valid envelope: a malformed app_id, an invalid
// constraint tree, or an RP context that fails its own invariants.
var ErrInvalidConfiguration = errors.New("proofrequest: invalid configuration")

var appIDPattern = regexp.MustCompile(`^app_[A-Za-z0-9_]+$`)

const stagingAppIDPrefix = "app_staging_"

// IsStagingAppID reports whether appID belongs to the staging subset, which
// relaxes bridge URL validation.
func IsStagingAppID(appID string) bool {
	return strings.HasPrefix(appID, stagingAppIDPrefix)
}

// Input collects everything needed to build a proof-request envelope.
type Input struct {
	AppID              string
	Action             string
	ActionDescription  string
	Tree               constraint.Node
	RPContext          rpsig.Context
	OPRFKeyID          string
	OPRFPublicKey      string
	LegacyVerification string
	LegacySignal       *signal.Signal
	AllowLegacyProofs  bool
}

// Build validates the tree and RP context, normalizes constraints, derives
// the action field element, and composes the full envelope.
func Build(in Input) (Envelope, error) {
	if !appIDPattern.MatchString(in.AppID) {
		return Envelope{}, fmt.Errorf("%w: app_id %q does not match ^app_[A-Za-z0-9_]+$", ErrInvalidConfiguration, in.AppID)
	}
	if err := in.RPContext.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	items, expr, err := constraint.ToProtocolForm(in.Tree)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	actionElement, err := field.Parse(cryptokit.HashToField([]byte(in.Action)))
	if err != nil {
		return Envelope{}, fmt.Errorf("proofrequest: deriving action field element: %w", err)
	}

	verificationLevel := legacyVerificationLevelDeprecated
	if in.LegacyVerification != "" {
		verificationLevel = in.LegacyVerification
	}

	req := ProofRequest{
		ID:            uuid.New().String(),
		Version:       ProtocolVersion,
		CreatedAt:     in.RPContext.CreatedAt,
		ExpiresAt:     in.RPContext.ExpiresAt,
		RPID:          in.RPContext.RPID,
		OPRFKeyID:     in.OPRFKeyID,
		Action:        actionElement.String(),
		OPRFPublicKey: in.OPRFPublicKey,
		Signature:     in.RPContext.Signature,
		Nonce:         in.RPContext.Nonce.String(),
		Items:         items,
		Constraints:   expr,
	}

	return Envelope{
		AppID:             in.AppID,
		Action:            in.Action,
		ActionDescription: in.ActionDescription,
		Signal:            signal.Encode(in.LegacySignal),
		VerificationLevel: verificationLevel,
		ProofRequest:      req,
		AllowLegacyProofs: in.AllowLegacyProofs,
	}, nil
}
