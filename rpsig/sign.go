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

package rpsig

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/worldcoin/idkit-go/cryptokit"
	"github.com/worldcoin/idkit-go/field"
)

// DefaultTTL is the lifetime granted to an RP context when the caller does
// not specify one.
const DefaultTTL = 300 * time.Second

const (
	messageLen   = 48
	signatureLen = 65
	// maxClockSkew bounds how far into the future created_at may sit
	// relative to the verifier's clock.
	maxClockSkew = 60 * time.Second
)

var (
	// ErrClockSkew is returned when created_at is too far in the future.
	ErrClockSkew = errors.New("rpsig: created_at too far in the future")
	// ErrInvertedLifetime is returned when expires_at does not exceed created_at.
	ErrInvertedLifetime = errors.New("rpsig: expires_at must be after created_at")
	// ErrMalformedSignature is returned by SignatureBytes on bad hex or length.
	ErrMalformedSignature = errors.New("rpsig: malformed signature")
)

// Context is the RP context bound into a proof request: a signed
// attestation, from the relying party, of a nonce and a validity window.
//
// The action argument threaded through Sign is retained only for
// source-compatibility with callers migrating from an earlier protocol
// version that bound the action into this signature. The current 48-byte
// message layout never includes it, and implementations must not
// reintroduce it without a corresponding authenticator change.
type Context struct {
	RPID      string
	Nonce     field.Element
	CreatedAt uint64
	ExpiresAt uint64
	Signature string
}

// Sign produces a fresh RP context: a random nonce, a validity window of
// length ttl (DefaultTTL if ttl <= 0) starting now, and a 65-byte
// recoverable ECDSA signature over the canonical 48-byte message layout.
//
// action is accepted for source-compatibility only; see the Context doc.
func Sign(key *SigningKey, rpID string, action string, ttl time.Duration) (Context, error) {
	_ = action

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	nonceBytes, err := cryptokit.GenerateKey()
	if err != nil {
		return Context{}, fmt.Errorf("rpsig: generating nonce: %w", err)
	}
	nonce, err := field.FromBytes(nonceBytes)
	if err != nil {
		return Context{}, fmt.Errorf("rpsig: encoding nonce: %w", err)
	}

	now := uint64(time.Now().Unix())
	expiresAt := now + uint64(ttl.Seconds())

	message := buildMessage(nonce, now, expiresAt)
	hash := cryptokit.Keccak256(message)

	sig, err := gethcrypto.Sign(hash, key.ECDSA())
	if err != nil {
		return Context{}, fmt.Errorf("rpsig: signing: %w", err)
	}
	wire := toWireSignature(sig)

	return Context{
		RPID:      rpID,
		Nonce:     nonce,
		CreatedAt: now,
		ExpiresAt: expiresAt,
		Signature: "0x" + hex.EncodeToString(wire),
	}, nil
}

// Validate checks the timestamp invariants a caller or verifier must
// enforce on a context, whether freshly constructed or parsed off the wire.
func (c Context) Validate() error {
	now := uint64(time.Now().Unix())
	if c.CreatedAt > now+uint64(maxClockSkew.Seconds()) {
		return ErrClockSkew
	}
	if c.CreatedAt >= c.ExpiresAt {
		return ErrInvertedLifetime
	}
	if _, err := c.SignatureBytes(); err != nil {
		return err
	}
	return nil
}

// SignatureBytes decodes the hex signature into its raw 65-byte form.
func (c Context) SignatureBytes() ([]byte, error) {
	raw := strings.TrimPrefix(c.Signature, "0x")
	decoded, err := hex.DecodeString(raw)
	if err != nil || len(decoded) != signatureLen {
		return nil, ErrMalformedSignature
	}
	return decoded, nil
}

// RecoverPublicKey recovers the 65-byte uncompressed public key that
// produced this context's signature, using the same canonical message
// layout Sign used.
func RecoverPublicKey(c Context) ([]byte, error) {
	sig, err := c.SignatureBytes()
	if err != nil {
		return nil, err
	}
	message := buildMessage(c.Nonce, c.CreatedAt, c.ExpiresAt)
	hash := cryptokit.Keccak256(message)

	recoverable := make([]byte, signatureLen)
	copy(recoverable, sig[:64])
	recoverable[64] = sig[64] - 27

	pub, err := gethcrypto.Ecrecover(hash, recoverable)
	if err != nil {
		return nil, fmt.Errorf("rpsig: recovering public key: %w", err)
	}
	return pub, nil
}

// buildMessage lays out the exact 48-byte message the signature is
// computed over: nonce (32) || created_at big-endian u64 (8) ||
// expires_at big-endian u64 (8).
func buildMessage(nonce field.Element, createdAt, expiresAt uint64) []byte {
	msg := make([]byte, 0, messageLen)
	msg = append(msg, nonce.Bytes()...)
	msg = binary.BigEndian.AppendUint64(msg, createdAt)
	msg = binary.BigEndian.AppendUint64(msg, expiresAt)
	return msg
}

// toWireSignature converts go-ethereum's 0/1 recovery id convention into
// the wire's r || s || (v_raw + 27) layout.
func toWireSignature(sig []byte) []byte {
	wire := make([]byte, signatureLen)
	copy(wire, sig[:64])
	wire[64] = sig[64] + 27
	return wire
}
