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

// Package bridge implements the end-to-end encrypted session a relying
// party establishes with an authenticator through the untrusted bridge
// relay: creation, the connect URL, polling, and decryption.
package bridge

import "errors"

var (
	// ErrInvalidConfiguration is returned for a bad bridge URL.
	ErrInvalidConfiguration = errors.New("bridge: invalid configuration")
	// ErrCrypto wraps a key-generation, AEAD or signing failure.
	ErrCrypto = errors.New("bridge: cryptographic operation failed")
	// ErrBridge is returned when POST /request fails cleanly (non-2xx) or
	// its body cannot be parsed.
	ErrBridge = errors.New("bridge: request rejected by bridge")
	// ErrUnexpectedResponse is returned for a well-formed HTTP reply
	// carrying an unrecognized status, or a completed reply missing its
	// response body.
	ErrUnexpectedResponse = errors.New("bridge: unexpected response shape")
	// ErrTimeout is returned when a caller-configured waiting budget
	// elapses before the session reaches a terminal status.
	ErrTimeout = errors.New("bridge: waiting for proof timed out")
)
