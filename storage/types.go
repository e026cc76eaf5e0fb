// SAGE - Secure Agent Guarantee Engine
// Copyright (C) 2025 SAGE-X-project
//
// This file is part of SAGE.
//
// SAGE is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SAGE is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with SAGE. If not, see <https://www.gnu.org/licenses/>.

// Package storage defines the non-secret audit trail a relying party may
// keep of the bridge sessions it created. It never persists the symmetric
// key, nonce, ciphertext or decrypted proof -- only enough metadata to
// answer "what happened to request X".
package storage

import "time"

// AuditRecord is one bridge session's audit trail entry.
type AuditRecord struct {
	RequestID     string
	AppID         string
	Action        string
	Status        string
	FailureReason string
	CreatedAt     time.Time
	TerminalAt    *time.Time
}
