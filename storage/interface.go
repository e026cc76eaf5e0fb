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

package storage

import (
	"context"
	"time"
)

// AuditStore persists the non-secret lifecycle of bridge sessions.
type AuditStore interface {
	// Create records a newly created session.
	Create(ctx context.Context, record *AuditRecord) error

	// UpdateStatus records a status transition. terminalAt is non-nil only
	// when status is a terminal status.
	UpdateStatus(ctx context.Context, requestID, status, failureReason string, terminalAt *time.Time) error

	// Get retrieves a session's audit record by request ID.
	Get(ctx context.Context, requestID string) (*AuditRecord, error)

	// List returns the most recent records for an app, newest first.
	List(ctx context.Context, appID string, limit int) ([]*AuditRecord, error)

	// Close releases any underlying connection resources.
	Close() error

	// Ping checks the storage connection.
	Ping(ctx context.Context) error
}
