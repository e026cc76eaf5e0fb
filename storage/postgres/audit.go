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

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/worldcoin/idkit-go/storage"
)

// Create inserts a new audit record for a freshly created session.
func (s *Store) Create(ctx context.Context, record *storage.AuditRecord) error {
	query := `
		INSERT INTO bridge_session_audit (request_id, app_id, action, status, failure_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query,
		record.RequestID,
		record.AppID,
		record.Action,
		record.Status,
		record.FailureReason,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("storage/postgres: creating audit record: %w", err)
	}
	return nil
}

// UpdateStatus records a status transition for an existing request.
func (s *Store) UpdateStatus(ctx context.Context, requestID, status, failureReason string, terminalAt *time.Time) error {
	query := `
		UPDATE bridge_session_audit
		SET status = $2, failure_reason = $3, terminal_at = $4
		WHERE request_id = $1
	`
	tag, err := s.pool.Exec(ctx, query, requestID, status, failureReason, terminalAt)
	if err != nil {
		return fmt.Errorf("storage/postgres: updating audit record %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("storage/postgres: audit record not found: %s", requestID)
	}
	return nil
}

// Get retrieves a session's audit record by request ID.
func (s *Store) Get(ctx context.Context, requestID string) (*storage.AuditRecord, error) {
	query := `
		SELECT request_id, app_id, action, status, failure_reason, created_at, terminal_at
		FROM bridge_session_audit
		WHERE request_id = $1
	`
	var record storage.AuditRecord
	err := s.pool.QueryRow(ctx, query, requestID).Scan(
		&record.RequestID,
		&record.AppID,
		&record.Action,
		&record.Status,
		&record.FailureReason,
		&record.CreatedAt,
		&record.TerminalAt,
	)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("storage/postgres: audit record not found: %s", requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage/postgres: getting audit record: %w", err)
	}
	return &record, nil
}

// List returns the most recent records for an app, newest first.
func (s *Store) List(ctx context.Context, appID string, limit int) ([]*storage.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT request_id, app_id, action, status, failure_reason, created_at, terminal_at
		FROM bridge_session_audit
		WHERE app_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.pool.Query(ctx, query, appID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage/postgres: listing audit records: %w", err)
	}
	defer rows.Close()

	var records []*storage.AuditRecord
	for rows.Next() {
		var record storage.AuditRecord
		if err := rows.Scan(
			&record.RequestID,
			&record.AppID,
			&record.Action,
			&record.Status,
			&record.FailureReason,
			&record.CreatedAt,
			&record.TerminalAt,
		); err != nil {
			return nil, fmt.Errorf("storage/postgres: scanning audit record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage/postgres: iterating audit records: %w", err)
	}
	return records, nil
}
