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
)

// schemaDDL creates the audit table if it does not already exist. It
// carries no secret columns: no key, nonce, ciphertext or proof payload.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS bridge_session_audit (
	request_id     TEXT PRIMARY KEY,
	app_id         TEXT NOT NULL,
	action         TEXT NOT NULL,
	status         TEXT NOT NULL,
	failure_reason TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL,
	terminal_at    TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS bridge_session_audit_app_id_created_at_idx
	ON bridge_session_audit (app_id, created_at DESC);
`

// Migrate creates the audit table and its supporting index if they do not
// already exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("storage/postgres: applying schema: %w", err)
	}
	return nil
}
