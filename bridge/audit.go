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

package bridge

import (
	"context"
	"time"

	"github.com/worldcoin/idkit-go/internal/logger"
	"github.com/worldcoin/idkit-go/storage"
)

// Option configures optional Session behavior at creation time.
type Option func(*Session)

// WithAuditStore records the session's non-secret lifecycle (creation and
// terminal status) in store under appID/action. A store write failure
// never fails the session operation it was attached to; it is only
// logged, since the audit trail is observability, not correctness.
func WithAuditStore(store storage.AuditStore, appID, action string) Option {
	return func(s *Session) {
		s.audit = store
		s.auditAppID = appID
		s.auditAction = action
	}
}

func (s *Session) recordCreated(ctx context.Context) {
	if s.audit == nil {
		return
	}
	err := s.audit.Create(ctx, &storage.AuditRecord{
		RequestID: s.requestID,
		AppID:     s.auditAppID,
		Action:    s.auditAction,
		Status:    s.status.String(),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("bridge: recording audit creation failed", logger.String("request_id", s.requestID), logger.Error(err))
	}
}

func (s *Session) recordStatus(ctx context.Context) {
	if s.audit == nil {
		return
	}
	var terminalAt *time.Time
	if s.status.Terminal() {
		now := time.Now().UTC()
		terminalAt = &now
	}
	err := s.audit.UpdateStatus(ctx, s.requestID, s.status.String(), string(s.reason), terminalAt)
	if err != nil {
		logger.Warn("bridge: recording audit status failed", logger.String("request_id", s.requestID), logger.Error(err))
	}
}
