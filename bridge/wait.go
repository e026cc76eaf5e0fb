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
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/worldcoin/idkit-go/internal/metrics"
)

// DefaultPollInterval is how often WaitForProof re-polls a non-terminal
// session.
const DefaultPollInterval = 3 * time.Second

// DefaultWaitTimeout bounds how long WaitForProof waits before giving up
// locally.
const DefaultWaitTimeout = 5 * time.Minute

// WaitForProof polls at pollInterval (DefaultPollInterval if <= 0) until
// the session reaches a terminal status or timeout (DefaultWaitTimeout if
// <= 0) elapses. A timeout is a purely local failure: it does not mutate
// any bridge-side state, but it moves the session to StatusFailed with
// ReasonTimeout, so a subsequent Poll call returns that terminal status
// without contacting the bridge.
func (s *Session) WaitForProof(ctx context.Context, pollInterval, timeout time.Duration) (Status, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	started := time.Now()
	deadline := started.Add(timeout)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		status, err := s.Poll(ctx)
		if err != nil {
			return status, err
		}
		if status.Terminal() {
			outcome := "failed"
			if status == StatusConfirmed {
				outcome = "confirmed"
			}
			metrics.WaitDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
			return status, nil
		}
		if time.Now().After(deadline) {
			s.fail(ctx, ReasonTimeout)
			metrics.WaitDuration.WithLabelValues("timeout").Observe(time.Since(started).Seconds())
			return s.status, ErrTimeout
		}

		select {
		case <-ctx.Done():
			return s.status, ctx.Err()
		case <-ticker.C:
		}
	}
}

// WaitForAny waits on every session concurrently and returns the index of
// the first one to reach StatusConfirmed, cancelling the rest. If none
// confirms before every session either fails or times out, it returns -1
// and ErrTimeout.
func WaitForAny(ctx context.Context, sessions []*Session, pollInterval, timeout time.Duration) (int, error) {
	groupCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(groupCtx)

	var mu sync.Mutex
	winner := -1

	for i, sess := range sessions {
		i, sess := i, sess
		g.Go(func() error {
			status, err := sess.WaitForProof(gctx, pollInterval, timeout)
			if err != nil {
				return nil
			}
			if status == StatusConfirmed {
				mu.Lock()
				if winner == -1 {
					winner = i
				}
				mu.Unlock()
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	if winner == -1 {
		return -1, ErrTimeout
	}
	return winner, nil
}
