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


package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsCreated tracks total bridge sessions created, by whether the
	// POST /request call succeeded.
	SessionsCreated = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "created_total",
			Help:      "Total number of bridge sessions created",
		},
		[]string{"status"}, // success, failure
	)

	// SessionsTerminal tracks sessions reaching a terminal status, by
	// outcome.
	SessionsTerminal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "terminal_total",
			Help:      "Total number of sessions reaching a terminal status",
		},
		[]string{"status", "reason"}, // confirmed|failed, failure reason (empty for confirmed)
	)

	// PollsIssued tracks GET /response polls, by the status the bridge
	// returned.
	PollsIssued = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "polls_total",
			Help:      "Total number of bridge polls issued",
		},
		[]string{"bridge_status"}, // initialized, retrieved, completed, error
	)

	// PollDuration tracks the latency of a single poll round-trip.
	PollDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "poll_duration_seconds",
			Help:      "Latency of a single bridge poll round-trip",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		},
	)

	// WaitDuration tracks how long WaitForProof waited before returning,
	// whether it settled on a terminal status or a local timeout.
	WaitDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "wait_duration_seconds",
			Help:      "Duration of a wait-for-proof loop",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14), // 100ms to ~14min
		},
		[]string{"outcome"}, // confirmed, failed, timeout
	)
)
