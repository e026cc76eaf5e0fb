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

// Package metrics exposes Prometheus collectors for bridge session
// activity: sessions created, polls issued, poll latency, and terminal
// outcomes.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "idkit"

// Registry is the dedicated collector registry metrics are registered
// against, rather than the global default, so embedding applications can
// run their own Prometheus registry alongside this library's.
var Registry = prometheus.NewRegistry()
