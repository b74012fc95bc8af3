// Copyright 2026 The Panoramakit Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package aioscreen

// TelemetrySource produces the payload for the "all" keepalive command.
// The protocol layer treats the snapshot as opaque: whatever Snapshot
// returns is JSON-encoded and sent as the command body.
//
// Snapshot is called fresh before every keepalive send; implementations
// must not cache across calls, the panel displays the values live.
// The sysinfo package provides the host implementation.
type TelemetrySource interface {
	Snapshot() (any, error)
}

// TelemetryFunc adapts a function to the TelemetrySource interface.
type TelemetryFunc func() (any, error)

// Snapshot implements TelemetrySource.
func (f TelemetryFunc) Snapshot() (any, error) {
	return f()
}
