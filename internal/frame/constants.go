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

// Package frame implements the byte-stuffing frame codec used by the cooler
// display firmware. A frame carries exactly one command message:
//
//	[0x5A][length:2B BE][escaped message][checksum:1B][0x5A]
//
// The length field and the checksum both describe the escaped message,
// never the raw one.
package frame

// Frame markers - the start and end marker are the same byte value
const (
	// Marker delimits both ends of a frame.
	Marker = 0x5A
	// EscapeMarker introduces a two-byte escape sequence inside the payload.
	EscapeMarker = 0x5B
)

// Escape substitution bytes - the second byte of each escape sequence
const (
	escapedMarker = 0x01 // 0x5A is sent as 0x5B 0x01
	escapedEscape = 0x02 // 0x5B is sent as 0x5B 0x02
)

// Frame size limits
const (
	// MaxPayloadLength is the largest escaped payload the 2-byte length
	// field can describe. The protocol only carries control messages, so
	// this is never hit in practice, but Encode guards it anyway.
	MaxPayloadLength = 0xFFFF

	// frameOverhead is marker + length(2) + checksum + marker.
	frameOverhead = 5

	// MinFrameLength is the smallest possible frame (empty payload).
	MinFrameLength = frameOverhead
)
