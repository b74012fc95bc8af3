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

package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Frame decode/encode errors
var (
	ErrPayloadTooLarge  = errors.New("escaped payload exceeds length field capacity")
	ErrFrameTooShort    = errors.New("frame shorter than minimum frame length")
	ErrBadMarker        = errors.New("frame marker missing or wrong")
	ErrLengthMismatch   = errors.New("length field does not match payload")
	ErrChecksumMismatch = errors.New("frame checksum mismatch")
)

// Encode wraps a raw command message into a single wire frame. The message
// is escaped first; the length field and checksum describe the escaped
// bytes. Pure function, no side effects.
func Encode(message []byte) ([]byte, error) {
	escaped := Escape(message)
	if len(escaped) > MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(escaped))
	}

	out := make([]byte, 0, len(escaped)+frameOverhead)
	out = append(out, Marker)
	out = binary.BigEndian.AppendUint16(out, uint16(len(escaped)))
	out = append(out, escaped...)
	out = append(out, Checksum(escaped))
	out = append(out, Marker)
	return out, nil
}

// Decode is the inverse of Encode. The host side of this protocol only ever
// encodes, but the encoding must be unambiguous and reversible; Decode
// validates markers, length and checksum, then unescapes the payload.
func Decode(wire []byte) ([]byte, error) {
	if len(wire) < MinFrameLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(wire))
	}
	if wire[0] != Marker {
		return nil, fmt.Errorf("%w: start byte 0x%02X", ErrBadMarker, wire[0])
	}
	if wire[len(wire)-1] != Marker {
		return nil, fmt.Errorf("%w: end byte 0x%02X", ErrBadMarker, wire[len(wire)-1])
	}

	length := int(binary.BigEndian.Uint16(wire[1:3]))
	if length != len(wire)-frameOverhead {
		return nil, fmt.Errorf("%w: field says %d, payload is %d",
			ErrLengthMismatch, length, len(wire)-frameOverhead)
	}

	escaped := wire[3 : 3+length]
	if got, want := wire[3+length], Checksum(escaped); got != want {
		return nil, fmt.Errorf("%w: got 0x%02X, want 0x%02X", ErrChecksumMismatch, got, want)
	}

	return Unescape(escaped)
}
