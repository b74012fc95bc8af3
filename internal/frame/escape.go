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
	"errors"
	"fmt"
)

// ErrBadEscape indicates an escaped payload that cannot be reversed: a
// dangling escape marker at the end of the data or an unknown substitution
// byte after one.
var ErrBadEscape = errors.New("invalid escape sequence")

// Escape applies the byte-stuffing rule to a raw message:
//
//	0x5A -> 0x5B 0x01
//	0x5B -> 0x5B 0x02
//
// Every other byte passes through unchanged. The result never contains a
// bare Marker or EscapeMarker byte, so the frame boundary stays unambiguous.
func Escape(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/8)
	for _, b := range data {
		switch b {
		case Marker:
			out = append(out, EscapeMarker, escapedMarker)
		case EscapeMarker:
			out = append(out, EscapeMarker, escapedEscape)
		default:
			out = append(out, b)
		}
	}
	return out
}

// Unescape reverses Escape. The sending side never needs this, but the
// transformation must round-trip for any receiver and for the codec tests.
func Unescape(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != EscapeMarker {
			out = append(out, b)
			continue
		}
		i++
		if i >= len(data) {
			return nil, fmt.Errorf("%w: dangling escape at offset %d", ErrBadEscape, i-1)
		}
		switch data[i] {
		case escapedMarker:
			out = append(out, Marker)
		case escapedEscape:
			out = append(out, EscapeMarker)
		default:
			return nil, fmt.Errorf("%w: unknown substitution 0x%02X at offset %d", ErrBadEscape, data[i], i)
		}
	}
	return out, nil
}
