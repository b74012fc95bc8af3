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
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0,
		},
		{
			name: "single byte",
			data: []byte{0x42},
			want: 0x42,
		},
		{
			name: "wraparound",
			data: []byte{0xFF, 0x01},
			want: 0x00, // 255 + 1 = 256, truncated to 0
		},
		{
			name: "escaped reference payload",
			data: []byte{0x5B, 0x01, 0x5B, 0x02, 0x41},
			want: byte((0x5B + 0x01 + 0x5B + 0x02 + 0x41) % 256),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%02X, want 0x%02X", got, tt.want)
			}
			// Deterministic: re-computation gives the same value
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() second run = 0x%02X, want 0x%02X", got, tt.want)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			name: "passthrough",
			in:   []byte("POST all 1"),
			want: []byte("POST all 1"),
		},
		{
			name: "marker byte",
			in:   []byte{0x5A},
			want: []byte{0x5B, 0x01},
		},
		{
			name: "escape byte",
			in:   []byte{0x5B},
			want: []byte{0x5B, 0x02},
		},
		{
			name: "reference sequence",
			in:   []byte{0x5A, 0x5B, 0x41},
			want: []byte{0x5B, 0x01, 0x5B, 0x02, 0x41},
		},
		{
			name: "empty",
			in:   []byte{},
			want: []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Escape(tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Escape() = % X, want % X", got, tt.want)
			}

			// Escaped output never contains a bare reserved byte
			for i, b := range got {
				if b == Marker {
					t.Errorf("Escape() leaked bare marker at offset %d", i)
				}
				if b == EscapeMarker && (i+1 >= len(got) ||
					(got[i+1] != escapedMarker && got[i+1] != escapedEscape)) {
					t.Errorf("Escape() leaked bare escape marker at offset %d", i)
				}
			}

			back, err := Unescape(got)
			if err != nil {
				t.Fatalf("Unescape() error: %v", err)
			}
			if !bytes.Equal(back, tt.in) {
				t.Errorf("Unescape(Escape()) = % X, want % X", back, tt.in)
			}
		})
	}
}

func TestUnescapeRejectsMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   []byte
	}{
		{name: "dangling escape", in: []byte{0x41, 0x5B}},
		{name: "unknown substitution", in: []byte{0x5B, 0x03}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Unescape(tt.in); !errors.Is(err, ErrBadEscape) {
				t.Errorf("Unescape() error = %v, want ErrBadEscape", err)
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	t.Parallel()
	message := []byte{0x5A, 0x5B, 0x41}

	wire, err := Encode(message)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	escaped := []byte{0x5B, 0x01, 0x5B, 0x02, 0x41}
	want := []byte{Marker, 0x00, 0x05}
	want = append(want, escaped...)
	want = append(want, Checksum(escaped), Marker)
	if !bytes.Equal(wire, want) {
		t.Fatalf("Encode() = % X, want % X", wire, want)
	}

	// The length field counts escaped bytes and both delimiters are the
	// same marker constant.
	if got := int(binary.BigEndian.Uint16(wire[1:3])); got != len(escaped) {
		t.Errorf("length field = %d, want %d", got, len(escaped))
	}
	if wire[0] != wire[len(wire)-1] {
		t.Errorf("start marker 0x%02X != end marker 0x%02X", wire[0], wire[len(wire)-1])
	}
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	t.Parallel()
	// Every 0x5A escapes to two bytes, so 0x8000+1 markers overflow the
	// 16-bit length field.
	message := bytes.Repeat([]byte{Marker}, MaxPayloadLength/2+1)
	if _, err := Encode(message); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("Encode() error = %v, want ErrPayloadTooLarge", err)
	}
}

func TestDecodeRejectsCorruptFrames(t *testing.T) {
	t.Parallel()
	good, err := Encode([]byte("POST all 1\r\n"))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	corrupt := func(mutate func([]byte)) []byte {
		c := make([]byte, len(good))
		copy(c, good)
		mutate(c)
		return c
	}

	tests := []struct {
		name string
		wire []byte
		want error
	}{
		{
			name: "too short",
			wire: []byte{Marker, 0x00, 0x00, Marker},
			want: ErrFrameTooShort,
		},
		{
			name: "bad start marker",
			wire: corrupt(func(c []byte) { c[0] = 0x00 }),
			want: ErrBadMarker,
		},
		{
			name: "bad end marker",
			wire: corrupt(func(c []byte) { c[len(c)-1] = 0x00 }),
			want: ErrBadMarker,
		},
		{
			name: "length mismatch",
			wire: corrupt(func(c []byte) { c[2]++ }),
			want: ErrLengthMismatch,
		},
		{
			name: "checksum mismatch",
			wire: corrupt(func(c []byte) { c[len(c)-2]++ }),
			want: ErrChecksumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode(tt.wire); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func FuzzEncodeDecodeRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("POST mediaDelete 1\r\n\r\n{\"exclude\":[\"a.png\"]}"))
	f.Add([]byte{0x5A, 0x5B, 0x5A, 0x5B, 0x00, 0xFF})

	f.Fuzz(func(t *testing.T, message []byte) {
		wire, err := Encode(message)
		if err != nil {
			// Only the length guard may fail
			if !errors.Is(err, ErrPayloadTooLarge) {
				t.Fatalf("Encode() unexpected error: %v", err)
			}
			return
		}

		back, err := Decode(wire)
		if err != nil {
			t.Fatalf("Decode() error: %v", err)
		}
		if !bytes.Equal(back, message) {
			t.Fatalf("round trip mismatch: in % X, out % X", message, back)
		}
	})
}
