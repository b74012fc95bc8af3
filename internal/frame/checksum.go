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

// Checksum computes the frame checksum for a data buffer.
// This is an unsigned 8-bit sum of all bytes with wraparound, computed over
// the escaped payload. The firmware expects exactly this weak sum; it must
// never be replaced with a CRC.
func Checksum(data []byte) byte {
	chk := byte(0)
	for _, b := range data {
		chk += b
	}
	return chk
}
