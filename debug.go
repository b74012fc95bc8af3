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

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// debugEnabled controls whether debug logging is active
var debugEnabled = false

// debugLogWriter receives every debug line with a timestamp, regardless of
// debugEnabled. Nil by default; set via SetDebugWriter.
var debugLogWriter io.Writer

func init() {
	if os.Getenv("AIOSCREEN_DEBUG") != "" || os.Getenv("DEBUG") != "" {
		debugEnabled = true
	}
}

// Debugf prints wire-level debug information.
// Always writes to the debug log writer (if set) with a timestamp.
// Only prints to console when debug mode is enabled.
func Debugf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	if debugLogWriter != nil {
		timestamp := time.Now().Format("15:04:05.000")
		_, _ = fmt.Fprintf(debugLogWriter, "%s DEBUG: %s\n", timestamp, message)
	}

	if debugEnabled {
		_, _ = fmt.Printf("DEBUG: %s\n", message)
	}
}

// Debugln prints wire-level debug information.
// Always writes to the debug log writer (if set) with a timestamp.
// Only prints to console when debug mode is enabled.
func Debugln(args ...any) {
	message := fmt.Sprint(args...)

	if debugLogWriter != nil {
		timestamp := time.Now().Format("15:04:05.000")
		_, _ = fmt.Fprintf(debugLogWriter, "%s DEBUG: %s\n", timestamp, message)
	}

	if debugEnabled {
		_, _ = fmt.Print("DEBUG: ")
		_, _ = fmt.Println(args...)
	}
}

// SetDebugEnabled allows programmatic control of debug logging.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// SetDebugWriter directs a copy of every debug line, timestamped, to w.
// Pass nil to disable. Useful for capturing a wire trace alongside normal
// console output.
func SetDebugWriter(w io.Writer) {
	debugLogWriter = w
}

// framePreview renders the first 30 and last 10 bytes of a frame as hex for
// debug logs. Full frames are too long to be useful in a terminal.
func framePreview(wire []byte) string {
	head := 30
	if head > len(wire) {
		head = len(wire)
	}
	tail := len(wire) - 10
	if tail < head {
		tail = head
	}
	return hex.EncodeToString(wire[:head]) + "..." + hex.EncodeToString(wire[tail:])
}
