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

// Package aioscreen drives the display panel embedded in AIO liquid-cooler
// water blocks that expose a USB CDC-ACM serial link (the protocol was
// reverse engineered from the vendor's serial data service).
//
// # Protocol
//
// Commands travel inside byte-stuffed frames:
//
//	[0x5A][escaped length:2B BE][escaped message][sum checksum:1B][0x5A]
//
// Each message is HTTP-like text: a request line "POST <command> 1", ten
// fixed Key=Value header lines, a blank line, then a JSON body. The link is
// fire and forget; the firmware never acknowledges a command, so sequencing
// and pacing between commands is the host's responsibility.
//
// # Usage
//
// Image files are pushed out of band with adb, then a serial session points
// the firmware at the new file and keeps the link alive:
//
//	ctrl := aioscreen.NewController("/dev/ttyACM0", serial.Open,
//	    adb.NewAgent(), sysinfo.NewReader())
//	if err := ctrl.Start("wallpaper.png", aioscreen.DefaultScreenConfig()); err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    for _, ev := range ctrl.Events().Drain() {
//	        // render logs and progress
//	    }
//	}
//
// The Controller runs each transfer on its own goroutine and reports through
// an ordered, non-blocking event queue; at most one transfer runs at a time.
//
// # Pacing
//
// The settle delay, the inter-command delays and the five 800ms-spaced
// trailing keepalives were determined empirically against the device
// firmware. They are protocol requirements, not tunables; shortening them
// makes the panel drop the link or ignore the configuration.
package aioscreen
