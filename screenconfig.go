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

// ScreenConfig is the user-editable display configuration sent with
// waterBlockScreenId. The protocol layer never mutates it; a caller hands
// one in for the duration of a session.
//
// The string fields carry the vendor app's display labels verbatim ("Full
// Screen", "2:1", ...) - the firmware matches on those labels, not on
// normalized identifiers.
type ScreenConfig struct {
	// ID names the configuration slot on the device.
	ID string
	// ScreenMode is "Full Screen" or "Window".
	ScreenMode string
	// PlayMode is "Single", "Loop" or "Slideshow".
	PlayMode string
	// Ratio is the aspect ratio label: "2:1", "16:9", "4:3" or "1:1".
	Ratio string
	// Color is the overlay text color as "#rrggbb".
	Color string
	// Align is the overlay text alignment: "Left", "Center" or "Right".
	Align string
	// FilterOpacity dims the media behind overlays, 0-100.
	FilterOpacity uint8
	// Badges lists the enabled badge overlays, e.g. "CPU Badge".
	Badges []string
	// SysinfoDisplay lists the enabled system-info overlay fields,
	// e.g. "CPU Temperature".
	SysinfoDisplay []string
}

// DefaultScreenConfig returns the vendor app's defaults.
func DefaultScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:             "Customization",
		ScreenMode:     "Full Screen",
		PlayMode:       "Single",
		Ratio:          "2:1",
		Color:          "#dcdcdc",
		Align:          "Left",
		FilterOpacity:  100,
		Badges:         []string{"GPU Badge", "CPU Badge"},
		SysinfoDisplay: []string{"CPU Temperature", "GPU Temperature"},
	}
}
