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
	"encoding/json"
	"fmt"
)

// Wire command names. Case sensitive, sent verbatim in the request line.
const (
	// CmdTelemetry carries a telemetry snapshot. It doubles as the
	// keepalive; the firmware treats the link as idle without it.
	CmdTelemetry = "all"

	// CmdMediaDelete removes stale media from the device. The body lists
	// the files to keep, not the files to delete.
	CmdMediaDelete = "mediaDelete"

	// CmdScreenConfig applies the full screen configuration.
	CmdScreenConfig = "waterBlockScreenId"

	// CmdTransport and CmdTransported belong to the legacy flow that
	// announces a file's size and MD5 over the serial link instead of
	// pushing it out of band.
	CmdTransport   = "transport"
	CmdTransported = "transported"
)

// mediaDeleteBody asks the firmware to delete everything in its media
// directory except the listed files.
type mediaDeleteBody struct {
	Exclude []string `json:"exclude"`
}

// transportBody announces an upcoming file in the legacy flow.
type transportBody struct {
	Type     string `json:"type"`
	FileSize int64  `json:"fileSize"`
	FileName string `json:"fileName"`
}

// transportedBody closes the legacy announcement with the file's MD5.
type transportedBody struct {
	MD5      string `json:"md5"`
	FileName string `json:"fileName"`
}

// screenConfigBody nests the full screen configuration the way the
// firmware's JSON parser expects it.
type screenConfigBody struct {
	ID             string             `json:"id"`
	ScreenMode     string             `json:"screenMode"`
	PlayMode       string             `json:"playMode"`
	Ratio          string             `json:"ratio"`
	Media          []string           `json:"media"`
	Settings       screenSettingsBody `json:"settings"`
	SysinfoDisplay []string           `json:"sysinfoDisplay"`
}

type screenSettingsBody struct {
	Color  string           `json:"color"`
	Align  string           `json:"align"`
	Filter screenFilterBody `json:"filter"`
	Badges []string         `json:"badges"`
}

type screenFilterBody struct {
	// Value is always JSON null; the vendor app never populates it.
	Value   *string `json:"value"`
	Opacity uint8   `json:"opacity"`
}

// encodeBody marshals a command body. A failure here is an invariant
// violation, the schemas are fixed, but it is still surfaced instead of
// panicking so a session ends in a terminal Error event.
func encodeBody(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBodyEncode, err)
	}
	return string(data), nil
}

// mediaDeleteJSON builds the mediaDelete body excluding the given files
// from deletion.
func mediaDeleteJSON(keep ...string) (string, error) {
	if keep == nil {
		keep = []string{}
	}
	return encodeBody(mediaDeleteBody{Exclude: keep})
}

// transportJSON builds the legacy transport announcement body.
func transportJSON(fileName string, fileSize int64) (string, error) {
	return encodeBody(transportBody{Type: "media", FileSize: fileSize, FileName: fileName})
}

// transportedJSON builds the legacy transport completion body.
func transportedJSON(fileName, md5sum string) (string, error) {
	return encodeBody(transportedBody{MD5: md5sum, FileName: fileName})
}

// screenConfigJSON builds the waterBlockScreenId body for a configuration
// and the media file it should display.
func screenConfigJSON(cfg *ScreenConfig, fileName string) (string, error) {
	badges := cfg.Badges
	if badges == nil {
		badges = []string{}
	}
	display := cfg.SysinfoDisplay
	if display == nil {
		display = []string{}
	}
	return encodeBody(screenConfigBody{
		ID:         cfg.ID,
		ScreenMode: cfg.ScreenMode,
		PlayMode:   cfg.PlayMode,
		Ratio:      cfg.Ratio,
		Media:      []string{fileName},
		Settings: screenSettingsBody{
			Color:  cfg.Color,
			Align:  cfg.Align,
			Filter: screenFilterBody{Value: nil, Opacity: cfg.FilterOpacity},
			Badges: badges,
		},
		SysinfoDisplay: display,
	})
}
