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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaDeleteJSON(t *testing.T) {
	t.Parallel()

	body, err := mediaDeleteJSON("a.png")
	require.NoError(t, err)
	assert.Equal(t, `{"exclude":["a.png"]}`, body)

	body, err = mediaDeleteJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"exclude":[]}`, body, "empty exclude list must encode as [], not null")
}

func TestTransportBodies(t *testing.T) {
	t.Parallel()

	body, err := transportJSON("img.png", 48213)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"media","fileSize":48213,"fileName":"img.png"}`, body)

	body, err = transportedJSON("img.png", "d41d8cd98f00b204e9800998ecf8427e")
	require.NoError(t, err)
	assert.JSONEq(t, `{"md5":"d41d8cd98f00b204e9800998ecf8427e","fileName":"img.png"}`, body)
}

func TestScreenConfigJSON(t *testing.T) {
	t.Parallel()
	cfg := DefaultScreenConfig()

	body, err := screenConfigJSON(&cfg, "2026-01-02_15-04-05-123.png")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "Customization",
		"screenMode": "Full Screen",
		"playMode": "Single",
		"ratio": "2:1",
		"media": ["2026-01-02_15-04-05-123.png"],
		"settings": {
			"color": "#dcdcdc",
			"align": "Left",
			"filter": {"value": null, "opacity": 100},
			"badges": ["GPU Badge", "CPU Badge"]
		},
		"sysinfoDisplay": ["CPU Temperature", "GPU Temperature"]
	}`, body)
}

func TestScreenConfigJSONEmptyOverlays(t *testing.T) {
	t.Parallel()
	cfg := ScreenConfig{ID: "Customization", FilterOpacity: 30}

	body, err := screenConfigJSON(&cfg, "x.png")
	require.NoError(t, err)

	// nil slices must still encode as [] for the firmware's parser.
	assert.Contains(t, body, `"badges":[]`)
	assert.Contains(t, body, `"sysinfoDisplay":[]`)
	assert.Contains(t, body, `"opacity":30`)
}
