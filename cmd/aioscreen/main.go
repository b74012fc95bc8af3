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

// Command aioscreen pushes an image to an AIO cooler display panel and
// configures how the panel renders it.
//
// Usage:
//
//	aioscreen -image wallpaper.png [-device /dev/ttyACM0] [flags]
//
// The transfer runs on a background worker; the command drains the worker's
// event stream on a ticker and prints log lines and progress until the
// transfer ends. Sessions are not cancellable mid-step, so interrupting the
// process abandons the session rather than unwinding it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	aioscreen "github.com/panoramakit/go-aioscreen"
	"github.com/panoramakit/go-aioscreen/adb"
	"github.com/panoramakit/go-aioscreen/sysinfo"
	"github.com/panoramakit/go-aioscreen/transport/serial"
)

var (
	flagDevice     string
	flagImage      string
	flagID         string
	flagScreenMode string
	flagPlayMode   string
	flagRatio      string
	flagColor      string
	flagAlign      string
	flagOpacity    uint
	flagBadges     string
	flagSysinfo    string
	flagLegacy     bool
	flagDebug      bool
)

func init() {
	flag.StringVar(&flagDevice, "device", "/dev/ttyACM0", "Serial device of the panel")
	flag.StringVar(&flagImage, "image", "", "Image file to transfer (required)")
	flag.StringVar(&flagID, "id", "Customization", "Configuration slot id")
	flag.StringVar(&flagScreenMode, "screen-mode", "Full Screen", "Screen mode: Full Screen or Window")
	flag.StringVar(&flagPlayMode, "play-mode", "Single", "Play mode: Single, Loop or Slideshow")
	flag.StringVar(&flagRatio, "ratio", "2:1", "Aspect ratio: 2:1, 16:9, 4:3 or 1:1")
	flag.StringVar(&flagColor, "color", "#dcdcdc", "Overlay text color (#rrggbb)")
	flag.StringVar(&flagAlign, "align", "Left", "Overlay text alignment: Left, Center or Right")
	flag.UintVar(&flagOpacity, "opacity", 100, "Filter opacity, 0-100")
	flag.StringVar(&flagBadges, "badges", "GPU Badge,CPU Badge", "Comma-separated badge overlays")
	flag.StringVar(&flagSysinfo, "sysinfo", "CPU Temperature,GPU Temperature",
		"Comma-separated system-info overlay fields")
	flag.BoolVar(&flagLegacy, "legacy", false, "Use the legacy announce-over-serial session flow")
	flag.BoolVar(&flagDebug, "debug", false, "Enable wire-level debug logging")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if flagImage == "" {
		flag.Usage()
		return fmt.Errorf("no image file given")
	}
	if flagOpacity > 100 {
		return fmt.Errorf("opacity %d out of range 0-100", flagOpacity)
	}
	if flagDebug {
		aioscreen.SetDebugEnabled(true)
	}

	cfg := aioscreen.ScreenConfig{
		ID:             flagID,
		ScreenMode:     flagScreenMode,
		PlayMode:       flagPlayMode,
		Ratio:          flagRatio,
		Color:          flagColor,
		Align:          flagAlign,
		FilterOpacity:  uint8(flagOpacity),
		Badges:         splitList(flagBadges),
		SysinfoDisplay: splitList(flagSysinfo),
	}

	ctrl := aioscreen.NewController(flagDevice, serial.Open, adb.NewAgent(), sysinfo.NewReader())
	ctrl.Legacy = flagLegacy

	if err := ctrl.Start(flagImage, cfg); err != nil {
		return err
	}

	view := aioscreen.NewStatusView()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	done := false
	for !done {
		<-ticker.C
		for _, ev := range ctrl.Events().Drain() {
			render(view, ev)
			if ev.Terminal() {
				done = true
			}
		}
	}

	if strings.HasPrefix(view.StatusText, "Error:") {
		return fmt.Errorf("%s", strings.TrimPrefix(view.StatusText, "Error: "))
	}
	fmt.Println(view.StatusText)
	return nil
}

// render applies one event and prints what a user should see.
func render(view *aioscreen.StatusView, ev aioscreen.Event) {
	view.Apply(ev)
	switch ev.Kind {
	case aioscreen.EventLog:
		fmt.Println(ev.Text)
	case aioscreen.EventProgress:
		fmt.Printf("[%3.0f%%] %s\n", ev.Progress*100, ev.Text)
	case aioscreen.EventSuccess, aioscreen.EventError:
		// terminal state printed by run
	}
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
