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
	"time"

	"github.com/panoramakit/go-aioscreen/internal/frame"
)

// Pacing constants for the current session flow. Determined empirically
// against the panel firmware; treat them as protocol requirements, not
// tunables.
const (
	// settleDelay is waited after opening the port before the buffers are
	// cleared, so stale bytes from a previous session cannot be misread.
	settleDelay = 500 * time.Millisecond

	// interCommandDelay separates consecutive configuration commands.
	interCommandDelay = 300 * time.Millisecond

	// keepaliveInterval precedes each sustained keepalive. The firmware
	// treats the link as idle shortly after a configuration change
	// without this cadence.
	keepaliveInterval = 800 * time.Millisecond

	// sustainedKeepalives is how many trailing telemetry commands a
	// session sends after the configuration.
	sustainedKeepalives = 5
)

// Pacing constants for the legacy byte-announcement flow. These differ from
// the current flow's constants and must not be merged with them.
const (
	legacyCommandDelay = 300 * time.Millisecond
	legacyFinalDelay   = 500 * time.Millisecond
)

// Session executes one ordered command sequence over an already-open port.
// The port is treated as a fire-and-forget command channel: no responses
// are read, success means every frame was written and flushed.
type Session struct {
	port      Port
	telemetry TelemetrySource

	// now and sleep are swapped out by tests to run sessions instantly.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewSession creates a sequencer for one configuration session.
func NewSession(port Port, telemetry TelemetrySource) *Session {
	return &Session{
		port:      port,
		telemetry: telemetry,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Run performs the current session flow for a file already pushed to the
// device:
//
//  1. settle, then clear stale bytes from the port buffers (best effort)
//  2. telemetry keepalive, confirming the link before any change
//  3. mediaDelete excluding only the new file, so stale media is gone
//     before the configuration references it
//  4. telemetry keepalive
//  5. waterBlockScreenId with the full screen configuration
//  6. five more keepalives, each preceded by an 800ms pause
//
// The first write or flush error aborts the remaining steps. Nothing
// already written is rolled back; re-running the session converges to the
// same device state.
func (s *Session) Run(fileName string, cfg *ScreenConfig) error {
	s.settle()

	if err := s.sendTelemetry(); err != nil {
		return err
	}
	s.sleep(interCommandDelay)

	body, err := mediaDeleteJSON(fileName)
	if err != nil {
		return err
	}
	if err := s.send(CmdMediaDelete, body); err != nil {
		return err
	}
	s.sleep(interCommandDelay)

	if err := s.sendTelemetry(); err != nil {
		return err
	}
	s.sleep(interCommandDelay)

	if err := s.sendScreenConfig(cfg, fileName); err != nil {
		return err
	}

	for i := 0; i < sustainedKeepalives; i++ {
		s.sleep(keepaliveInterval)
		if err := s.sendTelemetry(); err != nil {
			return err
		}
	}
	Debugln("session complete, all commands flushed")

	return nil
}

// RunLegacy performs the older flow that announces the file's size and MD5
// over the serial link instead of relying on the out-of-band push. Kept for
// firmware revisions that predate mediaDelete; its delay constants are its
// own and intentionally not shared with Run.
func (s *Session) RunLegacy(fileName string, fileSize int64, fileMD5 string, cfg *ScreenConfig) error {
	s.settle()

	body, err := transportJSON(fileName, fileSize)
	if err != nil {
		return err
	}
	if err := s.send(CmdTransport, body); err != nil {
		return err
	}
	s.sleep(legacyCommandDelay)

	body, err = transportedJSON(fileName, fileMD5)
	if err != nil {
		return err
	}
	if err := s.send(CmdTransported, body); err != nil {
		return err
	}
	s.sleep(legacyCommandDelay)

	if err := s.sendScreenConfig(cfg, fileName); err != nil {
		return err
	}
	s.sleep(legacyFinalDelay)
	Debugln("legacy session complete, all commands flushed")

	return nil
}

// settle pauses briefly and discards whatever is sitting in the port
// buffers. Clear failures are tolerated; the write path will surface any
// real fault.
func (s *Session) settle() {
	s.sleep(settleDelay)
	if err := s.port.ClearBuffers(); err != nil {
		Debugf("clear buffers: %v", err)
	}
}

// sendTelemetry takes a fresh snapshot and sends it as the "all" command.
func (s *Session) sendTelemetry() error {
	snap, err := s.telemetry.Snapshot()
	if err != nil {
		return fmt.Errorf("telemetry snapshot: %w", err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: telemetry: %w", ErrBodyEncode, err)
	}
	return s.send(CmdTelemetry, string(data))
}

func (s *Session) sendScreenConfig(cfg *ScreenConfig, fileName string) error {
	body, err := screenConfigJSON(cfg, fileName)
	if err != nil {
		return err
	}
	return s.send(CmdScreenConfig, body)
}

// send frames one command message and writes it to the port. Every byte
// placed on the link goes through here; nothing is ever sent unframed.
func (s *Session) send(name, jsonBody string) error {
	message := buildCommandAt(name, jsonBody, s.now())
	wire, err := frame.Encode(message)
	if err != nil {
		return fmt.Errorf("frame %s: %w", name, err)
	}

	Debugf("sending %s (%d body bytes, frame: %d bytes)", name, len(jsonBody), len(wire))
	Debugf("frame hex: %s", framePreview(wire))

	if err := s.port.WriteAll(wire); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTransportWrite, name, err)
	}
	if err := s.port.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTransportFlush, name, err)
	}
	return nil
}
