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
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panoramakit/go-aioscreen/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTelemetry returns a distinct snapshot per call so freshness is
// observable on the wire.
type countingTelemetry struct {
	calls atomic.Int64
	err   error
}

func (c *countingTelemetry) Snapshot() (any, error) {
	n := c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return map[string]int64{"timestamp": n}, nil
}

// newTestSession wires a session to a mock port with instant pacing,
// recording every sleep.
func newTestSession(port Port, src TelemetrySource) (*Session, *[]time.Duration) {
	s := NewSession(port, src)
	sleeps := &[]time.Duration{}
	s.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return s, sleeps
}

// commandNames decodes every written frame and extracts the request-line
// command names, verifying along the way that only full frames hit the
// wire.
func commandNames(t *testing.T, port *MockPort) []string {
	t.Helper()
	var names []string
	for _, wire := range port.Writes() {
		message, err := frame.Decode(wire)
		require.NoError(t, err, "every write must be one whole valid frame")

		line, _, found := strings.Cut(string(message), "\r\n")
		require.True(t, found)
		fields := strings.Fields(line)
		require.Len(t, fields, 3)
		require.Equal(t, "POST", fields[0])
		require.Equal(t, "1", fields[2])
		names = append(names, fields[1])
	}
	return names
}

func TestSessionRunCommandOrder(t *testing.T) {
	t.Parallel()
	port := NewMockPort()
	src := &countingTelemetry{}
	s, sleeps := newTestSession(port, src)
	cfg := DefaultScreenConfig()

	require.NoError(t, s.Run("2026-01-02_15-04-05-123.png", &cfg))

	want := []string{
		"all", "mediaDelete", "all", "waterBlockScreenId",
		"all", "all", "all", "all", "all",
	}
	assert.Equal(t, want, commandNames(t, port))
	assert.Equal(t, 1, port.ClearCount(), "stale bytes cleared once at settle")
	assert.Equal(t, int64(7), src.calls.Load(), "a fresh snapshot per telemetry send")

	// Pacing: settle, three inter-command delays, then 800ms before each
	// of the five sustained keepalives.
	assert.Equal(t, []time.Duration{
		settleDelay,
		interCommandDelay, interCommandDelay, interCommandDelay,
		keepaliveInterval, keepaliveInterval, keepaliveInterval,
		keepaliveInterval, keepaliveInterval,
	}, *sleeps)
}

func TestSessionRunMediaDeleteExcludesNewFile(t *testing.T) {
	t.Parallel()
	port := NewMockPort()
	s, _ := newTestSession(port, &countingTelemetry{})
	cfg := DefaultScreenConfig()

	require.NoError(t, s.Run("keepme.png", &cfg))

	message, err := frame.Decode(port.Writes()[1])
	require.NoError(t, err)
	assert.Contains(t, string(message), `{"exclude":["keepme.png"]}`)
}

func TestSessionRunAbortsOnThirdSustainedKeepalive(t *testing.T) {
	t.Parallel()
	port := NewMockPort()
	// Writes 1-4 are the configuration steps; writes 5-9 are the
	// sustained keepalives, so the 3rd keepalive is write 7.
	port.FailOnWrite(7, errors.New("device unplugged"))
	s, _ := newTestSession(port, &countingTelemetry{})
	cfg := DefaultScreenConfig()

	err := s.Run("x.png", &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransportWrite)
	assert.Contains(t, err.Error(), "device unplugged", "cause chain is preserved")
	assert.Equal(t, 7, port.WriteCount(), "keepalives 4 and 5 must not be attempted")
}

func TestSessionRunAbortsOnEarlyFailure(t *testing.T) {
	t.Parallel()
	port := NewMockPort()
	port.FailOnWrite(2, errors.New("write error"))
	s, _ := newTestSession(port, &countingTelemetry{})
	cfg := DefaultScreenConfig()

	err := s.Run("x.png", &cfg)
	require.Error(t, err)
	assert.Equal(t, 2, port.WriteCount(), "mediaDelete failure stops the session")
}

func TestSessionToleratesClearBufferFailure(t *testing.T) {
	t.Parallel()
	port := NewMockPort()
	port.FailOnClear(errors.New("ioctl failed"))
	s, _ := newTestSession(port, &countingTelemetry{})
	cfg := DefaultScreenConfig()

	assert.NoError(t, s.Run("x.png", &cfg), "buffer clearing is best effort")
}

func TestSessionTelemetrySnapshotError(t *testing.T) {
	t.Parallel()
	port := NewMockPort()
	src := &countingTelemetry{err: errors.New("sensor tree vanished")}
	s, _ := newTestSession(port, src)
	cfg := DefaultScreenConfig()

	err := s.Run("x.png", &cfg)
	require.Error(t, err)
	assert.Equal(t, 0, port.WriteCount(), "nothing written after a snapshot failure")
}

func TestSessionRunLegacyCommandOrder(t *testing.T) {
	t.Parallel()
	port := NewMockPort()
	s, sleeps := newTestSession(port, &countingTelemetry{})
	cfg := DefaultScreenConfig()

	require.NoError(t, s.RunLegacy("img.png", 48213, "0123456789abcdef0123456789abcdef", &cfg))

	assert.Equal(t, []string{"transport", "transported", "waterBlockScreenId"},
		commandNames(t, port))

	message, err := frame.Decode(port.Writes()[0])
	require.NoError(t, err)
	assert.Contains(t, string(message), `"fileSize":48213`)

	message, err = frame.Decode(port.Writes()[1])
	require.NoError(t, err)
	assert.Contains(t, string(message), `"md5":"0123456789abcdef0123456789abcdef"`)

	// Legacy pacing is distinct from the current flow's and must stay so.
	assert.Equal(t, []time.Duration{
		settleDelay, legacyCommandDelay, legacyCommandDelay, legacyFinalDelay,
	}, *sleeps)
}
