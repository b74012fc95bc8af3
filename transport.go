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
	"time"

	"github.com/panoramakit/go-aioscreen/internal/syncutil"
)

// Port is the byte-stream duplex handle the session sequencer writes frames
// to. The real implementation lives in transport/serial; tests use MockPort.
//
// The link is fire and forget: nothing here reads responses, the firmware
// never sends any during a configuration session.
type Port interface {
	// WriteAll writes the whole buffer or fails.
	WriteAll(p []byte) error

	// Flush blocks until buffered output has been handed to the device.
	Flush() error

	// ClearBuffers discards any pending bytes in both directions.
	// Best effort; callers tolerate failure.
	ClearBuffers() error

	// SetReadTimeout bounds reads on the underlying handle. The session
	// never reads, but the handle is opened with a bounded timeout so a
	// misbehaving driver cannot wedge the worker.
	SetReadTimeout(timeout time.Duration) error

	// Close closes the port.
	Close() error
}

// PortOpener opens a Port on a device path. transport/serial.Open satisfies
// this; tests substitute their own.
type PortOpener func(device string, baudRate int, readTimeout time.Duration) (Port, error)

// Serial link parameters required by the panel firmware.
const (
	// BaudRate is the only rate the firmware speaks.
	BaudRate = 115200
	// ReadTimeout bounds individual reads on the opened handle.
	ReadTimeout = 2 * time.Second
)

// MockPort is an in-memory Port for tests. It records every write and can
// inject an error on the Nth write, counted from 1.
type MockPort struct {
	writeErr     error
	mu           syncutil.Mutex
	writes       [][]byte
	failOnWrite  int
	writeCount   int
	flushCount   int
	clearCount   int
	clearErr     error
	closed       bool
	readTimeout  time.Duration
	timeoutCalls int
}

// NewMockPort creates a connected mock port.
func NewMockPort() *MockPort {
	return &MockPort{}
}

// FailOnWrite makes the Nth WriteAll (1-based) and every later one return err.
func (m *MockPort) FailOnWrite(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOnWrite = n
	m.writeErr = err
}

// FailOnClear makes ClearBuffers return err.
func (m *MockPort) FailOnClear(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearErr = err
}

// WriteAll implements Port.
func (m *MockPort) WriteAll(p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrTransportClosed
	}
	m.writeCount++
	if m.failOnWrite > 0 && m.writeCount >= m.failOnWrite {
		return m.writeErr
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	m.writes = append(m.writes, buf)
	return nil
}

// Flush implements Port.
func (m *MockPort) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrTransportClosed
	}
	m.flushCount++
	return nil
}

// ClearBuffers implements Port.
func (m *MockPort) ClearBuffers() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCount++
	return m.clearErr
}

// SetReadTimeout implements Port.
func (m *MockPort) SetReadTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readTimeout = timeout
	m.timeoutCalls++
	return nil
}

// Close implements Port.
func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Writes returns a copy of every successfully written buffer, in order.
func (m *MockPort) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}

// WriteCount returns how many WriteAll calls were attempted, including
// failed ones.
func (m *MockPort) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCount
}

// ClearCount returns how many times ClearBuffers was called.
func (m *MockPort) ClearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearCount
}

// Closed reports whether Close was called.
func (m *MockPort) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Ensure MockPort implements Port
var _ Port = (*MockPort)(nil)
