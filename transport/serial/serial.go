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

// Package serial implements the aioscreen.Port interface on a real serial
// device via go.bug.st/serial. The panel enumerates as a USB CDC-ACM port
// (/dev/ttyACM* on Linux, COMn on Windows).
package serial

import (
	"fmt"
	"strings"
	"time"

	aioscreen "github.com/panoramakit/go-aioscreen"
	"go.bug.st/serial"
)

// Port wraps a serial handle as an aioscreen.Port.
type Port struct {
	port serial.Port
	name string
}

// Open opens a serial device with the panel's 8N1 framing. It satisfies
// aioscreen.PortOpener.
func Open(device string, baudRate int, readTimeout time.Duration) (aioscreen.Port, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}

	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", device, err)
	}

	return &Port{port: port, name: device}, nil
}

// WriteAll writes the whole buffer, detecting short writes.
func (p *Port) WriteAll(buf []byte) error {
	n, err := p.port.Write(buf)
	if err != nil {
		return &aioscreen.TransportError{
			Op: "write", Port: p.name, Err: err,
			Type: aioscreen.ErrorTypePermanent,
		}
	}
	if n != len(buf) {
		return &aioscreen.TransportError{
			Op: "write", Port: p.name,
			Err:  fmt.Errorf("short write: %d of %d bytes", n, len(buf)),
			Type: aioscreen.ErrorTypeTransient,
		}
	}
	return nil
}

// Flush blocks until the output buffer has drained to the device, retrying
// drains interrupted by signals.
func (p *Port) Flush() error {
	const maxRetries = 3
	baseDelay := 2 * time.Millisecond

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = p.port.Drain()
		if err == nil {
			return nil
		}
		if isInterruptedSystemCall(err) && attempt < maxRetries-1 {
			time.Sleep(baseDelay * time.Duration(1<<attempt)) // 2ms, 4ms
			continue
		}
		break
	}
	return &aioscreen.TransportError{
		Op: "flush", Port: p.name, Err: err,
		Type: aioscreen.ErrorTypeTransient,
	}
}

// ClearBuffers discards pending bytes in both directions. Best effort, the
// session tolerates failure here.
func (p *Port) ClearBuffers() error {
	if err := p.port.ResetInputBuffer(); err != nil {
		return &aioscreen.TransportError{
			Op: "clear input buffer", Port: p.name, Err: err,
			Type: aioscreen.ErrorTypeTransient,
		}
	}
	if err := p.port.ResetOutputBuffer(); err != nil {
		return &aioscreen.TransportError{
			Op: "clear output buffer", Port: p.name, Err: err,
			Type: aioscreen.ErrorTypeTransient,
		}
	}
	return nil
}

// SetReadTimeout bounds individual reads on the handle.
func (p *Port) SetReadTimeout(timeout time.Duration) error {
	if err := p.port.SetReadTimeout(timeout); err != nil {
		return fmt.Errorf("set read timeout on %s: %w", p.name, err)
	}
	return nil
}

// Close closes the port.
func (p *Port) Close() error {
	if err := p.port.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p.name, err)
	}
	return nil
}

// isInterruptedSystemCall checks for EINTR-style drain failures.
func isInterruptedSystemCall(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "interrupted system call") || strings.Contains(msg, "eintr")
}

// Ensure Port implements aioscreen.Port
var (
	_ aioscreen.Port       = (*Port)(nil)
	_ aioscreen.PortOpener = Open
)
