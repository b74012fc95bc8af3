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
	"fmt"
)

// Error categories. Every step of a transfer short-circuits on the first
// error; there is no retry logic anywhere in this package, so the
// categories exist for diagnostics rather than retry decisions.
var (
	// Transport errors
	ErrTransportWrite  = errors.New("transport write failed")
	ErrTransportFlush  = errors.New("transport flush failed")
	ErrTransportClosed = errors.New("transport is closed")

	// Agent errors
	ErrDeviceNotFound = errors.New("device not found")
	ErrPushFailed     = errors.New("file push failed")

	// Orchestrator errors
	ErrTransferInFlight = errors.New("a transfer is already in flight")
	ErrNoFileSelected   = errors.New("no file selected")

	// Serialization errors - a command body that fails to encode is a
	// programming invariant violation, the schemas are fixed
	ErrBodyEncode = errors.New("command body JSON encoding failed")
)

// ErrorType categorizes a transport error.
type ErrorType int

const (
	// ErrorTypeTransient indicates an error that might not recur on a
	// fresh session (timeouts, EINTR style failures).
	ErrorTypeTransient ErrorType = iota
	// ErrorTypePermanent indicates an error that will recur (port gone,
	// device unplugged).
	ErrorTypePermanent
)

// TransportError wraps port-level failures with the operation and port name
// so a terminal event can show full context.
type TransportError struct {
	Err  error
	Op   string
	Port string
	Type ErrorType
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
