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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportErrorFormat(t *testing.T) {
	t.Parallel()
	cause := errors.New("input/output error")

	withPort := &TransportError{Op: "write", Port: "/dev/ttyACM0", Err: cause}
	assert.Equal(t, "write /dev/ttyACM0: input/output error", withPort.Error())

	withoutPort := &TransportError{Op: "flush", Err: cause}
	assert.Equal(t, "flush: input/output error", withoutPort.Error())
}

func TestTransportErrorUnwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("short write: 3 of 10 bytes")
	err := &TransportError{Op: "write", Port: "COM3", Err: cause, Type: ErrorTypeTransient}

	assert.ErrorIs(t, err, cause)

	var te *TransportError
	require.ErrorAs(t, error(err), &te)
	assert.Equal(t, ErrorTypeTransient, te.Type)
}

func TestTelemetryFuncAdapter(t *testing.T) {
	t.Parallel()
	src := TelemetryFunc(func() (any, error) {
		return map[string]int{"timestamp": 1}, nil
	})

	snap, err := src.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"timestamp": 1}, snap)
}
