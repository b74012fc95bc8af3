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

package adb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and replays scripted results.
type fakeRunner struct {
	calls  [][]string
	stdout []byte
	stderr []byte
	err    error
}

func (f *fakeRunner) run(args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, args)
	return f.stdout, f.stderr, f.err
}

func TestPushInvokesAdb(t *testing.T) {
	t.Parallel()
	fake := &fakeRunner{}
	agent := &Agent{run: fake.run}

	err := agent.Push("/tmp/img.png", "/sdcard/pcMedia/img.png")
	require.NoError(t, err)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"push", "/tmp/img.png", "/sdcard/pcMedia/img.png"}, fake.calls[0])
}

func TestPushSurfacesStderr(t *testing.T) {
	t.Parallel()
	fake := &fakeRunner{
		stderr: []byte("adb: error: device offline\n"),
		err:    errors.New("exit status 1"),
	}
	agent := &Agent{run: fake.run}

	err := agent.Push("/tmp/img.png", "/sdcard/pcMedia/img.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device offline")
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestWaitForDevice(t *testing.T) {
	t.Parallel()
	fake := &fakeRunner{}
	agent := &Agent{run: fake.run}

	require.NoError(t, agent.WaitForDevice())
	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"wait-for-device"}, fake.calls[0])
}

func TestStatSize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		stdout  string
		runErr  error
		want    int64
		wantErr bool
	}{
		{
			name:   "plain size",
			stdout: "48213\n",
			want:   48213,
		},
		{
			name:   "windows line ending",
			stdout: "7\r\n",
			want:   7,
		},
		{
			name:    "missing file",
			stdout:  "",
			runErr:  errors.New("exit status 1"),
			wantErr: true,
		},
		{
			name:    "garbage output",
			stdout:  "stat: bad call",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := &fakeRunner{stdout: []byte(tt.stdout), err: tt.runErr}
			agent := &Agent{run: fake.run}

			size, err := agent.StatSize("/sdcard/pcMedia/x.png")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, size)
		})
	}
}
