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

// Package adb implements the file transfer agent on top of the adb CLI.
// The panel's controller board runs Android and exposes adb over the same
// USB connection as the serial link; media files are pushed through it
// rather than over the framed protocol.
package adb

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	aioscreen "github.com/panoramakit/go-aioscreen"
)

// runner executes one adb invocation and returns its combined stdout,
// stderr and exit error. Tests substitute a fake.
type runner func(args ...string) (stdout, stderr []byte, err error)

// Agent shells out to adb. The zero value is not usable; call NewAgent.
type Agent struct {
	run runner
}

// NewAgent creates an agent that invokes the adb binary from PATH.
func NewAgent() *Agent {
	return &Agent{run: execAdb}
}

func execAdb(args ...string) ([]byte, []byte, error) {
	cmd := exec.Command("adb", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// WaitForDevice blocks until adb reports a reachable device.
func (a *Agent) WaitForDevice() error {
	if _, stderr, err := a.run("wait-for-device"); err != nil {
		return fmt.Errorf("adb wait-for-device: %w%s", err, stderrSuffix(stderr))
	}
	return nil
}

// Push copies a local file to the remote path. On failure the agent's
// diagnostic text is carried in the error.
func (a *Agent) Push(localPath, remotePath string) error {
	if _, stderr, err := a.run("push", localPath, remotePath); err != nil {
		return fmt.Errorf("adb push %s: %w%s", remotePath, err, stderrSuffix(stderr))
	}
	return nil
}

// StatSize returns the byte size of a remote file.
func (a *Agent) StatSize(remotePath string) (int64, error) {
	stdout, stderr, err := a.run("shell", "stat", "-c", "%s", remotePath)
	if err != nil {
		return 0, fmt.Errorf("adb stat %s: %w%s", remotePath, err, stderrSuffix(stderr))
	}
	size, err := strconv.ParseInt(strings.TrimSpace(string(stdout)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("adb stat %s: unparseable size %q", remotePath, strings.TrimSpace(string(stdout)))
	}
	return size, nil
}

func stderrSuffix(stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if s == "" {
		return ""
	}
	return ": " + s
}

// Ensure Agent implements the orchestrator's contract
var _ aioscreen.FileAgent = (*Agent)(nil)
