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
	"crypto/md5" //nolint:gosec // wire requirement: the transported command carries an MD5
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// FileAgent copies a local file onto the device out of band and verifies
// its presence. The adb package provides the production implementation.
type FileAgent interface {
	// WaitForDevice blocks until a device is reachable.
	WaitForDevice() error
	// Push copies local to the remote path.
	Push(localPath, remotePath string) error
	// StatSize returns the size of a remote file, for post-push
	// verification.
	StatSize(remotePath string) (int64, error)
}

// MediaDir is where pushed media lands on the device.
const MediaDir = "/sdcard/pcMedia"

// remoteNameLayout is the second-resolution part of a pushed file's name.
// The millisecond suffix is appended separately: time.Format only treats
// "000" as fractional seconds directly after a "." or ",".
const remoteNameLayout = "2006-01-02_15-04-05"

// Controller drives end-to-end transfers: hash, push, then the serial
// configuration session. One dedicated worker goroutine runs per transfer
// and at most one transfer is in flight at a time.
type Controller struct {
	device    string
	open      PortOpener
	agent     FileAgent
	telemetry TelemetrySource
	events    *EventQueue

	// Legacy selects the older announce-over-serial session flow.
	Legacy bool

	inFlight atomic.Bool

	// newSession is swapped by tests to insert session doubles.
	newSession func(Port, TelemetrySource) *Session
}

// NewController creates a controller for one serial device.
func NewController(device string, open PortOpener, agent FileAgent, telemetry TelemetrySource) *Controller {
	return &Controller{
		device:     device,
		open:       open,
		agent:      agent,
		telemetry:  telemetry,
		events:     NewEventQueue(),
		newSession: NewSession,
	}
}

// Events returns the queue a foreground loop should drain.
func (c *Controller) Events() *EventQueue {
	return c.events
}

// InFlight reports whether a transfer is currently running.
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// Start launches one transfer on a background worker. It rejects an empty
// path and a second concurrent transfer synchronously, without dispatching
// a worker or emitting any event.
func (c *Controller) Start(imagePath string, cfg ScreenConfig) error {
	if imagePath == "" {
		return ErrNoFileSelected
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrTransferInFlight
	}

	go c.run(imagePath, cfg)
	return nil
}

// run is the worker. It performs only blocking operations and reports
// through the event queue; the terminal event clears the in-flight guard.
func (c *Controller) run(imagePath string, cfg ScreenConfig) {
	em := emitter{q: c.events}
	id := uuid.NewString()
	em.log("transfer %s: %s", id, imagePath)

	if err := c.transfer(em, imagePath, &cfg); err != nil {
		em.error(err)
	} else {
		em.log("Transfer complete!")
		em.success("Transfer complete!")
	}
	c.inFlight.Store(false)
}

func (c *Controller) transfer(em emitter, imagePath string, cfg *ScreenConfig) error {
	em.progress(0.1, "Hashing file...")

	sum, size, err := hashFile(imagePath)
	if err != nil {
		return fmt.Errorf("hash %s: %w", imagePath, err)
	}
	remoteName := remoteFileName(imagePath, time.Now())
	em.log("File: %s (%d bytes, MD5: %s)", imagePath, size, sum)

	em.progress(0.2, "Pushing to device...")
	em.log("Waiting for device...")
	if err := c.agent.WaitForDevice(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceNotFound, err)
	}

	remotePath := path.Join(MediaDir, remoteName)
	em.log("Pushing %s to %s", imagePath, remotePath)
	if err := c.agent.Push(imagePath, remotePath); err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	if remoteSize, err := c.agent.StatSize(remotePath); err != nil {
		Debugf("stat %s: %v", remotePath, err)
	} else if remoteSize != size {
		// Not fatal; the panel may still render a short file, but the
		// mismatch is worth surfacing.
		em.log("Size mismatch after push: local %d, remote %d", size, remoteSize)
	}

	em.progress(0.5, "Sending serial commands...")
	em.log("Opening serial port %s", c.device)
	port, err := c.open(c.device, BaudRate, ReadTimeout)
	if err != nil {
		return fmt.Errorf("open serial port %s: %w", c.device, err)
	}
	defer func() {
		if err := port.Close(); err != nil {
			Debugf("close port: %v", err)
		}
	}()

	session := c.newSession(port, c.telemetry)
	if c.Legacy {
		return session.RunLegacy(remoteName, size, sum, cfg)
	}
	return session.Run(remoteName, cfg)
}

// hashFile returns the MD5 content hash and size of a local file. MD5 is a
// wire requirement: the legacy transported command carries it, and it is
// logged for verification against what the device received.
func hashFile(p string) (sum string, size int64, err error) {
	f, err := os.Open(p)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = f.Close() }()

	h := md5.New() //nolint:gosec // see import note
	size, err = io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), size, nil
}

// remoteFileName derives the device-side name from local time at
// millisecond resolution, keeping the original extension. Millisecond
// resolution keeps rapid successive transfers from colliding.
func remoteFileName(localPath string, now time.Time) string {
	ext := strings.TrimPrefix(filepath.Ext(localPath), ".")
	if ext == "" {
		ext = "png"
	}
	ms := now.Nanosecond() / int(time.Millisecond)
	return fmt.Sprintf("%s-%03d.%s", now.Format(remoteNameLayout), ms, ext)
}
