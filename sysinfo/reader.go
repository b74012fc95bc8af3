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

// Package sysinfo reads host sensor data for the panel's telemetry overlay.
// Linux only: sources are /sys thermal zones and hwmon nodes, /proc, the
// nvidia-smi CLI and statfs on the root filesystem.
//
// A Snapshot is produced fresh on every call and missing sensors degrade to
// zero values rather than errors - a keepalive must always be sendable even
// on hosts with no readable sensors.
package sysinfo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// Placeholder values for sensors the host cannot read generically. The
// vendor app hard-codes the same ones.
const (
	placeholderMemSpeedMHz = 3200
	placeholderCPUSpeedMHz = 3000
	placeholderCPUVoltage  = 1.0
)

// Reader produces telemetry snapshots from the host. It implements the
// aioscreen.TelemetrySource contract.
type Reader struct {
	// fsRoot is prepended to every path read, "/" in production.
	// Tests point it at a fixture tree.
	fsRoot string
	// run executes an external probe command (nvidia-smi).
	run func(name string, args ...string) ([]byte, error)
	// statfs reports filesystem usage for a path.
	statfs func(path string) (total, free uint64, err error)
	// now stamps snapshots.
	now func() time.Time
}

// NewReader creates a production reader.
func NewReader() *Reader {
	return &Reader{
		fsRoot: "/",
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
		statfs: statfsRoot,
		now:    time.Now,
	}
}

func statfsRoot(path string) (total, free uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := uint64(st.Bsize)
	return st.Blocks * bsize, st.Bavail * bsize, nil
}

// Snapshot captures the current host state. It never fails; unreadable
// sensors report zero.
func (r *Reader) Snapshot() (any, error) {
	cpuLoad := r.cpuLoad()
	memTotal, memUsed, memLoad := r.memoryInfo()
	diskTotal, diskUsed, diskLoad := r.diskInfo()

	return &Snapshot{
		Network: Network{},
		Memory: Memory{
			Total: memTotal,
			Used:  memUsed,
			Load:  memLoad,
			Speed: placeholderMemSpeedMHz,
		},
		CPU: CPU{
			Load:         cpuLoad,
			Temperature:  r.cpuTemp(),
			SpeedAverage: placeholderCPUSpeedMHz,
			Voltage:      placeholderCPUVoltage,
			Usage:        cpuLoad,
		},
		GPU: GPU{
			Temperature: r.gpuTemp(),
		},
		Disk: Disk{
			Total: diskTotal,
			Used:  diskUsed,
			Load:  diskLoad,
		},
		Fans:        []Fan{},
		Motherboard: Board{},
		Timestamp:   r.now().UnixMilli(),
	}, nil
}

// cpuTemp scans thermal zones first, then coretemp hwmon nodes.
func (r *Reader) cpuTemp() uint8 {
	for i := 0; i < 10; i++ {
		p := filepath.Join(r.fsRoot, "sys/class/thermal", fmt.Sprintf("thermal_zone%d", i), "temp")
		if t, ok := r.readMilliDegrees(p); ok {
			return t
		}
	}
	for i := 0; i < 10; i++ {
		p := filepath.Join(r.fsRoot, "sys/class/hwmon", fmt.Sprintf("hwmon%d", i), "temp1_input")
		if t, ok := r.readMilliDegrees(p); ok {
			return t
		}
	}
	return 0
}

// gpuTemp tries nvidia-smi first, then AMD hwmon nodes under drm.
func (r *Reader) gpuTemp() uint8 {
	if out, err := r.run("nvidia-smi",
		"--query-gpu=temperature.gpu", "--format=csv,noheader,nounits"); err == nil {
		if t, err := strconv.ParseUint(strings.TrimSpace(string(out)), 10, 8); err == nil {
			return uint8(t)
		}
	}

	for _, card := range []string{"card0", "card1"} {
		for i := 0; i < 5; i++ {
			p := filepath.Join(r.fsRoot, "sys/class/drm", card, "device/hwmon",
				fmt.Sprintf("hwmon%d", i), "temp1_input")
			if t, ok := r.readMilliDegrees(p); ok {
				return t
			}
		}
	}
	return 0
}

// readMilliDegrees reads a sysfs temperature node in millidegrees C.
func (r *Reader) readMilliDegrees(path string) (uint8, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	milli, err := strconv.ParseInt(strings.TrimSpace(string(content)), 10, 32)
	if err != nil || milli < 0 {
		return 0, false
	}
	return clampTemp(milli / 1000), true
}

// memoryInfo reads /proc/meminfo. Values are megabytes.
func (r *Reader) memoryInfo() (total, used uint64, load uint8) {
	content, err := os.ReadFile(filepath.Join(r.fsRoot, "proc/meminfo"))
	if err != nil {
		return 0, 0, 0
	}
	return parseMeminfo(string(content))
}

// cpuLoad estimates load from the 1-minute average, scaled into a
// percentage the way the vendor app does it.
func (r *Reader) cpuLoad() uint8 {
	content, err := os.ReadFile(filepath.Join(r.fsRoot, "proc/loadavg"))
	if err != nil {
		return 0
	}
	return parseLoadavg(string(content))
}

// diskInfo reports root filesystem usage in gigabytes.
func (r *Reader) diskInfo() (total, used uint64, load uint8) {
	totalBytes, freeBytes, err := r.statfs(r.fsRoot)
	if err != nil || totalBytes == 0 {
		return 0, 0, 0
	}
	usedBytes := totalBytes - freeBytes
	const gb = 1024 * 1024 * 1024
	return totalBytes / gb, usedBytes / gb, uint8(usedBytes * 100 / totalBytes)
}

func parseMeminfo(content string) (total, used uint64, load uint8) {
	var totalKB, availableKB uint64
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			totalKB = meminfoValue(line)
		case strings.HasPrefix(line, "MemAvailable:"):
			availableKB = meminfoValue(line)
		}
	}
	if totalKB == 0 {
		return 0, 0, 0
	}
	usedKB := totalKB - availableKB
	return totalKB / 1024, usedKB / 1024, uint8(usedKB * 100 / totalKB)
}

func meminfoValue(line string) uint64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	v, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseLoadavg(content string) uint8 {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return 0
	}
	load1, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return 0
	}
	pct := load1 * 25.0
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return uint8(pct)
}

func clampTemp(v int64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
