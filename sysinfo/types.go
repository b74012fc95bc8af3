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

package sysinfo

// Snapshot is the telemetry payload of the "all" command. The JSON field
// names mirror the vendor app's payload exactly; the firmware's parser is
// case sensitive about them.
type Snapshot struct {
	Network     Network `json:"network"`
	Memory      Memory  `json:"memory"`
	CPU         CPU     `json:"cpu"`
	GPU         GPU     `json:"gpu"`
	Disk        Disk    `json:"disk"`
	Fans        []Fan   `json:"fans"`
	Motherboard Board   `json:"motherboard"`
	// Timestamp is the capture time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Network carries interface throughput in bytes per second.
type Network struct {
	Upload   uint64 `json:"upload"`
	Download uint64 `json:"download"`
}

// Memory carries RAM usage. Total and Used are megabytes.
type Memory struct {
	Total       uint64 `json:"total"`
	Used        uint64 `json:"used"`
	Load        uint8  `json:"load"`
	Temperature uint8  `json:"temperature"`
	Speed       uint32 `json:"speed"`
}

// CPU carries processor load, temperature and electricals.
type CPU struct {
	Load         uint8   `json:"load"`
	Temperature  uint8   `json:"temperature"`
	SpeedAverage uint32  `json:"speedAverage"`
	Power        uint32  `json:"power"`
	Voltage      float32 `json:"voltage"`
	Usage        uint8   `json:"usage"`
}

// GPU carries graphics card readings.
type GPU struct {
	Load        uint8   `json:"load"`
	Temperature uint8   `json:"temperature"`
	Fan         uint32  `json:"fan"`
	Speed       uint32  `json:"speed"`
	Power       uint32  `json:"power"`
	Voltage     float32 `json:"voltage"`
}

// Disk carries root filesystem usage. Total and Used are gigabytes.
type Disk struct {
	Total       uint64 `json:"total"`
	Used        uint64 `json:"used"`
	Load        uint8  `json:"load"`
	Activity    uint8  `json:"activity"`
	Temperature uint8  `json:"temperature"`
	ReadSpeed   uint64 `json:"readSpeed"`
	WriteSpeed  uint64 `json:"writeSpeed"`
}

// Fan is one fan tachometer reading.
type Fan struct {
	OnBoard bool   `json:"onBoard"`
	Name    string `json:"name"`
	Value   uint32 `json:"value"`
}

// Board carries motherboard sensor readings.
type Board struct {
	Temperature    uint8 `json:"temperature"`
	PCHTemperature uint8 `json:"pchTemperature"`
}
