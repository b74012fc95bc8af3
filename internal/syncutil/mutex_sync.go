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

//go:build !deadlock

// Package syncutil provides mutex types that can optionally use deadlock
// detection. By default, standard sync.Mutex and sync.RWMutex are used with
// zero overhead. Build with -tags=deadlock to enable detection via
// github.com/sasha-s/go-deadlock.
package syncutil

import "sync"

// Mutex wraps sync.Mutex. Build with -tags=deadlock for deadlock detection.
type Mutex struct {
	sync.Mutex
}

// RWMutex wraps sync.RWMutex. Build with -tags=deadlock for deadlock detection.
type RWMutex struct {
	sync.RWMutex
}
