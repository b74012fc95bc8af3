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
	"fmt"

	"github.com/panoramakit/go-aioscreen/internal/syncutil"
)

// EventKind tags a session event.
type EventKind int

const (
	// EventLog is a human-readable log line.
	EventLog EventKind = iota
	// EventProgress carries a fraction in [0,1] and a status text.
	EventProgress
	// EventSuccess terminates a transfer successfully.
	EventSuccess
	// EventError terminates a transfer with a failure. Text carries the
	// full wrapped cause chain.
	EventError
)

// Event is the payload of the worker-to-foreground queue. Exactly one
// worker produces events per session; the consumer observes them in send
// order.
type Event struct {
	Text     string
	Kind     EventKind
	Progress float64
}

// Terminal reports whether the event ends a transfer.
func (e Event) Terminal() bool {
	return e.Kind == EventSuccess || e.Kind == EventError
}

// EventQueue is an unbounded FIFO between the transfer worker and the
// foreground consumer. Push never blocks; Drain never blocks and returns
// all queued events in push order. Internally synchronized, so neither
// side needs locking of its own.
type EventQueue struct {
	mu     syncutil.Mutex
	events []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event. Never blocks.
func (q *EventQueue) Push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in order. Returns nil when
// the queue is empty. Never blocks.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// emitter is the worker-side convenience wrapper around a queue.
type emitter struct {
	q *EventQueue
}

func (e emitter) log(format string, args ...any) {
	e.q.Push(Event{Kind: EventLog, Text: fmt.Sprintf(format, args...)})
}

func (e emitter) progress(fraction float64, status string) {
	e.q.Push(Event{Kind: EventProgress, Progress: fraction, Text: status})
}

func (e emitter) success(text string) {
	e.q.Push(Event{Kind: EventSuccess, Progress: 1.0, Text: text})
}

func (e emitter) error(err error) {
	e.q.Push(Event{Kind: EventError, Text: err.Error()})
}

// maxLogLines bounds the StatusView's trailing log window.
const maxLogLines = 100

// StatusView is the externally visible state a foreground loop derives from
// drained events. It is owned by the consumer and mutated only through
// Apply; the worker never touches it.
type StatusView struct {
	// StatusText is the last progress or terminal status line.
	StatusText string
	// LogLines is a trailing window of log output, oldest first.
	LogLines []string
	// Progress is the current fraction in [0,1].
	Progress float64
	// Processing is true from the first applied event of a session until
	// a terminal event arrives.
	Processing bool
}

// NewStatusView returns a view in the idle state.
func NewStatusView() *StatusView {
	return &StatusView{StatusText: "Ready"}
}

// Apply folds one drained event into the view.
func (v *StatusView) Apply(ev Event) {
	switch ev.Kind {
	case EventLog:
		v.LogLines = append(v.LogLines, ev.Text)
		if len(v.LogLines) > maxLogLines {
			v.LogLines = v.LogLines[len(v.LogLines)-maxLogLines:]
		}
	case EventProgress:
		v.Processing = true
		v.Progress = ev.Progress
		v.StatusText = ev.Text
	case EventSuccess:
		v.Processing = false
		v.Progress = 1.0
		v.StatusText = ev.Text
	case EventError:
		v.Processing = false
		v.Progress = 0
		v.StatusText = "Error: " + ev.Text
	}
}

// ApplyAll folds a drained batch in order.
func (v *StatusView) ApplyAll(events []Event) {
	for _, ev := range events {
		v.Apply(ev)
	}
}
