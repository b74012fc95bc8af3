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
	"strings"
	"time"
)

// seqModulus keeps the SeqNumber header short. Collisions across the
// modulus boundary are tolerated, nothing is keyed on the value.
const seqModulus = 100_000

// CommandMessage is the header set of one wire command. A message is
// constructed fresh per send, serialized immediately and discarded; nothing
// in this package persists or re-reads one.
//
// The -1 fields are reserved placeholders the firmware's header parser
// expects even when meaningless for the command. Whether it ever inspects
// them outside the legacy byte-transfer flow is unknown, so they are sent
// verbatim rather than omitted.
type CommandMessage struct {
	CommandName   string
	Body          string
	SeqNumber     int64 // epoch ms mod 100000
	AckNumber     int64 // always -1, no ack protocol
	ContentLength int   // byte length of Body
	TimestampMS   int64 // epoch ms, unmodulated
	FileName      int64 // always -1
	FileSize      int64 // always -1
	ContentRange  int64 // always -1
	Counter       int64 // always -1
	MsgID         int64 // always -1
}

// newCommandMessage fills the header set for one command at the given time.
func newCommandMessage(name, body string, now time.Time) *CommandMessage {
	ms := now.UnixMilli()
	return &CommandMessage{
		CommandName:   name,
		Body:          body,
		SeqNumber:     ms % seqModulus,
		AckNumber:     -1,
		ContentLength: len(body),
		TimestampMS:   ms,
		FileName:      -1,
		FileSize:      -1,
		ContentRange:  -1,
		Counter:       -1,
		MsgID:         -1,
	}
}

// Bytes serializes the message in the firmware's HTTP-like text format: a
// request line, ten CRLF-terminated Key=Value header lines in fixed order,
// a blank line, then the raw body with no trailing terminator.
func (m *CommandMessage) Bytes() []byte {
	var b strings.Builder
	b.Grow(len(m.Body) + 160)
	fmt.Fprintf(&b, "POST %s 1\r\n", m.CommandName)
	fmt.Fprintf(&b, "SeqNumber=%d\r\n", m.SeqNumber)
	fmt.Fprintf(&b, "AckNumber=%d\r\n", m.AckNumber)
	fmt.Fprintf(&b, "ContentLength=%d\r\n", m.ContentLength)
	b.WriteString("ContentType=json\r\n")
	fmt.Fprintf(&b, "FileName=%d\r\n", m.FileName)
	fmt.Fprintf(&b, "FileSize=%d\r\n", m.FileSize)
	fmt.Fprintf(&b, "ContentRange=%d\r\n", m.ContentRange)
	fmt.Fprintf(&b, "Counter=%d\r\n", m.Counter)
	fmt.Fprintf(&b, "Date=%d\r\n", m.TimestampMS)
	fmt.Fprintf(&b, "msgId=%d\r\n", m.MsgID)
	b.WriteString("\r\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}

// BuildCommand composes the wire message for a command name and JSON body.
// The output is always framed before transmission; it is never written to
// the link as is.
func BuildCommand(name, jsonBody string) []byte {
	return buildCommandAt(name, jsonBody, time.Now())
}

func buildCommandAt(name, jsonBody string, now time.Time) []byte {
	return newCommandMessage(name, jsonBody, now).Bytes()
}
