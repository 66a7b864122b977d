// Copyright (C) 2023 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"time"
)

// Message is a single log entry.
type Message struct {
	// Text is the message text.
	Text string
	// Time is the time the message was logged.
	Time time.Time
	// Severity is the severity of the message.
	Severity Severity
	// Tag is the optional tag associated with the log record.
	Tag string
	// Process is the name of the process that created the record.
	Process string
	// Trace is the list of nested scope names the message was logged in.
	Trace []string
	// Values is the list of key-value pairs bound to the logging context.
	Values []*Value
}

// Value is a key-value pair bound to a logging context.
type Value struct {
	Name  string
	Value interface{}
}

// Message returns a new Message with the given text.
func (l *Logger) Message(severity Severity, text string) *Message {
	var t time.Time
	if l.clock != nil {
		t = l.clock.Time()
	} else {
		t = time.Now()
	}
	return &Message{
		Text:     text,
		Time:     t,
		Severity: severity,
		Tag:      l.tag,
		Process:  l.process,
		Trace:    l.trace,
		Values:   l.values,
	}
}

// Messagef returns a new Message with the given formatted text.
func (l *Logger) Messagef(severity Severity, format string, args ...interface{}) *Message {
	return l.Message(severity, fmt.Sprintf(format, args...))
}
