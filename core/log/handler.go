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
	"io"
	"os"
	"strings"
	"sync"
)

// Handler is the interface implemented by types that consume log messages.
type Handler interface {
	Handle(*Message)
	Close()
}

type handler struct {
	handle func(*Message)
	close  func()
}

func (h handler) Handle(m *Message) { h.handle(m) }
func (h handler) Close()            { h.close() }

// NewHandler returns a Handler that calls handle for each message, and close
// (if not nil) when the handler is closed.
func NewHandler(handle func(*Message), close func()) Handler {
	if close == nil {
		close = func() {}
	}
	return handler{handle, close}
}

// Print returns the message formatted as a single human readable line.
func (m *Message) Print() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "%s: ", m.Severity.Short())
	if m.Tag != "" {
		fmt.Fprintf(&b, "[%s] ", m.Tag)
	}
	for _, t := range m.Trace {
		fmt.Fprintf(&b, "%s: ", t)
	}
	b.WriteString(m.Text)
	for _, v := range m.Values {
		fmt.Fprintf(&b, " %s=%v", v.Name, v.Value)
	}
	return b.String()
}

// Writer returns a Handler that writes each message as a line to w.
// The handler is safe to use from multiple goroutines.
func Writer(w io.Writer) Handler {
	mutex := sync.Mutex{}
	return NewHandler(func(m *Message) {
		mutex.Lock()
		defer mutex.Unlock()
		fmt.Fprintln(w, m.Print())
	}, nil)
}

// Std returns a Handler that writes errors to os.Stderr and all other
// messages to os.Stdout.
func Std() Handler {
	mutex := sync.Mutex{}
	return NewHandler(func(m *Message) {
		mutex.Lock()
		defer mutex.Unlock()
		if m.Severity >= Error {
			fmt.Fprintln(os.Stderr, m.Print())
		} else {
			fmt.Fprintln(os.Stdout, m.Print())
		}
	}, nil)
}
