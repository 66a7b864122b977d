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

// Package connection provides the reliable framed byte stream the capture
// protocol runs over. All multi-byte integers cross the wire in network
// order. The stream itself is not packet framed; the message layouts
// determine the boundaries.
package connection

import (
	"context"
	eb "encoding/binary"
	"io"
	"net"
	"time"

	"github.com/google/dive/core/data/binary"
	"github.com/google/dive/core/data/endian"
	"github.com/google/dive/core/fault"
	"github.com/google/dive/core/log"
)

const (
	// ErrTimeout is returned by Listener.Accept when no client arrived
	// within the accept timeout.
	ErrTimeout = fault.Const("accept timeout")
	// ErrClosed is returned when operating on a closed connection.
	ErrClosed = fault.Const("connection closed")
)

// Connection is a reliable bidirectional byte stream with typed send and
// receive primitives. Short reads and writes loop until the full buffer has
// been transferred; a peer close mid-message is reported as an error.
type Connection struct {
	rw   io.ReadWriter
	conn net.Conn
	r    binary.Reader
	w    binary.Writer
}

// New returns a Connection over an arbitrary byte stream.
// It is mostly useful for tests; NewSocket is the production constructor.
func New(rw io.ReadWriter) *Connection {
	return &Connection{
		rw: rw,
		r:  endian.Reader(rw, eb.BigEndian),
		w:  endian.Writer(rw, eb.BigEndian),
	}
}

// NewSocket returns a Connection over the given network connection.
func NewSocket(conn net.Conn) *Connection {
	c := New(conn)
	c.conn = conn
	return c
}

// Close closes the underlying stream, if it is closable.
func (c *Connection) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// SendBytes writes the whole of data to the stream.
func (c *Connection) SendBytes(data []byte) error {
	c.w.Data(data)
	return c.w.Error()
}

// RecvBytes reads from the stream until data is full.
func (c *Connection) RecvBytes(data []byte) error {
	c.r.Data(data)
	return c.r.Error()
}

// SendUint8 writes a single byte to the stream.
func (c *Connection) SendUint8(v uint8) error {
	c.w.Uint8(v)
	return c.w.Error()
}

// RecvUint8 reads a single byte from the stream.
func (c *Connection) RecvUint8() (uint8, error) {
	v := c.r.Uint8()
	return v, c.r.Error()
}

// SendUint32 writes a 32 bit integer to the stream in network order.
func (c *Connection) SendUint32(v uint32) error {
	c.w.Uint32(v)
	return c.w.Error()
}

// RecvUint32 reads a network order 32 bit integer from the stream.
func (c *Connection) RecvUint32() (uint32, error) {
	v := c.r.Uint32()
	return v, c.r.Error()
}

// SendString writes the string length as a network order 32 bit integer
// followed by the string bytes.
func (c *Connection) SendString(s string) error {
	c.w.Uint32(uint32(len(s)))
	c.w.Data([]byte(s))
	return c.w.Error()
}

// ReadString reads a string written by SendString.
func (c *Connection) ReadString() (string, error) {
	size := c.r.Uint32()
	if err := c.r.Error(); err != nil {
		return "", err
	}
	buf := make([]byte, size)
	c.r.Data(buf)
	return string(buf), c.r.Error()
}

// Listener accepts capture protocol connections.
type Listener struct {
	l net.Listener
}

// Listen opens a listening socket on the given host and port.
// Passing port "0" picks a free port; use Addr to discover it.
func Listen(ctx context.Context, host, port string) (*Listener, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, log.Errf(ctx, err, "Listen on %s:%s", host, port)
	}
	log.D(ctx, "Bound on %v", l.Addr())
	return &Listener{l: l}, nil
}

// Addr returns the address the listener is bound to.
func (l *Listener) Addr() net.Addr {
	return l.l.Addr()
}

// Accept waits for the next client for up to timeout.
// It returns ErrTimeout when no client arrived in time, so callers can
// observe a shutdown flag between waits.
func (l *Listener) Accept(ctx context.Context, timeout time.Duration) (*Connection, error) {
	if d, ok := l.l.(*net.TCPListener); ok {
		if err := d.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, log.Err(ctx, err, "Set accept deadline")
		}
	}
	conn, err := l.l.Accept()
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrTimeout
		}
		return nil, err
	}
	return NewSocket(conn), nil
}

// Close closes the listening socket.
func (l *Listener) Close() error {
	return l.l.Close()
}

// Dial connects to a capture service at the given host and port.
func Dial(ctx context.Context, host, port string) (*Connection, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, log.Errf(ctx, err, "Connect to %s:%s", host, port)
	}
	return NewSocket(conn), nil
}
