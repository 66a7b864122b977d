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

package connection_test

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/dive/capture/connection"
	"github.com/google/dive/core/assert"
	"github.com/google/dive/core/log"
)

func TestStringFraming(t *testing.T) {
	assert := assert.To(t)
	buf := &bytes.Buffer{}
	c := connection.New(buf)
	assert.For("send").ThatError(c.SendString("hi")).Succeeded()
	// u32 length in network order, then the raw bytes.
	assert.For("layout").ThatSlice(buf.Bytes()).Equals([]byte{0, 0, 0, 2, 'h', 'i'})
	s, err := c.ReadString()
	assert.For("read").ThatError(err).Succeeded()
	assert.For("value").ThatString(s).Equals("hi")
}

func TestRecvBytesPeerClose(t *testing.T) {
	assert := assert.To(t)
	a, b := net.Pipe()
	go func() {
		b.Write([]byte{1, 2})
		b.Close()
	}()
	c := connection.NewSocket(a)
	buf := make([]byte, 4)
	// A close mid-message is a hard error, not a short read.
	assert.For("recv").ThatError(c.RecvBytes(buf)).Failed()
}

func TestAcceptTimeout(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	l, err := connection.Listen(ctx, "127.0.0.1", "0")
	assert.For("listen").ThatError(err).Succeeded()
	defer l.Close()
	_, err = l.Accept(ctx, 50*time.Millisecond)
	assert.For("accept").ThatError(err).Equals(connection.ErrTimeout)
}

func TestFileTransfer(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	content := make([]byte, 10000)
	for i := range content {
		content[i] = byte(i * 7)
	}
	src := filepath.Join(t.TempDir(), "src.rd")
	assert.For("write src").ThatError(os.WriteFile(src, content, 0644)).Succeeded()
	dst := filepath.Join(t.TempDir(), "dst.rd")

	l, err := connection.Listen(ctx, "127.0.0.1", "0")
	assert.For("listen").ThatError(err).Succeeded()
	defer l.Close()

	errs := make(chan error, 1)
	go func() {
		server, err := l.Accept(ctx, time.Second)
		if err != nil {
			errs <- err
			return
		}
		defer server.Close()
		errs <- server.SendFile(ctx, src)
	}()

	host, port, err := net.SplitHostPort(l.Addr().String())
	assert.For("addr").ThatError(err).Succeeded()
	client, err := connection.Dial(ctx, host, port)
	assert.For("dial").ThatError(err).Succeeded()
	defer client.Close()

	assert.For("receive").ThatError(client.ReceiveFile(ctx, dst, int64(len(content)))).Succeeded()
	assert.For("send").ThatError(<-errs).Succeeded()

	got, err := os.ReadFile(dst)
	assert.For("read dst").ThatError(err).Succeeded()
	assert.For("content").ThatSlice(got).Equals(content)
}
