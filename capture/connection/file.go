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

package connection

import (
	"context"
	"io"
	"os"

	"github.com/google/dive/core/log"
)

// fileChunkSize is the buffer size used when copying file contents through
// user space.
const fileChunkSize = 4096

// SendFile streams the contents of the file at path over the connection.
// The file size is not part of the stream; senders announce it separately.
// Zero-copy transfer is used when the platform and transport support it.
func (c *Connection) SendFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return log.Errf(ctx, err, "Open %s to send", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return log.Errf(ctx, err, "Stat %s", path)
	}
	size := info.Size()

	if done, err := c.sendFileZeroCopy(f, size); done {
		if err != nil {
			return log.Errf(ctx, err, "Send file %s", path)
		}
		return nil
	}

	buf := make([]byte, fileChunkSize)
	remaining := size
	for remaining > 0 {
		chunk := buf
		if remaining < int64(len(buf)) {
			chunk = buf[:remaining]
		}
		if _, err := io.ReadFull(f, chunk); err != nil {
			return log.Errf(ctx, err, "Read %s", path)
		}
		if err := c.SendBytes(chunk); err != nil {
			return log.Errf(ctx, err, "Send file %s", path)
		}
		remaining -= int64(len(chunk))
	}
	return nil
}

// ReceiveFile reads size bytes from the connection into a new file at path.
func (c *Connection) ReceiveFile(ctx context.Context, path string, size int64) error {
	f, err := os.Create(path)
	if err != nil {
		return log.Errf(ctx, err, "Create %s", path)
	}
	defer f.Close()

	buf := make([]byte, fileChunkSize)
	remaining := size
	for remaining > 0 {
		chunk := buf
		if remaining < int64(len(buf)) {
			chunk = buf[:remaining]
		}
		if err := c.RecvBytes(chunk); err != nil {
			return log.Errf(ctx, err, "Receive file %s", path)
		}
		if _, err := f.Write(chunk); err != nil {
			return log.Errf(ctx, err, "Write %s", path)
		}
		remaining -= int64(len(chunk))
	}
	return nil
}
