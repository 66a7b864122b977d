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

//go:build linux

package connection

import (
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// maxSendfileSize bounds a single sendfile(2) call.
const maxSendfileSize = 4 << 20

// sendFileZeroCopy transfers the file contents with sendfile(2) when the
// connection is TCP backed. It reports done=false when the transport cannot
// take the zero-copy path, in which case the caller falls back to a
// buffered copy.
func (c *Connection) sendFileZeroCopy(f *os.File, size int64) (done bool, err error) {
	tcp, ok := c.conn.(*net.TCPConn)
	if !ok {
		return false, nil
	}
	rc, err := tcp.SyscallConn()
	if err != nil {
		return false, nil
	}

	var sent int64
	var sendErr error
	waitErr := rc.Write(func(fd uintptr) (ready bool) {
		for sent < size {
			chunk := size - sent
			if chunk > maxSendfileSize {
				chunk = maxSendfileSize
			}
			n, err := unix.Sendfile(int(fd), int(f.Fd()), nil, int(chunk))
			if n > 0 {
				sent += int64(n)
			}
			switch err {
			case nil:
				if n == 0 {
					sendErr = unix.EIO
					return true
				}
			case unix.EAGAIN:
				// Wait for the socket to become writable again.
				return false
			case unix.EINTR:
				// Retry.
			default:
				sendErr = err
				return true
			}
		}
		return true
	})
	if sendErr == nil {
		sendErr = waitErr
	}
	return true, sendErr
}
