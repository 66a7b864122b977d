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

package service

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/dive/core/event/task"
	"github.com/google/dive/core/log"
	"github.com/google/dive/core/net/grpcutil"
	pb "github.com/google/dive/service/dive_service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// fileWaitAttempts and fileWaitDelay bound WaitForTraceFile: the host
	// polls for up to 100 x 2s before declaring timeout.
	fileWaitAttempts = 100
	fileWaitDelay    = 2 * time.Second
)

// Client drives the DiveService of a capture layer.
type Client struct {
	conn *grpc.ClientConn
	serv pb.DiveServiceClient
}

// Connect dials the RPC service at target.
func Connect(ctx context.Context, target string, options ...grpc.DialOption) (*Client, error) {
	conn, err := grpcutil.Dial(ctx, target, options...)
	if err != nil {
		return nil, log.Errf(ctx, err, "Dial %s", target)
	}
	return &Client{conn: conn, serv: pb.NewDiveServiceClient(conn)}, nil
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.conn.Close()
}

// StartTrace triggers a capture and returns the path of the produced trace
// file on the device.
func (c *Client) StartTrace(ctx context.Context) (string, error) {
	reply, err := c.serv.StartTrace(ctx, &pb.TraceRequest{})
	if err != nil {
		return "", err
	}
	return reply.GetTraceFilePath(), nil
}

// TestConnection echoes msg off the service.
func (c *Client) TestConnection(ctx context.Context, msg string) (string, error) {
	reply, err := c.serv.TestConnection(ctx, &pb.TestRequest{Message: msg})
	if err != nil {
		return "", err
	}
	return reply.GetMessage(), nil
}

// RunCommand executes an allowlisted shell command on the device and
// returns its output.
func (c *Client) RunCommand(ctx context.Context, command string) (string, error) {
	reply, err := c.serv.RunCommand(ctx, &pb.RunCommandRequest{Command: command})
	if err != nil {
		return "", err
	}
	return reply.GetOutput(), nil
}

// GetTraceFileSize returns the size of the trace file at name on the
// device, or a NotFound error.
func (c *Client) GetTraceFileSize(ctx context.Context, name string) (int64, error) {
	reply, err := c.serv.GetTraceFileMetaData(ctx, &pb.FileMetaDataRequest{Name: name})
	if err != nil {
		return 0, err
	}
	return reply.GetSize(), nil
}

// WaitForTraceFile polls for the trace file at name until it exists or the
// wait times out.
func (c *Client) WaitForTraceFile(ctx context.Context, name string) (int64, error) {
	var size int64
	err := task.Retry(ctx, fileWaitAttempts, fileWaitDelay,
		func(ctx context.Context) (bool, error) {
			n, err := c.GetTraceFileSize(ctx, name)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return false, log.Errf(ctx, nil, "Capture timed out waiting for %s", name)
				}
				return true, err
			}
			size = n
			return true, nil
		})
	return size, err
}

// DownloadFile streams the trace file at name into a local file at dest and
// verifies the received byte count against the device-side size.
func (c *Client) DownloadFile(ctx context.Context, name, dest string) error {
	size, err := c.GetTraceFileSize(ctx, name)
	if err != nil {
		return log.Errf(ctx, err, "Metadata for %s", name)
	}
	stream, err := c.serv.DownloadFile(ctx, &pb.DownloadRequest{Name: name})
	if err != nil {
		return log.Errf(ctx, err, "Download %s", name)
	}
	f, err := os.Create(dest)
	if err != nil {
		return log.Errf(ctx, err, "Create %s", dest)
	}
	defer f.Close()

	var total int64
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return log.Errf(ctx, err, "Download %s", name)
		}
		n, err := f.Write(chunk.GetContent())
		if err != nil {
			return log.Errf(ctx, err, "Write %s", dest)
		}
		total += int64(n)
	}
	if total != size {
		return log.Errf(ctx, nil, "Received %d of %d bytes for %s", total, size, name)
	}
	return nil
}
