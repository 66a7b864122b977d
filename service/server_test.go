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

package service_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/dive/capture/trace"
	"github.com/google/dive/core/assert"
	"github.com/google/dive/core/log"
	"github.com/google/dive/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type nopCapturer struct{}

func (nopCapturer) SetCaptureState(ctx context.Context, enabled bool) error    { return nil }
func (nopCapturer) SetCaptureName(ctx context.Context, name, tag string) error { return nil }

// startServer spins up the RPC service backed by mgr and returns a
// connected client.
func startServer(ctx context.Context, t *testing.T, mgr *trace.Manager) *service.Client {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	grpcServer := grpc.NewServer()
	if err := service.Serve(ctx, grpcServer, mgr); err != nil {
		t.Fatalf("serve: %v", err)
	}
	go grpcServer.Serve(listener)
	t.Cleanup(grpcServer.Stop)

	client, err := service.Connect(ctx, listener.Addr().String())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTestConnectionEchoes(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(nopCapturer{})
	client := startServer(ctx, t, mgr)

	reply, err := client.TestConnection(ctx, "ping")
	assert.For("call").ThatError(err).Succeeded()
	assert.For("reply").ThatString(reply).Equals("ping received.")
}

func TestStartTraceReturnsPath(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	dir := t.TempDir()
	mgr := trace.NewManager(nopCapturer{},
		trace.WithTraceDir(dir),
		trace.WithDuration(50*time.Millisecond),
	)
	client := startServer(ctx, t, mgr)

	path, err := client.StartTrace(ctx)
	assert.For("start trace").ThatError(err).Succeeded()
	assert.For("path").ThatString(path).Equals(filepath.Join(dir, "trace-0001.rd"))
}

func TestStartTraceWithoutHelperFails(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(trace.Unavailable(), trace.WithTriggerFrameNum(10))
	client := startServer(ctx, t, mgr)

	_, err := client.StartTrace(ctx)
	assert.For("start trace").ThatError(err).Failed()
	assert.For("code").That(status.Code(err)).Equals(codes.FailedPrecondition)
}

func TestRunCommandAllowlist(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(nopCapturer{})
	client := startServer(ctx, t, mgr)

	out, err := client.RunCommand(ctx, "echo hello")
	assert.For("allowed").ThatError(err).Succeeded()
	assert.For("output").ThatString(out).Equals("hello\n")

	_, err = client.RunCommand(ctx, "reboot now")
	assert.For("denied").That(status.Code(err)).Equals(codes.PermissionDenied)

	_, err = client.RunCommand(ctx, "")
	assert.For("empty").That(status.Code(err)).Equals(codes.InvalidArgument)
}

func TestFileMetaDataNotFound(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(nopCapturer{})
	client := startServer(ctx, t, mgr)

	_, err := client.GetTraceFileSize(ctx, filepath.Join(t.TempDir(), "missing.rd"))
	assert.For("code").That(status.Code(err)).Equals(codes.NotFound)
}

func TestDownloadFileRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(nopCapturer{})
	client := startServer(ctx, t, mgr)

	// Larger than one 64 KiB chunk, with a short tail.
	content := make([]byte, 131073)
	for i := range content {
		content[i] = byte(i % 253)
	}
	src := filepath.Join(t.TempDir(), "trace-frame-0010.rd")
	assert.For("write src").ThatError(os.WriteFile(src, content, 0644)).Succeeded()

	size, err := client.GetTraceFileSize(ctx, src)
	assert.For("metadata").ThatError(err).Succeeded()
	assert.For("size").That(size).Equals(int64(len(content)))

	dest := filepath.Join(t.TempDir(), "local.rd")
	assert.For("download").ThatError(client.DownloadFile(ctx, src, dest)).Succeeded()
	got, err := os.ReadFile(dest)
	assert.For("read dest").ThatError(err).Succeeded()
	assert.For("content").ThatSlice(got).Equals(content)
}

func TestWaitForTraceFileFindsExisting(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(nopCapturer{})
	client := startServer(ctx, t, mgr)

	src := filepath.Join(t.TempDir(), "trace-frame-0100.rd")
	assert.For("write src").ThatError(os.WriteFile(src, []byte("rd"), 0644)).Succeeded()
	size, err := client.WaitForTraceFile(ctx, src)
	assert.For("wait").ThatError(err).Succeeded()
	assert.For("size").That(size).Equals(int64(2))
}
