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

// Package service exposes the capture layer to host tooling as a gRPC
// service, layered over the trace manager.
package service

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/dive/capture/trace"
	"github.com/google/dive/core/log"
	pb "github.com/google/dive/service/dive_service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultPort is the port the RPC service listens on. The capture wire
// protocol owns 19999.
const DefaultPort = "19998"

// downloadChunkSize is the size of the file content chunks streamed by
// DownloadFile. The last chunk may be short.
const downloadChunkSize = 64 * 1024

// defaultAllowedCommands are the commands RunCommand will execute.
var defaultAllowedCommands = map[string]bool{
	"getprop": true,
	"setprop": true,
	"ls":      true,
	"rm":      true,
	"echo":    true,
}

type server struct {
	mgr     *trace.Manager
	allowed map[string]bool
}

// Serve registers a DiveService implementation backed by mgr on the given
// gRPC server.
func Serve(ctx context.Context, grpcServer *grpc.Server, mgr *trace.Manager) error {
	pb.RegisterDiveServiceServer(grpcServer, &server{
		mgr:     mgr,
		allowed: defaultAllowedCommands,
	})
	return nil
}

// StartTrace implements DiveServiceServer.StartTrace.
// It triggers a capture, blocks until the trace manager reports it
// finished, and returns the produced path.
func (s *server) StartTrace(ctx context.Context, req *pb.TraceRequest) (*pb.TraceReply, error) {
	if err := s.mgr.TriggerTrace(ctx); err != nil {
		return nil, status.Errorf(codes.FailedPrecondition, "trigger capture: %v", err)
	}
	if err := s.mgr.WaitForTraceDone(ctx); err != nil {
		return nil, status.Errorf(codes.Canceled, "wait for capture: %v", err)
	}
	return &pb.TraceReply{TraceFilePath: s.mgr.TraceFilePath()}, nil
}

// TestConnection implements DiveServiceServer.TestConnection.
func (s *server) TestConnection(ctx context.Context, req *pb.TestRequest) (*pb.TestReply, error) {
	log.D(ctx, "TestConnection request received")
	return &pb.TestReply{Message: req.GetMessage() + " received."}, nil
}

// RunCommand implements DiveServiceServer.RunCommand.
// Only allowlisted commands are executed.
func (s *server) RunCommand(ctx context.Context, req *pb.RunCommandRequest) (*pb.RunCommandReply, error) {
	log.D(ctx, "Request command %s", req.GetCommand())
	fields := strings.Fields(req.GetCommand())
	if len(fields) == 0 {
		return nil, status.Error(codes.InvalidArgument, "empty command")
	}
	if !s.allowed[fields[0]] {
		return nil, status.Errorf(codes.PermissionDenied, "command %q is not allowed", fields[0])
	}
	out, err := exec.CommandContext(ctx, fields[0], fields[1:]...).Output()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "run %q: %v", fields[0], err)
	}
	return &pb.RunCommandReply{Output: string(out)}, nil
}

// GetTraceFileMetaData implements DiveServiceServer.GetTraceFileMetaData.
func (s *server) GetTraceFileMetaData(ctx context.Context, req *pb.FileMetaDataRequest) (*pb.FileMetaDataReply, error) {
	log.D(ctx, "Request metadata for file %s", req.GetName())
	info, err := os.Stat(req.GetName())
	if err != nil {
		return nil, status.Error(codes.NotFound, req.GetName())
	}
	return &pb.FileMetaDataReply{Name: req.GetName(), Size: info.Size()}, nil
}

// DownloadFile implements DiveServiceServer.DownloadFile.
// The file is streamed in downloadChunkSize chunks; a mismatch between the
// bytes sent and the file size is an internal error.
func (s *server) DownloadFile(req *pb.DownloadRequest, stream pb.DiveService_DownloadFileServer) error {
	ctx := stream.Context()
	log.D(ctx, "Request to download file %s", req.GetName())
	f, err := os.Open(req.GetName())
	if err != nil {
		return status.Error(codes.NotFound, req.GetName())
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return status.Error(codes.NotFound, req.GetName())
	}

	var total int64
	buf := make([]byte, downloadChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			total += int64(n)
			if err := stream.Send(&pb.FileContent{Content: buf[:n]}); err != nil {
				return err
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return status.Errorf(codes.Internal, "read %s: %v", req.GetName(), err)
		}
	}
	log.D(ctx, "Read done, file size %d, actually sent %d", info.Size(), total)
	if total != info.Size() {
		return status.Errorf(codes.Internal, "sent %d of %d bytes", total, info.Size())
	}
	return nil
}
