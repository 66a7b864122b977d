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

// Package layer is the runtime of the in-process capture layer: it binds
// the capture primitives, owns the process-wide trace manager, and hosts
// the capture service and the optional RPC service.
//
// Initialization is explicit: the interposer calls Init from a known entry
// point rather than relying on loader side effects, and then forwards every
// presented frame to OnNewFrame.
package layer

import (
	"context"
	"net"
	"sync"

	captureservice "github.com/google/dive/capture/service"
	"github.com/google/dive/capture/trace"
	"github.com/google/dive/capture/wrap"
	"github.com/google/dive/core/log"
	"github.com/google/dive/service"
	"google.golang.org/grpc"
)

// Layer is the running capture layer.
type Layer struct {
	cfg Config
	mgr *trace.Manager
	svc *captureservice.Service

	rpcServer   *grpc.Server
	rpcListener net.Listener
}

var (
	mu       sync.Mutex
	instance *Layer
)

// Init starts the capture layer. It binds the capture primitives from the
// injected helper library (falling back to a binding that fails captures
// when the helper is absent), constructs the trace manager, and starts the
// capture service. Init is idempotent: a second call returns the running
// layer.
func Init(ctx context.Context, cfg Config) (*Layer, error) {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return instance, nil
	}

	if !wrap.Loaded() {
		log.D(ctx, "libwrap is not mapped into this process")
	}
	capturer, err := wrap.Bind(ctx)
	if err != nil {
		// Captures will fail at trigger time rather than silently
		// recording nothing.
		log.W(ctx, "Capture primitives not bound: %v", err)
		capturer = trace.Unavailable()
	}

	if frame := TriggerFrameNum(ctx); frame > 0 {
		cfg.TriggerFrameNum = frame
	}

	mgr := trace.NewManager(capturer,
		trace.WithTraceDir(cfg.TraceDir),
		trace.WithTriggerFrameNum(cfg.TriggerFrameNum),
		trace.WithFramesToTrace(cfg.FramesToTrace),
		trace.WithDuration(cfg.Duration()),
	)

	svc := captureservice.New(mgr)
	if err := svc.Start(ctx, cfg.Host, cfg.Port); err != nil {
		return nil, err
	}

	l := &Layer{cfg: cfg, mgr: mgr, svc: svc}
	if cfg.EnableRPC {
		if err := l.startRPC(ctx); err != nil {
			svc.Stop()
			return nil, err
		}
	}
	instance = l
	return l, nil
}

func (l *Layer) startRPC(ctx context.Context) error {
	listener, err := net.Listen("tcp", net.JoinHostPort(l.cfg.Host, l.cfg.RPCPort))
	if err != nil {
		return log.Errf(ctx, err, "Listen on RPC port %s", l.cfg.RPCPort)
	}
	grpcServer := grpc.NewServer()
	if err := service.Serve(ctx, grpcServer, l.mgr); err != nil {
		listener.Close()
		return err
	}
	l.rpcServer = grpcServer
	l.rpcListener = listener
	go func() {
		log.I(ctx, "RPC service listening on %v", listener.Addr())
		if err := grpcServer.Serve(listener); err != nil {
			log.W(ctx, "RPC service stopped: %v", err)
		}
	}()
	return nil
}

// Get returns the running layer, or nil before Init.
func Get() *Layer {
	mu.Lock()
	defer mu.Unlock()
	return instance
}

// Manager returns the process-wide trace manager.
func (l *Layer) Manager() *trace.Manager {
	return l.mgr
}

// Service returns the capture wire service.
func (l *Layer) Service() *captureservice.Service {
	return l.svc
}

// OnNewFrame is called by the interposer once per presented frame. When a
// trigger frame number is configured and the frame just before it has been
// presented with no capture in flight, it arms the trace so recording starts
// at the trigger frame.
func (l *Layer) OnNewFrame(ctx context.Context) {
	l.mgr.OnNewFrame(ctx)
	frame := l.cfg.TriggerFrameNum
	if frame > 0 && l.mgr.FrameNum() == frame-1 && l.mgr.State() == trace.Idle {
		if err := l.mgr.TriggerTrace(ctx); err != nil {
			log.W(ctx, "Trigger at frame %d: %v", frame, err)
		}
	}
}

// Shutdown stops the capture service and the RPC service.
func (l *Layer) Shutdown(ctx context.Context) {
	mu.Lock()
	defer mu.Unlock()
	if l.rpcServer != nil {
		l.rpcServer.GracefulStop()
	}
	l.svc.Stop()
	if instance == l {
		instance = nil
	}
}
