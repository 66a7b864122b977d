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

// Package service implements the capture service embedded in the target
// process. It accepts one client at a time and dispatches capture protocol
// messages to the trace manager.
package service

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/dive/capture/connection"
	"github.com/google/dive/capture/message"
	"github.com/google/dive/capture/trace"
	"github.com/google/dive/core/fault"
	"github.com/google/dive/core/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// DefaultHost is the interface the service listens on.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the port the service listens on.
	DefaultPort = "19999"

	// acceptTimeout bounds each accept wait so the loop can observe a
	// shutdown request between waits.
	acceptTimeout = time.Second

	// ErrSecondTrigger is the session error for a trigger received while a
	// capture is already in flight on the connection.
	ErrSecondTrigger = fault.Const("trigger received while a capture is in flight")
)

// defaultCapabilities describe this build of the layer.
var defaultCapabilities = message.LayerCapabilitiesMessage{
	IcdCapabilities: message.IcdSupportTriggerCapture |
		message.IcdSupportCaptureSqttCounters,
	IcdSpecVersion: message.NewIcdVersion(0, 4, 1),
	LayerCapabilities: message.SupportLayerCapabilities |
		message.DeviceExtEnabled |
		message.SupportIcdCaptureVersion |
		message.SupportTriggerCapture |
		message.SupportCaptureSqttCounters |
		message.SupportCaptureLegacyCounters |
		message.SupportGpaLib,
}

// Service is the in-process capture server.
type Service struct {
	mgr          *trace.Manager
	capabilities message.LayerCapabilitiesMessage
	gpaPasses    func([]string) int

	mu       sync.Mutex
	cfg      *message.CaptureConfig
	client   *connection.Connection
	listener *connection.Listener
	stop     chan struct{}
	done     chan struct{}
}

// Option alters the construction of a Service.
type Option func(*Service)

// WithCapabilities overrides the capabilities the service reports.
func WithCapabilities(caps message.LayerCapabilitiesMessage) Option {
	return func(s *Service) { s.capabilities = caps }
}

// WithGpaPassCounter overrides the function that computes how many GPA
// passes a legacy counter set needs.
func WithGpaPassCounter(f func([]string) int) Option {
	return func(s *Service) { s.gpaPasses = f }
}

// New returns a Service driving the given trace manager.
func New(mgr *trace.Manager, opts ...Option) *Service {
	s := &Service{
		mgr:          mgr,
		capabilities: defaultCapabilities,
		gpaPasses:    singlePass,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// The stock counter presets all fit in one measurement pass.
func singlePass([]string) int { return 1 }

// Start binds the listening socket and spawns the accept loop.
func (s *Service) Start(ctx context.Context, host, port string) error {
	l, err := connection.Listen(ctx, host, port)
	if err != nil {
		return err
	}
	s.listener = l
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.serve(ctx)
	return nil
}

// Addr returns the address the service is listening on.
func (s *Service) Addr() net.Addr {
	return s.listener.Addr()
}

// Stop shuts the service down and waits for the accept loop to exit.
// The current client connection, if any, is closed.
func (s *Service) Stop() {
	close(s.stop)
	s.listener.Close()
	s.mu.Lock()
	if s.client != nil {
		s.client.Close()
	}
	s.mu.Unlock()
	<-s.done
}

// serve accepts one client at a time until stopped.
func (s *Service) serve(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		default:
		}
		log.D(ctx, "Capture layer waiting to be connected")
		client, err := s.listener.Accept(ctx, acceptTimeout)
		switch {
		case err == connection.ErrTimeout:
			continue
		case err != nil:
			select {
			case <-s.stop:
			default:
				log.W(ctx, "Accept: %v", err)
			}
			return
		}
		s.mu.Lock()
		s.client = client
		s.mu.Unlock()
		sessionCtx := log.V{"session": uuid.New().String()}.Bind(ctx)
		log.D(sessionCtx, "Connection established")
		if err := s.process(sessionCtx, client); err != nil {
			log.D(sessionCtx, "Session ended: %v", err)
		}
		s.mu.Lock()
		s.client = nil
		s.mu.Unlock()
		client.Close()
		log.D(sessionCtx, "Process message done")
	}
}

// session holds the per-connection negotiation state.
type session struct {
	peerMajor uint32
	peerMinor uint32
}

// atLeast reports whether the peer protocol version is >= major.minor.
func (n *session) atLeast(major, minor uint32) bool {
	return n.peerMajor > major || (n.peerMajor == major && n.peerMinor >= minor)
}

// process dispatches messages from a single client until it disconnects or
// a framing error occurs. Errors abandon the session; the accept loop then
// waits for the next client, which starts over from the beginning.
func (s *Service) process(ctx context.Context, c *connection.Connection) error {
	sess := &session{}
	for {
		t, err := message.RecvType(c)
		if err != nil {
			return err
		}
		switch t {
		case message.TypeHandShake:
			err = s.onHandShake(ctx, c, sess)
		case message.TypeLayerCapabilities:
			err = s.onGetLayerCapabilities(ctx, c)
		case message.TypeCaptureConfig:
			err = s.onCaptureConfig(ctx, c, sess)
		case message.TypeTriggerCapture:
			err = s.onTriggerCapture(ctx, c)
		case message.TypeStartCapture:
			err = s.onStartCapture(ctx, c)
		case message.TypeStopCapture:
			err = s.onStopCapture(ctx, c)
		case message.TypeGetCaptureFileReq:
			err = s.onGetCaptureFile(ctx, c)
		default:
			return log.Errf(ctx, nil, "Unknown message %v received", t)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Service) onHandShake(ctx context.Context, c *connection.Connection, sess *session) error {
	req := message.HandShake{}
	if err := req.Recv(c); err != nil {
		return err
	}
	sess.peerMajor, sess.peerMinor = req.Major, req.Minor
	log.D(ctx, "Handshake from host %d.%d", req.Major, req.Minor)
	resp := message.HandShake{
		Major: message.ProtocolMajorVersion,
		Minor: message.ProtocolMinorVersion,
	}
	return resp.Send(c)
}

func (s *Service) onGetLayerCapabilities(ctx context.Context, c *connection.Connection) error {
	caps := s.capabilities
	return caps.Send(c)
}

func (s *Service) onCaptureConfig(ctx context.Context, c *connection.Connection, sess *session) error {
	msg := message.CaptureConfigMessage{}
	if err := msg.Recv(c); err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = &msg.Config
	s.mu.Unlock()
	log.D(ctx, "Capture mode is %d", msg.Config.Mode)

	// CAPTURE_CONFIG_DONE was added in 2.3 and is only sent for legacy
	// counter modes, so older hosts keep working.
	if !sess.atLeast(2, 3) || !msg.Config.IsCapturingLegacyCounters() {
		return nil
	}
	status := message.ConfigSuccess
	if s.gpaPasses(msg.Config.LegacyCounters) > 1 {
		status = message.ConfigFailMultipleGpaPasses
	}
	done := message.CaptureConfigDone{Status: status}
	return done.Send(c)
}

func (s *Service) onTriggerCapture(ctx context.Context, c *connection.Connection) error {
	if state := s.mgr.State(); state == trace.Triggered || state == trace.Tracing {
		message.SendUnknown(c)
		return ErrSecondTrigger
	}
	if err := s.mgr.TriggerTrace(ctx); err != nil {
		// Give the waiting client a tag it will not accept as success
		// before the connection closes.
		message.SendUnknown(c)
		return err
	}
	if err := s.mgr.WaitForTraceDone(ctx); err != nil {
		return err
	}
	done := message.TriggerCaptureDone{SavedCapturePath: s.mgr.TraceFilePath()}
	return done.Send(c)
}

func (s *Service) onStartCapture(ctx context.Context, c *connection.Connection) error {
	msg := message.StartCapture{}
	if err := msg.Recv(c); err != nil {
		return err
	}
	if err := s.mgr.StartCapture(ctx, msg.TargetPath); err != nil {
		return err
	}
	return nil
}

func (s *Service) onStopCapture(ctx context.Context, c *connection.Connection) error {
	return s.mgr.StopCapture(ctx)
}

func (s *Service) onGetCaptureFile(ctx context.Context, c *connection.Connection) error {
	req := message.GetCaptureFileRequest{}
	if err := req.Recv(c); err != nil {
		return err
	}
	log.D(ctx, "Request to copy capture %s", req.FilePath)
	resp := message.GetCaptureFileResponse{FilePath: req.FilePath}
	if err := resp.Send(ctx, c); err != nil {
		return errors.WithMessagef(err, "send capture %s", req.FilePath)
	}
	return nil
}

// CaptureConfig returns the most recently received capture configuration,
// or nil when none was sent.
func (s *Service) CaptureConfig() *message.CaptureConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}
