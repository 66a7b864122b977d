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

// Package trace implements the in-application trace manager: the state
// machine that decides when a capture starts and stops relative to the
// application's frame cadence.
package trace

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/dive/core/fault"
	"github.com/google/dive/core/log"
)

const (
	// ErrCaptureInFlight is returned by a trigger while another capture is
	// still being taken on this process.
	ErrCaptureInFlight = fault.Const("a capture is already in flight")
	// ErrNotCapturing is returned by StopCapture when no manual capture is
	// being taken.
	ErrNotCapturing = fault.Const("no manual capture in flight")

	// DefaultTraceDir is where captures are written on the target.
	DefaultTraceDir = "/data/local/tmp"
	// DefaultDuration is how long a duration-mode capture records.
	DefaultDuration = 5 * time.Second
)

// Manager owns the capture state machine. It runs inside the target
// application as process-wide singleton state: frame callbacks arrive from
// arbitrary driver threads, the service dispatch thread delivers triggers,
// and a sleep goroutine ends duration-mode captures.
//
// The state lock guards state, frameNum, traceStartFrame, traceNum and
// filePath. Every decision and its transition happen under one hold of the
// lock, so an observer never sees a capture start before its output path is
// published, and OnNewFrame performs at most one transition per call.
type Manager struct {
	capturer Capturer

	mu   sync.Mutex
	cond *sync.Cond

	state           State
	frameNum        uint32
	traceStartFrame uint32
	traceNum        uint32
	filePath        string
	manual          bool

	dir             string
	triggerFrameNum uint32
	framesToTrace   uint32
	duration        time.Duration
}

// Option alters the construction of a Manager.
type Option func(*Manager)

// WithTraceDir sets the directory captures are written to.
func WithTraceDir(dir string) Option {
	return func(m *Manager) { m.dir = dir }
}

// WithTriggerFrameNum sets the frame number used to name frame-mode
// captures. Zero selects duration mode.
func WithTriggerFrameNum(frame uint32) Option {
	return func(m *Manager) { m.triggerFrameNum = frame }
}

// WithFramesToTrace sets how many frames a frame-mode capture records.
// Must be strictly positive.
func WithFramesToTrace(frames uint32) Option {
	return func(m *Manager) { m.framesToTrace = frames }
}

// WithDuration sets how long a duration-mode capture records.
func WithDuration(d time.Duration) Option {
	return func(m *Manager) { m.duration = d }
}

// NewManager returns a Manager driving the given capture primitives.
func NewManager(capturer Capturer, opts ...Option) *Manager {
	m := &Manager{
		capturer:      capturer,
		dir:           DefaultTraceDir,
		framesToTrace: 1,
		duration:      DefaultDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// OnNewFrame is called by the rendering pipeline once per presented frame.
// It advances the frame counter and performs at most one state transition.
func (m *Manager) OnNewFrame(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frameNum++
	if m.shouldStartTrace() {
		m.onTraceStart(ctx)
	} else if m.shouldStopTrace() {
		m.onTraceStop(ctx)
	}
}

// Caller must hold m.mu.
func (m *Manager) shouldStartTrace() bool {
	return m.state == Triggered
}

// Caller must hold m.mu.
func (m *Manager) shouldStopTrace() bool {
	return m.state == Tracing && !m.manual &&
		m.frameNum-m.traceStartFrame > m.framesToTrace
}

// Caller must hold m.mu.
func (m *Manager) onTraceStart(ctx context.Context) {
	if err := m.capturer.SetCaptureState(ctx, true); err != nil {
		log.W(ctx, "Start capture: %v", err)
		return
	}
	m.state = Tracing
	m.traceStartFrame = m.frameNum
	log.I(ctx, "Capture started at frame %d", m.frameNum)
}

// Caller must hold m.mu.
func (m *Manager) onTraceStop(ctx context.Context) {
	if err := m.capturer.SetCaptureState(ctx, false); err != nil {
		log.W(ctx, "Stop capture: %v", err)
		return
	}
	m.state = Finished
	m.cond.Broadcast()
	log.I(ctx, "Capture finished at frame %d", m.frameNum)
}

// TriggerTrace requests a capture. In frame mode (trigger frame number > 0)
// the capture starts at the next frame boundary and the call returns
// immediately; in duration mode it starts at once and a timer goroutine
// ends it after the configured duration.
func (m *Manager) TriggerTrace(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Triggered || m.state == Tracing {
		return ErrCaptureInFlight
	}
	if m.triggerFrameNum > 0 {
		return m.traceByFrame(ctx)
	}
	return m.traceByDuration(ctx)
}

// Caller must hold m.mu.
func (m *Manager) traceByFrame(ctx context.Context) error {
	name := filepath.Join(m.dir, "trace-frame")
	tag := strconv.FormatUint(uint64(m.triggerFrameNum), 10)
	if err := m.capturer.SetCaptureName(ctx, name, tag); err != nil {
		return log.Err(ctx, err, "Publish capture name")
	}
	m.filePath = fmt.Sprintf("%s-%04d.rd", name, m.triggerFrameNum)
	m.state = Triggered
	log.D(ctx, "Capture file path set to %s", m.filePath)
	return nil
}

// Caller must hold m.mu.
func (m *Manager) traceByDuration(ctx context.Context) error {
	m.traceNum++
	name := filepath.Join(m.dir, "trace")
	tag := strconv.FormatUint(uint64(m.traceNum), 10)
	if err := m.capturer.SetCaptureName(ctx, name, tag); err != nil {
		m.traceNum--
		return log.Err(ctx, err, "Publish capture name")
	}
	m.filePath = fmt.Sprintf("%s-%04d.rd", name, m.traceNum)
	m.state = Triggered
	log.D(ctx, "Capture file path set to %s", m.filePath)

	if err := m.capturer.SetCaptureState(ctx, true); err != nil {
		return log.Err(ctx, err, "Start capture")
	}
	m.state = Tracing
	go m.stopAfter(ctx, m.duration)
	return nil
}

// stopAfter ends a duration-mode capture after d.
func (m *Manager) stopAfter(ctx context.Context, d time.Duration) {
	time.Sleep(d)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Tracing {
		return
	}
	if err := m.capturer.SetCaptureState(ctx, false); err != nil {
		log.W(ctx, "Stop capture: %v", err)
		return
	}
	m.state = Finished
	m.cond.Broadcast()
}

// StartCapture begins a manual capture saved to path. The capture runs
// until StopCapture.
func (m *Manager) StartCapture(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Triggered || m.state == Tracing {
		return ErrCaptureInFlight
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = m.dir
	}
	if err := m.capturer.SetCaptureName(ctx, filepath.Join(dir, "trace"), base); err != nil {
		return log.Err(ctx, err, "Publish capture name")
	}
	m.filePath = path
	if err := m.capturer.SetCaptureState(ctx, true); err != nil {
		return log.Err(ctx, err, "Start capture")
	}
	m.state = Tracing
	m.manual = true
	m.traceStartFrame = m.frameNum
	return nil
}

// StopCapture ends a manual capture.
func (m *Manager) StopCapture(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.manual || m.state != Tracing {
		return ErrNotCapturing
	}
	if err := m.capturer.SetCaptureState(ctx, false); err != nil {
		return log.Err(ctx, err, "Stop capture")
	}
	m.state = Finished
	m.manual = false
	m.cond.Broadcast()
	return nil
}

// WaitForTraceDone blocks until the in-flight capture reaches Finished, or
// the context is cancelled.
func (m *Manager) WaitForTraceDone(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			m.cond.Broadcast()
			m.mu.Unlock()
		case <-done:
		}
	}()

	m.mu.Lock()
	defer m.mu.Unlock()
	for m.state != Finished {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.cond.Wait()
	}
	return nil
}

// State returns the current capture state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// FrameNum returns the number of frames presented so far.
func (m *Manager) FrameNum() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frameNum
}

// TriggerFrameNum returns the configured trigger frame number.
func (m *Manager) TriggerFrameNum() uint32 {
	return m.triggerFrameNum
}

// TraceFilePath returns the output path of the current capture.
func (m *Manager) TraceFilePath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filePath
}
