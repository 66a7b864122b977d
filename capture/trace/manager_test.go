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

package trace_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/dive/capture/trace"
	"github.com/google/dive/core/assert"
	"github.com/google/dive/core/log"
)

// recorder is a Capturer that records every primitive call.
type recorder struct {
	mu     sync.Mutex
	states []bool
	names  []string
}

func (r *recorder) SetCaptureState(ctx context.Context, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, enabled)
	return nil
}

func (r *recorder) SetCaptureName(ctx context.Context, name, frameTag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name+":"+frameTag)
	return nil
}

func (r *recorder) stateCalls() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool{}, r.states...)
}

func (r *recorder) nameCalls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.names...)
}

func TestFrameModeCapture(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	rec := &recorder{}
	mgr := trace.NewManager(rec,
		trace.WithTraceDir("/tmp"),
		trace.WithTriggerFrameNum(10),
		trace.WithFramesToTrace(3),
	)

	for i := 0; i < 9; i++ {
		mgr.OnNewFrame(ctx)
	}
	assert.For("state before trigger").That(mgr.State()).Equals(trace.Idle)
	assert.For("frames").That(mgr.FrameNum()).Equals(uint32(9))

	assert.For("trigger").ThatError(mgr.TriggerTrace(ctx)).Succeeded()
	assert.For("state after trigger").That(mgr.State()).Equals(trace.Triggered)
	assert.For("path").ThatString(mgr.TraceFilePath()).Equals("/tmp/trace-frame-0010.rd")
	assert.For("name published").ThatSlice(rec.nameCalls()).Equals([]string{"/tmp/trace-frame:10"})

	// The next frame boundary starts the capture.
	mgr.OnNewFrame(ctx)
	assert.For("state at frame 10").That(mgr.State()).Equals(trace.Tracing)
	assert.For("capture on").ThatSlice(rec.stateCalls()).Equals([]bool{true})

	// Frames 11..13 keep tracing; frame 14 stops because 14 - 10 > 3.
	for i := 0; i < 3; i++ {
		mgr.OnNewFrame(ctx)
		assert.For("state at frame %d", 11+i).That(mgr.State()).Equals(trace.Tracing)
	}
	mgr.OnNewFrame(ctx)
	assert.For("state at frame 14").That(mgr.State()).Equals(trace.Finished)
	assert.For("capture off").ThatSlice(rec.stateCalls()).Equals([]bool{true, false})
}

func TestDurationModeCapture(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	rec := &recorder{}
	mgr := trace.NewManager(rec,
		trace.WithTraceDir("/tmp"),
		trace.WithDuration(50*time.Millisecond),
	)

	assert.For("trigger").ThatError(mgr.TriggerTrace(ctx)).Succeeded()
	assert.For("state after trigger").That(mgr.State()).Equals(trace.Tracing)
	assert.For("path").ThatString(mgr.TraceFilePath()).Equals("/tmp/trace-0001.rd")
	assert.For("name before state").ThatSlice(rec.nameCalls()).Equals([]string{"/tmp/trace:1"})
	assert.For("capture on").ThatSlice(rec.stateCalls()).Equals([]bool{true})

	assert.For("wait").ThatError(mgr.WaitForTraceDone(ctx)).Succeeded()
	assert.For("state after wait").That(mgr.State()).Equals(trace.Finished)
	assert.For("capture off").ThatSlice(rec.stateCalls()).Equals([]bool{true, false})

	// A second trigger resets the machine and names the next trace.
	assert.For("retrigger").ThatError(mgr.TriggerTrace(ctx)).Succeeded()
	assert.For("wait again").ThatError(mgr.WaitForTraceDone(ctx)).Succeeded()
	assert.For("path 2").ThatString(mgr.TraceFilePath()).Equals("/tmp/trace-0002.rd")
}

func TestSecondTriggerWhileInFlight(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(&recorder{}, trace.WithTriggerFrameNum(5))
	assert.For("first").ThatError(mgr.TriggerTrace(ctx)).Succeeded()
	assert.For("second").ThatError(mgr.TriggerTrace(ctx)).Equals(trace.ErrCaptureInFlight)
}

func TestTriggerWithUnavailableCapturer(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(trace.Unavailable(), trace.WithTriggerFrameNum(10))
	err := mgr.TriggerTrace(ctx)
	assert.For("trigger").ThatError(err).Failed()
	// The state machine does not advance when the helper is missing.
	assert.For("state").That(mgr.State()).Equals(trace.Idle)
}

func TestFrameCounterIsMonotonic(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(&recorder{}, trace.WithTriggerFrameNum(3), trace.WithFramesToTrace(1))
	last := uint32(0)
	for i := 0; i < 20; i++ {
		if i == 2 {
			mgr.TriggerTrace(ctx)
		}
		mgr.OnNewFrame(ctx)
		n := mgr.FrameNum()
		assert.For("monotonic at %d", i).That(n > last).Equals(true)
		last = n
	}
}

func TestStateTransitionsStayLegal(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	rec := &recorder{}
	mgr := trace.NewManager(rec, trace.WithTriggerFrameNum(2), trace.WithFramesToTrace(2))

	seen := map[trace.State]bool{}
	observe := func() {
		s := mgr.State()
		seen[s] = true
		switch s {
		case trace.Idle, trace.Triggered, trace.Tracing, trace.Finished:
		default:
			t.Fatalf("illegal state %v", s)
		}
	}
	observe()
	mgr.OnNewFrame(ctx)
	mgr.TriggerTrace(ctx)
	observe()
	for i := 0; i < 6; i++ {
		mgr.OnNewFrame(ctx)
		observe()
	}
	for _, s := range []trace.State{trace.Idle, trace.Triggered, trace.Tracing, trace.Finished} {
		assert.For("visited %v", s).That(seen[s]).Equals(true)
	}

	// Every start is paired with exactly one stop before the next start.
	states := rec.stateCalls()
	for i, enabled := range states {
		assert.For("pairing at %d", i).That(enabled).Equals(i%2 == 0)
	}
}

func TestManualStartStop(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	rec := &recorder{}
	mgr := trace.NewManager(rec)

	assert.For("start").ThatError(mgr.StartCapture(ctx, "/sdcard/Download/manual.rd")).Succeeded()
	assert.For("state").That(mgr.State()).Equals(trace.Tracing)
	// Frame callbacks never stop a manual capture.
	for i := 0; i < 10; i++ {
		mgr.OnNewFrame(ctx)
	}
	assert.For("still tracing").That(mgr.State()).Equals(trace.Tracing)

	assert.For("stop").ThatError(mgr.StopCapture(ctx)).Succeeded()
	assert.For("finished").That(mgr.State()).Equals(trace.Finished)
	assert.For("path").ThatString(mgr.TraceFilePath()).Equals("/sdcard/Download/manual.rd")
	assert.For("pairing").ThatSlice(rec.stateCalls()).Equals([]bool{true, false})
}

func TestStopWithoutStart(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(&recorder{})
	assert.For("stop").ThatError(mgr.StopCapture(ctx)).Equals(trace.ErrNotCapturing)
}

func TestWaitForTraceDoneCancellation(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	mgr := trace.NewManager(&recorder{}, trace.WithTriggerFrameNum(10))
	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := mgr.WaitForTraceDone(waitCtx)
	assert.For("wait").ThatError(err).Failed()
}
