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

package trace

// State is the capture state of the trace manager.
//
// The only legal transitions are:
//
//	Idle      -> Triggered  on a trigger from the host
//	Triggered -> Tracing    at the next frame boundary, or immediately in
//	                        duration mode
//	Tracing   -> Finished   when the configured frame count or duration has
//	                        elapsed
//	Finished  -> Triggered  on a subsequent trigger
//
// A manual capture moves Idle or Finished straight to Tracing on
// StartCapture, and Tracing to Finished on StopCapture.
type State int

const (
	// Idle means no capture is in flight.
	Idle State = iota
	// Triggered means a capture has been requested but not yet started.
	Triggered
	// Tracing means a capture is being recorded.
	Tracing
	// Finished means the capture completed. Terminal for a given capture.
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Triggered:
		return "Triggered"
	case Tracing:
		return "Tracing"
	case Finished:
		return "Finished"
	default:
		return "?"
	}
}
