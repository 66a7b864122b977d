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

import (
	"context"

	"github.com/google/dive/core/fault"
)

// ErrCapturerUnavailable is returned by the unavailable capturer, and
// surfaces at trigger time when the injected helper library could not be
// bound.
const ErrCapturerUnavailable = fault.Const("capture primitives unavailable")

// Capturer exposes the capture primitives provided by the injected helper
// library. The binding is resolved once at startup; implementations must be
// safe to call from the rendering thread.
type Capturer interface {
	// SetCaptureState starts (true) or stops (false) the capture.
	SetCaptureState(ctx context.Context, enabled bool) error
	// SetCaptureName configures the name of the next capture, composed of a
	// base path and a frame tag.
	SetCaptureName(ctx context.Context, name, frameTag string) error
}

// Unavailable returns a Capturer whose operations fail with
// ErrCapturerUnavailable. It is the binding of last resort when the helper
// library is not loaded.
func Unavailable() Capturer { return unavailable{} }

type unavailable struct{}

func (unavailable) SetCaptureState(ctx context.Context, enabled bool) error {
	return ErrCapturerUnavailable
}

func (unavailable) SetCaptureName(ctx context.Context, name, frameTag string) error {
	return ErrCapturerUnavailable
}
