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

//go:build !linux || !cgo

package wrap

import (
	"context"

	"github.com/google/dive/capture/trace"
)

// Bind always fails on platforms without dynamic symbol lookup.
func Bind(ctx context.Context) (trace.Capturer, error) {
	return nil, ErrNotLoaded
}
