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

package layer_test

import (
	"testing"

	"github.com/google/dive/capture/trace"
	"github.com/google/dive/core/assert"
	"github.com/google/dive/core/log"
	"github.com/google/dive/layer"
)

func TestInitIsIdempotentAndShutsDown(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	cfg := layer.DefaultConfig()
	cfg.Port = "0"
	cfg.TraceDir = t.TempDir()

	l, err := layer.Init(ctx, cfg)
	assert.For("init").ThatError(err).Succeeded()
	assert.For("singleton").That(layer.Get()).Equals(l)

	again, err := layer.Init(ctx, cfg)
	assert.For("reinit").ThatError(err).Succeeded()
	assert.For("same instance").That(again).Equals(l)

	// Without the helper library the manager is still constructed; frame
	// callbacks tick the counter.
	l.OnNewFrame(ctx)
	l.OnNewFrame(ctx)
	assert.For("frames").That(l.Manager().FrameNum()).Equals(uint32(2))
	assert.For("state").That(l.Manager().State()).Equals(trace.Idle)

	l.Shutdown(ctx)
	assert.For("cleared").That(layer.Get()).IsNil()
}
