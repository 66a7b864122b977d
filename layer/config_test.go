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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/dive/core/assert"
	"github.com/google/dive/core/log"
	"github.com/google/dive/layer"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	cfg, err := layer.LoadConfig(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.For("load").ThatError(err).Succeeded()
	assert.For("port").ThatString(cfg.Port).Equals("19999")
	assert.For("trace dir").ThatString(cfg.TraceDir).Equals("/data/local/tmp")
	assert.For("frames").That(cfg.FramesToTrace).Equals(uint32(1))
	assert.For("duration").That(cfg.Duration()).Equals(5 * time.Second)
	assert.For("rpc").That(cfg.EnableRPC).Equals(false)
}

func TestLoadConfigOverrides(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	path := filepath.Join(t.TempDir(), "dive_layer_config.yaml")
	data := `
port: "20123"
trace_dir: /sdcard/Download
trigger_frame_num: 42
frames_to_trace: 5
capture_duration_ms: 1500
enable_rpc: true
rpc_port: "20124"
`
	assert.For("write").ThatError(os.WriteFile(path, []byte(data), 0644)).Succeeded()
	cfg, err := layer.LoadConfig(ctx, path)
	assert.For("load").ThatError(err).Succeeded()
	assert.For("port").ThatString(cfg.Port).Equals("20123")
	assert.For("trace dir").ThatString(cfg.TraceDir).Equals("/sdcard/Download")
	assert.For("trigger").That(cfg.TriggerFrameNum).Equals(uint32(42))
	assert.For("frames").That(cfg.FramesToTrace).Equals(uint32(5))
	assert.For("duration").That(cfg.Duration()).Equals(1500 * time.Millisecond)
	assert.For("rpc").That(cfg.EnableRPC).Equals(true)
	assert.For("rpc port").ThatString(cfg.RPCPort).Equals("20124")
}

func TestLoadConfigRejectsBadYaml(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	assert.For("write").ThatError(os.WriteFile(path, []byte("port: [\n"), 0644)).Succeeded()
	_, err := layer.LoadConfig(ctx, path)
	assert.For("load").ThatError(err).Failed()
}
