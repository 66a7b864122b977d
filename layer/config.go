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

package layer

import (
	"context"
	"os"
	"time"

	captureservice "github.com/google/dive/capture/service"
	"github.com/google/dive/capture/trace"
	"github.com/google/dive/core/log"
	"github.com/google/dive/service"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the optional layer configuration is read from
// on the target.
const DefaultConfigPath = "/data/local/tmp/dive_layer_config.yaml"

// Config controls the layer runtime. Zero values select the defaults; the
// dive.trigger_frame_num system property overrides TriggerFrameNum when
// set.
type Config struct {
	// Host and Port of the capture wire service.
	Host string `yaml:"host"`
	Port string `yaml:"port"`

	// TraceDir is where captures are written.
	TraceDir string `yaml:"trace_dir"`

	// TriggerFrameNum selects frame mode and names the capture; zero
	// selects duration mode.
	TriggerFrameNum uint32 `yaml:"trigger_frame_num"`

	// FramesToTrace is how many frames a frame-mode capture records.
	FramesToTrace uint32 `yaml:"frames_to_trace"`

	// CaptureDurationMs is how long a duration-mode capture records.
	CaptureDurationMs uint32 `yaml:"capture_duration_ms"`

	// EnableRPC starts the host facing RPC service.
	EnableRPC bool `yaml:"enable_rpc"`
	// RPCPort is the port the RPC service listens on.
	RPCPort string `yaml:"rpc_port"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Host:          captureservice.DefaultHost,
		Port:          captureservice.DefaultPort,
		TraceDir:      trace.DefaultTraceDir,
		FramesToTrace: 1,
		RPCPort:       service.DefaultPort,
	}
}

// LoadConfig reads the layer configuration at path, falling back to the
// defaults when the file does not exist.
func LoadConfig(ctx context.Context, path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, log.Errf(ctx, err, "Read layer config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, log.Errf(ctx, err, "Parse layer config %s", path)
	}
	if cfg.Host == "" {
		cfg.Host = captureservice.DefaultHost
	}
	if cfg.Port == "" {
		cfg.Port = captureservice.DefaultPort
	}
	if cfg.TraceDir == "" {
		cfg.TraceDir = trace.DefaultTraceDir
	}
	if cfg.FramesToTrace == 0 {
		cfg.FramesToTrace = 1
	}
	if cfg.RPCPort == "" {
		cfg.RPCPort = service.DefaultPort
	}
	return cfg, nil
}

// Duration returns the configured capture duration, or the default when
// unset.
func (c Config) Duration() time.Duration {
	if c.CaptureDurationMs == 0 {
		return trace.DefaultDuration
	}
	return time.Duration(c.CaptureDurationMs) * time.Millisecond
}
