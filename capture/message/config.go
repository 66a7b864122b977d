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

package message

// CaptureMode selects what a capture records.
type CaptureMode uint8

const (
	// CapturePM4Only records the PM4 command stream only.
	CapturePM4Only CaptureMode = 0
	// CapturePM4AndSqtt records PM4 and the sqtt thread trace.
	// This is the default mode.
	CapturePM4AndSqtt CaptureMode = 1
	// CaptureSqttCounter records the sqtt trace with perf counters.
	CaptureSqttCounter CaptureMode = 2
	// CaptureLegacyCounterPerDraw records legacy counters per draw.
	CaptureLegacyCounterPerDraw CaptureMode = 3
	// CaptureLegacyCounterPerRenderPass records legacy counters per render
	// pass.
	CaptureLegacyCounterPerRenderPass CaptureMode = 4
)

// IsCapturingLegacyCounters reports whether the mode records legacy
// counters.
func (m CaptureMode) IsCapturingLegacyCounters() bool {
	return m == CaptureLegacyCounterPerDraw || m == CaptureLegacyCounterPerRenderPass
}

// PerfCounterCount is the fixed number of sqtt counter records carried on
// the wire, regardless of how many are valid.
const PerfCounterCount = 16

// SqttCounter selects a single perf counter on a shader engine.
type SqttCounter struct {
	Index        uint32
	ShaderEngine uint32
}

// SqttCounterConfig holds the sqtt counter selection. Only the first Count
// entries of Counters are semantically valid, but all PerfCounterCount
// records cross the wire for bit compatibility with existing layers.
type SqttCounterConfig struct {
	Count    uint32
	Counters [PerfCounterCount]SqttCounter
}

// CaptureConfig describes what the next capture records.
type CaptureConfig struct {
	Mode           CaptureMode
	SqttCounters   SqttCounterConfig
	LegacyCounters []string
}

// IsCapturingLegacyCounters reports whether the config records legacy
// counters.
func (c *CaptureConfig) IsCapturingLegacyCounters() bool {
	return c.Mode.IsCapturingLegacyCounters()
}

// Presets for legacy counters.
var (
	PresetCulling = []string{
		"PrimitivesIn", "PrimitivesOut", "CulledZeroAreaPrims",
		"CulledMicroPrims", "OutputPrimsRatio", "CulledZeroAreaAndMicroPrimsRatio",
	}
	PresetAllShaderStage = []string{
		"VSBusyCycles", "PSBusyCycles", "VALUBusyPercentage", "SALUBusyPercentage",
		"WaitCntVMPercentage", "WaitCntExpPercentage", "WaitExpAllocPercentage",
	}
	PresetVertexShaderStage = []string{
		"VSBusyCycles", "VSVALUBusyPercentage", "VSSALUBusyPercentage",
		"VSWaitCntVMPercentage", "VSWaitCntExpPercentage", "VSWaitExpAllocPercentage",
	}
	PresetPixelShaderStage = []string{
		"PSBusyCycles", "PSVALUBusyPercentage", "PSSALUBusyPercentage",
		"PSWaitCntVMPercentage", "PSWaitCntExpPercentage", "PSWaitExpAllocPercentage",
	}
	PresetComputeShaderStage = []string{
		"CSBusyCycles", "CSVALUBusyPercentage", "CSSALUBusyPercentage",
		"CSWaitCntVMPercentage", "CSWaitCntExpPercentage", "CSWaitExpAllocPercentage",
	}
)
