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

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/dive/capture/connection"
	"github.com/google/dive/core/log"
)

func sendTag(c *connection.Connection, t Type) error {
	return c.SendUint8(uint8(t))
}

// RecvType reads the next message tag from the connection.
func RecvType(c *connection.Connection) (Type, error) {
	v, err := c.RecvUint8()
	return Type(v), err
}

// HandShake is the version exchange. Request and response share the format.
type HandShake struct {
	Major uint32
	Minor uint32
}

// Send writes the message, tag included.
func (m *HandShake) Send(c *connection.Connection) error {
	if err := sendTag(c, TypeHandShake); err != nil {
		return err
	}
	if err := c.SendUint32(m.Major); err != nil {
		return err
	}
	return c.SendUint32(m.Minor)
}

// Recv reads the message payload. The tag has already been consumed by the
// dispatcher.
func (m *HandShake) Recv(c *connection.Connection) error {
	var err error
	if m.Major, err = c.RecvUint32(); err != nil {
		return err
	}
	m.Minor, err = c.RecvUint32()
	return err
}

// GetLayerCapabilities asks the layer for its capabilities. It carries no
// payload.
type GetLayerCapabilities struct{}

// Send writes the message.
func (m *GetLayerCapabilities) Send(c *connection.Connection) error {
	return sendTag(c, TypeLayerCapabilities)
}

// Recv reads the (empty) message payload.
func (m *GetLayerCapabilities) Recv(c *connection.Connection) error {
	return nil
}

// LayerCapabilitiesMessage reports the capabilities of the layer and the
// installed driver.
type LayerCapabilitiesMessage struct {
	IcdCapabilities   IcdCapabilities
	IcdSpecVersion    IcdVersion
	LayerCapabilities LayerCapabilities
}

// Send writes the message, tag included.
func (m *LayerCapabilitiesMessage) Send(c *connection.Connection) error {
	if err := sendTag(c, TypeLayerCapabilities); err != nil {
		return err
	}
	for _, v := range []uint32{
		uint32(m.IcdCapabilities),
		m.IcdSpecVersion.Dword1,
		m.IcdSpecVersion.Dword2,
		uint32(m.LayerCapabilities),
	} {
		if err := c.SendUint32(v); err != nil {
			return err
		}
	}
	return nil
}

// Recv reads the message payload.
func (m *LayerCapabilitiesMessage) Recv(c *connection.Connection) error {
	icdCaps, err := c.RecvUint32()
	if err != nil {
		return err
	}
	if m.IcdSpecVersion.Dword1, err = c.RecvUint32(); err != nil {
		return err
	}
	if m.IcdSpecVersion.Dword2, err = c.RecvUint32(); err != nil {
		return err
	}
	layerCaps, err := c.RecvUint32()
	if err != nil {
		return err
	}
	m.IcdCapabilities = IcdCapabilities(icdCaps)
	m.LayerCapabilities = LayerCapabilities(layerCaps)
	return nil
}

// TriggerCapture asks the layer to take a capture. It carries no payload.
type TriggerCapture struct{}

// Send writes the message.
func (m *TriggerCapture) Send(c *connection.Connection) error {
	return sendTag(c, TypeTriggerCapture)
}

// Recv reads the (empty) message payload.
func (m *TriggerCapture) Recv(c *connection.Connection) error {
	return nil
}

// TriggerCaptureDone reports the path the capture was saved to.
type TriggerCaptureDone struct {
	SavedCapturePath string
}

// Send writes the message, tag included.
func (m *TriggerCaptureDone) Send(c *connection.Connection) error {
	if err := sendTag(c, TypeTriggerCaptureDone); err != nil {
		return err
	}
	return c.SendString(m.SavedCapturePath)
}

// Recv reads the message payload.
func (m *TriggerCaptureDone) Recv(c *connection.Connection) error {
	var err error
	m.SavedCapturePath, err = c.ReadString()
	return err
}

// StartCapture starts a manual capture written to TargetPath.
type StartCapture struct {
	TargetPath string
}

// Send writes the message, tag included.
func (m *StartCapture) Send(c *connection.Connection) error {
	if err := sendTag(c, TypeStartCapture); err != nil {
		return err
	}
	return c.SendString(m.TargetPath)
}

// Recv reads the message payload.
func (m *StartCapture) Recv(c *connection.Connection) error {
	var err error
	m.TargetPath, err = c.ReadString()
	return err
}

// StopCapture stops a manual capture. It carries no payload.
type StopCapture struct{}

// Send writes the message.
func (m *StopCapture) Send(c *connection.Connection) error {
	return sendTag(c, TypeStopCapture)
}

// Recv reads the (empty) message payload.
func (m *StopCapture) Recv(c *connection.Connection) error {
	return nil
}

// GetCaptureFileRequest asks for the contents of the capture at FilePath.
type GetCaptureFileRequest struct {
	FilePath string
}

// Send writes the message, tag included.
func (m *GetCaptureFileRequest) Send(c *connection.Connection) error {
	if err := sendTag(c, TypeGetCaptureFileReq); err != nil {
		return err
	}
	return c.SendString(m.FilePath)
}

// Recv reads the message payload.
func (m *GetCaptureFileRequest) Recv(c *connection.Connection) error {
	var err error
	m.FilePath, err = c.ReadString()
	return err
}

// GetCaptureFileResponse carries the contents of a capture file. Send
// streams the file at FilePath from disk; Recv writes the contents to a new
// file in destDir and replaces FilePath with the local copy.
type GetCaptureFileResponse struct {
	FilePath string
	FileSize uint32
}

// Send writes the message header and then streams the file contents.
func (m *GetCaptureFileResponse) Send(ctx context.Context, c *connection.Connection) error {
	info, err := os.Stat(m.FilePath)
	if err != nil {
		return log.Errf(ctx, err, "Stat capture %s", m.FilePath)
	}
	m.FileSize = uint32(info.Size())
	if err := sendTag(c, TypeGetCaptureFileRsp); err != nil {
		return err
	}
	if err := c.SendString(m.FilePath); err != nil {
		return err
	}
	if err := c.SendUint32(m.FileSize); err != nil {
		return err
	}
	return c.SendFile(ctx, m.FilePath)
}

// Recv reads the message payload, saving the file contents under destDir.
func (m *GetCaptureFileResponse) Recv(ctx context.Context, c *connection.Connection, destDir string) error {
	var err error
	if m.FilePath, err = c.ReadString(); err != nil {
		return err
	}
	if m.FileSize, err = c.RecvUint32(); err != nil {
		return err
	}
	local := filepath.Join(destDir, filepath.Base(m.FilePath))
	if err := c.ReceiveFile(ctx, local, int64(m.FileSize)); err != nil {
		return err
	}
	m.FilePath = local
	return nil
}

// CaptureConfigMessage carries the configuration for the next capture.
type CaptureConfigMessage struct {
	Config CaptureConfig
}

// Send writes the message, tag included. In sqtt counter mode the full
// fixed-size counter block is written even when fewer records are valid.
func (m *CaptureConfigMessage) Send(c *connection.Connection) error {
	if err := sendTag(c, TypeCaptureConfig); err != nil {
		return err
	}
	if err := c.SendUint8(uint8(m.Config.Mode)); err != nil {
		return err
	}
	switch {
	case m.Config.Mode == CaptureSqttCounter:
		sqtt := &m.Config.SqttCounters
		if err := c.SendUint32(sqtt.Count); err != nil {
			return err
		}
		for i := 0; i < PerfCounterCount; i++ {
			if err := c.SendUint32(sqtt.Counters[i].Index); err != nil {
				return err
			}
			if err := c.SendUint32(sqtt.Counters[i].ShaderEngine); err != nil {
				return err
			}
		}
	case m.Config.Mode.IsCapturingLegacyCounters():
		if err := c.SendUint32(uint32(len(m.Config.LegacyCounters))); err != nil {
			return err
		}
		for _, name := range m.Config.LegacyCounters {
			if err := c.SendString(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Recv reads the message payload.
func (m *CaptureConfigMessage) Recv(c *connection.Connection) error {
	mode, err := c.RecvUint8()
	if err != nil {
		return err
	}
	m.Config.Mode = CaptureMode(mode)
	switch {
	case m.Config.Mode == CaptureSqttCounter:
		sqtt := &m.Config.SqttCounters
		if sqtt.Count, err = c.RecvUint32(); err != nil {
			return err
		}
		for i := 0; i < PerfCounterCount; i++ {
			if sqtt.Counters[i].Index, err = c.RecvUint32(); err != nil {
				return err
			}
			if sqtt.Counters[i].ShaderEngine, err = c.RecvUint32(); err != nil {
				return err
			}
		}
	case m.Config.Mode.IsCapturingLegacyCounters():
		count, err := c.RecvUint32()
		if err != nil {
			return err
		}
		for i := uint32(0); i < count; i++ {
			name, err := c.ReadString()
			if err != nil {
				return err
			}
			m.Config.LegacyCounters = append(m.Config.LegacyCounters, name)
		}
	}
	return nil
}

// CaptureConfigDone acknowledges a capture configuration.
type CaptureConfigDone struct {
	Status ConfigStatus
}

// Send writes the message, tag included.
func (m *CaptureConfigDone) Send(c *connection.Connection) error {
	if err := sendTag(c, TypeCaptureConfigDone); err != nil {
		return err
	}
	return c.SendUint32(uint32(m.Status))
}

// Recv reads the message payload.
func (m *CaptureConfigDone) Recv(c *connection.Connection) error {
	v, err := c.RecvUint32()
	m.Status = ConfigStatus(v)
	return err
}

// SendUnknown writes the UNKNOWN tag, used to abort an exchange the peer is
// waiting on before closing the connection.
func SendUnknown(c *connection.Connection) error {
	return sendTag(c, TypeUnknown)
}
