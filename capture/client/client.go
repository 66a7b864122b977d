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

// Package client implements the host-side driver of the capture service:
// handshake, capability negotiation, capture triggers and trace file
// retrieval.
package client

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/dive/capture/connection"
	"github.com/google/dive/capture/message"
	"github.com/google/dive/core/event/task"
	"github.com/google/dive/core/fault"
	"github.com/google/dive/core/log"
	"github.com/pkg/errors"
)

const (
	// dialAttempts and dialRetryDelay bound the connect retry loop.
	dialAttempts   = 10
	dialRetryDelay = 500 * time.Millisecond
)

// The errors a capture exchange can surface.
const (
	// ErrSocket wraps any framing or transport error. The connection is
	// abandoned and never retried by this package.
	ErrSocket = fault.Const("socket error")
	// ErrDiveVersionTooOld means the host tool protocol is older than the
	// layer's and cannot drive it.
	ErrDiveVersionTooOld = fault.Const("host tool is too old for the layer")
	// ErrInstanceVersionTooOld means the layer or driver on the instance is
	// too old for this host tool.
	ErrInstanceVersionTooOld = fault.Const("software on the instance is too old")
	// ErrLegacyCounterNeedMultiplePasses means the requested legacy counter
	// set needs more than one GPA pass.
	ErrLegacyCounterNeedMultiplePasses = fault.Const("legacy counters need multiple passes")
	// ErrUnsupportedCaptureMode means the layer is too old to honor the
	// requested capture mode.
	ErrUnsupportedCaptureMode = fault.Const("capture mode not supported by the layer")
	// ErrCaptureFailed means the capture was triggered but did not complete
	// normally.
	ErrCaptureFailed = fault.Const("capture failed")
)

// Client drives a capture service over the wire protocol.
type Client struct {
	host        string
	port        string
	conn        *connection.Connection
	initialized bool

	// Local protocol version; only tests override these.
	major uint32
	minor uint32

	layerMajor uint32
	layerMinor uint32
	icdCaps    message.IcdCapabilities
	icdVersion message.IcdVersion
	layerCaps  message.LayerCapabilities
}

// New returns a Client that will connect to the given host and port.
func New(host, port string) *Client {
	return &Client{
		host:  host,
		port:  port,
		major: message.ProtocolMajorVersion,
		minor: message.ProtocolMinorVersion,
	}
}

// Init connects to the capture service. The dial is retried for a short
// while: forwarded device sockets have a tendency to be closed immediately
// when the service is not yet accepting.
func (c *Client) Init(ctx context.Context) error {
	err := task.Retry(ctx, dialAttempts, dialRetryDelay,
		func(ctx context.Context) (bool, error) {
			conn, err := connection.Dial(ctx, c.host, c.port)
			if err != nil {
				return false, err
			}
			c.conn = conn
			return true, nil
		})
	if err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	c.initialized = true
	return nil
}

// Close abandons the connection.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = nil
	c.initialized = false
}

// HandShake exchanges protocol versions with the layer and, for layers at
// 2.2 or newer, negotiates capabilities.
func (c *Client) HandShake(ctx context.Context) error {
	if !c.initialized {
		if err := c.Init(ctx); err != nil {
			return err
		}
	}
	req := message.HandShake{Major: c.major, Minor: c.minor}
	if err := req.Send(c.conn); err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	t, err := message.RecvType(c.conn)
	if err != nil || t != message.TypeHandShake {
		return errors.WithMessage(ErrSocket, "handshake reply not received")
	}
	resp := message.HandShake{}
	if err := resp.Recv(c.conn); err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	c.layerMajor, c.layerMinor = resp.Major, resp.Minor

	if resp.Major > c.major {
		log.D(ctx, "Version mismatch: host tool is too old")
		return ErrDiveVersionTooOld
	} else if resp.Major < c.major {
		// The host tool may still work with an older layer; capability
		// checks below decide.
		log.D(ctx, "Version mismatch: software on instance is older")
	}

	// Version 2.2 added support to get the capabilities of the layer.
	if resp.Major >= 2 && resp.Minor >= 2 {
		if err := c.negotiateCapabilities(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) negotiateCapabilities(ctx context.Context) error {
	get := message.GetLayerCapabilities{}
	if err := get.Send(c.conn); err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	t, err := message.RecvType(c.conn)
	if err != nil || t != message.TypeLayerCapabilities {
		return errors.WithMessage(ErrSocket, "capabilities reply not received")
	}
	caps := message.LayerCapabilitiesMessage{}
	if err := caps.Recv(c.conn); err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	c.icdCaps = caps.IcdCapabilities
	c.icdVersion = caps.IcdSpecVersion
	c.layerCaps = caps.LayerCapabilities
	log.D(ctx, "Instance capture spec version %v", c.icdVersion)

	if !c.layerCaps.Has(message.SupportLayerCapabilities) {
		return nil
	}
	// An ancient driver without any capture functionality never sets the
	// device extension flag.
	if !c.layerCaps.Has(message.DeviceExtEnabled) ||
		!c.layerCaps.Has(message.SupportCaptureSqttCounters) {
		return ErrInstanceVersionTooOld
	}
	// When the driver reports its capture spec version, reject it if both
	// the minor version is below 4 and the revision is below 1.
	if c.layerCaps.Has(message.SupportIcdCaptureVersion) &&
		c.icdVersion.Minor() < 4 && c.icdVersion.Revision() < 1 {
		return ErrInstanceVersionTooOld
	}
	return nil
}

// TriggerCapture asks the layer to take a capture and returns the path of
// the produced trace file. When the layer saved the capture on the
// instance, the file is retrieved and the local path is returned instead.
// A nil config captures in the default PM4+sqtt mode.
func (c *Client) TriggerCapture(ctx context.Context, config *message.CaptureConfig) (string, error) {
	if !c.initialized {
		if err := c.Init(ctx); err != nil {
			return "", err
		}
	}

	if c.layerMajor >= 2 && c.layerMinor >= 1 {
		if err := c.sendCaptureConfig(ctx, config); err != nil {
			return "", err
		}
	} else if config != nil && config.Mode != message.CapturePM4AndSqtt {
		return "", ErrUnsupportedCaptureMode
	}

	trigger := message.TriggerCapture{}
	if err := trigger.Send(c.conn); err != nil {
		return "", errors.WithMessage(ErrSocket, err.Error())
	}

	log.D(ctx, "Wait for capture done")
	t, err := message.RecvType(c.conn)
	if err != nil {
		return "", errors.WithMessage(ErrSocket, err.Error())
	}
	if t != message.TypeTriggerCaptureDone {
		log.W(ctx, "Wait for capture done failed")
		return "", ErrCaptureFailed
	}
	done := message.TriggerCaptureDone{}
	if err := done.Recv(c.conn); err != nil {
		return "", errors.WithMessage(ErrSocket, err.Error())
	}
	path := done.SavedCapturePath

	// Captures saved on the instance are copied to the host so they can be
	// opened locally.
	if strings.Contains(path, message.CaptureDirOnInstance) {
		local, err := c.fetchCaptureFile(ctx, path)
		if err != nil {
			return "", err
		}
		path = local
	}
	log.D(ctx, "Capture is at %s", path)
	return path, nil
}

func (c *Client) sendCaptureConfig(ctx context.Context, config *message.CaptureConfig) error {
	if config == nil {
		config = &message.CaptureConfig{Mode: message.CapturePM4AndSqtt}
	}
	msg := message.CaptureConfigMessage{Config: *config}
	if err := msg.Send(c.conn); err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	// CAPTURE_CONFIG_DONE arrives from 2.3 layers, and only for legacy
	// counter modes to stay compatible with older hosts.
	if c.layerMinor < 3 || !config.IsCapturingLegacyCounters() {
		return nil
	}
	t, err := message.RecvType(c.conn)
	if err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	if t != message.TypeCaptureConfigDone {
		return errors.WithMessage(ErrSocket, fmt.Sprintf("unexpected message %v", t))
	}
	done := message.CaptureConfigDone{}
	if err := done.Recv(c.conn); err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	if done.Status == message.ConfigFailMultipleGpaPasses {
		return ErrLegacyCounterNeedMultiplePasses
	}
	return nil
}

func (c *Client) fetchCaptureFile(ctx context.Context, path string) (string, error) {
	log.D(ctx, "Begin to copy capture from instance to local")
	req := message.GetCaptureFileRequest{FilePath: path}
	if err := req.Send(c.conn); err != nil {
		log.W(ctx, "Request to copy the capture from instance failed")
		return "", errors.WithMessage(ErrSocket, err.Error())
	}
	t, err := message.RecvType(c.conn)
	if err != nil {
		return "", errors.WithMessage(ErrSocket, err.Error())
	}
	if t != message.TypeGetCaptureFileRsp {
		return "", errors.WithMessage(ErrSocket, fmt.Sprintf("unexpected message %v", t))
	}
	resp := message.GetCaptureFileResponse{}
	if err := resp.Recv(ctx, c.conn, os.TempDir()); err != nil {
		return "", errors.WithMessage(ErrSocket, err.Error())
	}
	log.D(ctx, "Copied capture of %d bytes from instance", resp.FileSize)
	return resp.FilePath, nil
}

// StartCapture starts a manual capture saved to path on the instance.
func (c *Client) StartCapture(ctx context.Context, path string) error {
	if !c.initialized {
		if err := c.Init(ctx); err != nil {
			return err
		}
	}
	msg := message.StartCapture{TargetPath: path}
	if err := msg.Send(c.conn); err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	return nil
}

// StopCapture stops a manual capture and closes the connection.
func (c *Client) StopCapture(ctx context.Context) error {
	if !c.initialized {
		if err := c.Init(ctx); err != nil {
			return err
		}
	}
	msg := message.StopCapture{}
	if err := msg.Send(c.conn); err != nil {
		return errors.WithMessage(ErrSocket, err.Error())
	}
	c.Close()
	return nil
}

// LayerVersionString returns the layer protocol version as "major.minor".
func (c *Client) LayerVersionString() string {
	return fmt.Sprintf("%d.%d", c.layerMajor, c.layerMinor)
}

// IcdVersionString returns the driver capture spec version as
// "major.minor.revision".
func (c *Client) IcdVersionString() string {
	return c.icdVersion.String()
}

// IsPerfCounterEnabled reports whether the layer supports perf counter
// capture, which shipped with protocol 2.4.
func (c *Client) IsPerfCounterEnabled() bool {
	return c.layerMinor >= 4
}

// LayerCapabilities returns the negotiated layer capabilities.
func (c *Client) LayerCapabilities() message.LayerCapabilities {
	return c.layerCaps
}

// IcdCapabilities returns the negotiated driver capabilities.
func (c *Client) IcdCapabilities() message.IcdCapabilities {
	return c.icdCaps
}
