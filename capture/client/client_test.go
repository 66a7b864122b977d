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

package client

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/dive/capture/connection"
	"github.com/google/dive/capture/message"
	"github.com/google/dive/core/assert"
	"github.com/google/dive/core/log"
)

// fakeLayer runs a scripted peer for a single connection, standing in for
// layers of arbitrary age.
func fakeLayer(t *testing.T, script func(*connection.Connection)) (host, port string) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		script(connection.NewSocket(conn))
	}()
	host, port, err = net.SplitHostPort(l.Addr().String())
	if err != nil {
		t.Fatalf("addr: %v", err)
	}
	return host, port
}

// expectTag consumes a tag from the client and reports whether it matched.
func expectTag(t *testing.T, c *connection.Connection, want message.Type) bool {
	got, err := message.RecvType(c)
	if err != nil {
		t.Errorf("recv tag: %v", err)
		return false
	}
	if got != want {
		t.Errorf("got tag %v, want %v", got, want)
		return false
	}
	return true
}

// answerHandShake consumes the client handshake and replies with the given
// layer version.
func answerHandShake(t *testing.T, c *connection.Connection, major, minor uint32) bool {
	if !expectTag(t, c, message.TypeHandShake) {
		return false
	}
	req := message.HandShake{}
	if err := req.Recv(c); err != nil {
		t.Errorf("recv handshake: %v", err)
		return false
	}
	resp := message.HandShake{Major: major, Minor: minor}
	if err := resp.Send(c); err != nil {
		t.Errorf("send handshake: %v", err)
		return false
	}
	return true
}

func TestOldHostRejected(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	host, port := fakeLayer(t, func(c *connection.Connection) {
		answerHandShake(t, c, 3, 0)
	})

	c := New(host, port)
	c.major, c.minor = 1, 0
	defer c.Close()
	assert.For("handshake").ThatError(c.HandShake(ctx)).Equals(ErrDiveVersionTooOld)
}

func TestCapabilityGateRejectsOldInstance(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	host, port := fakeLayer(t, func(c *connection.Connection) {
		if !answerHandShake(t, c, 2, 4) {
			return
		}
		if !expectTag(t, c, message.TypeLayerCapabilities) {
			return
		}
		// The layer reports capabilities, but the device extension is not
		// enabled in the driver.
		caps := message.LayerCapabilitiesMessage{
			LayerCapabilities: message.SupportLayerCapabilities,
		}
		caps.Send(c)
	})

	c := New(host, port)
	defer c.Close()
	assert.For("handshake").ThatError(c.HandShake(ctx)).Equals(ErrInstanceVersionTooOld)
}

func TestIcdVersionGate(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	host, port := fakeLayer(t, func(c *connection.Connection) {
		if !answerHandShake(t, c, 2, 4) {
			return
		}
		if !expectTag(t, c, message.TypeLayerCapabilities) {
			return
		}
		caps := message.LayerCapabilitiesMessage{
			IcdSpecVersion: message.NewIcdVersion(0, 3, 0),
			LayerCapabilities: message.SupportLayerCapabilities |
				message.DeviceExtEnabled |
				message.SupportIcdCaptureVersion |
				message.SupportCaptureSqttCounters,
		}
		caps.Send(c)
	})

	c := New(host, port)
	defer c.Close()
	assert.For("handshake").ThatError(c.HandShake(ctx)).Equals(ErrInstanceVersionTooOld)
}

func TestUnsupportedCaptureModeOnOldLayer(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	host, port := fakeLayer(t, func(c *connection.Connection) {
		// A 2.0 layer: no capability negotiation, no capture config.
		answerHandShake(t, c, 2, 0)
	})

	c := New(host, port)
	defer c.Close()
	assert.For("handshake").ThatError(c.HandShake(ctx)).Succeeded()
	cfg := &message.CaptureConfig{Mode: message.CaptureSqttCounter}
	_, err := c.TriggerCapture(ctx, cfg)
	assert.For("trigger").ThatError(err).Equals(ErrUnsupportedCaptureMode)
}

func TestOnInstanceCaptureIsFetched(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	content := []byte("on-instance capture contents")
	src := filepath.Join(t.TempDir(), "trace-frame-0010.rd")
	if err := os.WriteFile(src, content, 0644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	host, port := fakeLayer(t, func(c *connection.Connection) {
		if !answerHandShake(t, c, 2, 0) {
			return
		}
		if !expectTag(t, c, message.TypeTriggerCapture) {
			return
		}
		// Report the capture under the on-instance prefix so the client
		// fetches it, then serve the local file when it does.
		done := message.TriggerCaptureDone{
			SavedCapturePath: message.CaptureDirOnInstance + "trace-frame-0010.rd",
		}
		if err := done.Send(c); err != nil {
			t.Errorf("send done: %v", err)
			return
		}
		if !expectTag(t, c, message.TypeGetCaptureFileReq) {
			return
		}
		req := message.GetCaptureFileRequest{}
		if err := req.Recv(c); err != nil {
			t.Errorf("recv file request: %v", err)
			return
		}
		resp := message.GetCaptureFileResponse{FilePath: src}
		if err := resp.Send(ctx, c); err != nil {
			t.Errorf("send file: %v", err)
		}
	})

	c := New(host, port)
	defer c.Close()
	assert.For("handshake").ThatError(c.HandShake(ctx)).Succeeded()
	path, err := c.TriggerCapture(ctx, nil)
	assert.For("trigger").ThatError(err).Succeeded()
	assert.For("local path").ThatString(path).HasSuffix("trace-frame-0010.rd")
	assert.For("fetched locally").That(path).NotEquals(message.CaptureDirOnInstance + "trace-frame-0010.rd")
	got, err := os.ReadFile(path)
	assert.For("read").ThatError(err).Succeeded()
	assert.For("content").ThatSlice(got).Equals(content)
}

func TestStopCaptureClosesConnection(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)
	received := make(chan message.Type, 2)
	host, port := fakeLayer(t, func(c *connection.Connection) {
		for {
			tag, err := message.RecvType(c)
			if err != nil {
				return
			}
			switch tag {
			case message.TypeStartCapture:
				msg := message.StartCapture{}
				msg.Recv(c)
			case message.TypeStopCapture:
			}
			received <- tag
		}
	})

	c := New(host, port)
	assert.For("start").ThatError(c.StartCapture(ctx, "/sdcard/Download/manual.rd")).Succeeded()
	assert.For("start received").That(<-received).Equals(message.TypeStartCapture)
	assert.For("stop").ThatError(c.StopCapture(ctx)).Succeeded()
	assert.For("stop received").That(<-received).Equals(message.TypeStopCapture)
	assert.For("closed").That(c.initialized).Equals(false)
}

func TestDialRetryGivesUp(t *testing.T) {
	ctx, cancel := context.WithTimeout(log.Testing(t), 10*time.Second)
	defer cancel()
	assert := assert.To(t)
	// Port 1 is never listening on loopback.
	c := New("127.0.0.1", "1")
	err := c.Init(ctx)
	assert.For("init").ThatError(err).Failed()
}
