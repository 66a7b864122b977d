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

// dive-service hosts the capture layer as a standalone process on the
// target device: the capture wire service plus the host facing RPC
// service. It is mainly used for bring-up and testing; in production the
// layer runs inside the traced application.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	captureservice "github.com/google/dive/capture/service"
	"github.com/google/dive/core/log"
	"github.com/google/dive/layer"
	"github.com/google/dive/service"
)

var (
	host       = flag.String("host", captureservice.DefaultHost, "interface to listen on")
	port       = flag.String("port", captureservice.DefaultPort, "port of the capture service")
	rpcPort    = flag.String("rpc-port", service.DefaultPort, "port of the RPC service")
	traceDir   = flag.String("trace-dir", "", "directory captures are written to")
	configPath = flag.String("config", layer.DefaultConfigPath, "path of the layer config file")
)

func main() {
	flag.Parse()
	ctx := log.PutProcess(context.Background(), "dive-service")
	ctx = log.PutHandler(ctx, log.Std())

	cfg, err := layer.LoadConfig(ctx, *configPath)
	if err != nil {
		log.W(ctx, "Using default config: %v", err)
	}
	cfg.Host = *host
	cfg.Port = *port
	cfg.RPCPort = *rpcPort
	cfg.EnableRPC = true
	if *traceDir != "" {
		cfg.TraceDir = *traceDir
	}

	l, err := layer.Init(ctx, cfg)
	if err != nil {
		log.F(ctx, "Start capture layer: %v", err)
		os.Exit(1)
	}
	log.I(ctx, "Capture service listening on %v", l.Service().Addr())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.I(ctx, "Shutting down")
	l.Shutdown(ctx)
}
