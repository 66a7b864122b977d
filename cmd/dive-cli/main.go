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

// dive-cli drives a capture from the host: it arms the trigger on the
// device, waits for the trace file and downloads it. Device discovery and
// port forwarding are handled by the surrounding adb tooling.
package main

import (
	"context"
	"os"

	"github.com/google/dive/core/log"
	"github.com/spf13/cobra"
)

var flags struct {
	device          string
	pkg             string
	appType         string
	downloadPath    string
	triggerFrameNum uint32
	target          string
}

func main() {
	root := &cobra.Command{
		Use:           "dive-cli",
		Short:         "Capture GPU render pipeline traces from a device",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.device, "device", "", "device serial")
	pf.StringVar(&flags.pkg, "package", "", "package on the device")
	pf.StringVar(&flags.appType, "type", "openxr",
		"application type:\n\t`openxr` for OpenXR applications (apk)")
	pf.StringVar(&flags.downloadPath, "download-path", ".",
		"full path to download the capture on the host, default to current directory")
	pf.Uint32Var(&flags.triggerFrameNum, "trigger-frame-num", 100,
		"frame number that will start the capture")
	pf.StringVar(&flags.target, "target", "localhost:19998",
		"forwarded address of the device RPC service")

	root.AddCommand(captureCmd(), cleanupCmd())

	ctx := log.PutProcess(context.Background(), "dive-cli")
	ctx = log.PutHandler(ctx, log.Std())
	if err := root.ExecuteContext(ctx); err != nil {
		log.E(ctx, "%v", err)
		os.Exit(1)
	}
}
