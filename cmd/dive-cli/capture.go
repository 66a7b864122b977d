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

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/dive/core/log"
	"github.com/google/dive/service"
	"github.com/spf13/cobra"
)

// deviceDownloadDir is where the layer writes frame-mode captures for the
// host to pick up.
const deviceDownloadDir = "/sdcard/Download"

func captureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Arm a frame-mode capture, wait for it and download the trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if flags.device == "" || flags.pkg == "" {
				return fmt.Errorf("run with --device [serial] and --package [package]")
			}
			if flags.appType != "openxr" {
				return fmt.Errorf("unknown application type %q", flags.appType)
			}

			client, err := service.Connect(ctx, flags.target)
			if err != nil {
				return err
			}
			defer client.Close()

			// Arm the trigger before the application renders the frame.
			cmdline := fmt.Sprintf("setprop %s %d", "dive.trigger_frame_num", flags.triggerFrameNum)
			if _, err := client.RunCommand(ctx, cmdline); err != nil {
				return fmt.Errorf("arm capture trigger: %w", err)
			}

			name := fmt.Sprintf("%s/trace-frame-%04d.rd", deviceDownloadDir, flags.triggerFrameNum)
			log.I(ctx, "Waiting for capture %s", name)
			if _, err := client.WaitForTraceFile(ctx, name); err != nil {
				return err
			}
			log.I(ctx, "Capture file is ready")

			if err := os.MkdirAll(flags.downloadPath, 0755); err != nil {
				return err
			}
			dest := filepath.Join(flags.downloadPath, filepath.Base(name))
			if err := client.DownloadFile(ctx, name, dest); err != nil {
				return fmt.Errorf("retrieve capture file: %w", err)
			}
			fmt.Printf("Capture saved at %s\n", dest)
			return nil
		},
	}
}
