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

	"github.com/google/dive/core/log"
	"github.com/google/dive/service"
	"github.com/spf13/cobra"
)

func cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Disarm the capture trigger and remove trace files from the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if flags.device == "" {
				return fmt.Errorf("run with --device [serial]")
			}
			if flags.pkg == "" {
				log.I(ctx, "Package not provided; only device-wide settings are cleaned up")
			}

			client, err := service.Connect(ctx, flags.target)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.RunCommand(ctx, "setprop dive.trigger_frame_num 0"); err != nil {
				return fmt.Errorf("disarm capture trigger: %w", err)
			}
			if _, err := client.RunCommand(ctx, "rm -f "+deviceDownloadDir+"/trace-frame-*.rd"); err != nil {
				return fmt.Errorf("remove trace files: %w", err)
			}
			fmt.Println("Cleanup done")
			return nil
		},
	}
}
