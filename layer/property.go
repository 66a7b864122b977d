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
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/dive/core/log"
)

// triggerFrameProperty is the system property the host sets to arm a
// frame-mode capture before the application starts.
const triggerFrameProperty = "dive.trigger_frame_num"

// TriggerFrameNum reads the trigger frame number from the system property,
// falling back to the DIVE_TRIGGER_FRAME_NUM environment variable off
// Android. Zero means duration mode.
func TriggerFrameNum(ctx context.Context) uint32 {
	value := getProperty(ctx, triggerFrameProperty)
	if value == "" {
		value = os.Getenv("DIVE_TRIGGER_FRAME_NUM")
	}
	if value == "" {
		return 0
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		log.W(ctx, "Bad trigger frame number %q: %v", value, err)
		return 0
	}
	log.D(ctx, "Trigger frame at %d", n)
	return uint32(n)
}

func getProperty(ctx context.Context, name string) string {
	out, err := exec.CommandContext(ctx, "getprop", name).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
