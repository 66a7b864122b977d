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

// Package wrap binds the capture primitives exported by the injected
// libwrap helper library. The binding is resolved once; callers that fail
// to bind fall back to trace.Unavailable().
package wrap

import (
	"bufio"
	"os"
	"strings"

	"github.com/google/dive/core/fault"
)

// ErrNotLoaded is returned by Bind when the helper library is not present
// in the process.
const ErrNotLoaded = fault.Const("libwrap is not loaded")

// LibWrapPath is where the helper library is installed on the target.
const LibWrapPath = "/data/local/tmp/libwrap.so"

// Loaded reports whether the helper library is mapped into this process.
func Loaded() bool {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return false
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "libwrap.so") {
			return true
		}
	}
	return false
}
