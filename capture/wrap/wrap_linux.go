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

//go:build linux && cgo

package wrap

/*
#cgo LDFLAGS: -ldl

#include <dlfcn.h>
#include <stdlib.h>

typedef void (*set_capture_state_fn)(int state);
typedef void (*set_capture_name_fn)(const char* name, const char* frame_num);

static void call_set_capture_state(void* fn, int state) {
	((set_capture_state_fn)fn)(state);
}

static void call_set_capture_name(void* fn, const char* name, const char* frame_num) {
	((set_capture_name_fn)fn)(name, frame_num);
}
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/google/dive/capture/trace"
	"github.com/google/dive/core/log"
)

// capturer holds the resolved function pointers. They are looked up once in
// Bind and cached, never per call.
type capturer struct {
	setState unsafe.Pointer
	setName  unsafe.Pointer
}

// Bind resolves SetCaptureState and SetCaptureName from the helper library.
// It returns ErrNotLoaded when the library or either symbol is missing.
func Bind(ctx context.Context) (trace.Capturer, error) {
	path := C.CString(LibWrapPath)
	defer C.free(unsafe.Pointer(path))
	handle := C.dlopen(path, C.RTLD_LAZY)
	if handle == nil {
		log.I(ctx, "Failed to load %s", LibWrapPath)
		return nil, ErrNotLoaded
	}

	c := &capturer{}
	if c.setState = lookup(ctx, handle, "SetCaptureState"); c.setState == nil {
		return nil, ErrNotLoaded
	}
	if c.setName = lookup(ctx, handle, "SetCaptureName"); c.setName == nil {
		return nil, ErrNotLoaded
	}
	return c, nil
}

func lookup(ctx context.Context, handle unsafe.Pointer, name string) unsafe.Pointer {
	sym := C.CString(name)
	defer C.free(unsafe.Pointer(sym))
	fn := C.dlsym(handle, sym)
	if fn == nil {
		log.I(ctx, "Failed to resolve %s", name)
		return nil
	}
	return fn
}

func (c *capturer) SetCaptureState(ctx context.Context, enabled bool) error {
	state := C.int(0)
	if enabled {
		state = 1
	}
	C.call_set_capture_state(c.setState, state)
	return nil
}

func (c *capturer) SetCaptureName(ctx context.Context, name, frameTag string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	ctag := C.CString(frameTag)
	defer C.free(unsafe.Pointer(ctag))
	C.call_set_capture_name(c.setName, cname, ctag)
	return nil
}
