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

package log

import (
	"context"
	"time"
)

type handlerKeyTy struct{}
type filterKeyTy struct{}
type tagKeyTy struct{}
type processKeyTy struct{}
type traceKeyTy struct{}
type valuesKeyTy struct{}
type clockKeyTy struct{}

// Filter is used to filter messages below the given severity.
type Filter Severity

// ShowAll is a filter that shows all messages.
const ShowAll = Filter(Verbose)

// Clock is the interface to an object that provides the current time.
type Clock interface {
	Time() time.Time
}

// FixedClock is a Clock that always returns the same time. Used for testing.
type FixedClock time.Time

// Time returns the fixed time.
func (c FixedClock) Time() time.Time { return time.Time(c) }

// PutHandler returns a new context with the Handler assigned to w.
func PutHandler(ctx context.Context, w Handler) context.Context {
	return context.WithValue(ctx, handlerKeyTy{}, w)
}

// GetHandler returns the Handler assigned to ctx.
func GetHandler(ctx context.Context) Handler {
	out, _ := ctx.Value(handlerKeyTy{}).(Handler)
	return out
}

// PutFilter returns a new context with the Filter assigned to f.
func PutFilter(ctx context.Context, f Filter) context.Context {
	return context.WithValue(ctx, filterKeyTy{}, f)
}

// GetFilter returns the Filter assigned to ctx.
func GetFilter(ctx context.Context) Filter {
	if out, ok := ctx.Value(filterKeyTy{}).(Filter); ok {
		return out
	}
	return Filter(Info)
}

// PutTag returns a new context with the tag assigned to t.
func PutTag(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, tagKeyTy{}, t)
}

// GetTag returns the tag assigned to ctx.
func GetTag(ctx context.Context) string {
	out, _ := ctx.Value(tagKeyTy{}).(string)
	return out
}

// PutProcess returns a new context with the process name assigned to p.
func PutProcess(ctx context.Context, p string) context.Context {
	return context.WithValue(ctx, processKeyTy{}, p)
}

// GetProcess returns the process name assigned to ctx.
func GetProcess(ctx context.Context) string {
	out, _ := ctx.Value(processKeyTy{}).(string)
	return out
}

// PutClock returns a new context with the Clock assigned to c.
func PutClock(ctx context.Context, c Clock) context.Context {
	return context.WithValue(ctx, clockKeyTy{}, c)
}

// GetClock returns the Clock assigned to ctx.
func GetClock(ctx context.Context) Clock {
	out, _ := ctx.Value(clockKeyTy{}).(Clock)
	return out
}

// Enter returns a new context with the trace scope name appended.
func Enter(ctx context.Context, name string) context.Context {
	trace := GetTrace(ctx)
	out := make([]string, len(trace), len(trace)+1)
	copy(out, trace)
	return context.WithValue(ctx, traceKeyTy{}, append(out, name))
}

// GetTrace returns the trace scope names assigned to ctx.
func GetTrace(ctx context.Context) []string {
	out, _ := ctx.Value(traceKeyTy{}).([]string)
	return out
}

// V is a map of key-value pairs to bind to a logging context.
type V map[string]interface{}

// Bind returns a new context with the key-value pairs of v attached.
func (v V) Bind(ctx context.Context) context.Context {
	values := getValues(ctx)
	out := make([]*Value, len(values), len(values)+len(v))
	copy(out, values)
	for name, value := range v {
		out = append(out, &Value{Name: name, Value: value})
	}
	return context.WithValue(ctx, valuesKeyTy{}, out)
}

func getValues(ctx context.Context) []*Value {
	out, _ := ctx.Value(valuesKeyTy{}).([]*Value)
	return out
}
