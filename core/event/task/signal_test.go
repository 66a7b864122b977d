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

package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/dive/core/assert"
	"github.com/google/dive/core/event/task"
)

func TestSignal(t *testing.T) {
	assert := assert.To(t)
	ctx := context.Background()
	signal, fire := task.NewSignal()
	assert.For("fresh signal").That(signal.Fired()).Equals(false)
	fire(ctx)
	assert.For("fired signal").That(signal.Fired()).Equals(true)
	assert.For("wait").That(signal.Wait(ctx)).Equals(true)
}

func TestSignalTryWaitTimeout(t *testing.T) {
	assert := assert.To(t)
	ctx := context.Background()
	signal, _ := task.NewSignal()
	assert.For("timeout").That(signal.TryWait(ctx, time.Millisecond)).Equals(false)
}

func TestRetryStopsOnCancel(t *testing.T) {
	assert := assert.To(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := task.Retry(ctx, 0, time.Millisecond, func(context.Context) (bool, error) {
		calls++
		return false, nil
	})
	assert.For("stop reason").ThatError(err).Failed()
	assert.For("calls").That(calls).Equals(1)
}
