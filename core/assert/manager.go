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

// Package assert provides a fluent assertion library for tests.
//
//	assert := assert.To(t)
//	assert.For("frame count").That(got).Equals(10)
//	assert.For("trigger").ThatError(err).Succeeded()
package assert

import "fmt"

// Output matches the reporting methods of the test host types.
type Output interface {
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}

// Manager is the root of the fluent assertion interface.
type Manager struct {
	out Output
}

// To returns a Manager that reports assertion failures to out.
func To(out Output) Manager {
	return Manager{out: out}
}

// For returns a named Assertion line.
func (m Manager) For(msg string, args ...interface{}) *Assertion {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Assertion{name: msg, out: m.out}
}
