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

package assert

import "errors"

// OnError is an assertion on an error value.
type OnError struct {
	assertion *Assertion
	err       error
}

// Succeeded asserts that the error is nil.
func (o *OnError) Succeeded() bool {
	return o.assertion.test(o.err == nil, pretty(o.err), "success")
}

// Failed asserts that the error is not nil.
func (o *OnError) Failed() bool {
	return o.assertion.test(o.err != nil, "success", "an error")
}

// Equals asserts that the error equals expect.
func (o *OnError) Equals(expect error) bool {
	return o.assertion.test(o.err == expect, pretty(o.err), pretty(expect))
}

// Is asserts that expect is in the error's chain, using errors.Is.
func (o *OnError) Is(expect error) bool {
	return o.assertion.test(errors.Is(o.err, expect), pretty(o.err), pretty(expect))
}
