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

import (
	"fmt"
	"strings"
)

// OnString is an assertion on a string value.
type OnString struct {
	assertion *Assertion
	value     string
}

// Equals asserts that the string equals expect.
func (o *OnString) Equals(expect string) bool {
	return o.assertion.test(o.value == expect, pretty(o.value), pretty(expect))
}

// Contains asserts that the string contains substr.
func (o *OnString) Contains(substr string) bool {
	return o.assertion.test(strings.Contains(o.value, substr),
		pretty(o.value), fmt.Sprintf("contains %s", pretty(substr)))
}

// HasPrefix asserts that the string starts with prefix.
func (o *OnString) HasPrefix(prefix string) bool {
	return o.assertion.test(strings.HasPrefix(o.value, prefix),
		pretty(o.value), fmt.Sprintf("starts with %s", pretty(prefix)))
}

// HasSuffix asserts that the string ends with suffix.
func (o *OnString) HasSuffix(suffix string) bool {
	return o.assertion.test(strings.HasSuffix(o.value, suffix),
		pretty(o.value), fmt.Sprintf("ends with %s", pretty(suffix)))
}
