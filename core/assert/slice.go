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
	"reflect"
)

// OnSlice is an assertion on a slice value.
type OnSlice struct {
	assertion *Assertion
	value     interface{}
}

// Equals asserts that the slice equals expect using reflect.DeepEqual.
// Lengths are compared first so mismatches report the sizes.
func (o *OnSlice) Equals(expect interface{}) bool {
	g, e := reflect.ValueOf(o.value), reflect.ValueOf(expect)
	if g.Len() != e.Len() {
		return o.assertion.test(false,
			fmt.Sprintf("slice of length %d", g.Len()),
			fmt.Sprintf("slice of length %d", e.Len()))
	}
	return o.assertion.test(reflect.DeepEqual(o.value, expect),
		fmt.Sprintf("%v", o.value), fmt.Sprintf("%v", expect))
}

// IsEmpty asserts that the slice has no elements.
func (o *OnSlice) IsEmpty() bool {
	n := reflect.ValueOf(o.value).Len()
	return o.assertion.test(n == 0, fmt.Sprintf("slice of length %d", n), "an empty slice")
}

// IsLength asserts that the slice has exactly n elements.
func (o *OnSlice) IsLength(n int) bool {
	got := reflect.ValueOf(o.value).Len()
	return o.assertion.test(got == n,
		fmt.Sprintf("slice of length %d", got), fmt.Sprintf("slice of length %d", n))
}
