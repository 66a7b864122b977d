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

// OnValue is an assertion on an arbitrary value.
type OnValue struct {
	assertion *Assertion
	value     interface{}
}

// Equals asserts that the value equals expect using ==.
func (o *OnValue) Equals(expect interface{}) bool {
	return o.assertion.test(o.value == expect, pretty(o.value), pretty(expect))
}

// NotEquals asserts that the value does not equal test using !=.
func (o *OnValue) NotEquals(test interface{}) bool {
	return o.assertion.test(o.value != test, pretty(o.value), fmt.Sprintf("not %s", pretty(test)))
}

// DeepEquals asserts that the value equals expect using reflect.DeepEqual.
func (o *OnValue) DeepEquals(expect interface{}) bool {
	return o.assertion.test(reflect.DeepEqual(o.value, expect), pretty(o.value), pretty(expect))
}

// IsNil asserts that the value is a nil.
func (o *OnValue) IsNil() bool {
	return o.assertion.test(isNil(o.value), pretty(o.value), "nil")
}

// IsNotNil asserts that the value is not a nil.
func (o *OnValue) IsNotNil() bool {
	return o.assertion.test(!isNil(o.value), pretty(o.value), "not nil")
}

// IsTrue asserts that the value is true.
func (o *OnValue) IsTrue() bool {
	return o.assertion.test(o.value == true, pretty(o.value), "true")
}

// IsFalse asserts that the value is false.
func (o *OnValue) IsFalse() bool {
	return o.assertion.test(o.value == false, pretty(o.value), "false")
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
