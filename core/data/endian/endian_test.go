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

package endian_test

import (
	"bytes"
	eb "encoding/binary"
	"testing"

	"github.com/google/dive/core/assert"
	"github.com/google/dive/core/data/endian"
)

func TestBigEndianLayout(t *testing.T) {
	assert := assert.To(t)
	buf := &bytes.Buffer{}
	w := endian.Writer(buf, eb.BigEndian)
	w.Uint8(0xAB)
	w.Uint32(0x01020304)
	w.Uint64(0x0102030405060708)
	assert.For("write").ThatError(w.Error()).Succeeded()
	assert.For("layout").ThatSlice(buf.Bytes()).Equals([]byte{
		0xAB,
		0x01, 0x02, 0x03, 0x04,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	})
}

func TestRoundTrip(t *testing.T) {
	assert := assert.To(t)
	buf := &bytes.Buffer{}
	w := endian.Writer(buf, eb.BigEndian)
	w.Uint8(42)
	w.Uint32(0xDEADBEEF)
	w.Uint64(1 << 40)
	w.Data([]byte("payload"))
	assert.For("write").ThatError(w.Error()).Succeeded()

	r := endian.Reader(buf, eb.BigEndian)
	assert.For("uint8").That(r.Uint8()).Equals(uint8(42))
	assert.For("uint32").That(r.Uint32()).Equals(uint32(0xDEADBEEF))
	assert.For("uint64").That(r.Uint64()).Equals(uint64(1 << 40))
	data := make([]byte, 7)
	r.Data(data)
	assert.For("data").ThatString(string(data)).Equals("payload")
	assert.For("read").ThatError(r.Error()).Succeeded()
}

func TestReaderLatchesError(t *testing.T) {
	assert := assert.To(t)
	r := endian.Reader(bytes.NewReader([]byte{0x01}), eb.BigEndian)
	r.Uint32()
	assert.For("short read").ThatError(r.Error()).Failed()
	// Further reads keep returning the zero value.
	assert.For("after error").That(r.Uint8()).Equals(uint8(0))
}
