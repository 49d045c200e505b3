/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package wire

// Variable-length integers use a leading byte to indicate their width:
//
//	0x00..0xfa  the value itself (0..250)
//	0xfb        reserved
//	0xfc        value in the next 2 bytes, little endian
//	0xfd        value in the next 3 bytes, little endian
//	0xfe        value in the next 8 bytes, little endian
//	0xff        invalid
const (
	varint1ByteMax = 250
	varintReserved = 0xfb
	varint2Bytes   = 0xfc
	varint3Bytes   = 0xfd
	varint8Bytes   = 0xfe
	varintInvalid  = 0xff
)

// VarintSize returns the number of bytes required to encode a
// variable-length integer.
func VarintSize(i uint64) int {
	switch {
	case i <= varint1ByteMax:
		return 1
	case i < 1<<16:
		return 3
	case i < 1<<24:
		return 4
	default:
		return 9
	}
}

// putVarint writes i at the start of data, which must be at least
// VarintSize(i) bytes long, and returns the number of bytes written.
func putVarint(data []byte, i uint64) int {
	switch {
	case i <= varint1ByteMax:
		data[0] = byte(i)
		return 1
	case i < 1<<16:
		_ = data[2] // early bounds check
		data[0] = varint2Bytes
		data[1] = byte(i)
		data[2] = byte(i >> 8)
		return 3
	case i < 1<<24:
		_ = data[3] // early bounds check
		data[0] = varint3Bytes
		data[1] = byte(i)
		data[2] = byte(i >> 8)
		data[3] = byte(i >> 16)
		return 4
	default:
		_ = data[8] // early bounds check
		data[0] = varint8Bytes
		data[1] = byte(i)
		data[2] = byte(i >> 8)
		data[3] = byte(i >> 16)
		data[4] = byte(i >> 24)
		data[5] = byte(i >> 32)
		data[6] = byte(i >> 40)
		data[7] = byte(i >> 48)
		data[8] = byte(i >> 56)
		return 9
	}
}

// varintWidth returns the total encoded width announced by the first byte
// of a variable-length integer, or 0 if the byte is not a valid prefix.
func varintWidth(first byte) int {
	switch first {
	case varint2Bytes:
		return 3
	case varint3Bytes:
		return 4
	case varint8Bytes:
		return 9
	case varintReserved, varintInvalid:
		return 0
	default:
		return 1
	}
}
