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

// Package wire contains the byte-level primitives of the binlog event
// codec: a bounds-checked Reader over an immutable buffer and a Writer that
// appends into a bounded or growable buffer. All integers are little endian.
package wire

import (
	"encoding/binary"

	"vitess.io/binlogcodec/go/vt/vterrors"
)

// Reader is a cursor over an immutable byte buffer. It never copies: slices
// it returns alias the buffer it was created with.
//
// Every read either succeeds and advances the cursor, or fails and leaves
// the cursor where it was.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current offset from the start of the buffer.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// EOF reports whether every byte has been read.
func (r *Reader) EOF() bool {
	return r.pos >= len(r.data)
}

// Reset moves the cursor back to pos, which must not be past the current
// position. It is used to undo a partially read structure.
func (r *Reader) Reset(pos int) {
	if pos < 0 || pos > r.pos {
		panic("wire: Reader.Reset can only move backwards")
	}
	r.pos = pos
}

// need checks that n more bytes can be read.
func (r *Reader) need(n int) error {
	if n < 0 || n > len(r.data)-r.pos {
		return vterrors.Errorf(vterrors.OutOfBounds, "need %d bytes at offset %d, only %d remaining", n, r.pos, len(r.data)-r.pos)
	}
	return nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// ReadUint16 reads a 2-byte little endian integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadUint24 reads a 3-byte little endian integer.
func (r *Reader) ReadUint24() (uint32, error) {
	if err := r.need(3); err != nil {
		return 0, err
	}
	d := r.data[r.pos:]
	v := uint32(d[0]) | uint32(d[1])<<8 | uint32(d[2])<<16
	r.pos += 3
	return v, nil
}

// ReadUint32 reads a 4-byte little endian integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadUint64 reads an 8-byte little endian integer.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadVarint reads a variable-length integer. A reserved or invalid first
// byte is a MalformedEvent error.
func (r *Reader) ReadVarint() (uint64, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	first := r.data[r.pos]
	width := varintWidth(first)
	if width == 0 {
		return 0, vterrors.Errorf(vterrors.MalformedEvent, "invalid variable-length integer prefix 0x%02x at offset %d", first, r.pos)
	}
	if err := r.need(width); err != nil {
		return 0, err
	}

	d := r.data[r.pos:]
	var v uint64
	switch width {
	case 1:
		v = uint64(first)
	case 3:
		v = uint64(d[1]) |
			uint64(d[2])<<8
	case 4:
		v = uint64(d[1]) |
			uint64(d[2])<<8 |
			uint64(d[3])<<16
	case 9:
		v = binary.LittleEndian.Uint64(d[1:9])
	}
	r.pos += width
	return v, nil
}

// ReadSlice returns the next n bytes without copying them.
func (r *Reader) ReadSlice(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return v, nil
}

// ReadSliceUint64 is ReadSlice for a length decoded from the wire, which
// may not fit in an int.
func (r *Reader) ReadSliceUint64(n uint64) ([]byte, error) {
	if n > uint64(r.Remaining()) {
		return nil, vterrors.Errorf(vterrors.OutOfBounds, "need %d bytes at offset %d, only %d remaining", n, r.pos, r.Remaining())
	}
	return r.ReadSlice(int(n))
}

// ReadString reads n bytes as a string. No terminator is expected.
func (r *Reader) ReadString(n int) (string, error) {
	b, err := r.ReadSlice(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Sub returns a Reader over the next n bytes and advances past them.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.ReadSlice(n)
	if err != nil {
		return nil, err
	}
	return NewReader(b), nil
}
