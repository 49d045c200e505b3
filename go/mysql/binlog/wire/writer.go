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

import (
	"encoding/binary"
	"io"

	"vitess.io/binlogcodec/go/vt/vterrors"
)

// Writer appends encoded values into a buffer.
//
// A bounded Writer has a fixed capacity and fails with InsufficientCapacity
// when a write does not fit. A growable Writer reallocates as needed until
// its limit, beyond which writes fail with SizeLimitExceeded. A failed write
// leaves the Writer unchanged.
type Writer struct {
	data     []byte
	growable bool
	limit    int
}

var _ io.Writer = (*Writer)(nil)

// NewBoundedWriter returns a Writer that can hold at most capacity bytes.
func NewBoundedWriter(capacity int) *Writer {
	return &Writer{
		data: make([]byte, 0, capacity),
	}
}

// NewGrowableWriter returns a Writer starting with initial bytes of capacity
// and growing up to limit bytes. A limit <= 0 means no limit.
func NewGrowableWriter(initial, limit int) *Writer {
	if limit > 0 && initial > limit {
		initial = limit
	}
	return &Writer{
		data:     make([]byte, 0, initial),
		growable: true,
		limit:    limit,
	}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.data)
}

// Cap returns the current capacity of the buffer.
func (w *Writer) Cap() int {
	return cap(w.data)
}

// Bytes returns the written bytes. The slice aliases the Writer's buffer
// and is only valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.data
}

// Finalize returns the written bytes and detaches them from the Writer,
// which is reset to an empty buffer.
func (w *Writer) Finalize() []byte {
	out := w.data
	w.data = nil
	return out
}

// Reset discards the written bytes but keeps the buffer for reuse.
func (w *Writer) Reset() {
	w.data = w.data[:0]
}

// Truncate discards everything written after offset n.
func (w *Writer) Truncate(n int) {
	if n < 0 || n > len(w.data) {
		panic("wire: Writer.Truncate out of range")
	}
	w.data = w.data[:n]
}

// reserve makes room for n more bytes and returns the slice to fill.
func (w *Writer) reserve(n int) ([]byte, error) {
	need := len(w.data) + n
	if need <= cap(w.data) {
		start := len(w.data)
		w.data = w.data[:need]
		return w.data[start:need], nil
	}
	if !w.growable {
		return nil, vterrors.Errorf(vterrors.InsufficientCapacity, "cannot write %d bytes: %d of %d bytes used", n, len(w.data), cap(w.data))
	}
	if w.limit > 0 && need > w.limit {
		return nil, vterrors.Errorf(vterrors.SizeLimitExceeded, "cannot grow buffer to %d bytes: limit is %d", need, w.limit)
	}

	newCap := 2 * cap(w.data)
	if newCap < need {
		newCap = need
	}
	if newCap < 64 {
		newCap = 64
	}
	if w.limit > 0 && newCap > w.limit {
		newCap = w.limit
	}
	grown := make([]byte, need, newCap)
	start := copy(grown, w.data)
	w.data = grown
	return w.data[start:need], nil
}

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) error {
	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

// WriteUint16 appends a 2-byte little endian integer.
func (w *Writer) WriteUint16(v uint16) error {
	b, err := w.reserve(2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, v)
	return nil
}

// WriteUint24 appends the low 3 bytes of v, little endian.
func (w *Writer) WriteUint24(v uint32) error {
	b, err := w.reserve(3)
	if err != nil {
		return err
	}
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	return nil
}

// WriteUint32 appends a 4-byte little endian integer.
func (w *Writer) WriteUint32(v uint32) error {
	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, v)
	return nil
}

// WriteUint64 appends an 8-byte little endian integer.
func (w *Writer) WriteUint64(v uint64) error {
	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, v)
	return nil
}

// WriteVarint appends a variable-length integer using the smallest width.
func (w *Writer) WriteVarint(v uint64) error {
	b, err := w.reserve(VarintSize(v))
	if err != nil {
		return err
	}
	putVarint(b, v)
	return nil
}

// WriteSlice appends a copy of p.
func (w *Writer) WriteSlice(p []byte) error {
	b, err := w.reserve(len(p))
	if err != nil {
		return err
	}
	copy(b, p)
	return nil
}

// WriteString appends s without any terminator.
func (w *Writer) WriteString(s string) error {
	b, err := w.reserve(len(s))
	if err != nil {
		return err
	}
	copy(b, s)
	return nil
}

// Write implements io.Writer. It is all or nothing.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.WriteSlice(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// PutUint32At overwrites four bytes at offset off, which must already have
// been written. It is used to patch lengths once a body is complete.
func (w *Writer) PutUint32At(off int, v uint32) error {
	if off < 0 || off+4 > len(w.data) {
		return vterrors.Errorf(vterrors.OutOfBounds, "cannot patch 4 bytes at offset %d of %d", off, len(w.data))
	}
	binary.LittleEndian.PutUint32(w.data[off:], v)
	return nil
}
