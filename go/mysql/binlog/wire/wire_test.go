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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitess.io/binlogcodec/go/vt/vterrors"
)

func TestVarint(t *testing.T) {
	tests := []struct {
		value   uint64
		encoded []byte
	}{
		{0x00, []byte{0x00}},
		{0x0a, []byte{0x0a}},
		{0xfa, []byte{0xfa}},
		{0xfb, []byte{0xfc, 0xfb, 0x00}},
		{0xfc, []byte{0xfc, 0xfc, 0x00}},
		{0xff, []byte{0xfc, 0xff, 0x00}},
		{0x100, []byte{0xfc, 0x00, 0x01}},
		{0xfffe, []byte{0xfc, 0xfe, 0xff}},
		{0xffff, []byte{0xfc, 0xff, 0xff}},
		{0x10000, []byte{0xfd, 0x00, 0x00, 0x01}},
		{0xfffffe, []byte{0xfd, 0xfe, 0xff, 0xff}},
		{0xffffff, []byte{0xfd, 0xff, 0xff, 0xff}},
		{0x1000000, []byte{0xfe, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}},
		{0xa0a1a2a3a4a5a6a7, []byte{0xfe, 0xa7, 0xa6, 0xa5, 0xa4, 0xa3, 0xa2, 0xa1, 0xa0}},
		{math.MaxUint64, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, test := range tests {
		assert.Equal(t, len(test.encoded), VarintSize(test.value), "VarintSize(0x%x)", test.value)

		w := NewGrowableWriter(0, 0)
		require.NoError(t, w.WriteVarint(test.value))
		assert.Equal(t, test.encoded, w.Bytes(), "WriteVarint(0x%x)", test.value)

		r := NewReader(test.encoded)
		got, err := r.ReadVarint()
		require.NoError(t, err, "ReadVarint(0x%x)", test.value)
		assert.Equal(t, test.value, got)
		assert.True(t, r.EOF())

		// Every truncation fails without moving the cursor.
		for i := 0; i < len(test.encoded); i++ {
			r := NewReader(test.encoded[:i])
			_, err := r.ReadVarint()
			assert.Equal(t, vterrors.OutOfBounds, vterrors.Code(err), "truncated at %d: 0x%x", i, test.value)
			assert.Equal(t, 0, r.Pos())
		}
	}
}

func TestVarintInvalidPrefix(t *testing.T) {
	for _, b := range []byte{0xfb, 0xff} {
		r := NewReader([]byte{b, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
		_, err := r.ReadVarint()
		assert.Equal(t, vterrors.MalformedEvent, vterrors.Code(err), "prefix 0x%02x", b)
		assert.Equal(t, 0, r.Pos())
	}
}

func TestFixedWidth(t *testing.T) {
	w := NewBoundedWriter(1 + 2 + 3 + 4 + 8)
	require.NoError(t, w.WriteUint8(0x01))
	require.NoError(t, w.WriteUint16(0x0302))
	require.NoError(t, w.WriteUint24(0x060504))
	require.NoError(t, w.WriteUint32(0x0a090807))
	require.NoError(t, w.WriteUint64(0x1211100f0e0d0c0b))
	assert.Equal(t, []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06,
		0x07, 0x08, 0x09, 0x0a,
		0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12,
	}, w.Bytes())

	r := NewReader(w.Bytes())
	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.EqualValues(t, 0x01, u8)
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.EqualValues(t, 0x0302, u16)
	u24, err := r.ReadUint24()
	require.NoError(t, err)
	assert.EqualValues(t, 0x060504, u24)
	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.EqualValues(t, 0x0a090807, u32)
	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.EqualValues(t, uint64(0x1211100f0e0d0c0b), u64)
	assert.True(t, r.EOF())
	assert.Equal(t, 0, r.Remaining())
}

func TestReaderOutOfBounds(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	reads := map[string]func(r *Reader) error{
		"uint32": func(r *Reader) error { _, err := r.ReadUint32(); return err },
		"uint64": func(r *Reader) error { _, err := r.ReadUint64(); return err },
		"slice":  func(r *Reader) error { _, err := r.ReadSlice(4); return err },
		"string": func(r *Reader) error { _, err := r.ReadString(4); return err },
		"skip":   func(r *Reader) error { return r.Skip(4) },
		"sub":    func(r *Reader) error { _, err := r.Sub(4); return err },
		"huge":   func(r *Reader) error { _, err := r.ReadSliceUint64(math.MaxUint64); return err },
	}
	for name, read := range reads {
		t.Run(name, func(t *testing.T) {
			r := NewReader(data)
			require.NoError(t, r.Skip(1))
			err := read(r)
			assert.Equal(t, vterrors.OutOfBounds, vterrors.Code(err))
			assert.Equal(t, 1, r.Pos())
		})
	}
}

func TestReaderSlicesAlias(t *testing.T) {
	data := []byte("binlog.000001")
	r := NewReader(data)
	s, err := r.ReadSlice(6)
	require.NoError(t, err)
	assert.Equal(t, []byte("binlog"), s)
	assert.Equal(t, 6, cap(s))
	assert.Same(t, &data[0], &s[0])

	sub, err := r.Sub(7)
	require.NoError(t, err)
	assert.Equal(t, 7, sub.Len())
	str, err := sub.ReadString(7)
	require.NoError(t, err)
	assert.Equal(t, ".000001", str)
	assert.True(t, r.EOF())

	r.Reset(6)
	assert.Equal(t, 7, r.Remaining())
	assert.Panics(t, func() { r.Reset(7) })
}

func TestBoundedWriter(t *testing.T) {
	w := NewBoundedWriter(5)
	require.NoError(t, w.WriteUint32(1))

	err := w.WriteUint16(2)
	assert.Equal(t, vterrors.InsufficientCapacity, vterrors.Code(err))
	assert.Equal(t, 4, w.Len())

	err = w.WriteVarint(0x10000)
	assert.Equal(t, vterrors.InsufficientCapacity, vterrors.Code(err))
	assert.Equal(t, 4, w.Len())

	n, err := w.Write([]byte{1, 2})
	assert.Equal(t, vterrors.InsufficientCapacity, vterrors.Code(err))
	assert.Zero(t, n)

	require.NoError(t, w.WriteUint8(9))
	assert.Equal(t, []byte{1, 0, 0, 0, 9}, w.Bytes())
	assert.Equal(t, 5, w.Cap())

	w.Reset()
	assert.Zero(t, w.Len())
	require.NoError(t, w.WriteString("hello"))
	assert.Equal(t, "hello", string(w.Finalize()))
	assert.Zero(t, w.Len())
}

func TestGrowableWriter(t *testing.T) {
	w := NewGrowableWriter(2, 100)
	for i := 0; i < 25; i++ {
		require.NoError(t, w.WriteUint32(uint32(i)))
	}
	assert.Equal(t, 100, w.Len())
	assert.LessOrEqual(t, w.Cap(), 100)

	err := w.WriteUint8(0)
	assert.Equal(t, vterrors.SizeLimitExceeded, vterrors.Code(err))
	assert.Equal(t, 100, w.Len())

	r := NewReader(w.Bytes())
	for i := 0; i < 25; i++ {
		v, err := r.ReadUint32()
		require.NoError(t, err)
		assert.EqualValues(t, i, v)
	}
}

func TestGrowableWriterUnlimited(t *testing.T) {
	w := NewGrowableWriter(0, 0)
	payload := make([]byte, 1<<20)
	n, err := w.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, len(payload), w.Len())
}

func TestWriterPatchAndTruncate(t *testing.T) {
	w := NewGrowableWriter(16, 0)
	require.NoError(t, w.WriteUint32(0))
	require.NoError(t, w.WriteString("abc"))
	require.NoError(t, w.PutUint32At(0, uint32(w.Len())))
	assert.Equal(t, []byte{7, 0, 0, 0, 'a', 'b', 'c'}, w.Bytes())

	err := w.PutUint32At(4, 1)
	assert.Equal(t, vterrors.OutOfBounds, vterrors.Code(err))

	w.Truncate(4)
	assert.Equal(t, []byte{7, 0, 0, 0}, w.Bytes())
	assert.Panics(t, func() { w.Truncate(5) })
}
