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

package compression

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"

	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/log"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// Decompressor expands a single ZSTD frame per session.
//
// Frames expected to expand to at most InMemoryThreshold bytes are decoded
// in one step with a shared stateless decoder. Larger frames are streamed
// through a pooled decoder, so that Decompress can produce the output in
// pieces.
type Decompressor struct {
	limit uint64

	state  State
	frame  []byte
	hint   uint64
	stream *zstd.Decoder
	buf    *wire.Writer
}

// NewDecompressor returns a closed Decompressor.
func NewDecompressor(opts ...Option) (*Decompressor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &Decompressor{limit: o.decompressedLimit}, nil
}

// Open binds frame to a new session. sizeHint is the expected decompressed
// size, as announced by the enclosing event. The frame is not copied and
// must not change until the session ends.
func (d *Decompressor) Open(frame []byte, sizeHint uint64) error {
	if d.state == StateOpen {
		return stateError("Open", d.state)
	}
	if sizeHint > d.limit {
		return vterrors.Errorf(vterrors.Oversized, "expected decompressed size %d exceeds limit %d", sizeHint, d.limit)
	}

	initial := sizeHint
	if initial > InMemoryThreshold {
		initial = streamChunk
	}
	d.buf = wire.NewGrowableWriter(int(initial), d.limitInt())
	d.frame = frame
	d.hint = sizeHint
	d.state = StateOpen
	return nil
}

// Decompress produces up to n more bytes into the session buffer. It
// returns the total number of bytes produced so far, and done once the
// frame is exhausted, at which point the session is finalized.
// Frames decoded in memory are produced in a single call regardless of n.
func (d *Decompressor) Decompress(n int) (produced uint64, done bool, err error) {
	if d.state != StateOpen {
		return 0, false, stateError("Decompress", d.state)
	}
	if n <= 0 {
		return uint64(d.buf.Len()), false, vterrors.Errorf(vterrors.InvalidArgument, "cannot decompress %d bytes", n)
	}

	if d.stream == nil && d.hint <= InMemoryThreshold {
		done, err = d.decodeAll()
		if err != nil || done {
			return uint64(d.buf.Len()), done, err
		}
		// The frame is larger than announced, fall back to streaming.
	}
	if d.stream == nil {
		if d.stream, err = statefulDecoderPool.Get(bytes.NewReader(d.frame)); err != nil {
			return 0, false, err
		}
	}

	_, err = io.CopyN(d.buf, d.stream, int64(n))
	switch {
	case err == nil:
		return uint64(d.buf.Len()), false, nil
	case errors.Is(err, io.EOF):
		d.finish()
		return uint64(d.buf.Len()), true, nil
	case vterrors.Is(err, vterrors.SizeLimitExceeded):
		return uint64(d.buf.Len()), false, d.oversized(err)
	default:
		return uint64(d.buf.Len()), false, vterrors.NewWithCause(vterrors.CorruptFrame, err, "zstd stream decompression failed")
	}
}

// decodeAll decodes the whole frame at once. It returns done=false when the
// frame turned out to be too big to be decoded in memory.
func (d *Decompressor) decodeAll() (bool, error) {
	dec, err := statelessDecoder()
	if err != nil {
		return false, vterrors.NewWithCause(vterrors.CompressorInit, err, "cannot create zstd decoder")
	}
	// out aliases the session buffer when the hint was large enough.
	out, err := dec.DecodeAll(d.frame, d.buf.Bytes()[:0])
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		log.DebugS("zstd frame larger than expected, streaming", "hint", d.hint)
		return false, nil
	}
	if err != nil {
		return false, vterrors.NewWithCause(vterrors.CorruptFrame, err, "zstd decompression failed")
	}
	if uint64(len(out)) > d.limit {
		return false, d.oversized(nil)
	}
	if err := d.buf.WriteSlice(out); err != nil {
		return false, d.oversized(err)
	}
	d.finish()
	return true, nil
}

// DecompressAll produces the rest of the frame and returns the whole
// output. Ownership of the returned slice passes to the caller.
func (d *Decompressor) DecompressAll() ([]byte, error) {
	for {
		_, done, err := d.Decompress(streamChunk)
		if err != nil {
			return nil, err
		}
		if done {
			return d.buf.Finalize(), nil
		}
	}
}

// Buffer returns the bytes produced so far.
func (d *Decompressor) Buffer() []byte {
	if d.buf == nil {
		return nil
	}
	return d.buf.Bytes()
}

// State returns the session state.
func (d *Decompressor) State() State {
	return d.state
}

// Close finalizes an open session before the frame is exhausted. The bytes
// produced so far stay in Buffer. It is valid only while a session is open.
func (d *Decompressor) Close() error {
	if d.state != StateOpen {
		return stateError("Close", d.state)
	}
	d.finish()
	return nil
}

// Release abandons any session and drops the buffer. The Decompressor can
// be opened again afterwards.
func (d *Decompressor) Release() {
	d.releaseStream()
	d.frame = nil
	d.buf = nil
	d.hint = 0
	d.state = StateClosed
}

func (d *Decompressor) finish() {
	d.releaseStream()
	d.frame = nil
	d.state = StateFinalized
}

func (d *Decompressor) releaseStream() {
	if d.stream != nil {
		statefulDecoderPool.Put(d.stream)
		d.stream = nil
	}
}

func (d *Decompressor) oversized(cause error) error {
	msg := "decompressed output exceeds limit"
	if cause == nil {
		return vterrors.Errorf(vterrors.Oversized, "%s %d", msg, d.limit)
	}
	return vterrors.NewWithCause(vterrors.Oversized, cause, msg)
}

func (d *Decompressor) limitInt() int {
	const maxInt = int(^uint(0) >> 1)
	if d.limit > uint64(maxInt) {
		return maxInt
	}
	return int(d.limit)
}
