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
	"github.com/klauspost/compress/zstd"

	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/log"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

const initialBufferSize = 4096

// Compressor produces a single ZSTD frame per session. The encoder and the
// output buffer are kept between sessions and reset on Open.
type Compressor struct {
	level       int
	bufferLimit int

	state        State
	enc          *zstd.Encoder
	encLevel     zstd.EncoderLevel
	buf          *wire.Writer
	uncompressed uint64
}

// NewCompressor returns a closed Compressor.
func NewCompressor(opts ...Option) (*Compressor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &Compressor{
		level:       o.level,
		bufferLimit: o.bufferLimit,
	}, nil
}

// Open starts a new session. It is valid when no session is open.
func (c *Compressor) Open() error {
	if c.state == StateOpen {
		return stateError("Open", c.state)
	}

	if c.buf == nil {
		c.buf = wire.NewGrowableWriter(initialBufferSize, c.bufferLimit)
	} else {
		c.buf.Reset()
	}

	level := zstd.EncoderLevelFromZstd(c.level)
	if c.enc != nil && c.encLevel == level {
		c.enc.Reset(c.buf)
	} else {
		if c.enc != nil {
			_ = c.enc.Close()
		}
		enc, err := zstd.NewWriter(c.buf,
			zstd.WithEncoderLevel(level),
			zstd.WithEncoderConcurrency(1),
			zstd.WithZeroFrames(true),
		)
		if err != nil {
			c.enc = nil
			return vterrors.NewWithCause(vterrors.CompressorInit, err, "cannot create zstd encoder")
		}
		c.enc = enc
		c.encLevel = level
	}

	c.uncompressed = 0
	c.state = StateOpen
	return nil
}

// Compress feeds p into the open session and returns the number of
// compressed bytes produced so far.
func (c *Compressor) Compress(p []byte) (uint64, error) {
	if c.state != StateOpen {
		return 0, stateError("Compress", c.state)
	}
	if _, err := c.enc.Write(p); err != nil {
		return uint64(c.buf.Len()), encoderError(err, "zstd compression failed")
	}
	c.uncompressed += uint64(len(p))
	return uint64(c.buf.Len()), nil
}

// Close completes the frame and returns its total size.
func (c *Compressor) Close() (uint64, error) {
	if c.state != StateOpen {
		return 0, stateError("Close", c.state)
	}
	if err := c.enc.Close(); err != nil {
		return uint64(c.buf.Len()), encoderError(err, "cannot finish zstd frame")
	}
	c.state = StateFinalized
	log.DebugS("zstd frame finished", "uncompressed", c.uncompressed, "compressed", c.buf.Len(), "level", c.level)
	return uint64(c.buf.Len()), nil
}

// SetCompressionLevel changes the level used from the next Open on.
func (c *Compressor) SetCompressionLevel(level int) error {
	if err := ValidateLevel(level); err != nil {
		return err
	}
	c.level = level
	return nil
}

// Level returns the configured compression level.
func (c *Compressor) Level() int {
	return c.level
}

// State returns the session state.
func (c *Compressor) State() State {
	return c.state
}

// UncompressedBytes returns the number of bytes fed into this session.
func (c *Compressor) UncompressedBytes() uint64 {
	return c.uncompressed
}

// PeekBuffer returns the compressed bytes produced so far. The frame is
// incomplete until Close.
func (c *Compressor) PeekBuffer() []byte {
	if c.buf == nil {
		return nil
	}
	return c.buf.Bytes()
}

// Buffer returns the finished frame, or nil if the session is not
// finalized. The slice is reused by the next session.
func (c *Compressor) Buffer() []byte {
	if c.state != StateFinalized {
		return nil
	}
	return c.buf.Bytes()
}

// Release abandons any open session and drops the encoder and buffer.
// The Compressor can be opened again afterwards.
func (c *Compressor) Release() {
	if c.enc != nil {
		_ = c.enc.Close()
		c.enc = nil
	}
	c.buf = nil
	c.uncompressed = 0
	c.state = StateClosed
}

// encoderError classifies an error returned by the encoder. Write failures
// of the bounded output buffer surface through the encoder unchanged.
func encoderError(err error, msg string) error {
	if vterrors.Is(err, vterrors.SizeLimitExceeded) {
		return vterrors.NewWithCause(vterrors.OutOfMemory, err, msg)
	}
	return vterrors.NewWithCause(vterrors.CompressorInternal, err, msg)
}
