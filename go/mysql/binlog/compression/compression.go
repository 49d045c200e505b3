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

// Package compression implements the ZSTD sessions used for binlog
// transaction payloads.
//
// A Compressor turns a sequence of inner events into one ZSTD frame:
//
//	c, _ := compression.NewCompressor(compression.WithLevel(3))
//	_ = c.Open()
//	for _, ev := range events {
//		_, _ = c.Compress(ev)
//	}
//	n, err := c.Close()
//	frame := c.Buffer()[:n]
//
// A Decompressor does the opposite. Both follow the same state machine:
// StateClosed -> StateOpen -> StateFinalized -> StateOpen ... and reject calls
// made in the wrong state with a CompressorState error. Close moves an open
// session to StateFinalized; a Decompressor also finalizes once the frame is
// exhausted. Release returns either type to StateClosed from any state. Neither type is safe
// for concurrent use, and neither starts goroutines.
package compression

import (
	"fmt"

	"vitess.io/binlogcodec/go/vt/vterrors"
)

const (
	// MinLevel and MaxLevel bound the accepted ZSTD compression levels.
	MinLevel = 1
	MaxLevel = 22

	// DefaultLevel is the level MySQL uses for binlog transaction compression.
	DefaultLevel = 3

	// DefaultBufferLimit caps the compressed output of a session.
	DefaultBufferLimit = 1 << 30

	// DefaultDecompressedLimit caps the decompressed output of a session.
	DefaultDecompressedLimit = 4 << 30

	// InMemoryThreshold is the largest expected decompressed size that is
	// decoded in one call. Bigger frames are streamed.
	InMemoryThreshold = 128 << 20

	// streamChunk is how much DecompressAll asks for per step.
	streamChunk = 1 << 20
)

// State is the lifecycle state of a Compressor or Decompressor session.
type State int

const (
	// StateClosed means no session is active.
	StateClosed State = iota
	// StateOpen means a session accepts input.
	StateOpen
	// StateFinalized means the session output is complete and readable.
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateFinalized:
		return "FINALIZED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type options struct {
	level             int
	bufferLimit       int
	decompressedLimit uint64
	err               error
}

func defaultOptions() options {
	return options{
		level:             DefaultLevel,
		bufferLimit:       DefaultBufferLimit,
		decompressedLimit: DefaultDecompressedLimit,
	}
}

// Option configures a Compressor or a Decompressor.
type Option func(*options)

// WithLevel sets the ZSTD compression level, between MinLevel and MaxLevel.
func WithLevel(level int) Option {
	return func(o *options) {
		if err := ValidateLevel(level); err != nil {
			o.err = err
			return
		}
		o.level = level
	}
}

// WithBufferLimit caps the compressed output of a session. Growing the
// output past the limit fails with OutOfMemory.
func WithBufferLimit(limit int) Option {
	return func(o *options) {
		if limit <= 0 {
			o.err = vterrors.Errorf(vterrors.InvalidArgument, "buffer limit must be positive, got %d", limit)
			return
		}
		o.bufferLimit = limit
	}
}

// WithDecompressedLimit caps the decompressed output of a session.
// Producing more fails with Oversized.
func WithDecompressedLimit(limit uint64) Option {
	return func(o *options) {
		if limit == 0 {
			o.err = vterrors.New(vterrors.InvalidArgument, "decompressed limit must be positive")
			return
		}
		o.decompressedLimit = limit
	}
}

// ValidateLevel checks that level is a usable ZSTD compression level.
func ValidateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return vterrors.Errorf(vterrors.InvalidArgument, "zstd compression level %d out of range [%d, %d]", level, MinLevel, MaxLevel)
	}
	return nil
}

func stateError(op string, got State) error {
	return vterrors.Errorf(vterrors.CompressorState, "%s called in state %v", op, got)
}
