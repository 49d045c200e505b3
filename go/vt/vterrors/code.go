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

package vterrors

// ErrorCode is the kind of an error returned by the binlog codec packages.
type ErrorCode int

// All the error codes
const (
	// Unknown is returned for errors that did not originate in this module.
	Unknown ErrorCode = iota

	// OutOfBounds means a reader ran off the end of its buffer.
	OutOfBounds

	// InsufficientCapacity means a bounded writer has no room left.
	InsufficientCapacity

	// SizeLimitExceeded means a configured size cap was hit.
	SizeLimitExceeded

	// MalformedEvent means a TLV body ended without a required field, or a
	// field length is inconsistent with its value.
	MalformedEvent

	// UnknownEventType means the codec table has no entry for the tag.
	UnknownEventType

	// CompressorInit means the compression library refused to start a session.
	CompressorInit

	// CompressorState means a compressor call was made outside of the
	// open/close state machine.
	CompressorState

	// CompressorInternal is a compression library error.
	CompressorInternal

	// CorruptFrame means the decompressor rejected its input.
	CorruptFrame

	// Oversized means decompressed output would exceed its cap.
	Oversized

	// OutOfMemory means a growable buffer could not grow.
	OutOfMemory

	// InvalidArgument is returned for rejected configuration values.
	InvalidArgument

	// No code should be added below NumOfCodes
	NumOfCodes
)

var codeNames = [NumOfCodes]string{
	Unknown:              "UNKNOWN",
	OutOfBounds:          "OUT_OF_BOUNDS",
	InsufficientCapacity: "INSUFFICIENT_CAPACITY",
	SizeLimitExceeded:    "SIZE_LIMIT_EXCEEDED",
	MalformedEvent:       "MALFORMED_EVENT",
	UnknownEventType:     "UNKNOWN_EVENT_TYPE",
	CompressorInit:       "COMPRESSOR_INIT",
	CompressorState:      "COMPRESSOR_STATE",
	CompressorInternal:   "COMPRESSOR_INTERNAL",
	CorruptFrame:         "CORRUPT_FRAME",
	Oversized:            "OVERSIZED",
	OutOfMemory:          "OUT_OF_MEMORY",
	InvalidArgument:      "INVALID_ARGUMENT",
}

func (c ErrorCode) String() string {
	if c < 0 || c >= NumOfCodes {
		return codeNames[Unknown]
	}
	return codeNames[c]
}

// ErrorWithCode is implemented by errors that carry an ErrorCode.
type ErrorWithCode interface {
	ErrorCode() ErrorCode
}
