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

// Package binlog describes the binlog events handled by the codec: their
// type codes, their decoded form, and the v4 framing around an event body.
package binlog

import (
	"fmt"

	"vitess.io/binlogcodec/go/vt/vterrors"
)

// Event is the decoded body of a binlog event.
type Event interface {
	EventType() EventType
}

// Heartbeat tells a replica where the source is in its binary log while no
// other event is sent. It is encoded as a HEARTBEAT_LOG_EVENT_V2.
type Heartbeat struct {
	LogFilename string
	LogPosition uint64
}

// EventType implements Event.
func (*Heartbeat) EventType() EventType {
	return HeartbeatEventV2
}

func (h *Heartbeat) String() string {
	return fmt.Sprintf("Heartbeat{%s:%d}", h.LogFilename, h.LogPosition)
}

// TransactionPayload carries all the events of a transaction, optionally
// compressed. A decoded Payload is a copy owned by the event.
type TransactionPayload struct {
	CompressionType  CompressionType
	UncompressedSize uint64
	PayloadSize      uint64
	Payload          []byte
}

// EventType implements Event.
func (*TransactionPayload) EventType() EventType {
	return TransactionPayloadEvent
}

func (tp *TransactionPayload) String() string {
	return fmt.Sprintf("TransactionPayload{%v, %d bytes, %d uncompressed}", tp.CompressionType, tp.PayloadSize, tp.UncompressedSize)
}

// Validate checks the relations between the sizes of a payload.
func (tp *TransactionPayload) Validate() error {
	if tp.PayloadSize != uint64(len(tp.Payload)) {
		return vterrors.Errorf(vterrors.MalformedEvent, "payload size %d does not match payload length %d", tp.PayloadSize, len(tp.Payload))
	}
	if tp.CompressionType == CompressionNone && tp.UncompressedSize != tp.PayloadSize {
		return vterrors.Errorf(vterrors.MalformedEvent, "uncompressed payload has uncompressed size %d but payload size %d", tp.UncompressedSize, tp.PayloadSize)
	}
	if tp.UncompressedSize == 0 && tp.PayloadSize != 0 {
		return vterrors.Errorf(vterrors.MalformedEvent, "uncompressed size is 0 but payload size is %d", tp.PayloadSize)
	}
	return nil
}

// FormatDescription is the first event of a v4 binlog. It describes the
// headers of the events that follow.
type FormatDescription struct {
	BinlogVersion   uint16
	ServerVersion   string
	CreateTimestamp uint32
	// HeaderLength is the length of the common header of every event.
	HeaderLength uint8
	// PostHeaderLengths holds the length of the fixed part of the body of
	// each event type, indexed by type - 1.
	PostHeaderLengths []byte
	ChecksumAlgorithm ChecksumAlgorithm
}

// mysql8PostHeaderLengths is what MySQL 8.0 advertises for event types 1..41.
var mysql8PostHeaderLengths = []byte{
	56, 13, 0, 8, 0, 18, 0, 4, 4, 4, // START_EVENT_V3 .. EXEC_LOAD_EVENT
	4, 18, 0, 0, 98, 0, 4, 26, 8, 0, // DELETE_FILE_EVENT .. PRE_GA_WRITE_ROWS_EVENT
	0, 0, 8, 8, 8, 2, 0, 0, 0, 10, // PRE_GA_UPDATE_ROWS_EVENT .. WRITE_ROWS_EVENT
	10, 10, 42, 42, 0, 18, 52, 0, 10, 40, // UPDATE_ROWS_EVENT .. TRANSACTION_PAYLOAD_EVENT
	0, // HEARTBEAT_LOG_EVENT_V2
}

// NewMySQL8FormatDescription returns the format description of a MySQL 8.0
// source with CRC32 checksums, the default configuration.
func NewMySQL8FormatDescription() *FormatDescription {
	return &FormatDescription{
		BinlogVersion:     BinlogVersion,
		ServerVersion:     "8.0.40-binlogcodec",
		HeaderLength:      EventHeaderLength,
		PostHeaderLengths: append([]byte(nil), mysql8PostHeaderLengths...),
		ChecksumAlgorithm: BinlogChecksumAlgCRC32,
	}
}

// EventType implements Event.
func (*FormatDescription) EventType() EventType {
	return FormatDescriptionEvent
}

// PostHeaderLength returns the length of the fixed part of the body of
// events of type t, or 0 if the format description does not know t.
func (fd *FormatDescription) PostHeaderLength(t EventType) int {
	if t == UnknownEvent || int(t) > len(fd.PostHeaderLengths) {
		return 0
	}
	return int(fd.PostHeaderLengths[t-1])
}

// HasChecksum reports whether events carry a trailing CRC32.
func (fd *FormatDescription) HasChecksum() bool {
	return fd.ChecksumAlgorithm == BinlogChecksumAlgCRC32
}

// WithoutChecksum returns a copy of fd for events that carry no checksum,
// such as the events inside a transaction payload.
func (fd *FormatDescription) WithoutChecksum() *FormatDescription {
	c := *fd
	c.ChecksumAlgorithm = BinlogChecksumAlgOff
	return &c
}

// RawEvent is a framed event whose body has not been decoded.
// Body aliases the buffer the event was read from.
type RawEvent struct {
	Type   EventType
	Header EventHeader
	Body   []byte
}
