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

package binlog

import (
	"encoding/binary"
	"hash/crc32"

	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// EventHeader is the common header in front of every event body.
//
// The v4 header format is:
//
//	                 offset : size
//	+============================+
//	| timestamp         0 : 4    |
//	+----------------------------+
//	| type_code         4 : 1    |
//	+----------------------------+
//	| server_id         5 : 4    |
//	+----------------------------+
//	| event_length      9 : 4    |
//	+----------------------------+
//	| next_position    13 : 4    |
//	+----------------------------+
//	| flags            17 : 2    |
//	+----------------------------+
//	| extra_headers    19 : x-19 |
//	+============================+
type EventHeader struct {
	Timestamp    uint32
	Type         EventType
	ServerID     uint32
	EventLength  uint32
	NextPosition uint32
	Flags        uint16
}

// ParseEventHeader reads a common header of fd.HeaderLength bytes from r.
// Extra header bytes are skipped. On failure r is left where it was.
func ParseEventHeader(r *wire.Reader, fd *FormatDescription) (EventHeader, error) {
	var h EventHeader
	if fd.HeaderLength < EventHeaderLength {
		return h, vterrors.Errorf(vterrors.MalformedEvent, "header length %d, should be >= %d", fd.HeaderLength, EventHeaderLength)
	}
	hdr, err := r.ReadSlice(int(fd.HeaderLength))
	if err != nil {
		return h, err
	}
	h.Timestamp = binary.LittleEndian.Uint32(hdr[0:4])
	h.Type = EventType(hdr[4])
	h.ServerID = binary.LittleEndian.Uint32(hdr[5:9])
	h.EventLength = binary.LittleEndian.Uint32(hdr[9:13])
	h.NextPosition = binary.LittleEndian.Uint32(hdr[13:17])
	h.Flags = binary.LittleEndian.Uint16(hdr[17:19])
	return h, nil
}

// Encode writes the 19 byte header. Extra header bytes are not supported.
func (h EventHeader) Encode(w *wire.Writer) error {
	start := w.Len()
	err := w.WriteUint32(h.Timestamp)
	if err == nil {
		err = w.WriteUint8(uint8(h.Type))
	}
	if err == nil {
		err = w.WriteUint32(h.ServerID)
	}
	if err == nil {
		err = w.WriteUint32(h.EventLength)
	}
	if err == nil {
		err = w.WriteUint32(h.NextPosition)
	}
	if err == nil {
		err = w.WriteUint16(h.Flags)
	}
	if err != nil {
		w.Truncate(start)
	}
	return err
}

// NewEvent frames body behind h. The event length is computed, and a CRC32
// is appended when fd enables checksums.
func NewEvent(h EventHeader, body []byte, fd *FormatDescription) ([]byte, error) {
	length := EventHeaderLength + len(body)
	if fd.HasChecksum() {
		length += ChecksumLength
	}
	if uint64(length) > uint64(^uint32(0)) {
		return nil, vterrors.Errorf(vterrors.SizeLimitExceeded, "event of %d bytes does not fit in a binlog event", length)
	}
	h.EventLength = uint32(length)

	w := wire.NewBoundedWriter(length)
	if err := h.Encode(w); err != nil {
		return nil, err
	}
	if err := w.WriteSlice(body); err != nil {
		return nil, err
	}
	if fd.HasChecksum() {
		if err := w.WriteUint32(crc32.ChecksumIEEE(w.Bytes())); err != nil {
			return nil, err
		}
	}
	return w.Finalize(), nil
}

// SplitEvent parses a complete framed event. The checksum is verified and
// stripped when fd enables checksums. The returned body aliases event.
func SplitEvent(event []byte, fd *FormatDescription) (RawEvent, error) {
	r := wire.NewReader(event)
	h, err := ParseEventHeader(r, fd)
	if err != nil {
		return RawEvent{}, err
	}
	if int64(h.EventLength) != int64(len(event)) {
		return RawEvent{}, vterrors.Errorf(vterrors.MalformedEvent, "event length %d does not match buffer length %d", h.EventLength, len(event))
	}

	end := len(event)
	if fd.HasChecksum() {
		if r.Remaining() < ChecksumLength {
			return RawEvent{}, vterrors.Errorf(vterrors.MalformedEvent, "%v event too short for its checksum", h.Type)
		}
		end -= ChecksumLength
		want := binary.LittleEndian.Uint32(event[end:])
		if got := crc32.ChecksumIEEE(event[:end]); got != want {
			return RawEvent{}, vterrors.Errorf(vterrors.MalformedEvent, "%v event checksum mismatch: computed 0x%08x, stored 0x%08x", h.Type, got, want)
		}
	}
	return RawEvent{
		Type:   h.Type,
		Header: h,
		Body:   event[r.Pos():end:end],
	}, nil
}
