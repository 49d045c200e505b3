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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{FormatDescriptionEvent, "FORMAT_DESCRIPTION_EVENT"},
		{HeartbeatEvent, "HEARTBEAT_LOG_EVENT"},
		{TransactionPayloadEvent, "TRANSACTION_PAYLOAD_EVENT"},
		{HeartbeatEventV2, "HEARTBEAT_LOG_EVENT_V2"},
		{MariaGTIDEvent, "GTID_EVENT"},
		{EventType(99), "EventType(99)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
	assert.EqualValues(t, 15, FormatDescriptionEvent)
	assert.EqualValues(t, 27, HeartbeatEvent)
	assert.EqualValues(t, 40, TransactionPayloadEvent)
	assert.EqualValues(t, 41, HeartbeatEventV2)
}

func TestCompressionType(t *testing.T) {
	assert.Equal(t, "ZSTD", CompressionZstd.String())
	assert.Equal(t, "NONE", CompressionNone.String())
	assert.Equal(t, "RESERVED(7)", CompressionType(7).String())
	assert.False(t, CompressionZstd.IsReserved())
	assert.False(t, CompressionNone.IsReserved())
	assert.True(t, CompressionType(1).IsReserved())

	ct, ok := ParseCompressionType("zstd")
	assert.True(t, ok)
	assert.Equal(t, CompressionZstd, ct)
	ct, ok = ParseCompressionType("NONE")
	assert.True(t, ok)
	assert.Equal(t, CompressionNone, ct)
	_, ok = ParseCompressionType("lz4")
	assert.False(t, ok)
}

func TestTransactionPayloadValidate(t *testing.T) {
	tests := []struct {
		name string
		tp   TransactionPayload
		ok   bool
	}{{
		name: "empty",
		tp:   TransactionPayload{CompressionType: CompressionNone},
		ok:   true,
	}, {
		name: "uncompressed",
		tp:   TransactionPayload{CompressionType: CompressionNone, PayloadSize: 3, UncompressedSize: 3, Payload: []byte("abc")},
		ok:   true,
	}, {
		name: "compressed",
		tp:   TransactionPayload{CompressionType: CompressionZstd, PayloadSize: 3, UncompressedSize: 300, Payload: []byte("abc")},
		ok:   true,
	}, {
		name: "size mismatch",
		tp:   TransactionPayload{CompressionType: CompressionZstd, PayloadSize: 4, UncompressedSize: 300, Payload: []byte("abc")},
	}, {
		name: "uncompressed with different sizes",
		tp:   TransactionPayload{CompressionType: CompressionNone, PayloadSize: 3, UncompressedSize: 4, Payload: []byte("abc")},
	}, {
		name: "zero uncompressed size",
		tp:   TransactionPayload{CompressionType: CompressionZstd, PayloadSize: 3, Payload: []byte("abc")},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tp.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, vterrors.MalformedEvent, vterrors.Code(err))
		})
	}
}

func TestFormatDescription(t *testing.T) {
	fd := NewMySQL8FormatDescription()
	assert.Equal(t, FormatDescriptionEvent, fd.EventType())
	assert.True(t, fd.HasChecksum())
	assert.Len(t, fd.PostHeaderLengths, int(HeartbeatEventV2))
	assert.Equal(t, 40, fd.PostHeaderLength(TransactionPayloadEvent))
	assert.Equal(t, 0, fd.PostHeaderLength(HeartbeatEventV2))
	assert.Equal(t, 2+ServerVersionLength+4+1+len(fd.PostHeaderLengths), fd.PostHeaderLength(FormatDescriptionEvent))
	assert.Equal(t, 0, fd.PostHeaderLength(UnknownEvent))
	assert.Equal(t, 0, fd.PostHeaderLength(MariaGTIDEvent))

	plain := fd.WithoutChecksum()
	assert.False(t, plain.HasChecksum())
	assert.True(t, fd.HasChecksum())

	// The default is a fresh copy every time.
	fd.PostHeaderLengths[0] = 0
	assert.EqualValues(t, 56, NewMySQL8FormatDescription().PostHeaderLengths[0])
}

func TestEventFraming(t *testing.T) {
	body := []byte("heartbeat body")
	hdr := EventHeader{
		Timestamp:    1700000000,
		Type:         HeartbeatEventV2,
		ServerID:     42,
		NextPosition: 4,
		Flags:        0x80,
	}

	for _, fd := range []*FormatDescription{NewMySQL8FormatDescription(), NewMySQL8FormatDescription().WithoutChecksum()} {
		event, err := NewEvent(hdr, body, fd)
		require.NoError(t, err)
		wantLen := EventHeaderLength + len(body)
		if fd.HasChecksum() {
			wantLen += ChecksumLength
		}
		require.Len(t, event, wantLen)

		raw, err := SplitEvent(event, fd)
		require.NoError(t, err)

		want := hdr
		want.EventLength = uint32(wantLen)
		if diff := cmp.Diff(RawEvent{Type: HeartbeatEventV2, Header: want, Body: body}, raw); diff != "" {
			t.Errorf("SplitEvent mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSplitEventErrors(t *testing.T) {
	fd := NewMySQL8FormatDescription()
	event, err := NewEvent(EventHeader{Type: HeartbeatEventV2}, []byte("body"), fd)
	require.NoError(t, err)

	_, err = SplitEvent(event[:10], fd)
	assert.Equal(t, vterrors.OutOfBounds, vterrors.Code(err))

	_, err = SplitEvent(event[:len(event)-1], fd)
	assert.Equal(t, vterrors.MalformedEvent, vterrors.Code(err))

	corrupt := append([]byte(nil), event...)
	corrupt[EventHeaderLength] ^= 0xff
	_, err = SplitEvent(corrupt, fd)
	assert.Equal(t, vterrors.MalformedEvent, vterrors.Code(err))
	assert.Contains(t, err.Error(), "checksum mismatch")

	// A checksummed event cannot be shorter than its checksum.
	short, err := NewEvent(EventHeader{Type: StopEvent}, nil, fd.WithoutChecksum())
	require.NoError(t, err)
	_, err = SplitEvent(short, fd)
	assert.Equal(t, vterrors.MalformedEvent, vterrors.Code(err))

	bad := *fd
	bad.HeaderLength = 13
	_, err = SplitEvent(event, &bad)
	assert.Equal(t, vterrors.MalformedEvent, vterrors.Code(err))
}

func TestParseEventHeaderExtraHeaders(t *testing.T) {
	fd := NewMySQL8FormatDescription()
	fd.HeaderLength = EventHeaderLength + 2

	w := wire.NewGrowableWriter(32, 0)
	require.NoError(t, EventHeader{Type: QueryEvent, ServerID: 7, EventLength: 21}.Encode(w))
	require.NoError(t, w.WriteUint16(0xffff))

	r := wire.NewReader(w.Bytes())
	h, err := ParseEventHeader(r, fd)
	require.NoError(t, err)
	assert.Equal(t, QueryEvent, h.Type)
	assert.EqualValues(t, 7, h.ServerID)
	assert.True(t, r.EOF())
}

func TestHeaderEncodeInsufficientCapacity(t *testing.T) {
	w := wire.NewBoundedWriter(10)
	err := EventHeader{Type: QueryEvent}.Encode(w)
	assert.Equal(t, vterrors.InsufficientCapacity, vterrors.Code(err))
	assert.Zero(t, w.Len())
}
