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

package codec

import (
	"io"

	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// Iterator walks the events of an uncompressed transaction payload. Inner
// events carry no checksum.
type Iterator struct {
	r   *wire.Reader
	fd  *binlog.FormatDescription
	err error
}

// NewIterator returns an Iterator over data, framed as described by fd.
func NewIterator(data []byte, fd *binlog.FormatDescription) *Iterator {
	return &Iterator{
		r:  wire.NewReader(data),
		fd: fd.WithoutChecksum(),
	}
}

// Next returns the next event, or io.EOF after the last one. Once Next
// fails it keeps returning the same error. Event bodies alias the payload.
func (it *Iterator) Next() (binlog.RawEvent, error) {
	if it.err != nil {
		return binlog.RawEvent{}, it.err
	}
	if it.r.EOF() {
		it.err = io.EOF
		return binlog.RawEvent{}, it.err
	}

	start := it.r.Pos()
	ev, err := it.next()
	if err != nil {
		it.r.Reset(start)
		it.err = vterrors.Wrapf(err, "inner event at offset %d", start)
		return binlog.RawEvent{}, it.err
	}
	return ev, nil
}

func (it *Iterator) next() (binlog.RawEvent, error) {
	h, err := binlog.ParseEventHeader(it.r, it.fd)
	if err != nil {
		return binlog.RawEvent{}, err
	}
	if h.EventLength < uint32(it.fd.HeaderLength) {
		return binlog.RawEvent{}, vterrors.Errorf(vterrors.MalformedEvent, "%v event length %d is shorter than its header", h.Type, h.EventLength)
	}
	body, err := it.r.ReadSliceUint64(uint64(h.EventLength - uint32(it.fd.HeaderLength)))
	if err != nil {
		return binlog.RawEvent{}, err
	}
	return binlog.RawEvent{Type: h.Type, Header: h, Body: body}, nil
}

// All returns the remaining events.
func (it *Iterator) All() ([]binlog.RawEvent, error) {
	var events []binlog.RawEvent
	for {
		ev, err := it.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}
