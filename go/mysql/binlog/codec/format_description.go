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
	"bytes"

	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// The format description body has a fixed layout:
//
//	# bytes   field
//	2         binlog version
//	50        server version string, 0-padded but not necessarily 0-terminated
//	4         create timestamp
//	1         common header length
//	N         post-header length of each event type
//	1         checksum algorithm
//
// The CRC32 that follows when checksums are enabled is part of the framing.
const formatDescriptionFixedLength = 2 + binlog.ServerVersionLength + 4 + 1

func encodeFormatDescription(cfg Config, ev binlog.Event, w *wire.Writer) (int, error) {
	fd, ok := ev.(*binlog.FormatDescription)
	if !ok {
		return 0, unexpectedEvent(binlog.FormatDescriptionEvent, ev)
	}
	if len(fd.ServerVersion) > binlog.ServerVersionLength {
		return 0, vterrors.Errorf(vterrors.SizeLimitExceeded, "server version of %d bytes exceeds %d", len(fd.ServerVersion), binlog.ServerVersionLength)
	}

	var version [binlog.ServerVersionLength]byte
	copy(version[:], fd.ServerVersion)

	start := w.Len()
	if err := w.WriteUint16(fd.BinlogVersion); err != nil {
		return 0, err
	}
	if err := w.WriteSlice(version[:]); err != nil {
		return 0, err
	}
	if err := w.WriteUint32(fd.CreateTimestamp); err != nil {
		return 0, err
	}
	if err := w.WriteUint8(fd.HeaderLength); err != nil {
		return 0, err
	}
	if err := w.WriteSlice(fd.PostHeaderLengths); err != nil {
		return 0, err
	}
	if err := w.WriteUint8(uint8(fd.ChecksumAlgorithm)); err != nil {
		return 0, err
	}
	return w.Len() - start, nil
}

// decodeFormatDescription consumes the rest of r: the number of event types
// is only known from the body length.
func decodeFormatDescription(cfg Config, r *wire.Reader) (binlog.Event, int, error) {
	start := r.Pos()
	if r.Remaining() < formatDescriptionFixedLength+1 {
		return nil, 0, vterrors.Errorf(vterrors.OutOfBounds, "format description needs at least %d bytes, got %d", formatDescriptionFixedLength+1, r.Remaining())
	}

	fd := &binlog.FormatDescription{}
	var err error
	if fd.BinlogVersion, err = r.ReadUint16(); err != nil {
		return nil, 0, err
	}
	if fd.BinlogVersion != binlog.BinlogVersion {
		return nil, 0, vterrors.Errorf(vterrors.MalformedEvent, "format version = %d, we only support version %d", fd.BinlogVersion, binlog.BinlogVersion)
	}
	version, err := r.ReadSlice(binlog.ServerVersionLength)
	if err != nil {
		return nil, 0, err
	}
	fd.ServerVersion = string(bytes.TrimRight(version, "\x00"))
	if fd.CreateTimestamp, err = r.ReadUint32(); err != nil {
		return nil, 0, err
	}
	if fd.HeaderLength, err = r.ReadUint8(); err != nil {
		return nil, 0, err
	}
	if fd.HeaderLength < binlog.EventHeaderLength {
		return nil, 0, vterrors.Errorf(vterrors.MalformedEvent, "header length = %d, should be >= %d", fd.HeaderLength, binlog.EventHeaderLength)
	}
	lengths, err := r.ReadSlice(r.Remaining() - 1)
	if err != nil {
		return nil, 0, err
	}
	// The format description outlives the buffer it was read from.
	fd.PostHeaderLengths = bytes.Clone(lengths)
	alg, err := r.ReadUint8()
	if err != nil {
		return nil, 0, err
	}
	fd.ChecksumAlgorithm = binlog.ChecksumAlgorithm(alg)
	return fd, r.Pos() - start, nil
}
