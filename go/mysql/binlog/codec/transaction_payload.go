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

// Transaction payload field tags.
//
// The body is:
//
//	PAYLOAD_SIZE       <varint len> <varint size>
//	COMPRESSION_TYPE   <varint 1>   <u8 type>
//	UNCOMPRESSED_SIZE  <varint len> <varint size>
//	END
//	<payload>
const (
	payloadSizeField      = 1
	compressionTypeField  = 2
	uncompressedSizeField = 3
)

func encodeTransactionPayload(cfg Config, ev binlog.Event, w *wire.Writer) (int, error) {
	tp, ok := ev.(*binlog.TransactionPayload)
	if !ok {
		return 0, unexpectedEvent(binlog.TransactionPayloadEvent, ev)
	}
	if err := tp.Validate(); err != nil {
		return 0, err
	}
	if tp.PayloadSize > cfg.MaxEventBytes {
		return 0, vterrors.Errorf(vterrors.SizeLimitExceeded, "payload of %d bytes exceeds %d", tp.PayloadSize, cfg.MaxEventBytes)
	}

	start := w.Len()
	if err := writeField(w, payloadSizeField, uint64(wire.VarintSize(tp.PayloadSize))); err != nil {
		return 0, err
	}
	if err := w.WriteVarint(tp.PayloadSize); err != nil {
		return 0, err
	}
	if err := writeField(w, compressionTypeField, 1); err != nil {
		return 0, err
	}
	if err := w.WriteUint8(uint8(tp.CompressionType)); err != nil {
		return 0, err
	}
	if err := writeField(w, uncompressedSizeField, uint64(wire.VarintSize(tp.UncompressedSize))); err != nil {
		return 0, err
	}
	if err := w.WriteVarint(tp.UncompressedSize); err != nil {
		return 0, err
	}
	if err := w.WriteVarint(endMarker); err != nil {
		return 0, err
	}
	if err := w.WriteSlice(tp.Payload); err != nil {
		return 0, err
	}
	return w.Len() - start, nil
}

func decodeTransactionPayload(cfg Config, r *wire.Reader) (binlog.Event, int, error) {
	start := r.Pos()
	tp := &binlog.TransactionPayload{CompressionType: binlog.CompressionNone}
	var haveSize, haveUncompressedSize bool
	for {
		tag, length, done, err := readField(r)
		if err != nil {
			return nil, 0, err
		}
		if done {
			break
		}

		switch tag {
		case payloadSizeField:
			if tp.PayloadSize, err = readVarintValue(r, "payload size", length); err != nil {
				return nil, 0, err
			}
			haveSize = true
		case compressionTypeField:
			if length != 1 {
				return nil, 0, vterrors.Errorf(vterrors.MalformedEvent, "compression type field has length %d, expected 1", length)
			}
			ct, err := r.ReadUint8()
			if err != nil {
				return nil, 0, err
			}
			tp.CompressionType = binlog.CompressionType(ct)
		case uncompressedSizeField:
			if tp.UncompressedSize, err = readVarintValue(r, "uncompressed size", length); err != nil {
				return nil, 0, err
			}
			haveUncompressedSize = true
		default:
			if err := skipField(cfg, r, binlog.TransactionPayloadEvent, tag, length); err != nil {
				return nil, 0, err
			}
		}
	}

	if !haveSize {
		return nil, 0, vterrors.New(vterrors.MalformedEvent, "transaction payload has no payload size")
	}
	if !haveUncompressedSize {
		tp.UncompressedSize = tp.PayloadSize
	}
	if tp.PayloadSize > cfg.MaxEventBytes {
		return nil, 0, vterrors.Errorf(vterrors.SizeLimitExceeded, "payload of %d bytes exceeds %d", tp.PayloadSize, cfg.MaxEventBytes)
	}

	payload, err := r.ReadSliceUint64(tp.PayloadSize)
	if err != nil {
		return nil, 0, err
	}
	tp.Payload = bytes.Clone(payload)
	if err := tp.Validate(); err != nil {
		return nil, 0, err
	}
	return tp, r.Pos() - start, nil
}
