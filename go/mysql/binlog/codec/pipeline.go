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
	"vitess.io/binlogcodec/go/mysql/binlog/compression"
	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/log"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// Pipeline turns the serialized events of a transaction into a
// TransactionPayload and back. It owns a Compressor and a Decompressor that
// are reused from one transaction to the next, so it must not be used
// concurrently.
type Pipeline struct {
	cfg          Config
	fd           *binlog.FormatDescription
	compressor   *compression.Compressor
	decompressor *compression.Decompressor
}

// NewPipeline returns a Pipeline using cfg. Inner events are framed as
// described by a MySQL 8.0 format description until SetFormatDescription
// is called.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	compressor, err := compression.NewCompressor(
		compression.WithLevel(cfg.ZstdCompressionLevel),
		compression.WithBufferLimit(clampInt(cfg.MaxEventBytes)),
	)
	if err != nil {
		return nil, err
	}
	decompressor, err := compression.NewDecompressor(
		compression.WithDecompressedLimit(cfg.MaxDecompressedBytes),
	)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:          cfg,
		fd:           binlog.NewMySQL8FormatDescription(),
		compressor:   compressor,
		decompressor: decompressor,
	}, nil
}

// SetFormatDescription sets the format description of the binlog the
// payloads belong to.
func (p *Pipeline) SetFormatDescription(fd *binlog.FormatDescription) {
	p.fd = fd
}

// Pack builds a payload from blobs with the default compression type.
func (p *Pipeline) Pack(blobs [][]byte) (*binlog.TransactionPayload, error) {
	return p.PackWith(p.cfg.DefaultCompressionType, blobs)
}

// PackWith builds a payload from blobs, each of them a serialized event.
// An empty transaction is always stored uncompressed, as a compressed
// empty frame would not be a valid payload.
func (p *Pipeline) PackWith(ct binlog.CompressionType, blobs [][]byte) (*binlog.TransactionPayload, error) {
	var total uint64
	for _, b := range blobs {
		total += uint64(len(b))
	}
	if total > p.cfg.MaxDecompressedBytes {
		return nil, vterrors.Errorf(vterrors.SizeLimitExceeded, "transaction of %d bytes exceeds %d", total, p.cfg.MaxDecompressedBytes)
	}
	if total == 0 {
		ct = binlog.CompressionNone
	}

	switch ct {
	case binlog.CompressionNone:
		if total > p.cfg.MaxEventBytes {
			return nil, vterrors.Errorf(vterrors.SizeLimitExceeded, "payload of %d bytes exceeds %d", total, p.cfg.MaxEventBytes)
		}
		payload := make([]byte, 0, total)
		for _, b := range blobs {
			payload = append(payload, b...)
		}
		return &binlog.TransactionPayload{
			CompressionType:  binlog.CompressionNone,
			UncompressedSize: total,
			PayloadSize:      total,
			Payload:          payload,
		}, nil
	case binlog.CompressionZstd:
		payload, err := p.compress(blobs)
		if err != nil {
			return nil, err
		}
		bytesUncompressed.Add(int64(total))
		bytesCompressed.Add(int64(len(payload)))
		log.DebugS("compressed transaction payload", "events", len(blobs), "uncompressed", total, "compressed", len(payload))
		return &binlog.TransactionPayload{
			CompressionType:  binlog.CompressionZstd,
			UncompressedSize: total,
			PayloadSize:      uint64(len(payload)),
			Payload:          payload,
		}, nil
	default:
		return nil, vterrors.Errorf(vterrors.InvalidArgument, "cannot pack with compression type %v", ct)
	}
}

func (p *Pipeline) compress(blobs [][]byte) ([]byte, error) {
	c := p.compressor
	if err := c.SetCompressionLevel(p.cfg.ZstdCompressionLevel); err != nil {
		return nil, err
	}
	if err := c.Open(); err != nil {
		c.Release()
		return nil, err
	}
	for _, b := range blobs {
		if _, err := c.Compress(b); err != nil {
			c.Release()
			return nil, err
		}
	}
	n, err := c.Close()
	if err != nil {
		c.Release()
		return nil, err
	}
	return bytes.Clone(c.Buffer()[:n]), nil
}

// Encode packs blobs and writes the resulting transaction payload body
// into w.
func (p *Pipeline) Encode(blobs [][]byte, w *wire.Writer) (int, error) {
	tp, err := p.Pack(blobs)
	if err != nil {
		return 0, err
	}
	return Encode(p.cfg, tp, w)
}

// Unpack returns the serialized inner events of tp. An uncompressed payload
// is returned as is; otherwise ownership of the result passes to the caller.
func (p *Pipeline) Unpack(tp *binlog.TransactionPayload) ([]byte, error) {
	if err := tp.Validate(); err != nil {
		return nil, err
	}
	switch tp.CompressionType {
	case binlog.CompressionNone:
		return tp.Payload, nil
	case binlog.CompressionZstd:
	default:
		return nil, vterrors.Errorf(vterrors.MalformedEvent, "transaction payload has compression type %v", tp.CompressionType)
	}

	d := p.decompressor
	if err := d.Open(tp.Payload, tp.UncompressedSize); err != nil {
		return nil, err
	}
	out, err := d.DecompressAll()
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	if uint64(len(out)) != tp.UncompressedSize {
		return nil, vterrors.Errorf(vterrors.MalformedEvent, "transaction payload decompressed to %d bytes, expected %d", len(out), tp.UncompressedSize)
	}
	return out, nil
}

// Events returns an iterator over the inner events of tp.
func (p *Pipeline) Events(tp *binlog.TransactionPayload) (*Iterator, error) {
	data, err := p.Unpack(tp)
	if err != nil {
		return nil, err
	}
	return NewIterator(data, p.fd), nil
}

// Release drops the compression state of the pipeline.
func (p *Pipeline) Release() {
	p.compressor.Release()
	p.decompressor.Release()
}

func clampInt(v uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if v > uint64(maxInt) {
		return maxInt
	}
	return int(v)
}
