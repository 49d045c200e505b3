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
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"vitess.io/binlogcodec/go/vt/vterrors"
)

var (
	// statelessDecoder is shared by every in-memory decompression.
	// DecodeAll is safe for concurrent use.
	statelessDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(0),
			zstd.WithDecoderMaxMemory(InMemoryThreshold),
		)
	})

	// statefulDecoderPool holds streaming decoders. They run synchronously,
	// so pooled decoders own no goroutines.
	statefulDecoderPool = &decoderPool{}
)

type decoderPool struct {
	pool sync.Pool
}

// Get returns a decoder reading from reader, creating one if the pool is
// empty.
func (dp *decoderPool) Get(reader io.Reader) (*zstd.Decoder, error) {
	if pooled := dp.pool.Get(); pooled != nil {
		decoder, ok := pooled.(*zstd.Decoder)
		if !ok {
			return nil, vterrors.Errorf(vterrors.CompressorInternal, "invalid pooled decoder type %T", pooled)
		}
		if err := decoder.Reset(reader); err != nil {
			return nil, vterrors.NewWithCause(vterrors.CorruptFrame, err, "cannot reset zstd decoder")
		}
		return decoder, nil
	}
	decoder, err := zstd.NewReader(reader, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, vterrors.NewWithCause(vterrors.CompressorInit, err, "cannot create zstd decoder")
	}
	return decoder, nil
}

// Put returns a decoder to the pool.
func (dp *decoderPool) Put(decoder *zstd.Decoder) {
	if decoder == nil {
		return
	}
	dp.pool.Put(decoder)
}
