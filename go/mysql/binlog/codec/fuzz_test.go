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
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/google/go-cmp/cmp"

	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/mysql/binlog/wire"
)

// FuzzDecode feeds arbitrary bodies to every codec. Decoding must not
// panic, must restore the reader on failure, and anything that decodes must
// encode back to an event that decodes the same way.
func FuzzDecode(f *testing.F) {
	f.Add(byte(binlog.HeartbeatEventV2), []byte{1, 3, 'a', 'b', 'c', 2, 8, 4, 0, 0, 0, 0, 0, 0, 0, 0})
	f.Add(byte(binlog.TransactionPayloadEvent), []byte{1, 1, 2, 2, 1, 255, 3, 1, 2, 0, 'h', 'i'})
	f.Add(byte(binlog.TransactionPayloadEvent), []byte{1, 1, 0, 0})
	f.Add(byte(binlog.HeartbeatEventV2), []byte{0xfc, 0x0f, 0x27, 1, 0, 0})

	cfg := DefaultConfig()
	cfg.MaxEventBytes = 1 << 20
	f.Fuzz(func(t *testing.T, typ byte, body []byte) {
		et := binlog.EventType(typ)
		if _, ok := For(et); !ok {
			et = binlog.HeartbeatEventV2
		}

		r := wire.NewReader(body)
		ev, n, err := Decode(cfg, et, r)
		if err != nil {
			if r.Pos() != 0 || ev != nil || n != 0 {
				t.Fatalf("failed decode left pos=%d ev=%v n=%d", r.Pos(), ev, n)
			}
			return
		}
		if n != r.Pos() || n > len(body) {
			t.Fatalf("decode consumed %d bytes, reader at %d", n, r.Pos())
		}

		w := wire.NewGrowableWriter(n, 0)
		if _, err := Encode(cfg, ev, w); err != nil {
			t.Fatalf("re-encoding %v: %v", ev, err)
		}
		again, _, err := Decode(cfg, et, wire.NewReader(w.Bytes()))
		if err != nil {
			t.Fatalf("decoding re-encoded %v: %v", ev, err)
		}
		if diff := cmp.Diff(ev, again, equateEmpty); diff != "" {
			t.Fatalf("re-encoded event differs (-first +second):\n%s", diff)
		}
	})
}

// FuzzTransactionPayloadRoundTrip builds payloads from fuzzer input and
// checks that they survive encoding.
func FuzzTransactionPayloadRoundTrip(f *testing.F) {
	f.Add([]byte("some payload bytes"))
	f.Fuzz(func(t *testing.T, data []byte) {
		c := fuzz.NewConsumer(data)
		zstd, err := c.GetBool()
		if err != nil {
			return
		}
		payload, err := c.GetBytes()
		if err != nil {
			return
		}
		tp := &binlog.TransactionPayload{
			CompressionType:  binlog.CompressionNone,
			PayloadSize:      uint64(len(payload)),
			UncompressedSize: uint64(len(payload)),
			Payload:          payload,
		}
		if zstd && len(payload) > 0 {
			uncompressed, err := c.GetUint64()
			if err != nil || uncompressed == 0 {
				return
			}
			tp.CompressionType = binlog.CompressionZstd
			tp.UncompressedSize = uncompressed
		}

		cfg := DefaultConfig()
		w := wire.NewGrowableWriter(0, 0)
		if _, err := Encode(cfg, tp, w); err != nil {
			t.Fatalf("encoding %v: %v", tp, err)
		}
		got, n, err := Decode(cfg, binlog.TransactionPayloadEvent, wire.NewReader(w.Bytes()))
		if err != nil {
			t.Fatalf("decoding %v: %v", tp, err)
		}
		if n != w.Len() {
			t.Fatalf("decode consumed %d of %d bytes", n, w.Len())
		}
		if diff := cmp.Diff(tp, got, equateEmpty); diff != "" {
			t.Fatalf("round trip (-want +got):\n%s", diff)
		}
	})
}
