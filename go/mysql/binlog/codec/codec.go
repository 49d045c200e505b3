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

// Package codec encodes and decodes the bodies of binlog events.
//
// Codecs are looked up by event type in a static table:
//
//	c, err := codec.Lookup(binlog.HeartbeatEventV2)
//	n, err := c.Encode(cfg, &binlog.Heartbeat{LogFilename: "binlog.000001", LogPosition: 4}, w)
//
// Event bodies with variable fields use a tag-length-value layout, where
// both the tag and the length are variable-length integers and a zero tag
// ends the list of fields. Decoders skip fields with tags they do not know.
//
// Codecs hold no state and are safe for concurrent use. A Pipeline is not.
package codec

import (
	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/log"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// endMarker terminates the fields of every tag-length-value body.
const endMarker = 0

// EncodeFunc writes the body of ev into w and returns the number of bytes
// written. On failure nothing is left in w.
type EncodeFunc func(cfg Config, ev binlog.Event, w *wire.Writer) (int, error)

// DecodeFunc reads a body from r and returns the event and the number of
// bytes consumed. On failure r is left where it was and no event is
// returned.
type DecodeFunc func(cfg Config, r *wire.Reader) (binlog.Event, int, error)

// Codec converts one event type between its decoded and wire forms.
type Codec struct {
	Type   binlog.EventType
	Encode EncodeFunc
	Decode DecodeFunc
}

var codecs = map[binlog.EventType]Codec{
	binlog.HeartbeatEventV2: {
		Type:   binlog.HeartbeatEventV2,
		Encode: atomicEncode(encodeHeartbeat),
		Decode: atomicDecode(binlog.HeartbeatEventV2, decodeHeartbeat),
	},
	binlog.TransactionPayloadEvent: {
		Type:   binlog.TransactionPayloadEvent,
		Encode: atomicEncode(encodeTransactionPayload),
		Decode: atomicDecode(binlog.TransactionPayloadEvent, decodeTransactionPayload),
	},
	binlog.FormatDescriptionEvent: {
		Type:   binlog.FormatDescriptionEvent,
		Encode: atomicEncode(encodeFormatDescription),
		Decode: atomicDecode(binlog.FormatDescriptionEvent, decodeFormatDescription),
	},
}

// For returns the codec of t, if there is one.
func For(t binlog.EventType) (Codec, bool) {
	c, ok := codecs[t]
	return c, ok
}

// Lookup returns the codec of t, or an UnknownEventType error.
func Lookup(t binlog.EventType) (Codec, error) {
	c, ok := codecs[t]
	if !ok {
		return Codec{}, vterrors.Errorf(vterrors.UnknownEventType, "no codec for %v", t)
	}
	return c, nil
}

// Encode writes the body of ev with the codec of its type.
func Encode(cfg Config, ev binlog.Event, w *wire.Writer) (int, error) {
	c, err := Lookup(ev.EventType())
	if err != nil {
		return 0, err
	}
	n, err := c.Encode(cfg, ev, w)
	if err != nil {
		return 0, err
	}
	eventsEncoded.Add(c.Type.String(), 1)
	return n, nil
}

// Decode reads a body of type t from r.
func Decode(cfg Config, t binlog.EventType, r *wire.Reader) (binlog.Event, int, error) {
	c, err := Lookup(t)
	if err != nil {
		decodeErrors.Add(vterrors.Code(err).String(), 1)
		return nil, 0, err
	}
	ev, n, err := c.Decode(cfg, r)
	if err != nil {
		decodeErrors.Add(vterrors.Code(err).String(), 1)
		return nil, 0, err
	}
	eventsDecoded.Add(c.Type.String(), 1)
	return ev, n, nil
}

// atomicEncode rolls back partial writes and enforces the event size cap.
func atomicEncode(fn EncodeFunc) EncodeFunc {
	return func(cfg Config, ev binlog.Event, w *wire.Writer) (int, error) {
		start := w.Len()
		_, err := fn(cfg, ev, w)
		if err == nil && uint64(w.Len()-start) > cfg.MaxEventBytes {
			err = vterrors.Errorf(vterrors.SizeLimitExceeded, "%v body of %d bytes exceeds %d", ev.EventType(), w.Len()-start, cfg.MaxEventBytes)
		}
		if err != nil {
			w.Truncate(start)
			return 0, err
		}
		return w.Len() - start, nil
	}
}

// atomicDecode restores the reader position on failure and enforces the
// event size cap.
func atomicDecode(t binlog.EventType, fn DecodeFunc) DecodeFunc {
	return func(cfg Config, r *wire.Reader) (binlog.Event, int, error) {
		start := r.Pos()
		ev, _, err := fn(cfg, r)
		if err == nil && uint64(r.Pos()-start) > cfg.MaxEventBytes {
			err = vterrors.Errorf(vterrors.SizeLimitExceeded, "%v body of %d bytes exceeds %d", t, r.Pos()-start, cfg.MaxEventBytes)
		}
		if err != nil {
			r.Reset(start)
			return nil, 0, err
		}
		return ev, r.Pos() - start, nil
	}
}

// readField reads the tag and the length of the next field. done is true
// once the end marker is reached, in which case no length follows.
func readField(r *wire.Reader) (tag, length uint64, done bool, err error) {
	if tag, err = r.ReadVarint(); err != nil {
		return 0, 0, false, err
	}
	if tag == endMarker {
		return tag, 0, true, nil
	}
	if length, err = r.ReadVarint(); err != nil {
		return 0, 0, false, err
	}
	return tag, length, false, nil
}

// skipField skips the value of a field with an unknown tag.
func skipField(cfg Config, r *wire.Reader, t binlog.EventType, tag, length uint64) error {
	if length > cfg.MaxEventBytes {
		return vterrors.Errorf(vterrors.SizeLimitExceeded, "%v field %d of %d bytes exceeds %d", t, tag, length, cfg.MaxEventBytes)
	}
	if _, err := r.ReadSliceUint64(length); err != nil {
		return err
	}
	log.DebugS("skipped unknown field", "event_type", t.String(), "tag", tag, "length", length)
	return nil
}

// writeField writes a field tag and length.
func writeField(w *wire.Writer, tag, length uint64) error {
	if err := w.WriteVarint(tag); err != nil {
		return err
	}
	return w.WriteVarint(length)
}

// readVarintValue reads a variable-length integer that must fill a field
// of the given length.
func readVarintValue(r *wire.Reader, field string, length uint64) (uint64, error) {
	start := r.Pos()
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	if uint64(r.Pos()-start) != length {
		return 0, vterrors.Errorf(vterrors.MalformedEvent, "%s field has length %d but holds a %d byte value", field, length, r.Pos()-start)
	}
	return v, nil
}

func unexpectedEvent(want binlog.EventType, ev binlog.Event) error {
	return vterrors.Errorf(vterrors.InvalidArgument, "%v codec cannot encode %T", want, ev)
}
