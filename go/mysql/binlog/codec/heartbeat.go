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
	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// Heartbeat V2 field tags.
//
// The body is:
//
//	FILENAME  <varint len> <file name>
//	POSITION  <varint 8>   <u64 position>
//	END
const (
	heartbeatFilename = 1
	heartbeatPosition = 2
)

func validateFilename(cfg Config, name string) error {
	if name == "" {
		return vterrors.New(vterrors.MalformedEvent, "heartbeat log file name is empty")
	}
	if len(name) > cfg.MaxFilenameBytes {
		return vterrors.Errorf(vterrors.SizeLimitExceeded, "heartbeat log file name of %d bytes exceeds %d", len(name), cfg.MaxFilenameBytes)
	}
	return nil
}

func encodeHeartbeat(cfg Config, ev binlog.Event, w *wire.Writer) (int, error) {
	hb, ok := ev.(*binlog.Heartbeat)
	if !ok {
		return 0, unexpectedEvent(binlog.HeartbeatEventV2, ev)
	}
	if err := validateFilename(cfg, hb.LogFilename); err != nil {
		return 0, err
	}

	start := w.Len()
	if err := writeField(w, heartbeatFilename, uint64(len(hb.LogFilename))); err != nil {
		return 0, err
	}
	if err := w.WriteString(hb.LogFilename); err != nil {
		return 0, err
	}
	if err := writeField(w, heartbeatPosition, 8); err != nil {
		return 0, err
	}
	if err := w.WriteUint64(hb.LogPosition); err != nil {
		return 0, err
	}
	if err := w.WriteVarint(endMarker); err != nil {
		return 0, err
	}
	return w.Len() - start, nil
}

func decodeHeartbeat(cfg Config, r *wire.Reader) (binlog.Event, int, error) {
	start := r.Pos()
	hb := &binlog.Heartbeat{}
	var haveFilename, havePosition bool
	for {
		tag, length, done, err := readField(r)
		if err != nil {
			return nil, 0, err
		}
		if done {
			break
		}

		switch tag {
		case heartbeatFilename:
			if length > uint64(cfg.MaxFilenameBytes) {
				return nil, 0, vterrors.Errorf(vterrors.SizeLimitExceeded, "heartbeat log file name of %d bytes exceeds %d", length, cfg.MaxFilenameBytes)
			}
			name, err := r.ReadSliceUint64(length)
			if err != nil {
				return nil, 0, err
			}
			hb.LogFilename = string(name)
			haveFilename = true
		case heartbeatPosition:
			if length != 8 {
				return nil, 0, vterrors.Errorf(vterrors.MalformedEvent, "heartbeat position field has length %d, expected 8", length)
			}
			if hb.LogPosition, err = r.ReadUint64(); err != nil {
				return nil, 0, err
			}
			havePosition = true
		default:
			if err := skipField(cfg, r, binlog.HeartbeatEventV2, tag, length); err != nil {
				return nil, 0, err
			}
		}
	}

	if !haveFilename || hb.LogFilename == "" {
		return nil, 0, vterrors.New(vterrors.MalformedEvent, "heartbeat has no log file name")
	}
	if !havePosition {
		return nil, 0, vterrors.New(vterrors.MalformedEvent, "heartbeat has no log position")
	}
	return hb, r.Pos() - start, nil
}
