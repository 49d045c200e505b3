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
	"vitess.io/binlogcodec/go/stats"
)

var (
	eventsEncoded     = stats.NewCountersWithSingleLabel("BinlogCodecEventsEncoded", "binlog events encoded", "event_type")
	eventsDecoded     = stats.NewCountersWithSingleLabel("BinlogCodecEventsDecoded", "binlog events decoded", "event_type")
	decodeErrors      = stats.NewCountersWithSingleLabel("BinlogCodecDecodeErrors", "binlog events that failed to decode", "kind")
	bytesCompressed   = stats.NewCounter("BinlogCodecBytesCompressed", "transaction payload bytes after compression")
	bytesUncompressed = stats.NewCounter("BinlogCodecBytesUncompressed", "transaction payload bytes before compression")
)
