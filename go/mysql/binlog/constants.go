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

import "fmt"

// EventType is the one byte type code of a binlog event.
type EventType uint8

// This is the type of a binlog event.
// Values taken from libbinlogevents/include/binlog_event.h
const (
	UnknownEvent           EventType = 0
	StartEventV3           EventType = 1
	QueryEvent             EventType = 2
	StopEvent              EventType = 3
	RotateEvent            EventType = 4
	IntVarEvent            EventType = 5
	LoadEvent              EventType = 6
	SlaveEvent             EventType = 7
	CreateFileEvent        EventType = 8
	AppendBlockEvent       EventType = 9
	ExecLoadEvent          EventType = 10
	DeleteFileEvent        EventType = 11
	NewLoadEvent           EventType = 12
	RandEvent              EventType = 13
	UserVarEvent           EventType = 14
	FormatDescriptionEvent EventType = 15
	XIDEvent               EventType = 16
	BeginLoadQueryEvent    EventType = 17
	ExecuteLoadQueryEvent  EventType = 18
	TableMapEvent          EventType = 19
	WriteRowsEventV0       EventType = 20
	UpdateRowsEventV0      EventType = 21
	DeleteRowsEventV0      EventType = 22
	WriteRowsEventV1       EventType = 23
	UpdateRowsEventV1      EventType = 24
	DeleteRowsEventV1      EventType = 25
	IncidentEvent          EventType = 26
	HeartbeatEvent         EventType = 27
	IgnorableEvent         EventType = 28
	RowsQueryEvent         EventType = 29
	WriteRowsEventV2       EventType = 30
	UpdateRowsEventV2      EventType = 31
	DeleteRowsEventV2      EventType = 32
	GTIDEvent              EventType = 33
	AnonymousGTIDEvent     EventType = 34
	PreviousGTIDsEvent     EventType = 35

	// MySQL 5.7 events
	TransactionContextEvent EventType = 36
	ViewChangeEvent         EventType = 37
	XAPrepareLogEvent       EventType = 38

	// MySQL 8.0 events
	PartialUpdateRowsEvent  EventType = 39
	TransactionPayloadEvent EventType = 40
	HeartbeatEventV2        EventType = 41

	// MariaDB specific values. They start at 160.
	MariaAnnotateRowsEvent     EventType = 160
	MariaBinlogCheckpointEvent EventType = 161
	MariaGTIDEvent             EventType = 162
	MariaGTIDListEvent         EventType = 163
	MariaStartEncryptionEvent  EventType = 164
)

var eventTypeNames = map[EventType]string{
	UnknownEvent:               "UNKNOWN_EVENT",
	StartEventV3:               "START_EVENT_V3",
	QueryEvent:                 "QUERY_EVENT",
	StopEvent:                  "STOP_EVENT",
	RotateEvent:                "ROTATE_EVENT",
	IntVarEvent:                "INTVAR_EVENT",
	LoadEvent:                  "LOAD_EVENT",
	SlaveEvent:                 "SLAVE_EVENT",
	CreateFileEvent:            "CREATE_FILE_EVENT",
	AppendBlockEvent:           "APPEND_BLOCK_EVENT",
	ExecLoadEvent:              "EXEC_LOAD_EVENT",
	DeleteFileEvent:            "DELETE_FILE_EVENT",
	NewLoadEvent:               "NEW_LOAD_EVENT",
	RandEvent:                  "RAND_EVENT",
	UserVarEvent:               "USER_VAR_EVENT",
	FormatDescriptionEvent:     "FORMAT_DESCRIPTION_EVENT",
	XIDEvent:                   "XID_EVENT",
	BeginLoadQueryEvent:        "BEGIN_LOAD_QUERY_EVENT",
	ExecuteLoadQueryEvent:      "EXECUTE_LOAD_QUERY_EVENT",
	TableMapEvent:              "TABLE_MAP_EVENT",
	WriteRowsEventV0:           "PRE_GA_WRITE_ROWS_EVENT",
	UpdateRowsEventV0:          "PRE_GA_UPDATE_ROWS_EVENT",
	DeleteRowsEventV0:          "PRE_GA_DELETE_ROWS_EVENT",
	WriteRowsEventV1:           "WRITE_ROWS_EVENT_V1",
	UpdateRowsEventV1:          "UPDATE_ROWS_EVENT_V1",
	DeleteRowsEventV1:          "DELETE_ROWS_EVENT_V1",
	IncidentEvent:              "INCIDENT_EVENT",
	HeartbeatEvent:             "HEARTBEAT_LOG_EVENT",
	IgnorableEvent:             "IGNORABLE_LOG_EVENT",
	RowsQueryEvent:             "ROWS_QUERY_LOG_EVENT",
	WriteRowsEventV2:           "WRITE_ROWS_EVENT",
	UpdateRowsEventV2:          "UPDATE_ROWS_EVENT",
	DeleteRowsEventV2:          "DELETE_ROWS_EVENT",
	GTIDEvent:                  "GTID_LOG_EVENT",
	AnonymousGTIDEvent:         "ANONYMOUS_GTID_LOG_EVENT",
	PreviousGTIDsEvent:         "PREVIOUS_GTIDS_LOG_EVENT",
	TransactionContextEvent:    "TRANSACTION_CONTEXT_EVENT",
	ViewChangeEvent:            "VIEW_CHANGE_EVENT",
	XAPrepareLogEvent:          "XA_PREPARE_LOG_EVENT",
	PartialUpdateRowsEvent:     "PARTIAL_UPDATE_ROWS_EVENT",
	TransactionPayloadEvent:    "TRANSACTION_PAYLOAD_EVENT",
	HeartbeatEventV2:           "HEARTBEAT_LOG_EVENT_V2",
	MariaAnnotateRowsEvent:     "ANNOTATE_ROWS_EVENT",
	MariaBinlogCheckpointEvent: "BINLOG_CHECKPOINT_EVENT",
	MariaGTIDEvent:             "GTID_EVENT",
	MariaGTIDListEvent:         "GTID_LIST_EVENT",
	MariaStartEncryptionEvent:  "START_ENCRYPTION_EVENT",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// ChecksumAlgorithm is the checksum applied to every event of a binlog.
type ChecksumAlgorithm uint8

// Values taken from include/binlog_event.h
const (
	// BinlogChecksumAlgOff is BINLOG_CHECKSUM_ALG_OFF
	BinlogChecksumAlgOff ChecksumAlgorithm = 0

	// BinlogChecksumAlgCRC32 is BINLOG_CHECKSUM_ALG_CRC32
	BinlogChecksumAlgCRC32 ChecksumAlgorithm = 1

	// BinlogChecksumAlgUndef is BINLOG_CHECKSUM_ALG_UNDEF
	BinlogChecksumAlgUndef ChecksumAlgorithm = 255
)

// CompressionType is the algorithm a transaction payload is compressed with.
type CompressionType uint8

// Values taken from libbinlogevents/include/compression/base.h
const (
	// CompressionZstd is ZSTD.
	CompressionZstd CompressionType = 0

	// CompressionNone is NONE. The payload is stored as is.
	CompressionNone CompressionType = 255
)

func (c CompressionType) String() string {
	switch c {
	case CompressionZstd:
		return "ZSTD"
	case CompressionNone:
		return "NONE"
	default:
		return fmt.Sprintf("RESERVED(%d)", uint8(c))
	}
}

// IsReserved reports whether c is a value no algorithm is assigned to.
func (c CompressionType) IsReserved() bool {
	return c != CompressionZstd && c != CompressionNone
}

// ParseCompressionType parses the lower or upper case name of a compression
// type.
func ParseCompressionType(s string) (CompressionType, bool) {
	switch s {
	case "zstd", "ZSTD":
		return CompressionZstd, true
	case "none", "NONE":
		return CompressionNone, true
	default:
		return 0, false
	}
}

const (
	// BinlogVersion is the version of the binlog format described by a
	// format description event.
	BinlogVersion = 4

	// EventHeaderLength is the length of the v4 common event header.
	EventHeaderLength = 19

	// ChecksumLength is the length of the CRC32 trailing checksummed events.
	ChecksumLength = 4

	// ServerVersionLength is the padded length of the server version in a
	// format description event.
	ServerVersionLength = 50
)
