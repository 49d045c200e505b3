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

package command

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/mysql/binlog/codec"
	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

func newDecodeCommand(opts *options) *cobra.Command {
	var (
		isHex  bool
		events bool
	)
	cmd := &cobra.Command{
		Use:   "decode [<event-file>]",
		Short: "Decodes a binlog event and describes it.",
		Long: "Decodes a single framed binlog event read from a file, or from standard input by default, " +
			"and prints its fields. The events inside a transaction payload are listed as well.",
		Example: "binlogcodec heartbeat binlog.000001 4 | binlogcodec decode --hex",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(cmd, name, isHex)
			if err != nil {
				return err
			}
			return opts.describe(cmd.OutOrStdout(), data, events)
		},
	}
	cmd.Flags().BoolVar(&isHex, "hex", false, "The event is in hex.")
	cmd.Flags().BoolVar(&events, "events", true, "List the events of a transaction payload.")
	return cmd
}

func (o *options) describe(w io.Writer, data []byte, listEvents bool) error {
	fd := o.formatDescription()
	raw, err := binlog.SplitEvent(data, fd)
	if err != nil {
		return err
	}
	ev, n, err := codec.Decode(o.cfg, raw.Type, wire.NewReader(raw.Body))
	if err != nil {
		return vterrors.Wrapf(err, "cannot decode %v body", raw.Type)
	}
	if n != len(raw.Body) {
		return vterrors.Errorf(vterrors.MalformedEvent, "%v body has %d trailing bytes", raw.Type, len(raw.Body)-n)
	}

	fmt.Fprintf(w, "%v: %s, server id %d, timestamp %d\n",
		raw.Type, humanize.IBytes(uint64(raw.Header.EventLength)), raw.Header.ServerID, raw.Header.Timestamp)
	switch ev := ev.(type) {
	case *binlog.Heartbeat:
		fmt.Fprintf(w, "  log file: %s\n  position: %d\n", ev.LogFilename, ev.LogPosition)
	case *binlog.FormatDescription:
		fmt.Fprintf(w, "  binlog version: %d\n  server version: %s\n  header length: %d\n  checksum: %v\n",
			ev.BinlogVersion, ev.ServerVersion, ev.HeaderLength, ev.ChecksumAlgorithm)
	case *binlog.TransactionPayload:
		fmt.Fprintf(w, "  compression: %v\n  payload: %s\n  uncompressed: %s\n",
			ev.CompressionType, humanize.IBytes(ev.PayloadSize), humanize.IBytes(ev.UncompressedSize))
		if listEvents {
			return o.describeEvents(w, ev)
		}
	}
	return nil
}

func (o *options) describeEvents(w io.Writer, tp *binlog.TransactionPayload) error {
	p, err := codec.NewPipeline(o.cfg)
	if err != nil {
		return err
	}
	defer p.Release()

	it, err := p.Events(tp)
	if err != nil {
		return err
	}
	inner, err := it.All()
	for i, ev := range inner {
		fmt.Fprintf(w, "  #%d %v: %s\n", i, ev.Type, humanize.IBytes(uint64(ev.Header.EventLength)))
	}
	return err
}
