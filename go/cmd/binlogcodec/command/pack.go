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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vitess.io/binlogcodec/go/mysql/binlog/codec"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

func newPackCommand(opts *options) *cobra.Command {
	var (
		isHex  bool
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "pack [<event-file>...]",
		Short: "Packs the events of a transaction into a TRANSACTION_PAYLOAD_EVENT.",
		Long: "Packs the events of a transaction into a TRANSACTION_PAYLOAD_EVENT.\n\n" +
			"Each file holds one or more serialized events without checksums, in the order they were logged. " +
			"`-` reads standard input. Without files, an empty transaction is packed.",
		Example: "binlogcodec pack --default-compression-type=zstd begin.bin rows.bin commit.bin",
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := opts.formatDescription()
			blobs := make([][]byte, 0, len(args))
			events := 0
			for _, name := range args {
				data, err := readInput(cmd, name, isHex)
				if err != nil {
					return err
				}
				if verify {
					evs, err := codec.NewIterator(data, fd).All()
					if err != nil {
						return vterrors.Wrapf(err, "invalid events in %s", name)
					}
					events += len(evs)
				}
				blobs = append(blobs, data)
			}

			p, err := codec.NewPipeline(opts.cfg)
			if err != nil {
				return err
			}
			defer p.Release()
			p.SetFormatDescription(fd)

			tp, err := p.Pack(blobs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "packed %d events: %s to %s with %v\n",
				events, humanize.IBytes(tp.UncompressedSize), humanize.IBytes(tp.PayloadSize), tp.CompressionType)

			event, err := opts.frame(tp)
			if err != nil {
				return err
			}
			return opts.emit(cmd, event)
		},
	}
	cmd.Flags().BoolVar(&isHex, "hex", false, "Event files are in hex.")
	cmd.Flags().BoolVar(&verify, "verify", true, "Check that event files hold whole events.")
	return cmd
}
