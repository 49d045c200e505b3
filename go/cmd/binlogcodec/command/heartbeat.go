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
	"strconv"

	"github.com/spf13/cobra"

	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

func newHeartbeatCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "heartbeat <log-file> <position>",
		Short:   "Encodes a HEARTBEAT_LOG_EVENT_V2.",
		Example: "binlogcodec heartbeat binlog.000042 1073741824",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return vterrors.Errorf(vterrors.InvalidArgument, "invalid position %q: %v", args[1], err)
			}
			event, err := opts.frame(&binlog.Heartbeat{LogFilename: args[0], LogPosition: pos})
			if err != nil {
				return err
			}
			return opts.emit(cmd, event)
		},
	}
}
