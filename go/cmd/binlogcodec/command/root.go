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

// Package command contains the commands of the binlogcodec tool.
package command

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/mysql/binlog/codec"
	"vitess.io/binlogcodec/go/mysql/binlog/wire"
	"vitess.io/binlogcodec/go/stats"
	"vitess.io/binlogcodec/go/stats/promstats"
	"vitess.io/binlogcodec/go/vt/log"
	"vitess.io/binlogcodec/go/vt/utils"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// envPrefix prefixes the environment variables that set codec options,
// as in BINLOGCODEC_ZSTD_COMPRESSION_LEVEL.
const envPrefix = "BINLOGCODEC"

// metricsRegistry collects the stats variables of the process. Stats hooks
// can only be registered once.
var metricsRegistry = sync.OnceValue(func() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	stats.Register(promstats.NewExporter("binlogcodec", reg).Publish)
	return reg
})

// options are shared by all the commands.
type options struct {
	configFile string
	output     string
	checksum   bool
	timestamp  uint32
	serverID   uint32
	metrics    bool

	v   *viper.Viper
	cfg codec.Config
}

// New returns the root command of binlogcodec.
func New() *cobra.Command {
	opts := &options{
		v:   viper.New(),
		cfg: codec.DefaultConfig(),
	}

	root := &cobra.Command{
		Use:   "binlogcodec",
		Short: "binlogcodec encodes and decodes MySQL binlog events.",
		Long: "`binlogcodec` builds and inspects the MySQL 8.0 binlog events that use tag-length-value bodies: " +
			"HEARTBEAT_LOG_EVENT_V2 and TRANSACTION_PAYLOAD_EVENT.\n\n" +
			"Codec options are read from flags, from the environment (" + envPrefix + "_<OPTION>) " +
			"and from the file given with --config, in that order of precedence.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			log.Flush()
			if !opts.metrics {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr())
		},
	}

	fs := root.PersistentFlags()
	fs.SetNormalizeFunc(utils.NormalizeUnderscoresToDashes)
	log.RegisterFlags(fs)
	codec.RegisterFlags(fs, &opts.cfg)
	utils.SetFlagStringVar(fs, &opts.configFile, "config", "", "Path to a configuration file holding codec options.")
	utils.SetFlagStringVar(fs, &opts.output, "output", "", "Write the encoded event to this file instead of printing it in hex.")
	utils.SetFlagBoolVar(fs, &opts.checksum, "checksum", true, "Frame events with a trailing CRC32.")
	utils.SetFlagUint32Var(fs, &opts.timestamp, "timestamp", 0, "Timestamp of encoded event headers.")
	utils.SetFlagUint32Var(fs, &opts.serverID, "server-id", 1, "Server id of encoded event headers.")
	utils.SetFlagBoolVar(fs, &opts.metrics, "metrics", false, "Print the codec metrics in the Prometheus text format on exit.")
	_ = root.MarkPersistentFlagFilename("config")

	root.AddCommand(
		newHeartbeatCommand(opts),
		newPackCommand(opts),
		newDecodeCommand(opts),
	)
	return root
}

func (o *options) init(cmd *cobra.Command) error {
	if err := log.Init(cmd.Flags()); err != nil {
		return err
	}
	if o.metrics {
		metricsRegistry()
	}

	o.v.SetEnvPrefix(envPrefix)
	o.v.AutomaticEnv()
	if o.configFile != "" {
		o.v.SetConfigFile(o.configFile)
		if err := o.v.ReadInConfig(); err != nil {
			return vterrors.Wrapf(err, "cannot read config file %s", o.configFile)
		}
	}
	if err := codec.BindFlags(o.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := codec.ConfigFromViper(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	log.DebugS("codec configuration", "compression", cfg.DefaultCompressionType, "level", cfg.ZstdCompressionLevel,
		"max_event_bytes", cfg.MaxEventBytes, "max_decompressed_bytes", cfg.MaxDecompressedBytes)
	return nil
}

func (o *options) formatDescription() *binlog.FormatDescription {
	fd := binlog.NewMySQL8FormatDescription()
	if !o.checksum {
		fd = fd.WithoutChecksum()
	}
	return fd
}

// frame encodes ev and puts it behind an event header.
func (o *options) frame(ev binlog.Event) ([]byte, error) {
	w := wire.NewGrowableWriter(256, 0)
	if _, err := codec.Encode(o.cfg, ev, w); err != nil {
		return nil, err
	}
	h := binlog.EventHeader{
		Timestamp: o.timestamp,
		Type:      ev.EventType(),
		ServerID:  o.serverID,
	}
	return binlog.NewEvent(h, w.Finalize(), o.formatDescription())
}

// emit writes an encoded event to --output, or prints it in hex.
func (o *options) emit(cmd *cobra.Command, event []byte) error {
	if o.output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(event))
		return err
	}
	if err := os.WriteFile(o.output, event, 0o644); err != nil {
		return vterrors.Wrapf(err, "cannot write %s", o.output)
	}
	log.InfoS("wrote event", "file", o.output, "bytes", len(event))
	return nil
}

// readInput reads name, or stdin when name is "-". Hex input is decoded.
func readInput(cmd *cobra.Command, name string, isHex bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, vterrors.Wrapf(err, "cannot read %s", name)
	}
	if !isHex {
		return data, nil
	}
	decoded, err := hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
	if err != nil {
		return nil, vterrors.NewWithCause(vterrors.InvalidArgument, err, "input is not hex")
	}
	return decoded, nil
}

func writeMetrics(w io.Writer) error {
	families, err := metricsRegistry().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
