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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vitess.io/binlogcodec/go/mysql/binlog"
	"vitess.io/binlogcodec/go/mysql/binlog/compression"
	"vitess.io/binlogcodec/go/vt/utils"
	"vitess.io/binlogcodec/go/vt/vterrors"
)

// Flag names of the codec options. The matching config file keys use
// underscores instead of dashes.
const (
	FlagDefaultCompressionType = "default-compression-type"
	FlagZstdCompressionLevel   = "zstd-compression-level"
	FlagMaxEventBytes          = "max-event-bytes"
	FlagMaxDecompressedBytes   = "max-decompressed-bytes"
	FlagMaxFilenameBytes       = "max-filename-bytes"
)

// Default values of the codec options.
const (
	DefaultMaxEventBytes        = 1 << 30
	DefaultMaxDecompressedBytes = 4 << 30
	DefaultMaxFilenameBytes     = 512
)

// Config holds the options of the codecs and of the payload pipeline.
// It is passed by value.
type Config struct {
	// DefaultCompressionType is used by Pipeline.Pack.
	DefaultCompressionType binlog.CompressionType
	// ZstdCompressionLevel is the level of new compression sessions.
	ZstdCompressionLevel int
	// MaxEventBytes caps the size of an encoded or decoded event body.
	MaxEventBytes uint64
	// MaxDecompressedBytes caps the decompressed size of a payload.
	MaxDecompressedBytes uint64
	// MaxFilenameBytes caps the length of a heartbeat log file name.
	MaxFilenameBytes int
}

// DefaultConfig returns the configuration MySQL 8.0 behaves with.
func DefaultConfig() Config {
	return Config{
		DefaultCompressionType: binlog.CompressionZstd,
		ZstdCompressionLevel:   compression.DefaultLevel,
		MaxEventBytes:          DefaultMaxEventBytes,
		MaxDecompressedBytes:   DefaultMaxDecompressedBytes,
		MaxFilenameBytes:       DefaultMaxFilenameBytes,
	}
}

// Validate returns an InvalidArgument error for unusable options.
func (c Config) Validate() error {
	if c.DefaultCompressionType.IsReserved() {
		return vterrors.Errorf(vterrors.InvalidArgument, "%s: unsupported compression type %v", FlagDefaultCompressionType, c.DefaultCompressionType)
	}
	if err := compression.ValidateLevel(c.ZstdCompressionLevel); err != nil {
		return vterrors.Wrap(err, FlagZstdCompressionLevel)
	}
	if c.MaxEventBytes == 0 {
		return vterrors.Errorf(vterrors.InvalidArgument, "%s must be positive", FlagMaxEventBytes)
	}
	if c.MaxDecompressedBytes == 0 {
		return vterrors.Errorf(vterrors.InvalidArgument, "%s must be positive", FlagMaxDecompressedBytes)
	}
	if c.MaxFilenameBytes <= 0 {
		return vterrors.Errorf(vterrors.InvalidArgument, "%s must be positive, got %d", FlagMaxFilenameBytes, c.MaxFilenameBytes)
	}
	return nil
}

// RegisterFlags registers the codec options on fs, storing them in cfg.
// The current values of cfg are used as defaults.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	utils.SetFlagVar(fs, (*compressionTypeValue)(&cfg.DefaultCompressionType), FlagDefaultCompressionType, "compression type of new transaction payloads (zstd or none)")
	utils.SetFlagIntVar(fs, &cfg.ZstdCompressionLevel, FlagZstdCompressionLevel, cfg.ZstdCompressionLevel, "zstd compression level of transaction payloads, between 1 and 22")
	utils.SetFlagUint64Var(fs, &cfg.MaxEventBytes, FlagMaxEventBytes, cfg.MaxEventBytes, "largest event body that is encoded or decoded")
	utils.SetFlagUint64Var(fs, &cfg.MaxDecompressedBytes, FlagMaxDecompressedBytes, cfg.MaxDecompressedBytes, "largest decompressed transaction payload")
	utils.SetFlagIntVar(fs, &cfg.MaxFilenameBytes, FlagMaxFilenameBytes, cfg.MaxFilenameBytes, "longest heartbeat log file name")
}

// BindFlags makes the flags registered by RegisterFlags override the keys
// of v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, name := range []string{
		FlagDefaultCompressionType,
		FlagZstdCompressionLevel,
		FlagMaxEventBytes,
		FlagMaxDecompressedBytes,
		FlagMaxFilenameBytes,
	} {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(utils.ConfigKey(name), f); err != nil {
			return vterrors.Wrapf(err, "cannot bind flag %s", name)
		}
	}
	return nil
}

// ConfigFromViper builds a Config from the keys set in v, using defaults
// for the others. The result is validated.
func ConfigFromViper(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()
	if key := utils.ConfigKey(FlagDefaultCompressionType); v.IsSet(key) {
		s := v.GetString(key)
		ct, ok := binlog.ParseCompressionType(s)
		if !ok {
			return cfg, vterrors.Errorf(vterrors.InvalidArgument, "%s: unknown compression type %q", key, s)
		}
		cfg.DefaultCompressionType = ct
	}
	if key := utils.ConfigKey(FlagZstdCompressionLevel); v.IsSet(key) {
		cfg.ZstdCompressionLevel = v.GetInt(key)
	}
	if key := utils.ConfigKey(FlagMaxEventBytes); v.IsSet(key) {
		cfg.MaxEventBytes = v.GetUint64(key)
	}
	if key := utils.ConfigKey(FlagMaxDecompressedBytes); v.IsSet(key) {
		cfg.MaxDecompressedBytes = v.GetUint64(key)
	}
	if key := utils.ConfigKey(FlagMaxFilenameBytes); v.IsSet(key) {
		cfg.MaxFilenameBytes = v.GetInt(key)
	}
	return cfg, cfg.Validate()
}

// compressionTypeValue is a pflag.Value for binlog.CompressionType.
type compressionTypeValue binlog.CompressionType

func (ct *compressionTypeValue) Set(s string) error {
	v, ok := binlog.ParseCompressionType(s)
	if !ok {
		return vterrors.Errorf(vterrors.InvalidArgument, "unknown compression type %q, expected zstd or none", s)
	}
	*ct = compressionTypeValue(v)
	return nil
}

func (ct *compressionTypeValue) String() string {
	switch binlog.CompressionType(*ct) {
	case binlog.CompressionZstd:
		return "zstd"
	case binlog.CompressionNone:
		return "none"
	default:
		return binlog.CompressionType(*ct).String()
	}
}

func (ct *compressionTypeValue) Type() string {
	return "compressionType"
}
