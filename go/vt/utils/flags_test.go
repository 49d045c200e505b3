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

package utils

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagVariants(t *testing.T) {
	tests := []struct {
		input               string
		expectedUnderscored string
		expectedDashed      string
	}{
		{"a-b", "a_b", "a-b"},
		{"a_b", "a_b", "a-b"},
		{"a-b_c", "a_b_c", "a-b-c"},
		{"example", "example", "example"},
		{"--max-event-bytes", "--max_event_bytes", "--max-event-bytes"},
	}

	for _, tc := range tests {
		underscored, dashed := flagVariants(tc.input)
		if underscored != tc.expectedUnderscored {
			t.Errorf("For input %q, expected underscored %q, got %q", tc.input, tc.expectedUnderscored, underscored)
		}
		if dashed != tc.expectedDashed {
			t.Errorf("For input %q, expected dashed %q, got %q", tc.input, tc.expectedDashed, dashed)
		}
	}
}

func TestConfigKey(t *testing.T) {
	assert.Equal(t, "zstd_compression_level", ConfigKey("zstd-compression-level"))
	assert.Equal(t, "max_event_bytes", ConfigKey("--max-event-bytes"))
	assert.Equal(t, "config", ConfigKey("config"))
}

func TestSetFlagVars(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	var (
		i   int
		b   bool
		s   string
		u32 uint32
		u64 uint64
	)
	SetFlagIntVar(fs, &i, "int-flag", 42, "an integer flag")
	SetFlagBoolVar(fs, &b, "bool-flag", true, "a bool flag")
	SetFlagStringVar(fs, &s, "string-flag", "zstd", "a string flag")
	SetFlagUint32Var(fs, &u32, "uint32-flag", 41983, "a uint32 flag")
	SetFlagUint64Var(fs, &u64, "uint64-flag", 1<<30, "a uint64 flag")

	assert.Equal(t, 42, i)
	assert.True(t, b)
	assert.Equal(t, "zstd", s)
	assert.EqualValues(t, 41983, u32)
	assert.EqualValues(t, 1<<30, u64)

	f := fs.Lookup("uint64-flag")
	require.NotNil(t, f)
	assert.Equal(t, "a uint64 flag", f.Usage)

	require.NoError(t, fs.Parse([]string{"--int-flag=7", "--uint64-flag=9", "--uint32-flag=12"}))
	assert.Equal(t, 7, i)
	assert.EqualValues(t, 9, u64)
	assert.EqualValues(t, 12, u32)
}

func TestNormalizeUnderscoresToDashes(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var level int
	SetFlagIntVar(fs, &level, "zstd-compression-level", 3, "level")
	fs.SetNormalizeFunc(NormalizeUnderscoresToDashes)

	require.NoError(t, fs.Parse([]string{"--zstd_compression_level=9"}))
	assert.Equal(t, 9, level)

	assert.Equal(t, pflag.NormalizedName("log_dir"), NormalizeUnderscoresToDashes(fs, "log_dir"))
	assert.Equal(t, pflag.NormalizedName("a-b_c"), NormalizeUnderscoresToDashes(fs, "a-b_c"))
}
