// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOML(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sldc.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(&CLI{})
	require.NoError(t, err)

	assert.Equal(t, DefaultInputFormat, cfg.TOML.Decoder.InputFormat)
	assert.Equal(t, DefaultMaxOutputSize, cfg.TOML.Decoder.MaxOutputSize)
	assert.Equal(t, DefaultNumWorkers, cfg.TOML.Batch.NumWorkers)
	assert.Equal(t, DefaultOutputSuffix, cfg.TOML.Batch.OutputSuffix)
	assert.Zero(t, cfg.TOML.Batch.Timeout.Duration())
}

func TestLoadTOMLFile(t *testing.T) {
	outDir := t.TempDir()
	path := writeTOML(t, `
[decoder]
input_format = "hex"
max_output_size = 1024

[batch]
num_workers = 8
output_dir = "`+filepath.ToSlash(outDir)+`"
output_suffix = ".xml"
continue_on_error = true
timeout = "1m30s"
`)

	cfg, err := Load(&CLI{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, InputFormatHex, cfg.TOML.Decoder.InputFormat)
	assert.Equal(t, 1024, cfg.TOML.Decoder.MaxOutputSize)
	assert.Equal(t, 8, cfg.TOML.Batch.NumWorkers)
	assert.Equal(t, filepath.ToSlash(outDir), cfg.TOML.Batch.OutputDir)
	assert.Equal(t, ".xml", cfg.TOML.Batch.OutputSuffix)
	assert.True(t, cfg.TOML.Batch.ContinueOnError)
	assert.Equal(t, 90*time.Second, cfg.TOML.Batch.Timeout.Duration())
}

func TestLoadCLIOverrides(t *testing.T) {
	path := writeTOML(t, `
[decoder]
input_format = "raw"

[batch]
num_workers = 2
`)
	outDir := t.TempDir()

	cfg, err := Load(&CLI{
		ConfigFile:      path,
		Hex:             true,
		Workers:         6,
		MaxOutputSize:   99,
		OutputDir:       outDir,
		ContinueOnError: true,
	})
	require.NoError(t, err)

	assert.Equal(t, InputFormatHex, cfg.TOML.Decoder.InputFormat)
	assert.Equal(t, 99, cfg.TOML.Decoder.MaxOutputSize)
	assert.Equal(t, 6, cfg.TOML.Batch.NumWorkers)
	assert.Equal(t, outDir, cfg.TOML.Batch.OutputDir)
	assert.True(t, cfg.TOML.Batch.ContinueOnError)
}

func TestLoadInvalid(t *testing.T) {
	notDir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notDir, nil, 0o600))

	tests := []struct {
		name string
		toml string
		cli  CLI
	}{
		{name: "unknown input format", toml: "[decoder]\ninput_format = \"base64\"\n"},
		{name: "negative max output size", toml: "[decoder]\nmax_output_size = -1\n"},
		{name: "too many workers", toml: "[batch]\nnum_workers = 65\n"},
		{name: "bad timeout", toml: "[batch]\ntimeout = \"soon\"\n"},
		{name: "timeout too long", toml: "[batch]\ntimeout = \"25h\"\n"},
		{name: "output dir missing", toml: "[batch]\noutput_dir = \"" + filepath.ToSlash(filepath.Join(t.TempDir(), "nope")) + "\"\n"},
		{name: "output dir is a file", toml: "[batch]\noutput_dir = \"" + filepath.ToSlash(notDir) + "\"\n"},
		{name: "malformed toml", toml: "[batch\n"},
		{name: "negative workers flag", cli: CLI{Workers: -1}},
		{name: "output with several inputs", cli: CLI{Output: "out.xml", Inputs: []string{"a", "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := tt.cli
			if tt.toml != "" {
				cli.ConfigFile = writeTOML(t, tt.toml)
			}

			_, err := Load(&cli)
			require.Error(t, err)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(&CLI{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
}

func TestReadCLIArgs(t *testing.T) {
	cli, err := readCLIArgs([]string{"-x", "-w", "3", "--max-output-size", "4096", "-d", "a.bin", "b.bin"})
	require.NoError(t, err)

	assert.True(t, cli.Hex)
	assert.True(t, cli.Debug)
	assert.Equal(t, 3, cli.Workers)
	assert.Equal(t, 4096, cli.MaxOutputSize)
	assert.Equal(t, []string{"a.bin", "b.bin"}, cli.Inputs)
	assert.NotNil(t, cli.Ctx)
}

func TestReadCLIArgsEnv(t *testing.T) {
	t.Setenv(EnvVarPrefix+"_WORKERS", "5")

	cli, err := readCLIArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cli.Workers)
	assert.Empty(t, cli.Inputs)
}

func TestReadCLIArgsUnknownFlag(t *testing.T) {
	_, err := readCLIArgs([]string{"--no-such-flag"})
	require.Error(t, err)
}

func TestDurationText(t *testing.T) {
	var d duration
	require.NoError(t, d.UnmarshalText([]byte("250ms")))
	assert.Equal(t, 250*time.Millisecond, d.Duration())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "250ms", string(text))

	require.Error(t, d.UnmarshalText([]byte("later")))
}
